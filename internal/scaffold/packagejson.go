package scaffold

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/tsx-labs/create-tsx-app/internal/manifest"
)

// encodeString encodes s without HTML escaping so shell operators in
// scripts stay readable.
func encodeString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// RewritePackageJSON sets the package name and merges scripts into a
// package.json document. Existing keys keep their position; new keys are
// appended in the given order. The result is indented with two spaces and
// ends with a newline.
func RewritePackageJSON(data []byte, name string, scripts manifest.Scripts) ([]byte, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("parsing %s: invalid JSON", PackageJSON)
	}
	if _, typ, _, err := jsonparser.Get(data); err != nil || typ != jsonparser.Object {
		return nil, fmt.Errorf("parsing %s: %w", PackageJSON, errors.New("not a JSON object"))
	}

	pkg, err := jsonparser.Set(data, encodeString(name), "name")
	if err != nil {
		return nil, fmt.Errorf("setting %s name: %w", PackageJSON, err)
	}

	if len(scripts) > 0 {
		_, typ, _, err := jsonparser.Get(pkg, "scripts")
		if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return nil, fmt.Errorf("parsing %s scripts: %w", PackageJSON, err)
		}
		if err == nil && typ != jsonparser.Object {
			return nil, fmt.Errorf("parsing %s scripts: %s is not an object", PackageJSON, typ)
		}
		for _, s := range scripts {
			if pkg, err = jsonparser.Set(pkg, encodeString(s.Command), "scripts", s.Name); err != nil {
				return nil, fmt.Errorf("setting script %q: %w", s.Name, err)
			}
		}
	}

	var compact, out bytes.Buffer
	if err := json.Compact(&compact, pkg); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", PackageJSON, err)
	}
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting %s: %w", PackageJSON, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
