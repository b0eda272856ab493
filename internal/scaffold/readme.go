package scaffold

import "bytes"

// Placeholder is replaced with the package name in a template README.
const Placeholder = "{{PROJECT_NAME}}"

// RenderReadme substitutes every Placeholder in data with name.
func RenderReadme(data []byte, name string) []byte {
	return bytes.ReplaceAll(data, []byte(Placeholder), []byte(name))
}
