package scaffold

import (
	"testing"
	"testing/fstest"
)

const testManifest = `
baseline:
  devDependencies: [typescript]
templates:
  - name: basic
  - name: web
assets:
  - source: _gitignore
    target: .gitignore
    when: [git]
  - source: _eslint.config.js
    when: [lint]
    unless: [format]
  - source: _eslint.prettier.config.js
    when: [lint, format]
  - source: _prettier*
    when: [format]
  - source: _env
    when: [env]
features:
  lint:
    scripts:
      lint: eslint src/**/*.ts
  format:
    scripts:
      format: prettier --write src/**/*.ts
  env:
    scripts:
      dev: tsx watch -r dotenv/config src/index.ts
`

func testTree() fstest.MapFS {
	return fstest.MapFS{
		"manifest.yaml":                     {Data: []byte(testManifest)},
		"common/_gitignore":                 {Data: []byte("node_modules/\n")},
		"common/_eslint.config.js":          {Data: []byte("// lint only\n")},
		"common/_eslint.prettier.config.js": {Data: []byte("// lint + prettier\n")},
		"common/_prettierrc.json":           {Data: []byte("{}\n")},
		"common/_prettierignore":            {Data: []byte("dist/\n")},
		"common/_env":                       {Data: []byte("PORT=3000\n")},
		"common/tsconfig.json":              {Data: []byte("{}\n")},
		"basic/package.json":                {Data: []byte(`{"name":"tsx-app","version":"0.1.0","scripts":{"dev":"tsx watch src/index.ts","build":"tsc"}}`)},
		"basic/README.md":                   {Data: []byte("# {{PROJECT_NAME}}\n\nRun {{PROJECT_NAME}}.\n")},
		"basic/src/index.ts":                {Data: []byte("console.log('hi');\n")},
		"basic/src/lib/util.ts":             {Data: []byte("export {};\n")},
		"web/package.json":                  {Data: []byte(`{"name":"web"}`)},
		"web/src/index.ts":                  {Data: []byte("export {};\n")},
	}
}

func testSource(t *testing.T, tree fstest.MapFS) *Source {
	t.Helper()
	src, err := NewSource(tree, "test")
	if err != nil {
		t.Fatalf("NewSource() error: %v", err)
	}
	return src
}
