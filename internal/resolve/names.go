package resolve

import (
	"regexp"
	"strings"
)

// DefaultTargetDir is the target suggested when none is given.
const DefaultTargetDir = "tsx-app"

// InvalidPackageName is the message shown for a rejected package name.
const InvalidPackageName = "Invalid package name."

var (
	packageNameRE = regexp.MustCompile(`^(?:@[a-z0-9\-*~][a-z0-9\-*._~]*/)?[a-z0-9\-~][a-z0-9\-._~]*$`)
	whitespaceRE  = regexp.MustCompile(`\s+`)
	disallowedRE  = regexp.MustCompile(`[^a-z0-9\-~]+`)
)

// FormatTargetDir trims surrounding whitespace and trailing slashes until
// neither remains, so applying it twice changes nothing.
func FormatTargetDir(dir string) string {
	for {
		next := strings.TrimRight(strings.TrimSpace(dir), "/")
		if next == dir {
			return dir
		}
		dir = next
	}
}

// IsValidPackageName reports whether name is acceptable as a package.json
// name, optionally scoped.
func IsValidPackageName(name string) bool {
	return packageNameRE.MatchString(name)
}

// ToValidPackageName derives a valid package name from name: lower-cased,
// whitespace runs and disallowed characters replaced with "-", one leading
// "." or "_" dropped. An input with nothing left yields DefaultTargetDir.
func ToValidPackageName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRE.ReplaceAllString(s, "-")
	if strings.HasPrefix(s, ".") || strings.HasPrefix(s, "_") {
		s = s[1:]
	}
	s = disallowedRE.ReplaceAllString(s, "-")
	if s == "" {
		return DefaultTargetDir
	}
	return s
}
