// Package utils provides utility functions for texrack.
package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// expandHome expands ~ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// ExpandPath expands ~ and normalizes the path.
func ExpandPath(path string) string {
	expanded := expandHome(path)
	return filepath.Clean(expanded)
}

// IsExplicitLocation reports whether s names a location rather than a
// folder under the projects root.
func IsExplicitLocation(s string) bool {
	if strings.HasPrefix(s, "~") || filepath.IsAbs(s) {
		return true
	}
	return strings.ContainsRune(s, '/') || strings.ContainsRune(s, filepath.Separator)
}

// SanitizeName replaces every character outside [A-Za-z0-9-_] with '_'.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// ExtensionPattern builds a brace glob such as "*.{png,jpg}".
func ExtensionPattern(extensions []string) string {
	if len(extensions) == 1 {
		return "*." + strings.ToLower(strings.TrimPrefix(extensions[0], "."))
	}
	lowered := make([]string, len(extensions))
	for i, ext := range extensions {
		lowered[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	return "*.{" + strings.Join(lowered, ",") + "}"
}

// MatchesExtensions reports whether the basename of path carries one of the
// given extensions, ignoring case. An empty list matches everything.
func MatchesExtensions(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	name := strings.ToLower(filepath.Base(path))
	ok, err := doublestar.Match(ExtensionPattern(extensions), name)
	return err == nil && ok
}
