package utils

import (
	"path/filepath"
	"strings"
)

const (
	forwardSlash = "/"
	backslash    = `\`
)

// CleanPath joins the provided elements and normalizes the result to forward
// slashes with duplicate separators collapsed. A leading double slash is
// collapsed too; UNC paths are not preserved.
func CleanPath(elements ...string) string {
	joined := filepath.Join(elements...)
	normalized := strings.ReplaceAll(joined, backslash, forwardSlash)
	for strings.Contains(normalized, forwardSlash+forwardSlash) {
		normalized = strings.ReplaceAll(normalized, forwardSlash+forwardSlash, forwardSlash)
	}
	return normalized
}

// HasHiddenPrefix reports whether a name starts with one of the markers that
// exclude an entry from traversal regardless of the ignore file.
func HasHiddenPrefix(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "@")
}
