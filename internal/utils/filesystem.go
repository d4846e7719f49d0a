package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// GamePath converts rel, a path relative to a pack source directory, into
// the backslash-separated form stored in archives.
func GamePath(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
}

// NormalizeGamePath rewrites forward slashes to the archive's backslashes.
func NormalizeGamePath(name string) string {
	return strings.ReplaceAll(name, "/", `\`)
}

// LocalPath converts a game path into a host path relative to the
// extraction root. Both separators are accepted. Names that are empty,
// absolute, or climb out of the root with ".." are rejected.
func LocalPath(name string) (string, error) {
	slashed := strings.ReplaceAll(name, `\`, "/")
	local := filepath.FromSlash(slashed)
	if !filepath.IsLocal(local) || strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("unsafe entry name %q", name)
	}
	return filepath.Clean(local), nil
}
