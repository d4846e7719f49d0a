package workflows

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/foltool/internal/utils"

	"github.com/bmatcuk/doublestar/v4"
)

// ScanDir walks root and maps the game path of every regular file, or
// symlink to one, to its host path. Files whose slash-separated relative
// path matches one of the exclude globs are skipped.
func ScanDir(root string, exclude []string) (map[string]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	files := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Follow links to files. Links to directories are not descended.
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("resolving link %s: %w", path, err)
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		if excluded(filepath.ToSlash(rel), exclude) {
			return nil
		}

		files[utils.GamePath(rel)] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
