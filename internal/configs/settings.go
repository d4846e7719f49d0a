package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/names"
)

// DefaultFileName is looked up in the working directory when no path is given.
const DefaultFileName = "foltool.toml"

type ArchiveSettings struct {
	NameEncoding  string `toml:"name_encoding"`
	DefaultOutput string `toml:"default_output"`
}

type ScanSettings struct {
	Exclude []string `toml:"exclude"`
}

type Settings struct {
	Archive ArchiveSettings `toml:"archive"`
	Scan    ScanSettings    `toml:"scan"`

	// Path is the file the settings came from, empty for defaults.
	Path string `toml:"-"`
	// Unknown lists keys present in the file that foltool ignores.
	Unknown []string `toml:"-"`
}

// DefaultExclude skips manifests, JSON sidecars and Finder metadata when scanning.
var DefaultExclude = []string{"**/*.key", "**/*.json", "**/.DS_Store"}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Archive: ArchiveSettings{
			NameEncoding:  names.DefaultEncoding,
			DefaultOutput: "output.fol",
		},
		Scan: ScanSettings{
			Exclude: append([]string(nil), DefaultExclude...),
		},
	}
}

// Load reads settings from path on top of the defaults.
//
// Returns ErrInvalidConfig if the file is not valid TOML or names an
// unknown encoding.
func Load(path string) (*Settings, error) {
	s := Default()
	unknown, err := LoadTOML(path, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}
	if _, err := names.Lookup(s.Archive.NameEncoding); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}
	s.Path = path
	s.Unknown = unknown
	return s, nil
}

// Resolve loads the settings file at explicit, or DefaultFileName if it
// exists, or falls back to Default. An explicit path must exist.
func Resolve(explicit string) (*Settings, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidConfig, err)
		}
		return Load(explicit)
	}

	if _, err := os.Stat(DefaultFileName); err == nil {
		return Load(DefaultFileName)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking for %s: %w", DefaultFileName, err)
	}
	return Default(), nil
}
