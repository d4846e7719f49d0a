package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/fol"
	"github.com/PolarWolf314/foltool/internal/manifest"
	"github.com/PolarWolf314/foltool/internal/names"
	"github.com/PolarWolf314/foltool/internal/utils"
)

// UnpackOptions configures the unpack workflow.
type UnpackOptions struct {
	// ArchivePath is the archive to extract.
	ArchivePath string

	// OutputDir receives the extracted files.
	// If empty, defaults to DefaultOutputDir(ArchivePath).
	OutputDir string

	// Encoding names the codec for entry names. Empty selects GBK.
	Encoding string

	// DryRun decodes the index without writing anything.
	DryRun bool

	// Progress, if set, is called before each entry is extracted.
	Progress func(i, total int, name string)
}

// UnpackResult contains the outcome of an unpack operation.
type UnpackResult struct {
	OutputDir string

	// ManifestPath is where the key manifest was written, empty if it was not.
	ManifestPath string

	// Count is the number of entries in the archive.
	Count int

	// Files lists the extracted files, relative to OutputDir.
	Files []string

	// Skipped lists entry names that could not be extracted safely.
	Skipped []string

	// Manifest holds one entry per index record, including skipped ones.
	Manifest []manifest.Entry

	DryRun bool

	// Warnings holds advisory problems that did not stop extraction.
	Warnings []error
}

// DefaultOutputDir returns "<archive name without extension>_fol".
func DefaultOutputDir(archivePath string) string {
	base := filepath.Base(archivePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_fol"
}

// Unpack extracts every entry of an archive and records each entry's name,
// key and index in a manifest next to the output directory.
//
// Entries whose names would escape OutputDir, or that cannot be written,
// are skipped with a warning.
// A manifest that cannot be saved is reported as a warning.
//
// Returns ErrArchiveNotFound if ArchivePath does not exist.
// Returns ErrNotObfuscated for plain archives.
func Unpack(ctx context.Context, opts UnpackOptions) (*UnpackResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir(opts.ArchivePath)
	}

	f, r, err := openArchive(opts.ArchivePath, opts.Encoding)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := r.Entries()
	result := &UnpackResult{
		OutputDir: opts.OutputDir,
		Count:     r.Count(),
		Manifest:  make([]manifest.Entry, 0, len(entries)),
		DryRun:    opts.DryRun,
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result.Manifest = append(result.Manifest, manifest.Entry{
			Name:  utils.NormalizeGamePath(e.Name),
			Key:   e.Key,
			Index: e.Index,
		})

		rel, err := utils.LocalPath(e.Name)
		if err != nil {
			result.Skipped = append(result.Skipped, e.Name)
			result.Warnings = append(result.Warnings, fmt.Errorf("%w: entry %d: %v", kerrors.ErrInvalidEntry, e.Index, err))
			continue
		}

		if opts.Progress != nil {
			opts.Progress(i, len(entries), e.Name)
		}
		if opts.DryRun {
			result.Files = append(result.Files, rel)
			continue
		}

		data, err := r.ReadEntry(i)
		if err != nil {
			return nil, err
		}
		// Names like "." or a file reused as a directory only fail here.
		if err := writeEntry(opts.OutputDir, rel, data); err != nil {
			result.Skipped = append(result.Skipped, e.Name)
			result.Warnings = append(result.Warnings, fmt.Errorf("%w: entry %d: %v", kerrors.ErrInvalidEntry, e.Index, err))
			continue
		}
		result.Files = append(result.Files, rel)
	}

	if opts.DryRun {
		return result, nil
	}

	manifestPath := manifest.PathFor(opts.OutputDir)
	if err := manifest.Save(manifestPath, result.Manifest); err != nil {
		result.Warnings = append(result.Warnings, fmt.Errorf("%w: %v", kerrors.ErrManifestNotSaved, err))
	} else {
		result.ManifestPath = manifestPath
	}

	return result, nil
}

func writeEntry(dir, rel string, data []byte) error {
	target := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// openArchive opens path and parses its index. The caller closes the file.
func openArchive(path, encoding string) (*os.File, *fol.Reader, error) {
	codec, err := names.Lookup(encoding)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", kerrors.ErrArchiveNotFound, path)
		}
		return nil, nil, fmt.Errorf("opening archive: %w", err)
	}

	r, err := fol.NewReader(f, fol.ReaderOptions{Names: codec})
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return f, r, nil
}
