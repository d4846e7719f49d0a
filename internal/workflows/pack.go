package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/foltool/internal/configs"
	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/fol"
	"github.com/PolarWolf314/foltool/internal/manifest"
	"github.com/PolarWolf314/foltool/internal/names"
)

// DefaultArchiveName is written when no output path is given.
const DefaultArchiveName = "output.fol"

// PackOptions configures the pack workflow.
type PackOptions struct {
	// SourceDir is the directory whose files are packed.
	SourceDir string

	// OutputPath is the archive to create. Defaults to DefaultArchiveName.
	OutputPath string

	// KeyFile is the manifest to reuse keys from.
	// If empty, <SourceDir>.key is used when it exists.
	KeyFile string

	// Encoding names the codec for entry names. Empty selects GBK.
	Encoding string

	// Exclude holds glob patterns of files to leave out.
	// If nil, configs.DefaultExclude is used.
	Exclude []string

	// DryRun builds the pack list without writing the archive.
	DryRun bool

	// Keys supplies keys for new files. Defaults to RandomKey.
	Keys KeySource

	// Progress, if set, is called before each file is written.
	Progress func(i, total int, gamePath string)
}

// PackResult contains the outcome of a pack operation.
type PackResult struct {
	// OutputPath is the archive that was (or would be) written.
	OutputPath string

	// KeyFile is the manifest keys were reused from, empty if none.
	KeyFile string

	// Items is the final pack list in archive order.
	Items []fol.PackItem

	Reused  []string
	Added   []string
	Dropped []string

	// Size is the archive size in bytes. Zero for a dry run.
	Size int64

	// DataSize is the total size of packed file contents.
	DataSize int64

	DryRun bool

	// Warnings holds advisory problems that did not stop packing.
	Warnings []error
}

// Pack packs a directory into an obfuscated archive.
//
// Keys and order are reused from the key manifest when one is found, so
// repacking an unpacked archive reproduces its key table. A manifest that
// cannot be read is reported as a warning and packing proceeds without it.
//
// Returns ErrSourceNotFound if SourceDir does not exist.
// Returns ErrEmptyPackList if no files remain after exclusion.
func Pack(ctx context.Context, opts PackOptions) (*PackResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.SourceDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSourceNotFound, opts.SourceDir)
	}

	codec, err := names.Lookup(opts.Encoding)
	if err != nil {
		return nil, err
	}

	if opts.OutputPath == "" {
		opts.OutputPath = DefaultArchiveName
	}
	if opts.Exclude == nil {
		opts.Exclude = configs.DefaultExclude
	}

	result := &PackResult{
		OutputPath: opts.OutputPath,
		DryRun:     opts.DryRun,
	}

	disk, err := ScanDir(opts.SourceDir, opts.Exclude)
	if err != nil {
		return nil, err
	}
	dropOutput(disk, opts.OutputPath)

	entries, keyFile, err := loadManifest(opts.SourceDir, opts.KeyFile)
	if err != nil {
		result.Warnings = append(result.Warnings, err)
	}
	result.KeyFile = keyFile

	plan, err := BuildPackList(disk, entries, opts.Keys)
	if err != nil {
		return nil, err
	}
	result.Items = plan.Items
	result.Reused = plan.Reused
	result.Added = plan.Added
	result.Dropped = plan.Dropped

	if len(plan.Items) == 0 {
		return nil, fmt.Errorf("%w in %s", kerrors.ErrEmptyPackList, opts.SourceDir)
	}

	if opts.DryRun {
		for _, item := range plan.Items {
			if info, err := os.Stat(item.Path); err == nil {
				result.DataSize += info.Size()
			}
		}
		return result, nil
	}

	packed, err := writeArchive(opts, plan.Items, codec)
	if err != nil {
		return nil, err
	}
	result.Size = packed.Size
	result.DataSize = packed.DataSize
	result.Warnings = append(result.Warnings, packed.Warnings...)

	return result, nil
}

func writeArchive(opts PackOptions, items []fol.PackItem, codec names.Codec) (*fol.PackResult, error) {
	if dir := filepath.Dir(opts.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.OpenFile(opts.OutputPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	var progress func(int, fol.PackItem)
	if opts.Progress != nil {
		progress = func(i int, item fol.PackItem) {
			opts.Progress(i, len(items), item.GamePath)
		}
	}

	packed, err := fol.Pack(f, items, fol.PackOptions{Names: codec, Progress: progress})
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", opts.OutputPath, err)
	}

	err = f.Close()
	f = nil
	if err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return packed, nil
}

// loadManifest returns the entries of the manifest for sourceDir and the
// path they came from. A missing auto-detected manifest is not an error.
func loadManifest(sourceDir, keyFile string) ([]manifest.Entry, string, error) {
	explicit := keyFile != ""
	if !explicit {
		keyFile = manifest.PathFor(sourceDir)
	}

	entries, err := manifest.Load(keyFile)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("%w: %v", kerrors.ErrManifestUnreadable, err)
	}
	return entries, keyFile, nil
}

// dropOutput removes the archive being written from the scanned files, in
// case it lives inside the source directory.
func dropOutput(disk map[string]string, outputPath string) {
	out, err := filepath.Abs(outputPath)
	if err != nil {
		return
	}
	for name, path := range disk {
		if abs, err := filepath.Abs(path); err == nil && abs == out {
			delete(disk, name)
		}
	}
}
