package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/ui"
	"github.com/PolarWolf314/foltool/internal/utils"
	"github.com/PolarWolf314/foltool/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	packOutputPath string
	packKeyFile    string
	packEncoding   string
	packDryRun     bool
)

func init() {
	packCmd.Flags().StringVarP(&packOutputPath, "output", "o", "", "output archive path (default: output.fol)")
	packCmd.Flags().StringVar(&packKeyFile, "key-file", "", "key manifest to reuse (default: <input_dir>.key if present)")
	packCmd.Flags().StringVar(&packEncoding, "encoding", "", "name encoding (default: gbk)")
	packCmd.Flags().BoolVar(&packDryRun, "dry-run", false, "show what would be packed without writing the archive")
}

// resetPackCommandState resets the pack command's global state for testing.
func resetPackCommandState() {
	packOutputPath = ""
	packKeyFile = ""
	packEncoding = ""
	packDryRun = false
}

var packCmd = &cobra.Command{
	Use:   "pack <input_dir>",
	Short: "Pack a directory into an obfuscated archive",
	Long: `Packs every file under <input_dir> into an obfuscated FOL archive.

If <input_dir>.key exists (as written by unpack), files it names keep their
key and position. Other files are appended in name order with fresh random
keys. Manifests, JSON files and .DS_Store are never packed.

Examples:
  # Pack a directory to output.fol
  foltool pack data_fol

  # Pack to a custom path with an explicit key manifest
  foltool pack data_fol -o data.fol --key-file backup.key

  # Preview the pack list
  foltool pack data_fol --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pack command")
		spinner, cleanup := startSpinner("Packing files...")
		defer cleanup()

		opts := workflows.PackOptions{
			SourceDir:  args[0],
			OutputPath: packOutputPath,
			KeyFile:    packKeyFile,
			Encoding:   packEncoding,
			Exclude:    Settings.Scan.Exclude,
			DryRun:     packDryRun,
			Progress: func(i, total int, name string) {
				setProgress(spinner, "Packing", i, total, name)
			},
		}
		if opts.OutputPath == "" {
			opts.OutputPath = Settings.Archive.DefaultOutput
		}
		if opts.Encoding == "" {
			opts.Encoding = Settings.Archive.NameEncoding
		}
		Logger.Debugf("Pack options: source=%s output=%s keyFile=%s encoding=%s", opts.SourceDir, opts.OutputPath, opts.KeyFile, opts.Encoding)

		result, err := workflows.Pack(context.Background(), opts)
		if err != nil {
			msg, fatal := packErrorMessage(err, opts)
			spinner.FinalMSG = msg
			if fatal {
				return Logger.ErrorfAndReturn("pack failed: %v", err)
			}
			return nil
		}

		reportWarnings(spinner, result.Warnings)
		if result.KeyFile != "" {
			Logger.Infof("Reused keys from %s", result.KeyFile)
		}
		for _, name := range result.Dropped {
			Logger.Warnf("Manifest entry %s has no file on disk", name)
		}

		spinner.FinalMSG = formatPackResult(result)
		return nil
	},
}

// packErrorMessage maps expected failures to a friendly message. fatal is
// false when the message alone explains the problem.
func packErrorMessage(err error, opts workflows.PackOptions) (msg string, fatal bool) {
	switch {
	case errors.Is(err, kerrors.ErrSourceNotFound):
		return ui.Cross() + " Directory " + ui.Path.Sprint(opts.SourceDir) + " does not exist", false
	case errors.Is(err, kerrors.ErrEmptyPackList):
		return ui.Cross() + " No files to pack in " + ui.Path.Sprint(opts.SourceDir), false
	case errors.Is(err, kerrors.ErrUnknownEncoding):
		return encodingHint(opts.Encoding), false
	default:
		return ui.Cross() + " Failed to pack " + ui.Path.Sprint(opts.SourceDir) + "\n" +
			ui.Error.Sprint("Error: ") + err.Error(), true
	}
}

func formatPackResult(result *workflows.PackResult) string {
	summary := fmt.Sprintf("%d reused, %d new, %d dropped", len(result.Reused), len(result.Added), len(result.Dropped))

	var msg string
	if result.DryRun {
		msg = ui.Warning.Sprint("[dry-run]") + fmt.Sprintf(" Would pack %d files (%s) into ", len(result.Items), utils.FormatSize(result.DataSize)) +
			ui.Path.Sprint(result.OutputPath) + "\n"
		for _, item := range result.Items {
			msg += "  " + ui.Path.Sprint(item.GamePath) + "  " + ui.Key.Sprintf("%08x", item.Key) + "\n"
		}
		msg += summary + "\n" + ui.Muted.Sprint("No changes made.")
	} else {
		msg = ui.Check() + fmt.Sprintf(" Packed %d files into ", len(result.Items)) + ui.Path.Sprint(result.OutputPath) +
			" (" + utils.FormatSize(result.Size) + ")\n" +
			ui.Arrow() + " " + summary
	}

	if result.KeyFile == "" && len(result.Added) > 0 {
		msg += "\n" + ui.Arrow() + " New files got random keys. Use " + ui.Flag.Sprint("--key-file") +
			" to reuse keys from a manifest written by " + ui.Code.Sprint("foltool unpack")
	}
	if len(result.Dropped) > 0 {
		msg += pathList(ui.Caution()+" Manifest entries with no file on disk:", result.Dropped)
	}
	return msg
}

// encodingHint explains an unknown --encoding value.
func encodingHint(encoding string) string {
	return ui.Cross() + " Unknown name encoding " + ui.Highlight.Sprint(encoding) + "\n" +
		ui.Arrow() + " Pass a WHATWG label such as " + ui.Code.Sprint("gbk") + " or " + ui.Code.Sprint("shift_jis") +
		" to " + ui.Flag.Sprint("--encoding")
}
