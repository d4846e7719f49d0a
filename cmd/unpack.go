package cmd

import (
	"context"
	"errors"
	"fmt"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/ui"
	"github.com/PolarWolf314/foltool/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	unpackOutputDir string
	unpackEncoding  string
	unpackDryRun    bool
)

func init() {
	unpackCmd.Flags().StringVarP(&unpackOutputDir, "output", "o", "", "output directory (default: <archive>_fol)")
	unpackCmd.Flags().StringVar(&unpackEncoding, "encoding", "", "name encoding (default: gbk)")
	unpackCmd.Flags().BoolVar(&unpackDryRun, "dry-run", false, "list what would be extracted without writing files")
}

// resetUnpackCommandState resets the unpack command's global state for testing.
func resetUnpackCommandState() {
	unpackOutputDir = ""
	unpackEncoding = ""
	unpackDryRun = false
}

var unpackCmd = &cobra.Command{
	Use:   "unpack <input_file>",
	Short: "Extract an archive and write its key manifest",
	Long: `Extracts every entry of an obfuscated FOL archive into a directory and writes
<output_dir>.key, a JSON manifest recording each entry's name, key and index.

Keep the manifest next to the directory: pack reads it to reproduce the
archive's key table.

Examples:
  # Extract data.fol into data_fol/ and write data_fol.key
  foltool unpack data.fol

  # Extract into a custom directory
  foltool unpack data.fol -o extracted

  # Names stored as Shift-JIS
  foltool unpack data.fol --encoding shift_jis`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unpack command")
		spinner, cleanup := startSpinner("Extracting archive...")
		defer cleanup()

		opts := workflows.UnpackOptions{
			ArchivePath: args[0],
			OutputDir:   unpackOutputDir,
			Encoding:    unpackEncoding,
			DryRun:      unpackDryRun,
			Progress: func(i, total int, name string) {
				setProgress(spinner, "Extracting", i, total, name)
			},
		}
		if opts.Encoding == "" {
			opts.Encoding = Settings.Archive.NameEncoding
		}
		Logger.Debugf("Unpack options: archive=%s output=%s encoding=%s", opts.ArchivePath, opts.OutputDir, opts.Encoding)

		result, err := workflows.Unpack(context.Background(), opts)
		if err != nil {
			msg, fatal := unpackErrorMessage(err, opts)
			spinner.FinalMSG = msg
			if fatal {
				return Logger.ErrorfAndReturn("unpack failed: %v", err)
			}
			return nil
		}

		reportWarnings(spinner, result.Warnings)

		spinner.FinalMSG = formatUnpackResult(result)
		return nil
	},
}

// unpackErrorMessage maps expected failures to a friendly message. fatal is
// false when the message alone explains the problem.
func unpackErrorMessage(err error, opts workflows.UnpackOptions) (msg string, fatal bool) {
	switch {
	case errors.Is(err, kerrors.ErrArchiveNotFound):
		return ui.Cross() + " Archive " + ui.Path.Sprint(opts.ArchivePath) + " does not exist", false
	case errors.Is(err, kerrors.ErrNotObfuscated):
		return ui.Cross() + " " + ui.Path.Sprint(opts.ArchivePath) + " is not an obfuscated archive\n" +
			ui.Arrow() + " Plain archives are not supported", false
	case errors.Is(err, kerrors.ErrUnknownEncoding):
		return encodingHint(opts.Encoding), false
	default:
		return ui.Cross() + " Failed to extract " + ui.Path.Sprint(opts.ArchivePath) + "\n" +
			ui.Error.Sprint("Error: ") + err.Error(), true
	}
}

func formatUnpackResult(result *workflows.UnpackResult) string {
	if result.DryRun {
		msg := ui.Warning.Sprint("[dry-run]") + fmt.Sprintf(" Would extract %d of %d entries into ", len(result.Files), result.Count) +
			ui.Path.Sprint(result.OutputDir) + "\n"
		for _, e := range result.Manifest {
			msg += "  " + ui.Path.Sprint(e.Name) + "  " + ui.Key.Sprintf("%08x", e.Key) + "\n"
		}
		msg += ui.Muted.Sprint("No changes made.")
		if len(result.Skipped) > 0 {
			msg += pathList(ui.Caution()+" Unsafe entries that would be skipped:", result.Skipped)
		}
		return msg
	}

	msg := ui.Check() + fmt.Sprintf(" Extracted %d files into ", len(result.Files)) + ui.Path.Sprint(result.OutputDir)
	if result.ManifestPath != "" {
		msg += "\n" + ui.Arrow() + " Keys saved to " + ui.Path.Sprint(result.ManifestPath)
	}
	if len(result.Skipped) > 0 {
		msg += pathList(ui.Caution()+fmt.Sprintf(" Skipped %d entries:", len(result.Skipped)), result.Skipped)
	}
	return msg
}
