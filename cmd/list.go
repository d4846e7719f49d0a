package cmd

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/ui"
	"github.com/PolarWolf314/foltool/internal/utils"
	"github.com/PolarWolf314/foltool/internal/workflows"

	"github.com/spf13/cobra"
)

var listEncoding string

func init() {
	listCmd.Flags().StringVar(&listEncoding, "encoding", "", "name encoding (default: gbk)")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listEncoding = ""
}

var listCmd = &cobra.Command{
	Use:   "list <input_file>",
	Short: "Show an archive's entries without extracting",
	Long: `Decodes the header, key table and index of an obfuscated FOL archive and prints
each entry's index, key, offset, size and name.

Examples:
  foltool list data.fol`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		encoding := listEncoding
		if encoding == "" {
			encoding = Settings.Archive.NameEncoding
		}

		result, err := workflows.List(context.Background(), workflows.ListOptions{
			ArchivePath: args[0],
			Encoding:    encoding,
		})
		if err != nil {
			switch {
			case errors.Is(err, kerrors.ErrArchiveNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), ui.Cross()+" Archive "+ui.Path.Sprint(args[0])+" does not exist")
				return nil
			case errors.Is(err, kerrors.ErrNotObfuscated):
				fmt.Fprintln(cmd.OutOrStdout(), ui.Cross()+" "+ui.Path.Sprint(args[0])+" is not an obfuscated archive")
				return nil
			}
			return Logger.ErrorfAndReturn("list failed: %v", err)
		}
		Logger.Debugf("Data region starts at %d", result.DataBase)
		Logger.Debugf("Key table: %08x", result.Keys)
		if result.Relocated > 0 {
			Logger.Infof("%d entries stored offsets relative to the data region", result.Relocated)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %d entries, %s\n", ui.Path.Sprint(result.ArchivePath), len(result.Entries), utils.FormatSize(result.Size))

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "INDEX\tKEY\tOFFSET\tSIZE\tNAME")
		for _, e := range result.Entries {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\n", e.Index, ui.Key.Sprintf("%08x", e.Key), e.Offset, e.Size, e.Name)
		}
		return w.Flush()
	},
}
