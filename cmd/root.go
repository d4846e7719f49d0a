package cmd

import (
	"fmt"

	"github.com/PolarWolf314/foltool/internal/configs"
	logger "github.com/PolarWolf314/foltool/internal/logging"
	"github.com/PolarWolf314/foltool/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger
	Settings   = configs.Default()

	RootCmd = &cobra.Command{
		Use:   "foltool",
		Short: "foltool - pack and unpack obfuscated FOL archives",
		Long: `foltool packs directories into obfuscated FOL archives and extracts them again.

Unpacking writes a key manifest (<output_dir>.key) next to the extracted
directory. Packing that directory again reuses the manifest's keys and order,
so an unmodified round trip reproduces the original key table.

Usage:
  foltool <command> [flags]

Available Commands:
  pack      Pack a directory into an archive
  unpack    Extract an archive and write its key manifest
  list      Show an archive's entries without extracting

Run 'foltool help <command>' for more details on a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.Name(), verbose, debug)

			settings, err := configs.Resolve(configPath)
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load settings: %v", err)
			}
			if settings.Path != "" {
				Logger.Infof("Loaded settings from %s", settings.Path)
			}
			for _, key := range settings.Unknown {
				Logger.WarnfAlways("Ignoring unknown setting %q", key)
			}
			Settings = settings
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewFigure("foltool", "", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			fmt.Fprintln(cmd.OutOrStdout(), "Run "+ui.Code.Sprint("foltool --help")+" to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: ./"+configs.DefaultFileName+" if present)")

	RootCmd.AddCommand(packCmd)
	RootCmd.AddCommand(unpackCmd)
	RootCmd.AddCommand(listCmd)
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	Settings = configs.Default()
	resetPackCommandState()
	resetUnpackCommandState()
	resetListCommandState()
	resetCobraFlagState()
}

// resetCobraFlagState clears Changed on every flag so values from one test
// don't leak into the next.
func resetCobraFlagState() {
	for _, c := range append([]*cobra.Command{RootCmd}, RootCmd.Commands()...) {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
		c.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
