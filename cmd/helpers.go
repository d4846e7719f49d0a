package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PolarWolf314/foltool/internal/ui"
	"github.com/PolarWolf314/foltool/internal/utils"

	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode and stdout is a terminal.
// Returns the spinner and a function that should be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// automatically calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	spin := !verbose && !debug && utils.IsTerminal()
	if spin {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		if spin {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if spin {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// setProgress updates the spinner suffix with a counter.
func setProgress(s *spinner.Spinner, verb string, i, total int, name string) {
	Logger.Debugf("%s [%d/%d] %s", verb, i+1, total, name)
	s.Lock()
	s.Suffix = fmt.Sprintf(" %s [%d/%d] %s", verb, i+1, total, name)
	s.Unlock()
}

// reportWarnings prints advisory problems regardless of verbosity, pausing
// the spinner so the lines are not overdrawn.
func reportWarnings(s *spinner.Spinner, warnings []error) {
	if len(warnings) == 0 {
		return
	}
	active := s.Active()
	if active {
		s.Stop()
	}
	for _, w := range warnings {
		Logger.WarnfAlways("%v", w)
	}
	if active {
		s.Start()
	}
}

// pathList renders a heading followed by an indented list of names.
func pathList(heading string, names []string) string {
	return "\n" + heading + strings.TrimSuffix(utils.FormatPaths(names), "\n")
}
