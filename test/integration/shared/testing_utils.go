// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and building and verifying directory trees.
package shared

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/foltool/cmd"
	logger "github.com/PolarWolf314/foltool/internal/logging"
	"github.com/spf13/cobra"
)

// SetupTestEnvironment changes into tempDir and resets command state, undoing
// both when the test finishes.
func SetupTestEnvironment(t *testing.T, tempDir string) {
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	cmd.ResetGlobalState()

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		cmd.ResetGlobalState()
	})
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI returns the root command set up to run args with the given
// verbosity. Nil writers fall back to the process's stdout and stderr.
func CreateTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.ResetGlobalState()

	// Set global flags for the actual command (needed for the real command implementations)
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)

	// Initialize the logger with the test flags
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := cmd.GetRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	for _, subcmd := range rootCmd.Commands() {
		subcmd.SetOut(stdout)
		subcmd.SetErr(stderr)
	}

	rootCmd.SetArgs(args)

	if err := rootCmd.PersistentFlags().Set("verbose", fmt.Sprintf("%t", verboseFlag)); err != nil {
		log.Fatalf("Failed to set verbose flag for testing: %s", err)
	}
	if err := rootCmd.PersistentFlags().Set("debug", fmt.Sprintf("%t", debugFlag)); err != nil {
		log.Fatalf("Failed to set debug flag for testing: %s", err)
	}

	return rootCmd
}

// RunCLI runs foltool with args and returns its combined output.
func RunCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return CaptureOutput(func() error {
		return CreateTestCLI(args, nil, nil, false, false).Execute()
	})
}

// WriteTree creates files under root from a map of slash paths to contents.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// VerifyTree checks that every file in want exists under root with the given contents.
func VerifyTree(t *testing.T, root string, want map[string]string) {
	t.Helper()
	for name, data := range want {
		got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("Expected file %s was not extracted: %v", name, err)
			continue
		}
		if string(got) != data {
			t.Errorf("File %s has content %q, want %q", name, got, data)
		}
	}
}
