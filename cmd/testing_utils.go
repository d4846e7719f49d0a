// Package cmd contains testing utilities shared between command tests.
// This file provides common functions for capturing output and running
// the root command with fresh state.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	logger "github.com/PolarWolf314/foltool/internal/logging"
	"github.com/spf13/cobra"
)

// setupTestEnvironment changes into a fresh temporary directory for the
// duration of the test and returns it.
func setupTestEnvironment(t *testing.T) string {
	tempDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		ResetGlobalState()
	})
	ResetGlobalState()
	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

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

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI prepares RootCmd to run args.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	ResetGlobalState()
	verbose = verboseFlag
	debug = debugFlag
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	for _, c := range append([]*cobra.Command{RootCmd}, RootCmd.Commands()...) {
		c.SetOut(nil)
		c.SetErr(nil)
	}
	if args == nil {
		args = []string{}
	}
	RootCmd.SetArgs(args)
	return RootCmd
}

// runCLI runs args and returns combined output.
func runCLI(args ...string) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}

// writeFile writes data to name under dir, creating parents.
func writeFile(t *testing.T, dir, name, data string) {
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}
