package unpack_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/foltool/internal/manifest"
	"github.com/PolarWolf314/foltool/test/integration/shared"
)

func setup(t *testing.T) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "foltool-test-unpack-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	shared.SetupTestEnvironment(t, tempDir)
	return tempDir
}

var tree = map[string]string{
	"script/start.txt": "hello",
	"bgm/title.ogg":    "not really ogg",
	"empty.dat":        "",
	"odd.bin":          "xyz",
}

func packTree(t *testing.T, tempDir string) {
	t.Helper()
	shared.WriteTree(t, filepath.Join(tempDir, "src"), tree)
	if output, err := shared.RunCLI(t, "pack", "src", "-o", "data.fol"); err != nil {
		t.Fatalf("Pack command failed: %v\n%s", err, output)
	}
}

// TestUnpack_DefaultOutputDir tests extraction to <archive>_fol with a manifest.
func TestUnpack_DefaultOutputDir(t *testing.T) {
	tempDir := setup(t)
	packTree(t, tempDir)

	output, err := shared.RunCLI(t, "unpack", "data.fol")
	if err != nil {
		t.Fatalf("Unpack command failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Extracted 4 files into") {
		t.Errorf("Expected success message, got: %s", output)
	}

	shared.VerifyTree(t, filepath.Join(tempDir, "data_fol"), tree)

	entries, err := manifest.Load(filepath.Join(tempDir, "data_fol.key"))
	if err != nil {
		t.Fatalf("Manifest was not written: %v", err)
	}
	if len(entries) != len(tree) {
		t.Errorf("Manifest has %d entries, want %d", len(entries), len(tree))
	}
	for i, e := range entries {
		if e.Index != i {
			t.Errorf("Manifest entry %d has index %d", i, e.Index)
		}
		if strings.Contains(e.Name, "/") {
			t.Errorf("Manifest name %q should use backslashes", e.Name)
		}
	}
}

// TestUnpack_RoundTripIsIdentical tests that unpack then pack reproduces the archive.
func TestUnpack_RoundTripIsIdentical(t *testing.T) {
	tempDir := setup(t)
	packTree(t, tempDir)

	if output, err := shared.RunCLI(t, "unpack", "data.fol", "-o", "work"); err != nil {
		t.Fatalf("Unpack command failed: %v\n%s", err, output)
	}
	if output, err := shared.RunCLI(t, "pack", "work", "-o", "repacked.fol"); err != nil {
		t.Fatalf("Pack command failed: %v\n%s", err, output)
	}

	original, err := os.ReadFile(filepath.Join(tempDir, "data.fol"))
	if err != nil {
		t.Fatalf("Failed to read original archive: %v", err)
	}
	repacked, err := os.ReadFile(filepath.Join(tempDir, "repacked.fol"))
	if err != nil {
		t.Fatalf("Failed to read repacked archive: %v", err)
	}
	if !bytes.Equal(original, repacked) {
		t.Error("Repacked archive should be byte-identical to the original")
	}
}

// TestUnpack_DryRun tests that --dry-run writes nothing.
func TestUnpack_DryRun(t *testing.T) {
	tempDir := setup(t)
	packTree(t, tempDir)

	output, err := shared.RunCLI(t, "unpack", "data.fol", "--dry-run")
	if err != nil {
		t.Fatalf("Dry-run command should not return error: %v", err)
	}
	if !strings.Contains(output, "Would extract 4 of 4 entries") {
		t.Errorf("Expected dry-run preview, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "data_fol")); !os.IsNotExist(err) {
		t.Error("Output directory should NOT be created after dry-run")
	}
	if _, err := os.Stat(filepath.Join(tempDir, "data_fol.key")); !os.IsNotExist(err) {
		t.Error("Manifest should NOT be written after dry-run")
	}
}

// TestUnpack_PlainArchive tests that non-obfuscated archives are rejected.
func TestUnpack_PlainArchive(t *testing.T) {
	tempDir := setup(t)
	if err := os.WriteFile(filepath.Join(tempDir, "plain.fol"), []byte{2, 0, 0, 0}, 0644); err != nil {
		t.Fatalf("Failed to write archive: %v", err)
	}

	output, err := shared.RunCLI(t, "unpack", "plain.fol")
	if err != nil {
		t.Errorf("Plain archive should be reported, not returned: %v", err)
	}
	if !strings.Contains(output, "is not an obfuscated archive") {
		t.Errorf("Expected rejection message, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "plain_fol")); !os.IsNotExist(err) {
		t.Error("Output directory should not be created for a plain archive")
	}
}

// TestUnpack_MissingArchive tests the message for a nonexistent archive.
func TestUnpack_MissingArchive(t *testing.T) {
	setup(t)

	output, err := shared.RunCLI(t, "unpack", "missing.fol")
	if err != nil {
		t.Errorf("Missing archive should be reported, not returned: %v", err)
	}
	if !strings.Contains(output, "does not exist") {
		t.Errorf("Expected missing archive message, got: %s", output)
	}
}

// TestUnpack_TruncatedArchive tests that a truncated archive fails the command.
func TestUnpack_TruncatedArchive(t *testing.T) {
	tempDir := setup(t)
	packTree(t, tempDir)

	data, err := os.ReadFile(filepath.Join(tempDir, "data.fol"))
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "short.fol"), data[:100], 0644); err != nil {
		t.Fatalf("Failed to write archive: %v", err)
	}

	if _, err := shared.RunCLI(t, "unpack", "short.fol"); err == nil {
		t.Error("Expected error for a truncated archive")
	}
}
