package pack_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/foltool/internal/fol"
	"github.com/PolarWolf314/foltool/internal/manifest"
	"github.com/PolarWolf314/foltool/test/integration/shared"
)

func setup(t *testing.T) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "foltool-test-pack-*")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	shared.SetupTestEnvironment(t, tempDir)
	return tempDir
}

// TestPack_WritesArchive tests that pack creates an archive with the expected layout.
func TestPack_WritesArchive(t *testing.T) {
	tempDir := setup(t)
	shared.WriteTree(t, filepath.Join(tempDir, "src"), map[string]string{
		"a.txt":       "hello",
		"sub/b.bin":   "world!",
		"notes.json":  "{}",
		"sub/old.key": "[]",
	})

	output, err := shared.RunCLI(t, "pack", "src", "-o", "out.fol")
	if err != nil {
		t.Fatalf("Pack command failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Packed 2 files into") {
		t.Errorf("Expected success message, got: %s", output)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "out.fol"))
	if err != nil {
		t.Fatalf("Archive was not created: %v", err)
	}
	if got := binary.LittleEndian.Uint32(data); got != fol.Header(2) {
		t.Errorf("Header = %#x, want %#x", got, fol.Header(2))
	}
	if int64(len(data)) != fol.ExpectedSize(2, 11) {
		t.Errorf("Archive size = %d, want %d", len(data), fol.ExpectedSize(2, 11))
	}
}

// TestPack_DefaultOutput tests that pack writes output.fol when -o is omitted.
func TestPack_DefaultOutput(t *testing.T) {
	tempDir := setup(t)
	shared.WriteTree(t, filepath.Join(tempDir, "src"), map[string]string{"a.txt": "a"})

	if output, err := shared.RunCLI(t, "pack", "src"); err != nil {
		t.Fatalf("Pack command failed: %v\n%s", err, output)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "output.fol")); err != nil {
		t.Errorf("Expected output.fol to be created: %v", err)
	}
}

// TestPack_ReusesManifest tests that keys from <input_dir>.key are reused.
func TestPack_ReusesManifest(t *testing.T) {
	tempDir := setup(t)
	shared.WriteTree(t, filepath.Join(tempDir, "src"), map[string]string{
		"a.txt":   "alpha",
		"b/c.txt": "charlie",
	})
	entries := []manifest.Entry{
		{Name: `b\c.txt`, Key: 0xDEADBEEF, Index: 0},
		{Name: `a.txt`, Key: 0x01020304, Index: 1},
	}
	if err := manifest.Save(filepath.Join(tempDir, "src.key"), entries); err != nil {
		t.Fatalf("Failed to write manifest: %v", err)
	}

	output, err := shared.RunCLI(t, "pack", "src", "-o", "out.fol")
	if err != nil {
		t.Fatalf("Pack command failed: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2 reused, 0 new, 0 dropped") {
		t.Errorf("Expected reuse summary, got: %s", output)
	}

	f, err := os.Open(filepath.Join(tempDir, "out.fol"))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer f.Close()
	r, err := fol.NewReader(f, fol.ReaderOptions{})
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	got := r.Entries()
	if got[0].Name != `b\c.txt` || got[0].Key != 0xDEADBEEF || got[1].Name != "a.txt" || got[1].Key != 0x01020304 {
		t.Errorf("Entries do not follow manifest: %+v", got)
	}
}

// TestPack_DryRun tests that --dry-run previews without creating the archive.
func TestPack_DryRun(t *testing.T) {
	tempDir := setup(t)
	shared.WriteTree(t, filepath.Join(tempDir, "src"), map[string]string{"a.txt": "a", "b.txt": "b"})

	output, err := shared.RunCLI(t, "pack", "src", "-o", "out.fol", "--dry-run")
	if err != nil {
		t.Fatalf("Dry-run command should not return error: %v", err)
	}
	if !strings.Contains(output, "[dry-run]") || !strings.Contains(output, "Would pack 2 files") {
		t.Errorf("Expected dry-run preview, got: %s", output)
	}
	if !strings.Contains(output, "No changes made") {
		t.Errorf("Output should contain 'No changes made', got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "out.fol")); !os.IsNotExist(err) {
		t.Error("Archive should NOT be created after dry-run")
	}
}

// TestPack_MissingDirectory tests the message for a nonexistent source.
func TestPack_MissingDirectory(t *testing.T) {
	setup(t)

	output, err := shared.RunCLI(t, "pack", "nope")
	if err != nil {
		t.Errorf("Missing directory should be reported, not returned: %v", err)
	}
	if !strings.Contains(output, "does not exist") {
		t.Errorf("Expected missing directory message, got: %s", output)
	}
}

// TestPack_EmptyDirectory tests that an empty source produces no archive.
func TestPack_EmptyDirectory(t *testing.T) {
	tempDir := setup(t)
	if err := os.Mkdir(filepath.Join(tempDir, "src"), 0755); err != nil {
		t.Fatalf("Failed to create source directory: %v", err)
	}

	output, err := shared.RunCLI(t, "pack", "src", "-o", "out.fol")
	if err != nil {
		t.Errorf("Empty directory should be reported, not returned: %v", err)
	}
	if !strings.Contains(output, "No files to pack") {
		t.Errorf("Expected empty pack list message, got: %s", output)
	}
	if _, err := os.Stat(filepath.Join(tempDir, "out.fol")); !os.IsNotExist(err) {
		t.Error("Archive should not be created for an empty directory")
	}
}

// TestPack_RequiresArgument tests that pack without a directory fails.
func TestPack_RequiresArgument(t *testing.T) {
	setup(t)

	if _, err := shared.RunCLI(t, "pack"); err == nil {
		t.Error("Expected error when no input directory is given")
	}
}
