package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Extension is appended to an extracted directory's path to name its manifest.
const Extension = ".key"

// Entry pairs an archive slot with its key.
type Entry struct {
	Name  string `json:"name"`
	Key   uint32 `json:"key"`
	Index int    `json:"index"`
}

// PathFor returns the manifest path that belongs to dir.
func PathFor(dir string) string {
	dir = strings.TrimRight(dir, `/\`)
	if dir == "" {
		dir = string(filepath.Separator)
	}
	return dir + Extension
}

// Sorted returns a copy of entries ordered by Index. Equal indexes keep
// their relative order.
func Sorted(entries []Entry) []Entry {
	out := slices.Clone(entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// Keys returns the set of keys used by entries.
func Keys(entries []Entry) map[uint32]bool {
	keys := make(map[uint32]bool, len(entries))
	for _, e := range entries {
		keys[e.Key] = true
	}
	return keys
}

// Save writes entries to path as indented JSON, sorted by Index.
func Save(path string, entries []Entry) error {
	sorted := Sorted(entries)
	if sorted == nil {
		sorted = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sorted); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	// #nosec G306 -- the manifest holds no secrets and is meant to be shared.
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// Load reads a manifest written by Save. A missing file yields an error
// wrapping os.ErrNotExist.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return entries, nil
}
