package workflows

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/PolarWolf314/foltool/internal/fol"
	"github.com/PolarWolf314/foltool/internal/manifest"
	"github.com/PolarWolf314/foltool/internal/utils"
)

// KeySource yields fresh keys for files that have none yet.
type KeySource func() (uint32, error)

// RandomKey draws a uniformly random key.
func RandomKey() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("generating key: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// maxKeyDraws bounds how often a colliding fresh key is redrawn.
const maxKeyDraws = 64

// PackPlan is the ordered list of files to pack and where their keys came from.
type PackPlan struct {
	Items []fol.PackItem

	// Reused lists game paths that kept their manifest key and position.
	Reused []string
	// Added lists game paths that received a fresh key.
	Added []string
	// Dropped lists manifest entries with no file on disk.
	Dropped []string
}

// BuildPackList orders disk files for packing.
//
// Files named in the manifest come first, in manifest index order, with
// their manifest keys. Remaining files follow sorted by game path, each with
// a key from next that is not already used by the manifest.
func BuildPackList(disk map[string]string, entries []manifest.Entry, next KeySource) (*PackPlan, error) {
	if next == nil {
		next = RandomKey
	}

	plan := &PackPlan{}
	used := manifest.Keys(entries)
	packed := make(map[string]bool, len(disk))

	for _, e := range manifest.Sorted(entries) {
		name := utils.NormalizeGamePath(e.Name)
		path, ok := disk[name]
		if !ok {
			plan.Dropped = append(plan.Dropped, name)
			continue
		}
		plan.Items = append(plan.Items, fol.PackItem{Path: path, GamePath: name, Key: e.Key})
		plan.Reused = append(plan.Reused, name)
		packed[name] = true
	}

	var fresh []string
	for name := range disk {
		if !packed[name] {
			fresh = append(fresh, name)
		}
	}
	sort.Strings(fresh)

	for _, name := range fresh {
		key, err := drawKey(next, used)
		if err != nil {
			return nil, err
		}
		used[key] = true
		plan.Items = append(plan.Items, fol.PackItem{Path: disk[name], GamePath: name, Key: key})
		plan.Added = append(plan.Added, name)
	}

	return plan, nil
}

func drawKey(next KeySource, used map[uint32]bool) (uint32, error) {
	var key uint32
	for i := 0; i < maxKeyDraws; i++ {
		k, err := next()
		if err != nil {
			return 0, err
		}
		key = k
		if !used[k] {
			return k, nil
		}
	}
	return 0, fmt.Errorf("key source kept returning used keys (last %#08x)", key)
}
