package workflows

import (
	"context"

	"github.com/PolarWolf314/foltool/internal/fol"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	ArchivePath string

	// Encoding names the codec for entry names. Empty selects GBK.
	Encoding string
}

// ListResult describes an archive's index.
type ListResult struct {
	ArchivePath string
	Size        int64
	DataBase    uint32
	Entries     []fol.Entry

	// Keys is the key table in index order.
	Keys []uint32

	// Relocated counts entries whose stored offset was relative to the data region.
	Relocated int
}

// List decodes an archive's header, key table and index without extracting.
func List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, r, err := openArchive(opts.ArchivePath, opts.Encoding)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	result := &ListResult{
		ArchivePath: opts.ArchivePath,
		Size:        r.Size(),
		DataBase:    r.DataBase(),
		Entries:     r.Entries(),
		Keys:        r.Keys(),
	}
	for _, e := range result.Entries {
		if e.Offset != e.StoredOffset {
			result.Relocated++
		}
	}
	return result, nil
}
