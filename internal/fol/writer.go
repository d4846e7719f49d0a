package fol

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/names"
)

// PackItem is one file scheduled for packing.
type PackItem struct {
	// Path is where the plaintext is read from.
	Path string
	// GamePath is the backslash-separated name stored in the index.
	GamePath string
	Key      uint32
}

// PackOptions configures Pack.
type PackOptions struct {
	// Names encodes GamePath into index records. Defaults to GBK.
	Names names.Codec

	// Open returns the plaintext of an item. Defaults to os.Open(item.Path).
	Open func(PackItem) (io.ReadCloser, error)

	// Progress, if set, is called before each item is written.
	Progress func(i int, item PackItem)
}

func (o *PackOptions) applyDefaults() {
	if o.Names == nil {
		o.Names = names.GBK()
	}
	if o.Open == nil {
		o.Open = func(item PackItem) (io.ReadCloser, error) {
			return os.Open(item.Path)
		}
	}
}

// PackResult describes a written archive.
type PackResult struct {
	Count    int
	DataSize int64
	Size     int64
	Entries  []IndexEntry
	Keys     []uint32

	// Warnings holds advisory problems; the archive was still written.
	Warnings []error
}

// Pack writes an obfuscated archive containing items, in order, to out
// starting at offset 0.
//
// The index table is reserved with zeros before any data is written so the
// data region starts at DataBase(len(items)), and is filled in once every
// file's offset and size are known.
func Pack(out io.WriteSeeker, items []PackItem, opts PackOptions) (*PackResult, error) {
	if len(items) == 0 {
		return nil, kerrors.ErrEmptyPackList
	}
	if indexEnd(len(items)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries", kerrors.ErrArchiveTooLarge, len(items))
	}
	opts.applyDefaults()

	count := len(items)
	base := DataBase(count)

	if _, err := out.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to archive start: %w", err)
	}
	if _, err := out.Write(binary.LittleEndian.AppendUint32(nil, Header(count))); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if _, err := out.Write(make([]byte, count*IndexEntrySize)); err != nil {
		return nil, fmt.Errorf("reserving index table: %w", err)
	}

	pos, err := out.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating data region: %w", err)
	}
	if pos != int64(base) {
		return nil, fmt.Errorf("%w: data region at %d, want %d", kerrors.ErrLayoutMismatch, pos, base)
	}

	result := &PackResult{
		Count:   count,
		Entries: make([]IndexEntry, 0, count),
		Keys:    make([]uint32, 0, count),
	}
	index := make([]byte, 0, count*IndexEntrySize)
	cursor := int64(base)

	for i, item := range items {
		if opts.Progress != nil {
			opts.Progress(i, item)
		}

		plain, err := readItem(opts, item)
		if err != nil {
			return nil, err
		}
		enc := Encrypt(plain, item.Key, ModeContent)

		if cursor+int64(len(enc)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %s would end at %d", kerrors.ErrArchiveTooLarge, item.GamePath, cursor+int64(len(enc)))
		}
		if _, err := out.Write(enc); err != nil {
			return nil, fmt.Errorf("writing %s: %w", item.GamePath, err)
		}

		entry := NewNamedIndexEntry(opts.Names, item.GamePath, uint32(cursor), uint32(len(enc)))
		index = append(index, entry.Marshal(item.Key)...)
		result.Entries = append(result.Entries, entry)
		result.Keys = append(result.Keys, item.Key)

		cursor += int64(len(enc))
	}
	result.DataSize = cursor - int64(base)

	if _, err := out.Seek(HeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to index table: %w", err)
	}
	if _, err := out.Write(index); err != nil {
		return nil, fmt.Errorf("writing index table: %w", err)
	}

	if _, err := out.Seek(0, io.SeekEnd); err != nil {
		return nil, fmt.Errorf("seeking to archive end: %w", err)
	}
	tail := make([]byte, 0, TailSize(count))
	for _, key := range result.Keys {
		tail = binary.LittleEndian.AppendUint32(tail, key)
	}
	tail = append(tail, make([]byte, TrailerSize)...)
	if _, err := out.Write(tail); err != nil {
		return nil, fmt.Errorf("writing key table: %w", err)
	}

	size, err := out.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("measuring archive: %w", err)
	}
	result.Size = size

	if want := ExpectedSize(count, result.DataSize); size != want {
		result.Warnings = append(result.Warnings,
			fmt.Errorf("%w: expected %d bytes, wrote %d", kerrors.ErrSizeMismatch, want, size))
	}

	return result, nil
}

func readItem(opts PackOptions, item PackItem) ([]byte, error) {
	rc, err := opts.Open(item)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", item.Path, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", item.Path, err)
	}
	return data, nil
}
