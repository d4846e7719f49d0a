package fol

import (
	"encoding/binary"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/names"
)

// Entry is a decoded index record together with its key.
type Entry struct {
	Index int
	Name  string
	// RawName is the name as stored, before decoding.
	RawName []byte
	// Offset is absolute, after CorrectOffset.
	Offset uint32
	// StoredOffset is the offset exactly as found in the record.
	StoredOffset uint32
	Size         uint32
	Key          uint32
}

// ReaderOptions configures NewReader.
type ReaderOptions struct {
	// Names decodes entry names. Defaults to GBK.
	Names names.Codec
}

// Reader gives access to the entries of an obfuscated archive.
type Reader struct {
	r       io.ReadSeeker
	size    int64
	dataEnd int64
	keys    []uint32
	entries []Entry
}

// NewReader parses the header, key table and index table of r.
//
// Returns ErrNotObfuscated if the header's high bit is clear and
// ErrTruncatedArchive if r is too short for the count it declares.
func NewReader(r io.ReadSeeker, opts ReaderOptions) (*Reader, error) {
	if opts.Names == nil {
		opts.Names = names.GBK()
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measuring archive: %w", err)
	}
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", kerrors.ErrTruncatedArchive, size)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to header: %w", err)
	}
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	raw := int32(binary.LittleEndian.Uint32(hdr[:]))
	if raw >= 0 {
		return nil, kerrors.ErrNotObfuscated
	}
	count := int(uint32(raw) & countMask)

	if ExpectedSize(count, 0) > size {
		return nil, fmt.Errorf("%w: %d entries need at least %d bytes, archive has %d",
			kerrors.ErrTruncatedArchive, count, ExpectedSize(count, 0), size)
	}

	// Keys sit just before the fixed trailer: 4*(-97-count) from the end.
	if _, err := r.Seek(-TailSize(count), io.SeekEnd); err != nil {
		return nil, fmt.Errorf("seeking to key table: %w", err)
	}
	keyTable := make([]byte, count*KeySize)
	if _, err := io.ReadFull(r, keyTable); err != nil {
		return nil, fmt.Errorf("reading key table: %w", err)
	}
	keys := make([]uint32, count)
	for i := range keys {
		keys[i] = binary.LittleEndian.Uint32(keyTable[i*KeySize:])
	}

	if _, err := r.Seek(HeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to index table: %w", err)
	}
	table := make([]byte, count*IndexEntrySize)
	if _, err := io.ReadFull(r, table); err != nil {
		return nil, fmt.Errorf("reading index table: %w", err)
	}

	base := DataBase(count)
	entries := make([]Entry, count)
	for i := range entries {
		rec := table[i*IndexEntrySize : (i+1)*IndexEntrySize]
		ie, err := UnmarshalIndexEntry(rec, keys[i])
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries[i] = Entry{
			Index:        i,
			Name:         ie.DisplayName(opts.Names),
			RawName:      ie.Name,
			Offset:       CorrectOffset(ie.Offset, base),
			StoredOffset: ie.Offset,
			Size:         ie.Size,
			Key:          keys[i],
		}
	}

	return &Reader{
		r:       r,
		size:    size,
		dataEnd: size - TailSize(count),
		keys:    keys,
		entries: entries,
	}, nil
}

// Count returns the number of entries.
func (r *Reader) Count() int { return len(r.entries) }

// Size returns the archive size in bytes.
func (r *Reader) Size() int64 { return r.size }

// DataBase returns where the data region starts.
func (r *Reader) DataBase() uint32 { return DataBase(len(r.entries)) }

// Keys returns the key table in index order.
func (r *Reader) Keys() []uint32 {
	return append([]uint32(nil), r.keys...)
}

// Entries returns the decoded index table.
func (r *Reader) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// ReadEntry returns the decrypted contents of entry i.
func (r *Reader) ReadEntry(i int) ([]byte, error) {
	if i < 0 || i >= len(r.entries) {
		return nil, fmt.Errorf("entry %d out of range [0,%d)", i, len(r.entries))
	}
	e := r.entries[i]

	if end := int64(e.Offset) + int64(e.Size); end > r.dataEnd {
		return nil, fmt.Errorf("%w: entry %d (%s) ends at %d, data region ends at %d",
			kerrors.ErrTruncatedArchive, i, e.Name, end, r.dataEnd)
	}

	if _, err := r.r.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to entry %d: %w", i, err)
	}
	buf := make([]byte, e.Size)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("reading entry %d: %w", i, err)
	}
	return Decrypt(buf, e.Key, ModeContent), nil
}
