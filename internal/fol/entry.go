package fol

import (
	"bytes"
	"encoding/binary"
	"fmt"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
	"github.com/PolarWolf314/foltool/internal/names"
)

// IndexEntry is the plaintext content of one index record.
type IndexEntry struct {
	// Name holds the encoded name bytes, at most MaxNameLen long.
	Name   []byte
	Offset uint32
	Size   uint32
}

// NewIndexEntry builds an entry, truncating name to MaxNameLen bytes.
func NewIndexEntry(name []byte, offset, size uint32) IndexEntry {
	if len(name) > MaxNameLen {
		name = name[:MaxNameLen]
	}
	return IndexEntry{
		Name:   append([]byte(nil), name...),
		Offset: offset,
		Size:   size,
	}
}

// NewNamedIndexEntry encodes name with codec before building the entry.
func NewNamedIndexEntry(codec names.Codec, name string, offset, size uint32) IndexEntry {
	return NewIndexEntry(names.Encode(codec, name), offset, size)
}

// Marshal returns the obfuscated 136-byte record for e.
func (e IndexEntry) Marshal(key uint32) []byte {
	rec := make([]byte, IndexEntrySize)
	copy(rec[:MaxNameLen], e.Name)
	binary.LittleEndian.PutUint32(rec[offsetField:], e.Offset)
	binary.LittleEndian.PutUint32(rec[sizeField:], e.Size)
	return Encrypt(rec, key, ModeIndex)
}

// DisplayName decodes the entry name with codec, falling back to lenient ASCII.
func (e IndexEntry) DisplayName(codec names.Codec) string {
	return names.Decode(codec, e.Name)
}

// UnmarshalIndexEntry decodes an obfuscated record. The name ends at the
// first zero byte, or spans the whole field if there is none.
func UnmarshalIndexEntry(rec []byte, key uint32) (IndexEntry, error) {
	if len(rec) != IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: record is %d bytes, want %d", kerrors.ErrInvalidEntry, len(rec), IndexEntrySize)
	}
	plain := Decrypt(rec, key, ModeIndex)

	name := plain[:NameFieldSize]
	if end := bytes.IndexByte(name, 0); end >= 0 {
		name = name[:end]
	}

	return IndexEntry{
		Name:   append([]byte(nil), name...),
		Offset: binary.LittleEndian.Uint32(plain[offsetField:]),
		Size:   binary.LittleEndian.Uint32(plain[sizeField:]),
	}, nil
}
