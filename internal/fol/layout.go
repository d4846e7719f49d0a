package fol

const (
	// HeaderSize is the size of the leading count word.
	HeaderSize = 4

	// IndexEntrySize is the size of one index record.
	IndexEntrySize = 136

	// NameFieldSize is the width of the name field inside an index record.
	NameFieldSize = 128

	// MaxNameLen leaves room for a terminating zero inside the name field.
	MaxNameLen = NameFieldSize - 1

	// KeySize is the size of one key table slot.
	KeySize = 4

	// TrailerWords is the number of zero words closing every archive.
	TrailerWords = 97

	// TrailerSize is TrailerWords in bytes.
	TrailerSize = TrailerWords * 4

	// EncryptedFlag marks an obfuscated archive in the header word.
	EncryptedFlag uint32 = 0x80000000

	countMask uint32 = 0x7FFFFFFF

	offsetField = NameFieldSize
	sizeField   = NameFieldSize + 4
)

// Header encodes the header word for an obfuscated archive with count entries.
func Header(count int) uint32 {
	return uint32(count)&countMask | EncryptedFlag
}

// DataBase returns the absolute offset at which the data region starts.
func DataBase(count int) uint32 {
	return uint32(HeaderSize + count*IndexEntrySize)
}

// CorrectOffset maps a data-region-relative offset to an absolute one.
// Offsets of zero or at/after base are already absolute and returned as is,
// so applying it to a corrected offset is a no-op.
func CorrectOffset(offset, base uint32) uint32 {
	if offset > 0 && offset < base {
		return offset + base
	}
	return offset
}

// TailSize returns the combined size of the key table and trailer.
func TailSize(count int) int64 {
	return int64(count)*KeySize + TrailerSize
}

// ExpectedSize returns the total archive size for count files whose
// encrypted contents add up to dataLen bytes.
func ExpectedSize(count int, dataLen int64) int64 {
	return indexEnd(count) + dataLen + TailSize(count)
}

// indexEnd is DataBase without the 32-bit truncation, for size checks on
// untrusted counts.
func indexEnd(count int) int64 {
	return HeaderSize + int64(count)*IndexEntrySize
}
