package fol

import "encoding/binary"

// Mode selects the position term used by the keyed transform.
type Mode int

const (
	// ModeContent is used for file contents: term(i) = 99*i*i.
	ModeContent Mode = iota

	// ModeIndex is used for 136-byte index records: term(i) = 9*i*i*i.
	ModeIndex
)

func (m Mode) String() string {
	switch m {
	case ModeContent:
		return "content"
	case ModeIndex:
		return "index"
	default:
		return "unknown"
	}
}

// term returns the position-dependent addend for word i, modulo 2^32.
func (m Mode) term(i uint32) uint32 {
	if m == ModeIndex {
		return 9 * i * i * i
	}
	return 99 * i * i
}

// Encrypt returns a transformed copy of buf. Every complete little-endian
// word w at position i becomes w + key + term(i) modulo 2^32.
//
// In ModeContent a trailing 1 to 3 bytes that do not form a word are copied
// unchanged. In ModeIndex buffers that are not exactly IndexEntrySize bytes
// long are returned unchanged.
func Encrypt(buf []byte, key uint32, m Mode) []byte {
	return transform(buf, key, m, true)
}

// Decrypt reverses Encrypt.
func Decrypt(buf []byte, key uint32, m Mode) []byte {
	return transform(buf, key, m, false)
}

func transform(buf []byte, key uint32, m Mode, encrypt bool) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)
	if m == ModeIndex && len(buf) != IndexEntrySize {
		return out
	}

	words := len(out) / 4
	for i := 0; i < words; i++ {
		w := out[i*4 : i*4+4]
		v := binary.LittleEndian.Uint32(w)
		// uint32 arithmetic wraps modulo 2^32.
		delta := key + m.term(uint32(i))
		if encrypt {
			v += delta
		} else {
			v -= delta
		}
		binary.LittleEndian.PutUint32(w, v)
	}
	return out
}
