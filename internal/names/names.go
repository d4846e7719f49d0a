package names

import (
	"fmt"
	"strings"
	"unicode/utf8"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// DefaultEncoding is the label of the code page used when none is configured.
const DefaultEncoding = "gbk"

// Codec converts between names and their on-disk byte form.
type Codec interface {
	Encode(name string) ([]byte, error)
	Decode(raw []byte) (string, error)
}

// textCodec adapts an x/text encoding to Codec.
type textCodec struct {
	enc encoding.Encoding
}

func (c textCodec) Encode(name string) ([]byte, error) {
	return c.enc.NewEncoder().Bytes([]byte(name))
}

// Decode treats replacement characters in the output as a failure because
// x/text decoders substitute U+FFFD for invalid input instead of erroring.
func (c textCodec) Decode(raw []byte) (string, error) {
	out, err := c.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", fmt.Errorf("invalid byte sequence in %q", raw)
	}
	return string(out), nil
}

// GBK returns the default codec.
func GBK() Codec {
	return textCodec{enc: simplifiedchinese.GBK}
}

// Lookup returns the codec registered under label. An empty label selects
// DefaultEncoding.
func Lookup(label string) (Codec, error) {
	if label == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrUnknownEncoding, label)
	}
	return textCodec{enc: enc}, nil
}

// Encode converts name with c, falling back to lenient ASCII.
func Encode(c Codec, name string) []byte {
	if c != nil {
		if raw, err := c.Encode(name); err == nil {
			return raw
		}
	}
	return asciiBytes(name)
}

// Decode converts raw with c, falling back to lenient ASCII.
func Decode(c Codec, raw []byte) string {
	if c != nil {
		if name, err := c.Decode(raw); err == nil {
			return name
		}
	}
	return asciiString(raw)
}

func asciiBytes(name string) []byte {
	out := make([]byte, 0, len(name))
	for _, r := range name {
		if r < utf8.RuneSelf {
			out = append(out, byte(r))
		}
	}
	return out
}

func asciiString(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if c < utf8.RuneSelf {
			b.WriteByte(c)
		}
	}
	return b.String()
}
