package names

import (
	"bytes"
	"errors"
	"testing"

	kerrors "github.com/PolarWolf314/foltool/internal/errors"
)

func TestGBKRoundTrip(t *testing.T) {
	codec := GBK()
	for _, name := range []string{`data\ui\font.bin`, `脚本\第一章.txt`, ""} {
		raw := Encode(codec, name)
		if got := Decode(codec, raw); got != name {
			t.Errorf("Decode(Encode(%q)) = %q", name, got)
		}
	}
}

func TestGBKEncodesChineseAsDoubleByte(t *testing.T) {
	raw := Encode(GBK(), "中")
	want := []byte{0xd6, 0xd0}
	if !bytes.Equal(raw, want) {
		t.Errorf("Encode(中) = % x, want % x", raw, want)
	}
}

func TestEncodeFallsBackToASCII(t *testing.T) {
	// Hangul syllables are not representable in GBK.
	raw := Encode(GBK(), "a한b.txt")
	if string(raw) != "ab.txt" {
		t.Errorf("Encode fallback = %q, want %q", raw, "ab.txt")
	}
}

func TestDecodeFallsBackToASCII(t *testing.T) {
	// 0x81 0x20 is not a valid GBK sequence.
	raw := []byte{'x', 0x81, 0x20, 'y'}
	if got := Decode(GBK(), raw); got != "x y" {
		t.Errorf("Decode fallback = %q, want %q", got, "x y")
	}
}

func TestNilCodecUsesASCII(t *testing.T) {
	if got := string(Encode(nil, "naïve")); got != "nave" {
		t.Errorf("Encode(nil) = %q", got)
	}
	if got := Decode(nil, []byte{'o', 0xff, 'k'}); got != "ok" {
		t.Errorf("Decode(nil) = %q", got)
	}
}

func TestLookup(t *testing.T) {
	for _, label := range []string{"", "gbk", "shift_jis", "big5", "euc-kr", "utf-8", "gb18030"} {
		if _, err := Lookup(label); err != nil {
			t.Errorf("Lookup(%q) returned error: %v", label, err)
		}
	}

	_, err := Lookup("klingon")
	if !errors.Is(err, kerrors.ErrUnknownEncoding) {
		t.Errorf("Lookup(klingon) error = %v, want ErrUnknownEncoding", err)
	}
}

func TestShiftJISRoundTrip(t *testing.T) {
	codec, err := Lookup("shift_jis")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	name := `bgm\オープニング.ogg`
	if got := Decode(codec, Encode(codec, name)); got != name {
		t.Errorf("round trip = %q, want %q", got, name)
	}
}
