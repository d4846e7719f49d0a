package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	originalNoColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = originalNoColor }()

	result := Code.Sprint("foltool unpack data.fol")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}

	key := Key.Sprintf("%08x", uint32(0xdeadbeef))
	if strings.Contains(key, "0x") {
		t.Errorf("Key.Sprintf should not add 0x when color is enabled, got: %s", key)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "foltool pack data", "`foltool pack data`"},
		{"Path has no decoration", Path, "data_fol/ui/font.bin", "data_fol/ui/font.bin"},
		{"Flag has no decoration", Flag, "--key-file", "--key-file"},
		{"Key adds 0x", Key, "0000002a", "0x0000002a"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, `ui\font.bin`, `'ui\font.bin'`},
		{"Muted adds parentheses", Muted, "dry run", "(dry run)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestGlyphsWithNoColor(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	if Check() != "✓" || Cross() != "✗" || Arrow() != "→" || Caution() != "⚠" {
		t.Errorf("unexpected glyphs: %q %q %q %q", Check(), Cross(), Arrow(), Caution())
	}
}

func TestNoColorFunction(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
	os.Unsetenv("NO_COLOR")

	originalNoColor := color.NoColor
	color.NoColor = true
	if !noColor() {
		t.Error("noColor() should return true when color.NoColor is true")
	}
	color.NoColor = originalNoColor
}

func TestEnsureNewline(t *testing.T) {
	cases := map[string]string{
		"":       "\n",
		"done":   "done\n",
		"done\n": "done\n",
		"a\nb":   "a\nb\n",
	}
	for in, want := range cases {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
