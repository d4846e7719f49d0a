package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. Backticks without color.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats local file or directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --key-file.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	// Key formats obfuscation keys. Prefixed with 0x without color.
	Key = Formatter{color.New(color.FgMagenta), "0x", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats game paths and other archive values. 'Quoted' without color.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. (Parenthesized) without color.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)

// Check returns the success glyph.
func Check() string { return Success.Sprint("✓") }

// Cross returns the failure glyph.
func Cross() string { return Error.Sprint("✗") }

// Arrow returns the hint glyph.
func Arrow() string { return Info.Sprint("→") }

// Caution returns the warning glyph.
func Caution() string { return Warning.Sprint("⚠") }
