// Package ui provides semantic text formatting for CLI output.
//
// Formatters render colorized text when the terminal supports it. When
// NO_COLOR is set or color is otherwise unavailable, text decorations
// (backticks, quotes, parentheses) are used instead.
//
//	ui.Code.Sprint("foltool unpack data.fol")  // Commands
//	ui.Path.Sprint("out_fol/ui/font.bin")      // File paths
//	ui.Key.Sprintf("%08x", key)                // Obfuscation keys
//	ui.Highlight.Sprint(`ui\font.bin`)         // Game paths and values
//	ui.Muted.Sprint("dry run")                 // De-emphasized text
//
// Status glyphs are available as Check, Cross, Arrow and Caution.
package ui
