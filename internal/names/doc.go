// Package names converts archive entry names between Go strings and the
// legacy code page bytes stored in FOL index entries.
//
// A Codec is injected wherever names cross the archive boundary. The default
// codec is GBK; any encoding known to golang.org/x/text's htmlindex can be
// selected by label ("shift_jis", "big5", "euc-kr", "utf-8", ...).
//
// Encode and Decode never fail. When the codec rejects a name they fall back
// to a lenient ASCII conversion that drops every byte or rune outside 7-bit
// ASCII, so a single odd name cannot abort a whole archive.
package names
