// Package fol reads and writes FOL game-asset containers.
//
// # Layout
//
// All integers are little-endian.
//
//	offset              size               region
//	0                   4                  header: count | 0x80000000
//	4                   count*136          index table, one record per file
//	4 + count*136       sum(file sizes)    data region
//	end - (count+97)*4  count*4            key table
//	end - 388           388                zero trailer
//
// Each index record holds a 128-byte null-padded name, the absolute offset of
// the file's data and its size. Records and file contents are obfuscated with
// the owning file's 32-bit key by a reversible word-wise transform (see
// Encrypt). The transform is not a cipher; it only reproduces what the game
// expects.
//
// # Offsets
//
// Some producers store offsets relative to the data region instead of the
// archive start. Reader accepts both: any decoded offset in (0, DataBase)
// is shifted by DataBase (see CorrectOffset). Pack always writes absolute
// offsets.
package fol
