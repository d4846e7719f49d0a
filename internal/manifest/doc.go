// Package manifest persists the key assigned to every slot of a FOL archive.
//
// The manifest is a JSON array written next to an extracted directory as
// <dir>.key:
//
//	[
//	  { "name": "ui\\font.bin", "key": 305419896, "index": 0 },
//	  ...
//	]
//
// Entries are sorted by index on save. Repacking with a manifest reuses each
// unchanged file's key and position, so the rebuilt archive differs from the
// original only where files changed.
package manifest
