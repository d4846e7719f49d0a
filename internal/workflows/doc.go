// Package workflows provides high-level orchestration for foltool commands.
//
// Workflows coordinate the codec (fol), the key manifest and the filesystem
// to implement complete user-facing features, independent of CLI concerns
// like flag parsing, spinners and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Scanning source directories and building the pack list
//   - Assigning or reusing per-file keys
//   - Reading and writing archives, extracted files and manifests
//
// # Available Workflows
//
//   - Pack: packs a directory into an archive, reusing keys from a manifest
//   - Unpack: extracts an archive and writes a fresh manifest
//   - List: decodes an archive's index without extracting
//
// # Error Handling
//
// Structural failures are returned as errors wrapping a sentinel from the
// internal/errors package:
//
//	result, err := workflows.Unpack(ctx, opts)
//	if errors.Is(err, kerrors.ErrNotObfuscated) {
//	    // Show user-friendly message
//	}
//
// Advisory problems (size validation, unreadable manifest, skipped entries)
// do not fail the workflow. They are collected in the result's Warnings.
package workflows
