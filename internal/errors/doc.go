// Package errors provides typed error values for foltool.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by how the caller is expected to react:
//
//   - Structural errors abort the current operation (ErrNotObfuscated,
//     ErrEmptyPackList, ErrSourceNotFound, ErrTruncatedArchive)
//   - Advisory errors never abort anything. Workflows collect them in the
//     Warnings field of their result (ErrSizeMismatch, ErrManifestUnreadable,
//     ErrInvalidEntry)
//
// # Usage
//
// Return errors from internal packages:
//
//	if header >= 0 {
//	    return nil, errors.ErrNotObfuscated
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Unpack(ctx, opts)
//	if errors.Is(err, kerrors.ErrNotObfuscated) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %v", errors.ErrArchiveNotFound, err)
package errors
