package errors

import "errors"

// Archive errors indicate the container itself cannot be processed.
var (
	// ErrNotObfuscated indicates the header's high bit is clear (plain FOL variant).
	ErrNotObfuscated = errors.New("archive is not obfuscated")

	// ErrTruncatedArchive indicates a region of the archive lies beyond its end.
	ErrTruncatedArchive = errors.New("archive is truncated or corrupt")

	// ErrArchiveTooLarge indicates the data region would overflow 32-bit offsets.
	ErrArchiveTooLarge = errors.New("archive exceeds 4 GiB offset range")

	// ErrArchiveNotFound indicates the archive to read could not be located.
	ErrArchiveNotFound = errors.New("archive not found")
)

// Pack errors indicate the pack input is unusable.
var (
	// ErrSourceNotFound indicates the source directory does not exist.
	ErrSourceNotFound = errors.New("source directory not found")

	// ErrEmptyPackList indicates there is nothing to pack.
	ErrEmptyPackList = errors.New("no files to pack")

	// ErrLayoutMismatch indicates the writer is not where the layout says it must be.
	ErrLayoutMismatch = errors.New("archive writer position does not match layout")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the settings file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrUnknownEncoding indicates the requested name encoding is not supported.
	ErrUnknownEncoding = errors.New("unknown name encoding")
)

// Advisory errors are reported as warnings and never abort an operation.
var (
	// ErrSizeMismatch indicates the packed archive size differs from the computed layout size.
	ErrSizeMismatch = errors.New("archive size does not match expected layout")

	// ErrManifestUnreadable indicates a key manifest could not be read or parsed.
	ErrManifestUnreadable = errors.New("key manifest could not be read")

	// ErrManifestNotSaved indicates the key manifest could not be written.
	ErrManifestNotSaved = errors.New("key manifest could not be saved")

	// ErrInvalidEntry indicates a single index entry was skipped.
	ErrInvalidEntry = errors.New("invalid index entry")
)
