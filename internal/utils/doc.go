// Package utils provides shared helpers for foltool.
//
// # Path Utilities
//
// Archives store names as game paths: relative, backslash-separated.
//   - GamePath: converts a path relative to a pack source into a game path
//   - LocalPath: converts a game path into a host path, rejecting escapes
//   - FormatPaths: formats file paths for human-readable output
//
// # Terminal Utilities
//
//   - IsTerminal: reports whether stdout is a terminal
package utils
