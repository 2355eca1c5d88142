// Package cli implements the weld command-line interface.
//
// This package provides commands for splitting dependency specifiers,
// checking a package manifest against externally scanned imports, and
// merging new dependency declarations into a manifest while preserving its
// formatting. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - parse: Split dependency specifiers into structured name/version pairs
//   - check: Diff declared dependencies against an imports mapping
//   - sync: Merge new dependencies and sources into a manifest
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Exit codes
//
// The core packages report drift as data; turning a non-empty diff into a
// non-zero exit code happens here, in the check command.
package cli
