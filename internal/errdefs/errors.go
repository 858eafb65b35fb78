// Package errdefs defines the stable error taxonomy for curator.
//
// Every failure crossing an operation boundary (a single create, a single
// validate) is one of five kinds: format violations, target conflicts,
// metadata parse errors, catalog errors, or filesystem I/O errors. All are
// recoverable; none escape the core as a panic.
package errdefs

import (
	"errors"
	"fmt"
)

// Kind is a stable error classification string.
type Kind string

const (
	// KindFormat marks input that fails a static grammar or shape check.
	KindFormat Kind = "E_FORMAT"
	// KindConflict marks a target that already exists. Never auto-overwritten.
	KindConflict Kind = "E_CONFLICT"
	// KindParse marks a metadata grammar violation, with line context.
	KindParse Kind = "E_PARSE"
	// KindCatalog marks a missing or malformed catalog index file.
	KindCatalog Kind = "E_CATALOG"
	// KindIO marks an unreadable or unwritable filesystem target.
	KindIO Kind = "E_IO"
)

// Error is the standard error type for curator errors.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
	// Line is the 1-based offending line for parse errors, 0 otherwise.
	Line int
}

// Error returns the stable error format: "KIND: message".
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Format reports a format violation. msg must name the expected shape.
func Format(format string, args ...any) error {
	return &Error{Kind: KindFormat, Msg: fmt.Sprintf(format, args...)}
}

// Conflict reports an already-existing target.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// Parse reports a metadata grammar violation at the given line.
func Parse(line int, format string, args ...any) error {
	return &Error{Kind: KindParse, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Catalog reports a missing or malformed catalog file.
func Catalog(format string, args ...any) error {
	return &Error{Kind: KindCatalog, Msg: fmt.Sprintf(format, args...)}
}

// IO wraps a filesystem error.
func IO(msg string, cause error) error {
	return &Error{Kind: KindIO, Msg: msg, Cause: cause}
}

// GetKind extracts the kind from an error, or empty string if untyped.
func GetKind(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsKind reports whether err is (or wraps) a curator error of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}

// Process exit codes. Stable public contract.
const (
	ExitOK          = 0 // all required checks passed
	ExitCheckFailed = 1 // one or more required checks failed
	ExitUnreadable  = 2 // target path/file could not be read
	ExitBadConfig   = 3 // supplied configuration was malformed
)

// ExitCode maps an error to the process exit code contract.
// nil → 0; I/O and catalog errors → 2; format/parse/conflict → 3;
// anything untyped → 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetKind(err) {
	case KindIO, KindCatalog:
		return ExitUnreadable
	case KindFormat, KindParse, KindConflict:
		return ExitBadConfig
	default:
		return ExitCheckFailed
	}
}
