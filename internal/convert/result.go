package convert

import (
	"errors"
	"fmt"
)

// ErrorMode controls how extraction failures surface in converted text.
type ErrorMode int

const (
	// ErrorModeEmpty collapses a failed input to an empty string; the reason
	// is reported out-of-band (logger, API error field), never in the text.
	ErrorModeEmpty ErrorMode = iota
	// ErrorModeInline embeds an error sentence in the text itself, the way
	// the non-interactive entry point reports failures.
	ErrorModeInline
)

// ParseErrorMode maps a config string to an ErrorMode. Unknown values
// (including "") map to ErrorModeEmpty.
func ParseErrorMode(s string) ErrorMode {
	if s == "inline" {
		return ErrorModeInline
	}
	return ErrorModeEmpty
}

// MalformedError reports bytes that could not be parsed as their claimed
// format (e.g. a .docx that is not a valid package).
type MalformedError struct {
	Format string
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s document: %v", e.Format, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// ArchiveError reports a zip container that could not be opened or read.
type ArchiveError struct {
	Err error
}

func (e *ArchiveError) Error() string { return fmt.Sprintf("unreadable archive: %v", e.Err) }

func (e *ArchiveError) Unwrap() error { return e.Err }

// Limit errors are returned when a configured conversion ceiling is hit.
// They isolate like any other per-entry failure; defaults leave both
// ceilings disabled.
var (
	ErrDepthExceeded = errors.New("archive nesting exceeds configured max depth")
	ErrBytesExceeded = errors.New("decompressed size exceeds configured byte limit")
)

// InlineFailure renders the error sentence used by ErrorModeInline. Exported
// so boundaries that call Extract directly can collapse errors the same way.
func InlineFailure(name string, err error) string {
	return fmt.Sprintf("An error occurred while processing '%s': %v", name, err)
}
