package macros

import (
	"errors"
	"fmt"
)

// Sentinel errors for macro resolution.
var (
	ErrMalformedMacro = errors.New("malformed macro definition")
	ErrFileAccess     = errors.New("cannot read macro file")
)

// MalformedMacroError reports a definition line that could not be parsed.
// It is a warning: resolution of the surrounding file continues.
type MalformedMacroError struct {
	File   string
	Line   int
	Raw    string
	Reason string
}

func (e *MalformedMacroError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v: %s", e.Line, ErrMalformedMacro, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %v: %s", e.File, e.Line, ErrMalformedMacro, e.Reason)
}

func (e *MalformedMacroError) Unwrap() error {
	return ErrMalformedMacro
}

// FileAccessError reports a macro file that is missing or unreadable.
// It aborts resolution of the whole batch.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrFileAccess, e.Path, e.Err)
}

// Unwrap exposes both ErrFileAccess and the underlying OS error.
func (e *FileAccessError) Unwrap() []error {
	return []error{ErrFileAccess, e.Err}
}
