package texmath

import (
	"errors"

	"github.com/alnah/go-texmath/internal/macros"
	"github.com/alnah/go-texmath/internal/mathscan"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrInvalidWrapTag = errors.New("invalid wrap tag")
	ErrMacroResolve   = errors.New("macro resolution failed")

	// Highlighting errors.
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")

	// Scanner errors.
	ErrMatchTimeout = mathscan.ErrMatchTimeout

	// Macro errors.
	ErrMalformedMacro  = macros.ErrMalformedMacro
	ErrMacroFileAccess = macros.ErrFileAccess
)

// MalformedMacroError reports a definition line that could not be parsed.
type MalformedMacroError = macros.MalformedMacroError

// MacroFileAccessError reports a macro file that could not be read.
type MacroFileAccessError = macros.FileAccessError
