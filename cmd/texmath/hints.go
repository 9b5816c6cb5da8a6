package main

import (
	"context"
	"errors"

	texmath "github.com/alnah/go-texmath"
	"github.com/alnah/go-texmath/internal/config"
	"github.com/alnah/go-texmath/internal/hints"
)

// hintFor returns an actionable hint for err, or "" when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, config.ErrInvalidWrapTag), errors.Is(err, texmath.ErrInvalidWrapTag):
		return hints.ForWrapTag()
	case errors.Is(err, texmath.ErrUnknownHighlightStyle):
		return hints.ForHighlightStyle(texmath.HighlightStyles())
	case errors.Is(err, texmath.ErrMacroFileAccess):
		return hints.ForMacroFile()
	case errors.Is(err, texmath.ErrMatchTimeout):
		return hints.ForMatchTimeout()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
