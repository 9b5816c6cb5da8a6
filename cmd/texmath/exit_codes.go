package main

import (
	"errors"
	"os"

	texmath "github.com/alnah/go-texmath"
	"github.com/alnah/go-texmath/internal/config"
)

// Exit codes for the texmath CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, including failed files in a batch
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, texmath.ErrMacroFileAccess) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidWrapTag) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrUnsupportedFormat) ||
		errors.Is(err, texmath.ErrEmptyMarkdown) ||
		errors.Is(err, texmath.ErrInvalidWrapTag) ||
		errors.Is(err, texmath.ErrUnknownHighlightStyle) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
