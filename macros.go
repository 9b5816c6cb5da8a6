package texmath

import (
	"fmt"
	"iter"

	"github.com/alnah/go-texmath/internal/macros"
)

// MacroDefinition is one parsed \newcommand statement with its provenance.
type MacroDefinition = macros.Definition

// MacroTable maps macro names to their surviving definitions in
// first-appearance order.
type MacroTable = macros.Table

// MacroOption configures ResolveMacros.
type MacroOption = macros.Option

// WithWarningHandler sets the function that receives malformed-definition warnings.
func WithWarningHandler(fn func(error)) MacroOption {
	return macros.WithWarningHandler(fn)
}

// ResolveMacros reads the macro files in order and folds their definitions
// into one table, later definitions replacing earlier ones.
// A file that cannot be read fails the whole resolution.
func ResolveMacros(paths []string, opts ...MacroOption) (*MacroTable, error) {
	table, err := macros.Resolve(paths, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMacroResolve, err)
	}
	return table, nil
}

// ParseMacroDefinition parses a single definition line. file and line
// are recorded as provenance.
func ParseMacroDefinition(raw, file string, line int) (MacroDefinition, error) {
	return macros.ParseDefinition(raw, file, line)
}

// ParseMacroFile lazily yields the definitions of one file, one per
// definition line, with a *MalformedMacroError for each bad line.
func ParseMacroFile(path string) iter.Seq2[MacroDefinition, error] {
	return macros.ParseFile(path)
}

// DedupeMacros keeps the last definition of each name at the position of
// its first appearance.
func DedupeMacros(defs []MacroDefinition) []MacroDefinition {
	return macros.Dedupe(defs)
}

// NewMacroTable builds a table from definitions in resolution order.
func NewMacroTable(defs []MacroDefinition) *MacroTable {
	return macros.NewTable(defs)
}
