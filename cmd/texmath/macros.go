package main

import (
	"errors"
	"fmt"
	"io"

	texmath "github.com/alnah/go-texmath"
	"github.com/alnah/go-texmath/internal/yamlutil"
)

// Output formats for the macros command.
const (
	formatText = "text"
	formatYAML = "yaml"
)

// ErrInvalidFormat reports an unknown --format value.
var ErrInvalidFormat = errors.New("invalid output format")

// macroEntry is the YAML shape of one resolved definition.
type macroEntry struct {
	Args    string `yaml:"args,omitempty"`
	Default string `yaml:"default,omitempty"`
	Body    string `yaml:"body"`
	File    string `yaml:"file,omitempty"`
	Line    int    `yaml:"line,omitempty"`
}

// runMacros orchestrates the macros command.
func runMacros(args []string, env *Environment) error {
	flags, positional, err := parseMacrosFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.format != formatText && flags.format != formatYAML {
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidFormat, flags.format, formatText, formatYAML)
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths := positional
	if len(paths) == 0 {
		paths = cfg.Macros.Files
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: no macro files given and macros.files is empty", ErrNoInput)
	}

	var warnings int
	table, err := texmath.ResolveMacros(paths, texmath.WithWarningHandler(func(err error) {
		warnings++
		if flags.common.quiet {
			return
		}
		warnLabel.Fprint(env.Stderr, "warning:")
		fmt.Fprintf(env.Stderr, " %v\n", err)
	}))
	if err != nil {
		return err
	}

	switch flags.format {
	case formatYAML:
		err = writeMacrosYAML(env.Stdout, table)
	default:
		writeMacrosText(env.Stdout, table, flags.common.verbose)
	}
	if err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "%d macro(s) from %d file(s), %d warning(s)\n", table.Len(), len(paths), warnings)
	}
	return nil
}

// writeMacrosText prints one \newcommand statement per macro in table order.
func writeMacrosText(w io.Writer, table *texmath.MacroTable, verbose bool) {
	for _, def := range table.All() {
		if verbose {
			fmt.Fprintf(w, "%s %% %s:%d\n", def, def.File, def.Line)
			continue
		}
		fmt.Fprintln(w, def)
	}
}

// writeMacrosYAML prints the table as a mapping keyed by macro name, in table order.
func writeMacrosYAML(w io.Writer, table *texmath.MacroTable) error {
	items := make([]yamlutil.Item, 0, table.Len())
	for name, def := range table.All() {
		items = append(items, yamlutil.Item{Key: name, Value: macroEntry{
			Args:    def.Args,
			Default: def.Default,
			Body:    def.Body,
			File:    def.File,
			Line:    def.Line,
		}})
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "{}")
		return err
	}

	data, err := yamlutil.MarshalOrdered(items)
	if err != nil {
		return fmt.Errorf("encoding macros: %w", err)
	}
	_, err = w.Write(data)
	return err
}
