package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlags wraps pflag parse errors so they map to ExitUsage.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common         commonFlags
	output         string
	workers        int
	timeout        string
	wrapTag        string
	matchTimeout   string
	standalone     bool
	title          string
	hardWraps      bool
	unsafeHTML     bool
	highlightStyle string
	noHighlight    bool
}

// detectFlags holds flags for the detect command.
type detectFlags struct {
	common       commonFlags
	workers      int
	matchTimeout string
	list         bool
}

// macrosFlags holds flags for the macros command.
type macrosFlags struct {
	common commonFlags
	format string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// newFlagSet creates a FlagSet that reports errors through the caller
// instead of printing them, and prints usage to stderr on -h.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseFlagSet parses args, passing flag.ErrHelp through unchanged.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", stderr, printRenderUsage)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file render timeout (e.g., 30s, 2m)")

	// Math flags
	fs.StringVar(&f.wrapTag, "wrap-tag", "", "element wrapping each math span (default: mathjax)")
	fs.StringVar(&f.matchTimeout, "match-timeout", "", "limit for a single math pattern match")

	// Markdown flags
	fs.BoolVar(&f.standalone, "standalone", false, "write complete HTML documents")
	fs.StringVar(&f.title, "title", "", "document title for --standalone")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines as <br>")
	fs.BoolVar(&f.unsafeHTML, "unsafe-html", false, "pass raw HTML through")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable syntax highlighting")

	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseDetectFlags parses detect command flags and returns positional args.
func parseDetectFlags(args []string, stderr io.Writer) (*detectFlags, []string, error) {
	f := &detectFlags{}
	fs := newFlagSet("detect", stderr, printDetectUsage)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.matchTimeout, "match-timeout", "", "limit for a single math pattern match")
	fs.BoolVarP(&f.list, "list", "l", false, "print only files containing math")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseMacrosFlags parses macros command flags and returns positional args.
func parseMacrosFlags(args []string, stderr io.Writer) (*macrosFlags, []string, error) {
	f := &macrosFlags{}
	fs := newFlagSet("macros", stderr, printMacrosUsage)

	fs.StringVarP(&f.format, "format", "f", formatText, "output format: text, yaml")
	addCommonFlags(fs, &f.common)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
