package main

// Notes:
// - parse*Flags: we test long/short forms, defaults, positional args and
//   the mapping of parse errors to ErrInvalidFlags.

import (
	"errors"
	"io"
	"slices"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseRenderFlags - Render flag set
// ---------------------------------------------------------------------------

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"docs",
		"-o", "site",
		"-w", "3",
		"-t", "10s",
		"--wrap-tag", "tex-math",
		"--match-timeout", "1s",
		"--standalone", "--title", "Notes",
		"--hard-wraps", "--unsafe-html",
		"--highlight-style", "monokai", "--no-highlight",
		"-c", "team", "-q", "-v",
	}

	f, positional, err := parseRenderFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}

	want := renderFlags{
		common:         commonFlags{config: "team", quiet: true, verbose: true},
		output:         "site",
		workers:        3,
		timeout:        "10s",
		wrapTag:        "tex-math",
		matchTimeout:   "1s",
		standalone:     true,
		title:          "Notes",
		hardWraps:      true,
		unsafeHTML:     true,
		highlightStyle: "monokai",
		noHighlight:    true,
	}
	if *f != want {
		t.Errorf("flags = %+v, want %+v", *f, want)
	}
	if !slices.Equal(positional, []string{"docs"}) {
		t.Errorf("positional = %v, want [docs]", positional)
	}
}

func TestParseDetectFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseDetectFlags([]string{"-l", "--match-timeout", "2s", "a.md"}, io.Discard)
	if err != nil {
		t.Fatalf("parseDetectFlags() error = %v", err)
	}
	if !f.list || f.matchTimeout != "2s" || f.workers != 0 {
		t.Errorf("flags = %+v", *f)
	}
	if !slices.Equal(positional, []string{"a.md"}) {
		t.Errorf("positional = %v, want [a.md]", positional)
	}
}

func TestParseMacrosFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseMacrosFlags([]string{"a.tex", "b.tex"}, io.Discard)
	if err != nil {
		t.Fatalf("parseMacrosFlags() error = %v", err)
	}
	if f.format != formatText {
		t.Errorf("format = %q, want default %q", f.format, formatText)
	}
	if !slices.Equal(positional, []string{"a.tex", "b.tex"}) {
		t.Errorf("positional = %v", positional)
	}
}

// ---------------------------------------------------------------------------
// TestParseFlags_Errors - Error mapping
// ---------------------------------------------------------------------------

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		parse   func() error
		wantErr error
	}{
		{"unknown flag", func() error { _, _, err := parseRenderFlags([]string{"--bogus"}, io.Discard); return err }, ErrInvalidFlags},
		{"bad int", func() error { _, _, err := parseDetectFlags([]string{"-w", "many"}, io.Discard); return err }, ErrInvalidFlags},
		{"missing value", func() error { _, _, err := parseMacrosFlags([]string{"--format"}, io.Discard); return err }, ErrInvalidFlags},
		{"help", func() error { _, _, err := parseMacrosFlags([]string{"--help"}, io.Discard); return err }, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.parse(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
