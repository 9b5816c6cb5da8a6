package main

// Notes:
// - runDetect: end-to-end over a mixed Markdown/HTML tree.
// - syntaxFor / kindSummary: table-driven.
// - printDetectResults: list, quiet and verbose modes.

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	texmath "github.com/alnah/go-texmath"
)

// ---------------------------------------------------------------------------
// TestRunDetect - End-to-end
// ---------------------------------------------------------------------------

func TestRunDetect(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"math.md":     "Area $\\pi r^2$.\n",
		"code.md":     "Use `$HOME` and\n\n```sh\necho $PATH$\n```\n",
		"page.html":   "<p>\\begin{equation}x\\end{equation}</p>",
		"pre.html":    "<pre>$x$</pre><code>$$y$$</code>",
		"escaped.md":  "Costs \\$5 and \\$10.\n",
		"ignored.txt": "$x$",
	})

	t.Run("report", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain(context.Background(), []string{"detect", dir}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}

		out := env.stdout.String()
		for _, want := range []string{
			filepath.Join(dir, "math.md") + ": math",
			filepath.Join(dir, "page.html") + ": math",
			filepath.Join(dir, "code.md") + ": no math",
			filepath.Join(dir, "pre.html") + ": no math",
			filepath.Join(dir, "escaped.md") + ": no math",
			"2 of 5 file(s) contain math",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "ignored.txt") {
			t.Errorf("non-source file reported:\n%s", out)
		}
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runMain(context.Background(), []string{"detect", "--list", dir}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}

		lines := strings.Split(strings.TrimSpace(env.stdout.String()), "\n")
		want := []string{filepath.Join(dir, "math.md"), filepath.Join(dir, "page.html")}
		if len(lines) != len(want) {
			t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), env.stdout)
		}
		for _, w := range want {
			if !strings.Contains(env.stdout.String(), w+"\n") {
				t.Errorf("list missing %q:\n%s", w, env.stdout)
			}
		}
	})

	t.Run("verbose single file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		args := []string{"detect", "-v", filepath.Join(dir, "page.html")}
		if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}
		if !strings.Contains(env.stdout.String(), "(html, environment=1)") {
			t.Errorf("stdout = %q, want syntax and kind summary", env.stdout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSyntaxFor - Extension to exclusion rules
// ---------------------------------------------------------------------------

func TestSyntaxFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want texmath.Syntax
	}{
		{"a.md", texmath.SyntaxMarkdown},
		{"a.markdown", texmath.SyntaxMarkdown},
		{"a.html", texmath.SyntaxHTML},
		{"A.HTM", texmath.SyntaxHTML},
	}

	for _, tt := range tests {
		if got := syntaxFor(tt.path); got != tt.want {
			t.Errorf("syntaxFor(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestKindSummary - Per-kind counts
// ---------------------------------------------------------------------------

func TestKindSummary(t *testing.T) {
	t.Parallel()

	spans := []texmath.MathSpan{
		{Kind: texmath.KindDisplay},
		{Kind: texmath.KindInline},
		{Kind: texmath.KindInline},
		{Kind: texmath.KindMarkup},
	}
	if got, want := kindSummary(spans), "inline=2 display=1 markup=1"; got != want {
		t.Errorf("kindSummary() = %q, want %q", got, want)
	}
	if got := kindSummary(nil); got != "" {
		t.Errorf("kindSummary(nil) = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestPrintDetectResults - Reporting modes
// ---------------------------------------------------------------------------

func TestPrintDetectResults(t *testing.T) {
	t.Parallel()

	results := []detectResult{
		{Path: "a.md", Syntax: texmath.SyntaxMarkdown, Spans: []texmath.MathSpan{{Kind: texmath.KindInline}}},
		{Path: "b.md", Syntax: texmath.SyntaxMarkdown},
		{Path: "c.md", Err: texmath.ErrMatchTimeout},
	}

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		failed := printDetectResults(results, &detectFlags{common: commonFlags{quiet: true}}, env.Environment)
		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if env.stdout.Len() != 0 {
			t.Errorf("quiet stdout = %q, want empty", env.stdout)
		}
		if !strings.Contains(env.stderr.String(), "c.md") {
			t.Errorf("stderr = %q, want failure for c.md", env.stderr)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		printDetectResults(results, &detectFlags{}, env.Environment)
		if !strings.Contains(env.stdout.String(), "1 of 2 file(s) contain math") {
			t.Errorf("stdout = %q, want summary excluding failures", env.stdout)
		}
	})
}

func TestDetectFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := texmath.NewScanner(texmath.ScannerConfig{})
	r := detectFile(ctx, s, "unused.md")
	if !errors.Is(r.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", r.Err)
	}
}
