package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	texmath "github.com/alnah/go-texmath"
	"github.com/alnah/go-texmath/internal/fileutil"
)

// reportedKinds fixes the order of per-kind counts in verbose output.
var reportedKinds = []texmath.Kind{
	texmath.KindInline,
	texmath.KindDisplay,
	texmath.KindEnvironment,
	texmath.KindMarkup,
}

// detectResult holds the math spans found in one file.
type detectResult struct {
	Path   string
	Syntax texmath.Syntax
	Spans  []texmath.MathSpan
	Err    error
}

// runDetect orchestrates the detect command.
func runDetect(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseDetectFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if flags.matchTimeout != "" {
		cfg.Math.MatchTimeout = flags.matchTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	matchTimeout, err := cfg.Math.Timeout()
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, "", isDetectable, "")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown or HTML files found in %s", inputPath)
	}

	scanners := map[texmath.Syntax]*texmath.Scanner{
		texmath.SyntaxMarkdown: texmath.NewScanner(texmath.ScannerConfig{Syntax: texmath.SyntaxMarkdown, MatchTimeout: matchTimeout}),
		texmath.SyntaxHTML:     texmath.NewScanner(texmath.ScannerConfig{Syntax: texmath.SyntaxHTML, MatchTimeout: matchTimeout}),
	}
	workers := resolveWorkers(flags.workers, envCfg.Workers, len(files))
	results := detectBatch(ctx, scanners, files, workers)

	failed := printDetectResults(results, flags, env)
	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be scanned", failed)
	}
	return nil
}

// isDetectable accepts Markdown and HTML sources.
func isDetectable(path string) bool {
	return fileutil.IsMarkdown(path) || fileutil.IsHTML(path)
}

// syntaxFor picks the exclusion rules for a file by extension.
func syntaxFor(path string) texmath.Syntax {
	if fileutil.IsHTML(path) {
		return texmath.SyntaxHTML
	}
	return texmath.SyntaxMarkdown
}

// detectBatch scans files with at most workers in flight.
// Results keep the order of files.
func detectBatch(ctx context.Context, scanners map[texmath.Syntax]*texmath.Scanner, files []fileJob, workers int) []detectResult {
	results := make([]detectResult, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			syntax := syntaxFor(f.InputPath)
			results[i] = detectFile(ctx, scanners[syntax], f.InputPath)
			results[i].Syntax = syntax
			return nil
		})
	}
	_ = g.Wait() // failures are reported per file

	return results
}

// detectFile reads path and collects its math spans.
func detectFile(ctx context.Context, s *texmath.Scanner, path string) detectResult {
	result := detectResult{Path: path}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path comes from discovery
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		return result
	}

	result.Spans, result.Err = s.Scan(string(content))
	return result
}

// printDetectResults reports each file and returns the number of failures.
func printDetectResults(results []detectResult, flags *detectFlags, env *Environment) int {
	var failed, withMath int

	for _, r := range results {
		if r.Err != nil {
			failed++
			failLabel.Fprint(env.Stderr, "FAILED")
			fmt.Fprintf(env.Stderr, " %s: %v%s\n", r.Path, r.Err, hintFor(r.Err))
			continue
		}

		hasMath := len(r.Spans) > 0
		if hasMath {
			withMath++
		}

		switch {
		case flags.list:
			if hasMath {
				fmt.Fprintln(env.Stdout, r.Path)
			}
		case flags.common.quiet:
		case !hasMath:
			fmt.Fprintf(env.Stdout, "%s: no math\n", r.Path)
		case flags.common.verbose:
			fmt.Fprintf(env.Stdout, "%s: %s (%s, %s)\n", r.Path, mathLabel.Sprint("math"), r.Syntax, kindSummary(r.Spans))
		default:
			fmt.Fprintf(env.Stdout, "%s: %s\n", r.Path, mathLabel.Sprint("math"))
		}
	}

	if !flags.list && !flags.common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d of %d file(s) contain math\n", withMath, len(results)-failed)
	}

	return failed
}

// kindSummary formats span counts per kind, e.g. "inline=2 display=1".
func kindSummary(spans []texmath.MathSpan) string {
	counts := make(map[texmath.Kind]int, len(reportedKinds))
	for _, sp := range spans {
		counts[sp.Kind]++
	}

	parts := make([]string, 0, len(reportedKinds))
	for _, k := range reportedKinds {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}
