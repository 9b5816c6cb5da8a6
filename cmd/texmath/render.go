package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	texmath "github.com/alnah/go-texmath"
	"github.com/alnah/go-texmath/internal/config"
	"github.com/alnah/go-texmath/internal/fileutil"
)

// Sentinel errors for the render command.
var (
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// MarkdownRenderer is the interface for the rendering service.
type MarkdownRenderer interface {
	Render(ctx context.Context, input texmath.Input) (*texmath.Result, error)
}

// Compile-time interface implementation check.
var _ MarkdownRenderer = (*texmath.Renderer)(nil)

// renderResult holds the outcome of a single file.
type renderResult struct {
	InputPath  string
	OutputPath string
	MathCount  int
	Err        error
	Duration   time.Duration
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
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

	// Merge CLI flags into config (CLI wins)
	mergeRenderFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := rendererOptions(flags, cfg)
	if err != nil {
		return err
	}
	renderer, err := texmath.NewRenderer(opts...)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir, fileutil.IsMarkdown, "html")
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers, len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d file(s) with %d worker(s), wrap tag %q\n",
			len(files), workers, renderer.WrapTag())
	}

	results := renderBatch(ctx, renderer, files, workers, env.Now)

	failed := printRenderResults(results, flags.common, env)
	if failed > 0 {
		return fmt.Errorf("%d render(s) failed", failed)
	}
	return nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	if flags.wrapTag != "" {
		cfg.Math.WrapTag = flags.wrapTag
	}
	if flags.matchTimeout != "" {
		cfg.Math.MatchTimeout = flags.matchTimeout
	}
	if flags.standalone {
		cfg.Markdown.Standalone = true
	}
	if flags.title != "" {
		cfg.Markdown.Title = flags.title
	}
	if flags.hardWraps {
		cfg.Markdown.HardWraps = true
	}
	if flags.unsafeHTML {
		cfg.Markdown.UnsafeHTML = true
	}
	if flags.highlightStyle != "" {
		cfg.Markdown.HighlightStyle = flags.highlightStyle
	}
	if flags.noHighlight {
		cfg.Markdown.Highlight = false
	}
}

// rendererOptions translates a validated config into Renderer options.
func rendererOptions(flags *renderFlags, cfg *config.Config) ([]texmath.Option, error) {
	matchTimeout, err := cfg.Math.Timeout()
	if err != nil {
		return nil, err
	}

	opts := []texmath.Option{
		texmath.WithWrapTag(cfg.Math.EffectiveWrapTag()),
		texmath.WithMatchTimeout(matchTimeout),
		texmath.WithHardWraps(cfg.Markdown.HardWraps),
		texmath.WithUnsafeHTML(cfg.Markdown.UnsafeHTML),
	}

	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: --timeout %q must be a positive duration", ErrInvalidFlags, flags.timeout)
		}
		opts = append(opts, texmath.WithTimeout(d))
	}
	if cfg.Markdown.Highlight {
		opts = append(opts, texmath.WithHighlight(cfg.Markdown.HighlightStyle))
	}
	if cfg.Markdown.Standalone {
		opts = append(opts, texmath.WithStandalone(cfg.Markdown.Title))
	}
	return opts, nil
}

// renderBatch renders files with at most workers in flight.
// Results keep the order of files.
func renderBatch(ctx context.Context, r MarkdownRenderer, files []fileJob, workers int, now func() time.Time) []renderResult {
	results := make([]renderResult, len(files))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			results[i] = renderFile(ctx, r, f, now)
			return nil
		})
	}
	_ = g.Wait() // failures are reported per file

	return results
}

// renderFile renders one Markdown file and writes the HTML atomically.
func renderFile(ctx context.Context, r MarkdownRenderer, f fileJob, now func() time.Time) renderResult {
	start := now()
	result := renderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- path comes from discovery
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadInput, err)
		return result
	}

	res, err := r.Render(ctx, texmath.Input{Markdown: string(content)})
	if err != nil {
		result.Err = err
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		return result
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, string(res.HTML), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		return result
	}

	result.MathCount = res.MathCount
	result.Duration = now().Sub(start)
	return result
}

// printRenderResults reports each file and returns the number of failures.
func printRenderResults(results []renderResult, flags commonFlags, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			failLabel.Fprint(env.Stderr, "FAILED")
			fmt.Fprintf(env.Stderr, " %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}

		succeeded++
		if flags.quiet {
			continue
		}

		math := "no math"
		if r.MathCount > 0 {
			math = mathLabel.Sprintf("%d math span(s)", r.MathCount)
		}
		if flags.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, r.OutputPath, math, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s (%s)\n", r.OutputPath, math)
		}
	}

	if !flags.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
