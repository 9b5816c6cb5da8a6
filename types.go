package texmath

import "time"

// Input contains rendering parameters.
type Input struct {
	Markdown string // Markdown content (required)
}

// Result holds the rendered HTML and what the scanner found.
type Result struct {
	HTML      []byte
	HasMath   bool // at least one math span was wrapped
	MathCount int  // number of math spans wrapped
}

// DefaultWrapTag is the element math spans are wrapped in by default.
const DefaultWrapTag = "mathjax"

// DefaultHighlightStyle is the chroma style used for standalone documents.
const DefaultHighlightStyle = "github"

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	timeout        time.Duration
	matchTimeout   time.Duration
	wrapTag        string
	hardWraps      bool
	unsafeHTML     bool
	highlight      bool
	highlightStyle string
	standalone     bool
	title          string
}

// WithTimeout sets the per-document rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("texmath: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithMatchTimeout bounds each regular expression match. Zero means no limit.
// Panics if d < 0.
func WithMatchTimeout(d time.Duration) Option {
	if d < 0 {
		panic("texmath: WithMatchTimeout duration must not be negative")
	}
	return func(r *Renderer) {
		r.cfg.matchTimeout = d
	}
}

// WithWrapTag sets the element math spans are wrapped in.
// An empty tag restores math without a wrapper.
func WithWrapTag(tag string) Option {
	return func(r *Renderer) {
		r.cfg.wrapTag = tag
	}
}

// WithHardWraps renders newlines inside paragraphs as <br>.
func WithHardWraps(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.hardWraps = enabled
	}
}

// WithUnsafeHTML passes raw HTML in the Markdown through to the output.
// MathML spans are then restored as markup rather than escaped text.
func WithUnsafeHTML(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.unsafeHTML = enabled
	}
}

// WithHighlight enables chroma syntax highlighting of fenced code blocks.
// style names the chroma style whose CSS is embedded in standalone documents;
// empty means DefaultHighlightStyle.
func WithHighlight(style string) Option {
	return func(r *Renderer) {
		r.cfg.highlight = true
		r.cfg.highlightStyle = style
	}
}

// WithStandalone wraps output in a complete HTML5 document with the given title.
func WithStandalone(title string) Option {
	return func(r *Renderer) {
		r.cfg.standalone = true
		r.cfg.title = title
	}
}
