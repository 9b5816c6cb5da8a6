package texmath

import "github.com/alnah/go-texmath/internal/mathscan"

// Scanner finds math spans outside code regions. See NewScanner.
type Scanner = mathscan.Scanner

// ScannerConfig configures a Scanner.
type ScannerConfig = mathscan.Config

// Syntax selects which code regions a Scanner excludes.
type Syntax = mathscan.Syntax

// Syntax values.
const (
	SyntaxHTML     = mathscan.SyntaxHTML     // <pre> and <code> elements
	SyntaxMarkdown = mathscan.SyntaxMarkdown // plus fenced blocks and code spans
)

// Span is a half-open byte range [Start, End).
type Span = mathscan.Span

// MathSpan is a math region with its delimiter kind.
type MathSpan = mathscan.MathSpan

// Kind classifies a math span by its delimiters.
type Kind = mathscan.Kind

// Kind values.
const (
	KindInline      = mathscan.KindInline      // $...$
	KindDisplay     = mathscan.KindDisplay     // $$...$$
	KindEnvironment = mathscan.KindEnvironment // \begin{env}...\end{env}
	KindMarkup      = mathscan.KindMarkup      // <math>...</math>
)

// NewScanner compiles the math and exclusion patterns for cfg.
// The returned Scanner is immutable and safe for concurrent use.
func NewScanner(cfg ScannerConfig) *Scanner {
	return mathscan.New(cfg)
}

// HasMath reports whether an HTML document contains math outside <pre> and <code>.
func HasMath(html string) bool {
	return defaultHTMLScanner.Detect(html)
}

// WrapMath wraps every math span of an HTML document outside <pre> and <code>
// in <wrapTag>...</wrapTag>. It reports whether any span was found.
func WrapMath(html, wrapTag string) (string, bool) {
	return defaultHTMLScanner.ScanAndWrap(html, wrapTag)
}

var defaultHTMLScanner = mathscan.New(mathscan.Config{Syntax: mathscan.SyntaxHTML})
