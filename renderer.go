package texmath

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-texmath/internal/config"
	"github.com/alnah/go-texmath/internal/mathscan"
	"github.com/alnah/go-texmath/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.MathProtector        = (*pipeline.MathPlaceholders)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// Renderer converts Markdown with embedded math to HTML.
// Create with NewRenderer. A Renderer is safe for concurrent Render calls.
type Renderer struct {
	cfg           rendererConfig
	scanner       *mathscan.Scanner
	preprocessor  pipeline.MarkdownPreprocessor
	mathProtector pipeline.MathProtector
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	highlightCSS  string
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithWrapTag, WithHighlight, WithStandalone).
// Returns error if the wrap tag or highlight style is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			timeout: defaultTimeout,
			wrapTag: DefaultWrapTag,
		},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.cfg.wrapTag != "" {
		if err := config.ValidateWrapTag(r.cfg.wrapTag); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWrapTag, r.cfg.wrapTag)
		}
	}

	if r.cfg.highlight && r.cfg.highlightStyle == "" {
		r.cfg.highlightStyle = DefaultHighlightStyle
	}
	if r.cfg.highlight && r.cfg.standalone {
		css, err := pipeline.HighlightCSS(r.cfg.highlightStyle)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnknownHighlightStyle) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, r.cfg.highlightStyle)
			}
			return nil, err
		}
		r.highlightCSS = css
	}

	r.scanner = mathscan.New(mathscan.Config{
		Syntax:       mathscan.SyntaxMarkdown,
		MatchTimeout: r.cfg.matchTimeout,
	})
	r.mathProtector = pipeline.NewMathPlaceholders(r.scanner, r.cfg.wrapTag, r.cfg.unsafeHTML)
	r.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
		HardWraps:  r.cfg.hardWraps,
		UnsafeHTML: r.cfg.unsafeHTML,
		Highlight:  r.cfg.highlight,
		Standalone: r.cfg.standalone,
		Title:      r.cfg.title,
	})

	return r, nil
}

// HighlightStyles lists the style names accepted by WithHighlight.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// WrapTag returns the element math spans are wrapped in.
func (r *Renderer) WrapTag() string {
	return r.cfg.wrapTag
}

// Render runs the full pipeline and returns the HTML.
// The context is used for cancellation; the renderer timeout applies on top.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	mdContent := r.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Math leaves the document before goldmark sees it.
	mdContent, protected := r.mathProtector.ProtectMath(ctx, mdContent)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := r.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if errors.Is(err, pipeline.ErrHTMLConversion) {
			return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
		}
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent = r.mathProtector.RestoreMath(ctx, htmlContent, protected)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent = r.cssInjector.InjectCSS(ctx, htmlContent, r.highlightCSS)

	return &Result{
		HTML:      []byte(htmlContent),
		HasMath:   protected.Len() > 0,
		MathCount: protected.Len(),
	}, nil
}
