package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion        = errors.New("HTML conversion failed")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
)

// DefaultHighlightStyle is the chroma style used for standalone documents.
const DefaultHighlightStyle = "github"

// htmlTemplate wraps goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkOptions controls goldmark rendering.
type GoldmarkOptions struct {
	HardWraps  bool   // treat newlines as <br>
	UnsafeHTML bool   // pass raw HTML blocks through
	Highlight  bool   // syntax-highlight fenced code with chroma classes
	Standalone bool   // wrap the fragment in an HTML5 document
	Title      string // <title> for standalone documents
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md   goldmark.Markdown
	opts GoldmarkOptions
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and,
// when enabled, syntax highlighting.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	exts := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if opts.Highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, see HighlightCSS
			),
		))
	}

	rendererOpts := []goldmark.Option{}
	var htmlOpts []renderer.Option
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, goldmarkhtml.WithHardWraps())
	}
	if opts.UnsafeHTML {
		htmlOpts = append(htmlOpts, goldmarkhtml.WithUnsafe())
	}
	if len(htmlOpts) > 0 {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(htmlOpts...))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings
		),
	}, rendererOpts...)...)

	return &GoldmarkConverter{md: md, opts: opts}
}

// ToHTML converts Markdown content to HTML, as a fragment or a standalone
// document depending on the options.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		if !c.opts.Standalone {
			done <- result{html: buf.String()}
			return
		}
		title := c.opts.Title
		if title == "" {
			title = "Document"
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, html.EscapeString(title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// HighlightCSS returns the stylesheet for chroma's CSS classes in the named style.
func HighlightCSS(style string) (string, error) {
	s, ok := styles.Registry[style]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, style)
	}
	return writeHighlightCSS(s)
}

// HighlightStyles returns the registered chroma style names, sorted.
func HighlightStyles() []string {
	return styles.Names()
}

func writeHighlightCSS(s *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
