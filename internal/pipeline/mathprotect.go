package pipeline

import (
	"context"
	"html"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-texmath/internal/mathscan"
)

// Math placeholders use Unicode Private Use Area characters.
// These never clash with document text and pass through goldmark unchanged.
const (
	MathStartPlaceholder = "\uE002" // U+E002
	MathEndPlaceholder   = "\uE003" // U+E003
)

var mathPlaceholder = regexp.MustCompile(MathStartPlaceholder + `([0-9]+)` + MathEndPlaceholder)

// MathProtector defines the contract for shielding math from Markdown processing.
type MathProtector interface {
	ProtectMath(ctx context.Context, content string) (string, *ProtectedMath)
	RestoreMath(ctx context.Context, htmlContent string, protected *ProtectedMath) string
}

// ProtectedMath holds the math spans replaced by placeholders in one document,
// along with any placeholder characters the document already contained.
type ProtectedMath struct {
	spans []protectedSpan
	math  int
}

type protectedSpan struct {
	text    string
	kind    mathscan.Kind
	literal bool
}

// Len returns the number of protected math spans.
func (p *ProtectedMath) Len() int {
	if p == nil {
		return 0
	}
	return p.math
}

func (p *ProtectedMath) add(b *strings.Builder, sp protectedSpan) {
	b.WriteString(MathStartPlaceholder)
	b.WriteString(strconv.Itoa(len(p.spans)))
	b.WriteString(MathEndPlaceholder)
	p.spans = append(p.spans, sp)
	if !sp.literal {
		p.math++
	}
}

// addText writes text, turning placeholder characters already present into
// literal entries so that only placeholders written here are ever restored.
func (p *ProtectedMath) addText(b *strings.Builder, text string) {
	for {
		i := strings.IndexAny(text, MathStartPlaceholder+MathEndPlaceholder)
		if i < 0 {
			b.WriteString(text)
			return
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[:i])
		p.add(b, protectedSpan{text: text[i : i+size], literal: true})
		text = text[i+size:]
	}
}

// MathPlaceholders swaps math spans for placeholders before goldmark and
// restores them, wrapped in WrapTag, afterwards.
type MathPlaceholders struct {
	scanner   *mathscan.Scanner
	wrapTag   string
	rawMarkup bool
}

// NewMathPlaceholders creates a MathPlaceholders. The scanner should use
// mathscan.SyntaxMarkdown so code blocks and inline code stay untouched.
// An empty wrapTag restores math without a wrapper element. rawMarkup
// restores MathML as markup instead of escaped text; it should only be set
// when raw HTML is allowed through the converter as well.
func NewMathPlaceholders(scanner *mathscan.Scanner, wrapTag string, rawMarkup bool) *MathPlaceholders {
	return &MathPlaceholders{scanner: scanner, wrapTag: wrapTag, rawMarkup: rawMarkup}
}

// ProtectMath replaces every math span outside code with a numbered placeholder.
// A scan timeout leaves the content unprotected.
func (m *MathPlaceholders) ProtectMath(ctx context.Context, content string) (string, *ProtectedMath) {
	protected := &ProtectedMath{}
	if ctx.Err() != nil {
		return content, protected
	}

	spans, err := m.scanner.Scan(content)
	if err != nil || len(spans) == 0 {
		return content, protected
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, sp := range spans {
		protected.addText(&b, content[last:sp.Start])
		protected.add(&b, protectedSpan{text: sp.Text(content), kind: sp.Kind})
		last = sp.End
	}
	protected.addText(&b, content[last:])
	return b.String(), protected
}

// RestoreMath replaces placeholders in htmlContent with the original math.
// Math is HTML-escaped so the browser hands the exact source to the renderer.
// MathML stays markup only when the placeholders were built with rawMarkup.
func (m *MathPlaceholders) RestoreMath(ctx context.Context, htmlContent string, protected *ProtectedMath) string {
	if protected == nil || len(protected.spans) == 0 || ctx.Err() != nil {
		return htmlContent
	}

	open, closing := "", ""
	if m.wrapTag != "" {
		open, closing = "<"+m.wrapTag+">", "</"+m.wrapTag+">"
	}

	return mathPlaceholder.ReplaceAllStringFunc(htmlContent, func(ph string) string {
		idx, err := strconv.Atoi(mathPlaceholder.FindStringSubmatch(ph)[1])
		if err != nil || idx >= len(protected.spans) {
			return ph
		}
		sp := protected.spans[idx]
		if sp.literal {
			return sp.text
		}
		text := sp.text
		if sp.kind != mathscan.KindMarkup || !m.rawMarkup {
			text = html.EscapeString(text)
		}
		return open + text + closing
	})
}
