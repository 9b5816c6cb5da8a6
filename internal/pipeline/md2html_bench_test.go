//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alnah/go-texmath/internal/mathscan"
)

// BenchmarkGoldmarkToHTML benchmarks Markdown to HTML conversion with highlighting.
func BenchmarkGoldmarkToHTML(b *testing.B) {
	converter := NewGoldmarkConverter(GoldmarkOptions{Highlight: true})
	ctx := context.Background()

	inputs := []struct {
		name    string
		content string
	}{
		{"minimal", "# Hello\n\nWorld"},
		{"code_blocks", generateCodeBlocksMarkdown(10)},
		{"math_small", generateMathMarkdown(10)},
		{"math_large", generateMathMarkdown(200)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := converter.ToHTML(ctx, input.content); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkMathRoundTrip benchmarks protect, convert and restore together.
func BenchmarkMathRoundTrip(b *testing.B) {
	m := NewMathPlaceholders(mathscan.New(mathscan.Config{Syntax: mathscan.SyntaxMarkdown}), "mathjax", false)
	converter := NewGoldmarkConverter(GoldmarkOptions{})
	ctx := context.Background()

	for _, size := range []int{1, 10, 50, 200} {
		content := generateMathMarkdown(size)
		b.Run(fmt.Sprintf("sections_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				protected, spans := m.ProtectMath(ctx, content)
				html, err := converter.ToHTML(ctx, protected)
				if err != nil {
					b.Fatal(err)
				}
				_ = m.RestoreMath(ctx, html, spans)
			}
		})
	}
}

// BenchmarkMathRoundTripParallel benchmarks concurrent use of one MathPlaceholders.
func BenchmarkMathRoundTripParallel(b *testing.B) {
	m := NewMathPlaceholders(mathscan.New(mathscan.Config{Syntax: mathscan.SyntaxMarkdown}), "mathjax", false)
	converter := NewGoldmarkConverter(GoldmarkOptions{})
	ctx := context.Background()
	content := generateMathMarkdown(20)

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			protected, spans := m.ProtectMath(ctx, content)
			html, err := converter.ToHTML(ctx, protected)
			if err != nil {
				b.Fatal(err)
			}
			_ = m.RestoreMath(ctx, html, spans)
		}
	})
}

func generateCodeBlocksMarkdown(count int) string {
	var sb strings.Builder
	code := "func cost(a, b int) int {\n    return a + b // $a + $b\n}"
	for i := 0; i < count; i++ {
		sb.WriteString("## Code Example\n\n```go\n")
		sb.WriteString(code)
		sb.WriteString("\n```\n\n")
	}
	return sb.String()
}

func generateMathMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Notes\n\n")
	for i := 0; i < sections; i++ {
		sb.WriteString(fmt.Sprintf("## Section %d\n\n", i+1))
		sb.WriteString("Let $x_i$ and $y_i$ be *samples*, with `$HOME` unset.\n\n")
		sb.WriteString("$$\n\\sum_{i=1}^{n} x_i y_i\n$$\n\n")
		if i%3 == 0 {
			sb.WriteString("\\begin{align}\na &= b \\\\\nc &= d\n\\end{align}\n\n")
		}
	}
	return sb.String()
}
