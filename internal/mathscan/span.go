package mathscan

import "sort"

// Kind identifies the delimiter shape of a math span.
type Kind int

const (
	KindInline      Kind = iota + 1 // $...$
	KindDisplay                     // $$...$$
	KindEnvironment                 // \begin{name}...\end{name}
	KindMarkup                      // <math>...</math>
)

func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindDisplay:
		return "display"
	case KindEnvironment:
		return "environment"
	case KindMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// Span is a half-open byte range [Start, End) of a verbatim region.
type Span struct {
	Start int
	End   int
}

// MathSpan is a recognized math region as a half-open byte range of the
// scanned content. Env is set only for KindEnvironment.
type MathSpan struct {
	Start int
	End   int
	Kind  Kind
	Env   string
}

// Text returns the span's text within content.
func (m MathSpan) Text(content string) string {
	return content[m.Start:m.End]
}

// spanAt returns the span containing offset. spans must be sorted by Start
// and non-overlapping. It finds the rightmost span with Start <= offset by
// binary search and checks offset against its End.
func spanAt(spans []Span, offset int) (Span, bool) {
	i := sort.Search(len(spans), func(i int) bool {
		return spans[i].Start > offset
	})
	if i == 0 || offset >= spans[i-1].End {
		return Span{}, false
	}
	return spans[i-1], true
}
