package mathscan

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// ErrMatchTimeout indicates the pattern engine gave up on a document.
var ErrMatchTimeout = errors.New("math scan timed out")

// Syntax selects which verbatim regions are excluded from math detection.
type Syntax int

const (
	// SyntaxHTML excludes <pre> and <code> elements.
	SyntaxHTML Syntax = iota
	// SyntaxMarkdown additionally excludes fenced and indented code blocks and
	// inline code spans. Dollar spans do not cross a blank line.
	SyntaxMarkdown
)

func (s Syntax) String() string {
	switch s {
	case SyntaxHTML:
		return "html"
	case SyntaxMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// Config holds scanner settings. It is copied into the Scanner at construction.
type Config struct {
	Syntax Syntax
	// MatchTimeout bounds a single pattern search. Zero means no limit.
	MatchTimeout time.Duration
}

// Patterns use regexp2 for lookbehind and named backreferences, which the
// standard library's RE2 engine does not support.
const (
	htmlExclusionPattern = `<(?<tag>pre|code)(?:\s[^>]*)?>.*?</\k<tag>\s*>`

	fencedCodePattern = "^[ \\t]{0,3}(?<fence>`{3,}|~{3,})[^\\n]*\\n.*?" +
		"(?:^[ \\t]{0,3}\\k<fence>[`~]*[ \\t]*$|\\z)"

	inlineCodePattern = "(?<ticks>`+)(?!`)(?:(?!\\n[ \\t]*\\n).)+?(?<!`)\\k<ticks>(?!`)"

	// An indented code block starts after a blank line (or at the top of the
	// document) unless the previous non-blank line is a list item or another
	// indented line, in which case the indentation continues the item.
	indentedCodePattern = `(?<=\A(?:[ \t]*\n)*|\n[ \t]*\n)` +
		`(?<!^[ \t]{0,3}(?:[-*+]|\d{1,9}[.)])[ \t][^\n]*\n(?:[ \t]*\n)+)` +
		`(?<!^(?: {4}| {0,3}\t)[^\n]*\n(?:[ \t]*\n)+)` +
		`(?: {4}| {0,3}\t)[^\n]*(?:\n(?:[ \t]*\n)*(?: {4}| {0,3}\t)[^\n]*)*`

	// Dollar bodies: any text, or in Markdown any text short of a blank line,
	// since a paragraph break ends every inline construct.
	anyBody       = `.+?`
	paragraphBody = `(?:(?!\n[ \t]*\n).)+?`
)

func mathPattern(dollarBody string) string {
	return `(?<!\\)(?:` +
		`(?<dollar>\$\$?)(?!\$)` + dollarBody + `(?<!\\)\k<dollar>` +
		`|\\begin\{(?<env>[^{}\s]+)\}.+?\\end\{\k<env>\}` +
		`|<(?i:math)(?:\s[^>]*)?>.+?</(?i:math)\s*>` +
		`)`
}

// Scanner detects math spans outside verbatim regions.
// It holds no mutable state and is safe for concurrent use.
type Scanner struct {
	cfg     Config
	math    *regexp2.Regexp
	exclude *regexp2.Regexp
}

// New compiles the scanner's patterns for cfg.
func New(cfg Config) *Scanner {
	excl, body := htmlExclusionPattern, anyBody
	opts := regexp2.RegexOptions(regexp2.IgnoreCase | regexp2.Singleline)
	if cfg.Syntax == SyntaxMarkdown {
		excl = fencedCodePattern + "|" + htmlExclusionPattern + "|" + inlineCodePattern + "|" + indentedCodePattern
		body = paragraphBody
		opts |= regexp2.Multiline
	}

	s := &Scanner{
		cfg:     cfg,
		math:    regexp2.MustCompile(mathPattern(body), regexp2.Singleline),
		exclude: regexp2.MustCompile(excl, opts),
	}
	if cfg.MatchTimeout > 0 {
		s.math.MatchTimeout = cfg.MatchTimeout
		s.exclude.MatchTimeout = cfg.MatchTimeout
	}
	return s
}

// Config returns the scanner's configuration.
func (s *Scanner) Config() Config {
	return s.cfg
}

// Detect reports whether content holds at least one math span outside
// verbatim regions. A timeout counts as no match.
func (s *Scanner) Detect(content string) bool {
	spans, err := s.Scan(content)
	return err == nil && len(spans) > 0
}

// ScanAndWrap wraps every math span outside verbatim regions in
// <wrapTag>...</wrapTag> and reports whether any span was wrapped.
// An empty wrapTag only detects: content is returned as is.
// On timeout content is returned unchanged with false.
func (s *Scanner) ScanAndWrap(content, wrapTag string) (string, bool) {
	if wrapTag == "" {
		return content, s.Detect(content)
	}

	spans, err := s.Scan(content)
	if err != nil || len(spans) == 0 {
		return content, false
	}

	open, closing := "<"+wrapTag+">", "</"+wrapTag+">"
	var b strings.Builder
	b.Grow(len(content) + len(spans)*(len(open)+len(closing)))

	last := 0
	for _, sp := range spans {
		b.WriteString(content[last:sp.Start])
		b.WriteString(open)
		b.WriteString(content[sp.Start:sp.End])
		b.WriteString(closing)
		last = sp.End
	}
	b.WriteString(content[last:])
	return b.String(), true
}

// Scan returns the math spans of content that lie outside verbatim regions,
// in ascending order of Start.
func (s *Scanner) Scan(content string) ([]MathSpan, error) {
	if content == "" {
		return nil, nil
	}

	runes := []rune(content)
	excluded, err := s.exclusions(runes)
	if err != nil {
		return nil, err
	}

	offs := newByteOffsets(content)
	var spans []MathSpan
	m, err := s.math.FindRunesMatch(runes)
	for m != nil && err == nil {
		first, last := m.Index, m.Index+m.Length-1

		// Both boundaries are checked; partial overlap counts as excluded.
		// The search resumes after the verbatim region so that a delimiter
		// inside it cannot pair with one outside.
		if sp, ok := spanAt(excluded, first); ok {
			m, err = s.math.FindRunesMatchStartingAt(runes, sp.End)
			continue
		}
		if sp, ok := spanAt(excluded, last); ok {
			m, err = s.math.FindRunesMatchStartingAt(runes, sp.End)
			continue
		}

		spans = append(spans, classify(m, offs.at(first), offs.at(m.Index+m.Length)))
		m, err = s.math.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchTimeout, err)
	}
	return spans, nil
}

// Exclusions returns the verbatim regions of content as byte ranges sorted by Start.
func (s *Scanner) Exclusions(content string) ([]Span, error) {
	if content == "" {
		return nil, nil
	}

	spans, err := s.exclusions([]rune(content))
	if err != nil {
		return nil, err
	}
	offs := newByteOffsets(content)
	for i := range spans {
		spans[i] = Span{Start: offs.at(spans[i].Start), End: offs.at(spans[i].End)}
	}
	return spans, nil
}

// exclusions returns verbatim regions as rune ranges sorted by Start.
func (s *Scanner) exclusions(runes []rune) ([]Span, error) {
	var spans []Span
	m, err := s.exclude.FindRunesMatch(runes)
	for ; m != nil && err == nil; m, err = s.exclude.FindNextMatch(m) {
		spans = append(spans, Span{Start: m.Index, End: m.Index + m.Length})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMatchTimeout, err)
	}

	// A single forward scan yields ordered spans already; spanAt depends on it.
	slices.SortFunc(spans, func(a, b Span) int { return a.Start - b.Start })
	return spans, nil
}

func classify(m *regexp2.Match, start, end int) MathSpan {
	sp := MathSpan{Start: start, End: end, Kind: KindMarkup}
	if g := m.GroupByName("dollar"); g != nil && len(g.Captures) > 0 {
		sp.Kind = KindInline
		if g.Length == 2 {
			sp.Kind = KindDisplay
		}
		return sp
	}
	if g := m.GroupByName("env"); g != nil && len(g.Captures) > 0 {
		sp.Kind = KindEnvironment
		sp.Env = g.String()
	}
	return sp
}

// byteOffsets maps regexp2 rune indexes to byte offsets.
// A nil table means the content is ASCII and indexes are already byte offsets.
type byteOffsets []int

func newByteOffsets(s string) byteOffsets {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return nil
	}

	offs := make(byteOffsets, 0, len(s)+1)
	for i := range s {
		offs = append(offs, i)
	}
	return append(offs, len(s))
}

func (b byteOffsets) at(runeIndex int) int {
	if b == nil {
		return runeIndex
	}
	return b[runeIndex]
}
