// Package mathscan finds TeX and MathML regions in a document while skipping
// verbatim regions such as <pre> and <code> blocks.
//
// A Scanner is built once from an immutable Config and may be shared by any
// number of goroutines. Every operation is a pure function of its input:
//
//	s := mathscan.New(mathscan.Config{Syntax: mathscan.SyntaxHTML})
//	out, found := s.ScanAndWrap(html, "mathjax")
//
// Four delimiter shapes are recognized, tried in this order at each position:
//
//  1. display math, $$...$$
//  2. inline math, $...$
//  3. environments, \begin{name}...\end{name} (names must match)
//  4. MathML, <math ...>...</math>
//
// A dollar preceded by a backslash is a literal dollar. With SyntaxMarkdown a
// dollar span ends at the paragraph: it never crosses a blank line. Matches whose first or
// last byte falls inside an exclusion span are left untouched.
package mathscan
