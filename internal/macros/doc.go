// Package macros parses TeX macro definition files and builds a deterministic
// macro table for a client-side math renderer.
//
// Definitions are recognized one per line in the \newcommand family:
//
//	\newcommand{\pp}[2]{\frac{\partial #1}{\partial #2}}
//	\renewcommand\RR{\mathbb{R}}
//	\providecommand*{\norm}[2][2]{\lVert #2 \rVert_{#1}}
//
// Bodies are passed through verbatim. When several definitions share a name,
// the last one in resolution order (file order, then line order) wins, and the
// table keeps the position where the name first appeared.
package macros
