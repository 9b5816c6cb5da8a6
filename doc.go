// Package texmath finds TeX and MathML math in Markdown and HTML documents,
// wraps it in a marker element for a client-side renderer, and resolves TeX
// macro tables from definition files.
//
// # Quick Start
//
// Render Markdown to HTML with every math span wrapped:
//
//	r, err := texmath.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, texmath.Input{
//	    Markdown: "Euler: $e^{i\\pi} + 1 = 0$",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.HTML), result.HasMath)
//
// # Scanning
//
// A Scanner works on raw documents without converting them:
//
//	s := texmath.NewScanner(texmath.ScannerConfig{Syntax: texmath.SyntaxHTML})
//	out, found := s.ScanAndWrap(html, "mathjax")
//
// Math inside <pre> and <code> (and, for Markdown, fenced and indented code
// blocks and code spans) is never wrapped. A Scanner is immutable and safe for concurrent use.
//
// # Rendering Pipeline
//
//  1. Line ending normalization
//  2. Math protection: spans are swapped for placeholders so Markdown
//     emphasis and escapes cannot alter TeX
//  3. Markdown to HTML via goldmark (GFM, footnotes, syntax highlighting)
//  4. Math restoration inside the wrap tag, HTML-escaped unless raw HTML
//     is enabled
//  5. Highlight CSS injection for standalone documents
//
// # Macros
//
// ResolveMacros reads \newcommand definitions from files in order. When a name
// is defined more than once the last definition wins and keeps the position
// where the name first appeared:
//
//	table, err := texmath.ResolveMacros([]string{"base.tex", "chapter.tex"},
//	    texmath.WithWarningHandler(func(err error) { log.Println(err) }))
//	for name, def := range table.All() {
//	    fmt.Println(name, def.Args, def.Body)
//	}
//
// # Error Handling
//
// Sentinel errors can be checked with errors.Is:
//
//	if errors.Is(err, texmath.ErrEmptyMarkdown) { ... }
//	if errors.Is(err, texmath.ErrMacroFileAccess) { ... }
//
// Malformed macro lines are warnings, not errors: they reach the warning
// handler as *MalformedMacroError and resolution continues.
package texmath
