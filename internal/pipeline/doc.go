// Package pipeline implements the Markdown-to-HTML stage that hosts math detection.
//
// This package handles the stages around goldmark:
//   - Markdown preprocessing (line ending normalization)
//   - Math protection: math spans are swapped for placeholders before
//     goldmark runs, so Markdown escapes and emphasis never touch TeX
//   - Markdown to HTML conversion via goldmark (GFM, syntax highlighting)
//   - Math restoration, wrapping each span in a configurable marker tag
//   - CSS injection for syntax highlighting in standalone documents
//
// Math detection itself lives in internal/mathscan. Rendering the math is left
// to a client-side script and is not part of this package.
package pipeline
