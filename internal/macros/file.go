package macros

import (
	"bufio"
	"iter"
	"os"
)

// MaxLineSize limits a single line of a macro file (default 1MB).
var MaxLineSize = 1 << 20

// ParseFile returns a lazy sequence of the definitions in path, in line order.
// Lines outside the \newcommand family are skipped. A malformed definition
// yields a *MalformedMacroError and the sequence continues. A file that cannot
// be opened or read yields a *FileAccessError and the sequence ends.
// The file is closed when the sequence ends or the consumer stops early.
func ParseFile(path string) iter.Seq2[Definition, error] {
	return func(yield func(Definition, error) bool) {
		f, err := os.Open(path) // #nosec G304 -- macro file paths are user-provided
		if err != nil {
			yield(Definition{}, &FileAccessError{Path: path, Err: err})
			return
		}
		defer func() { _ = f.Close() }()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

		line := 0
		for sc.Scan() {
			line++
			text := sc.Text()
			if !IsDefinitionLine(text) {
				continue
			}
			if !yield(ParseDefinition(text, path, line)) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Definition{}, &FileAccessError{Path: path, Err: err})
		}
	}
}
