package macros

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxArgs is the largest parameter count TeX accepts (#1 through #9).
const MaxArgs = 9

var (
	// Definition commands, with optional star. \b rejects \newcommandfoo.
	definitionCommand = regexp.MustCompile(`^\\(newcommand|renewcommand|providecommand)\b\*?`)

	// Control sequence name: letters, or a single non-letter character.
	controlSequence = regexp.MustCompile(`^\\([A-Za-z]+|[^A-Za-z\s])`)
)

// Definition is one parsed macro definition.
type Definition struct {
	Name    string // without the leading backslash
	Body    string // verbatim text between the outer braces
	Args    string // declared parameter count; empty when none
	Default string // default for the first parameter, [N][default]
	File    string
	Line    int
}

// ArgCount returns the declared parameter count, or 0 when none was declared.
func (d Definition) ArgCount() int {
	n, _ := strconv.Atoi(d.Args)
	return n
}

// HasDefault reports whether the first parameter is optional.
func (d Definition) HasDefault() bool {
	return d.Args != "" && d.Default != ""
}

// String formats the definition as a \newcommand statement.
func (d Definition) String() string {
	var b strings.Builder
	b.WriteString(`\newcommand{\`)
	b.WriteString(d.Name)
	b.WriteString("}")
	if d.Args != "" {
		b.WriteString("[" + d.Args + "]")
		if d.Default != "" {
			b.WriteString("[" + d.Default + "]")
		}
	}
	b.WriteString("{" + d.Body + "}")
	return b.String()
}

// IsDefinitionLine reports whether line starts with a \newcommand-family command.
// Such lines are parsed; any other line is skipped.
func IsDefinitionLine(line string) bool {
	return definitionCommand.MatchString(strings.TrimSpace(line))
}

// ParseDefinition parses one definition statement. file and line record
// provenance. It returns a *MalformedMacroError when raw is not one of
// \newcommand{\name}{body} or \newcommand{\name}[N]{body}, with the optional
// star, brace-less name and [default] variants.
func ParseDefinition(raw, file string, line int) (Definition, error) {
	fail := func(reason string) (Definition, error) {
		return Definition{}, &MalformedMacroError{File: file, Line: line, Raw: raw, Reason: reason}
	}

	s := strings.TrimSpace(raw)
	cmd := definitionCommand.FindString(s)
	if cmd == "" {
		return fail("not a \\newcommand statement")
	}
	rest := strings.TrimLeft(s[len(cmd):], " \t")

	name, rest, ok := readName(rest)
	if !ok {
		return fail("missing macro name")
	}
	rest = strings.TrimLeft(rest, " \t")

	def := Definition{Name: name, File: file, Line: line}

	if strings.HasPrefix(rest, "[") {
		var count string
		count, rest, ok = readBracket(rest)
		if !ok {
			return fail("unterminated argument count")
		}
		count = strings.TrimSpace(count)
		n, err := strconv.Atoi(count)
		if err != nil {
			return fail("non-numeric argument count " + strconv.Quote(count))
		}
		if n < 0 || n > MaxArgs {
			return fail("argument count " + count + " out of range 0-9")
		}
		def.Args = count

		rest = strings.TrimLeft(rest, " \t")
		if strings.HasPrefix(rest, "[") {
			def.Default, rest, ok = readBracket(rest)
			if !ok {
				return fail("unterminated default argument")
			}
			rest = strings.TrimLeft(rest, " \t")
		}
	}

	if !strings.HasPrefix(rest, "{") {
		return fail("missing definition body")
	}
	def.Body, rest, ok = readGroup(rest)
	if !ok {
		return fail("unbalanced braces")
	}

	rest = strings.TrimSpace(rest)
	if rest != "" && !strings.HasPrefix(rest, "%") {
		return fail("unexpected text after definition")
	}
	return def, nil
}

// readName reads {\name} or \name and returns the name without its backslash.
func readName(s string) (name, rest string, ok bool) {
	if strings.HasPrefix(s, "{") {
		inner, after, ok := readGroup(s)
		if !ok {
			return "", s, false
		}
		inner = strings.TrimSpace(inner)
		m := controlSequence.FindStringSubmatch(inner)
		if m == nil || len(m[0]) != len(inner) {
			return "", s, false
		}
		return m[1], after, true
	}

	m := controlSequence.FindStringSubmatch(s)
	if m == nil {
		return "", s, false
	}
	return m[1], s[len(m[0]):], true
}

// readGroup reads a brace-balanced group starting at s[0] == '{' and returns
// its inner text. Escaped braces (\{ and \}) do not count.
func readGroup(s string) (inner, rest string, ok bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}

// readBracket reads [...] starting at s[0] == '[', skipping brackets nested in braces.
func readBracket(s string) (inner, rest string, ok bool) {
	depth := 0
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ']':
			if depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", s, false
}
