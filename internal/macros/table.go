package macros

import "iter"

// Table maps macro names to their surviving definitions.
// Iteration order is the order in which each name first appeared.
// A Table is immutable once built.
type Table struct {
	defs  []Definition
	index map[string]int
}

// NewTable builds a table from defs in resolution order, keeping the last
// definition of each name at the position of its first appearance.
func NewTable(defs []Definition) *Table {
	kept := Dedupe(defs)
	index := make(map[string]int, len(kept))
	for i, d := range kept {
		index[d.Name] = i
	}
	return &Table{defs: kept, index: index}
}

// Len returns the number of distinct macro names.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

// Get returns the definition for name.
func (t *Table) Get(name string) (Definition, bool) {
	if t == nil {
		return Definition{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Definition{}, false
	}
	return t.defs[i], true
}

// Names returns macro names in first-appearance order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.defs))
	for i, d := range t.defs {
		names[i] = d.Name
	}
	return names
}

// Definitions returns a copy of the surviving definitions in table order.
func (t *Table) Definitions() []Definition {
	if t == nil {
		return nil
	}
	return append([]Definition(nil), t.defs...)
}

// All iterates name/definition pairs in table order.
func (t *Table) All() iter.Seq2[string, Definition] {
	return func(yield func(string, Definition) bool) {
		if t == nil {
			return
		}
		for _, d := range t.defs {
			if !yield(d.Name, d) {
				return
			}
		}
	}
}

// Dedupe returns one definition per name: the last occurrence in defs,
// placed where the name first occurred. Source files are not a tiebreaker.
func Dedupe(defs []Definition) []Definition {
	pos := make(map[string]int, len(defs))
	out := make([]Definition, 0, len(defs))
	for _, d := range defs {
		if i, ok := pos[d.Name]; ok {
			out[i] = d
			continue
		}
		pos[d.Name] = len(out)
		out = append(out, d)
	}
	return out
}
