package macros

import (
	"slices"
	"testing"
)

func TestDedupe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []Definition
		want []Definition
	}{
		{
			name: "empty input",
			in:   nil,
			want: []Definition{},
		},
		{
			name: "repeated definitions in same file",
			in: []Definition{
				{Name: "circ", Body: `2 \pi R`, File: "/home/user/example.tex", Line: 1},
				{Name: "circ", Body: `2 \pi r`, File: "/home/user/example.tex", Line: 2},
			},
			want: []Definition{
				{Name: "circ", Body: `2 \pi r`, File: "/home/user/example.tex", Line: 2},
			},
		},
		{
			name: "repeated definitions in different files",
			in: []Definition{
				{Name: "circ", Body: `2 \pi R`, File: "/home/user/example1.tex", Line: 1},
				{Name: "circ", Body: `2 \pi r`, File: "/home/user/example2.tex", Line: 1},
			},
			want: []Definition{
				{Name: "circ", Body: `2 \pi r`, File: "/home/user/example2.tex", Line: 1},
			},
		},
		{
			name: "later file sorts before earlier file name",
			in: []Definition{
				{Name: "circ", Body: "first", File: "z.tex", Line: 9},
				{Name: "circ", Body: "second", File: "a.tex", Line: 1},
			},
			want: []Definition{
				{Name: "circ", Body: "second", File: "a.tex", Line: 1},
			},
		},
		{
			name: "last value keeps first position",
			in: []Definition{
				{Name: "x", Body: "a"},
				{Name: "y", Body: "b"},
				{Name: "x", Body: "c"},
			},
			want: []Definition{
				{Name: "x", Body: "c"},
				{Name: "y", Body: "b"},
			},
		},
		{
			name: "three-way interleaving",
			in: []Definition{
				{Name: "x", Body: "1"},
				{Name: "y", Body: "2"},
				{Name: "x", Body: "3"},
				{Name: "z", Body: "4"},
				{Name: "y", Body: "5"},
				{Name: "x", Body: "6"},
			},
			want: []Definition{
				{Name: "x", Body: "6"},
				{Name: "y", Body: "5"},
				{Name: "z", Body: "4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Dedupe(tt.in)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Dedupe() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDedupe_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := []Definition{{Name: "x", Body: "a"}, {Name: "x", Body: "b"}}
	_ = Dedupe(in)

	if in[0].Body != "a" || in[1].Body != "b" {
		t.Errorf("input modified: %+v", in)
	}
}

func TestTable(t *testing.T) {
	t.Parallel()

	table := NewTable([]Definition{
		{Name: "x", Body: "a", Line: 1},
		{Name: "y", Body: "b", Line: 2},
		{Name: "x", Body: "c", Line: 3},
	})

	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if got := table.Names(); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Names() = %v, want [x y]", got)
	}

	x, ok := table.Get("x")
	if !ok {
		t.Fatal("Get(x) ok = false, want true")
	}
	if x.Body != "c" || x.Line != 3 {
		t.Errorf("Get(x) = %+v, want body c from line 3", x)
	}

	if _, ok := table.Get("missing"); ok {
		t.Error("Get(missing) ok = true, want false")
	}

	var iterated []string
	for name, def := range table.All() {
		iterated = append(iterated, name+"="+def.Body)
	}
	if !slices.Equal(iterated, []string{"x=c", "y=b"}) {
		t.Errorf("All() = %v, want [x=c y=b]", iterated)
	}
}

func TestTable_DefinitionsIsCopy(t *testing.T) {
	t.Parallel()

	table := NewTable([]Definition{{Name: "x", Body: "a"}})
	defs := table.Definitions()
	defs[0].Body = "changed"

	if got, _ := table.Get("x"); got.Body != "a" {
		t.Errorf("table mutated through Definitions(): body = %q", got.Body)
	}
}

func TestTable_Nil(t *testing.T) {
	t.Parallel()

	var table *Table
	if table.Len() != 0 {
		t.Errorf("Len() = %d, want 0", table.Len())
	}
	if _, ok := table.Get("x"); ok {
		t.Error("Get() ok = true, want false")
	}
	if table.Names() != nil {
		t.Error("Names() != nil")
	}
	for range table.All() {
		t.Error("All() yielded on nil table")
	}
}
