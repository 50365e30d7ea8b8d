// Package table implements the column-oriented posterior sample table shared
// by every pipeline stage. Columns are addressed by name and all columns of
// one table hold the same number of draws.
package table

import (
	"fmt"
	"slices"
)

// Table is an ordered set of named float64 columns of equal length.
type Table struct {
	order []string
	cols  map[string][]float64
}

// New allocates an empty Table.
func New() *Table {
	return &Table{cols: make(map[string][]float64)}
}

// Len returns the number of draws per column (0 for an empty table).
func (t *Table) Len() int {
	if len(t.order) == 0 {
		return 0
	}
	return len(t.cols[t.order[0]])
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	return slices.Clone(t.order)
}

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Set stores a column, replacing any existing column of the same name while
// keeping its position. The column length must match the table's draw count.
func (t *Table) Set(name string, values []float64) error {
	if n := t.Len(); len(t.order) > 0 && len(values) != n {
		return &ShapeMismatchError{Column: name, Want: n, Got: len(values)}
	}
	if !t.Has(name) {
		t.order = append(t.order, name)
	}
	t.cols[name] = values
	return nil
}

// SetConst stores a column with every draw set to v. The table must already
// hold at least one column so the length is defined.
func (t *Table) SetConst(name string, v float64) error {
	if len(t.order) == 0 {
		return &MissingColumnError{Column: name}
	}
	values := make([]float64, t.Len())
	for i := range values {
		values[i] = v
	}
	return t.Set(name, values)
}

// Column returns the named column. The returned slice is shared with the
// table; callers that mutate it must copy first.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, &MissingColumnError{Column: name}
	}
	return col, nil
}

// Copy duplicates the src column under dst.
func (t *Table) Copy(dst, src string) error {
	col, err := t.Column(src)
	if err != nil {
		return err
	}
	return t.Set(dst, slices.Clone(col))
}

// Combine stores fn(a[i], b[i]) for every draw under dst.
func (t *Table) Combine(dst, a, b string, fn func(a, b float64) float64) error {
	ca, err := t.Column(a)
	if err != nil {
		return err
	}
	cb, err := t.Column(b)
	if err != nil {
		return err
	}
	if len(ca) != len(cb) {
		return &ShapeMismatchError{Column: b, Want: len(ca), Got: len(cb)}
	}
	out := make([]float64, len(ca))
	for i := range ca {
		out[i] = fn(ca[i], cb[i])
	}
	return t.Set(dst, out)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New()
	for _, name := range t.order {
		c.order = append(c.order, name)
		c.cols[name] = slices.Clone(t.cols[name])
	}
	return c
}

// Reorder rewrites the column order: the given names first (those present, in
// the given order), then the remaining columns alphabetically.
func (t *Table) Reorder(first []string) {
	seen := make(map[string]struct{}, len(first))
	order := make([]string, 0, len(t.order))
	for _, name := range first {
		if t.Has(name) {
			order = append(order, name)
			seen[name] = struct{}{}
		}
	}
	var rest []string
	for _, name := range t.order {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	t.order = append(order, rest...)
}

// MissingColumnError reports a required column absent from a table.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

// ShapeMismatchError reports two columns of differing length combined
// pointwise, or a column whose length disagrees with its table.
type ShapeMismatchError struct {
	Column string
	Want   int
	Got    int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("column %q has %d draws, want %d", e.Column, e.Got, e.Want)
}
