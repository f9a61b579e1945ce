package table

import "fmt"

// Column is a named, typed sequence of cells.
type Column struct {
	name   string
	kind   Kind
	values []Value
}

// NewColumn validates values against kind and returns a column that owns a
// copy of them.
func NewColumn(name string, kind Kind, values []Value) (*Column, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if kind != KindNumeric && kind != KindOther {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	for i, v := range values {
		if !v.IsMissing() && v.kind != kind {
			return nil, fmt.Errorf("%w: column %q row %d holds %s, declared %s",
				ErrTypeMismatch, name, i, v.kind, kind)
		}
	}

	cp := make([]Value, len(values))
	copy(cp, values)
	return &Column{name: name, kind: kind, values: cp}, nil
}

// NewNumeric is shorthand for NewColumn(name, KindNumeric, values).
func NewNumeric(name string, values ...Value) (*Column, error) {
	return NewColumn(name, KindNumeric, values)
}

// NewText is shorthand for NewColumn(name, KindOther, values).
func NewText(name string, values ...Value) (*Column, error) {
	return NewColumn(name, KindOther, values)
}

// FromFloats builds a numeric column with no missing cells.
func FromFloats(name string, xs []float64) (*Column, error) {
	values := make([]Value, len(xs))
	for i, x := range xs {
		values[i] = Num(x)
	}
	return NewColumn(name, KindNumeric, values)
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind { return c.kind }
func (c *Column) Len() int { return len(c.values) }

// IsNumeric reports whether the column is tagged KindNumeric.
func (c *Column) IsNumeric() bool { return c.kind == KindNumeric }

// Value returns the cell at row i.
func (c *Column) Value(i int) Value { return c.values[i] }

// IsMissing reports whether row i is missing.
func (c *Column) IsMissing(i int) bool { return c.values[i].IsMissing() }

// Float returns the numeric cell at row i.
func (c *Column) Float(i int) (float64, bool) { return c.values[i].Float() }

// Text returns the text cell at row i.
func (c *Column) Text(i int) (string, bool) { return c.values[i].Text() }

// Values returns a copy of all cells.
func (c *Column) Values() []Value {
	cp := make([]Value, len(c.values))
	copy(cp, c.values)
	return cp
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// MissingFraction returns MissingCount divided by Len. An empty column has a
// missing fraction of 0.
func (c *Column) MissingFraction() float64 {
	if len(c.values) == 0 {
		return 0
	}
	return float64(c.MissingCount()) / float64(len(c.values))
}

// Present returns the numeric payloads of non-missing cells in row order.
// It returns nil for KindOther columns.
func (c *Column) Present() []float64 {
	if c.kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if x, ok := v.Float(); ok {
			out = append(out, x)
		}
	}
	return out
}

// Fill returns a copy of the column with every missing cell replaced by v,
// along with the number of cells replaced.
func (c *Column) Fill(v Value) (*Column, int, error) {
	if v.IsMissing() || v.kind != c.kind {
		return nil, 0, fmt.Errorf("%w: column %q is %s", ErrFillKindMismatch, c.name, c.kind)
	}
	out := c.clone()
	filled := 0
	for i := range out.values {
		if out.values[i].IsMissing() {
			out.values[i] = v
			filled++
		}
	}
	return out, filled, nil
}

// Take returns a new column holding the given rows in the given order.
func (c *Column) Take(rows []int) (*Column, error) {
	values := make([]Value, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(c.values) {
			return nil, fmt.Errorf("%w: %d (len %d)", ErrRowOutOfRange, r, len(c.values))
		}
		values[i] = c.values[r]
	}
	return &Column{name: c.name, kind: c.kind, values: values}, nil
}

// Equal reports whether two columns have the same name, kind and cells.
func (c *Column) Equal(o *Column) bool {
	if c.name != o.name || c.kind != o.kind || len(c.values) != len(o.values) {
		return false
	}
	for i := range c.values {
		if c.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

func (c *Column) clone() *Column {
	return &Column{name: c.name, kind: c.kind, values: c.Values()}
}
