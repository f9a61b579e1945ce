package table

import (
	"fmt"
	"strings"
)

// Table is an ordered set of uniquely named columns of equal length.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// New builds a table from columns. Column names must be unique and every
// column must have the same length. A table with no columns has zero rows.
func New(columns ...*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if c == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilColumn, i)
		}
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, expected %d",
				ErrRowCountMismatch, c.name, c.Len(), t.rows)
		}
		t.index[c.name] = len(t.columns)
		t.columns = append(t.columns, c.clone())
	}
	return t, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{index: map[string]int{}}
}

// Rows returns the row count.
func (t *Table) Rows() int { return t.rows }

// Width returns the column count.
func (t *Table) Width() int { return len(t.columns) }

// Columns returns the columns in order. The slice is a copy; the columns
// themselves are immutable through their exported API.
func (t *Table) Columns() []*Column {
	cp := make([]*Column, len(t.columns))
	copy(cp, t.columns)
	return cp
}

// ColumnAt returns the i-th column.
func (t *Table) ColumnAt(i int) *Column { return t.columns[i] }

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

// NumericColumns returns the positions of KindNumeric columns.
func (t *Table) NumericColumns() []int {
	var idx []int
	for i, c := range t.columns {
		if c.kind == KindNumeric {
			idx = append(idx, i)
		}
	}
	return idx
}

// SelectColumns returns a new table holding the given columns in the given order.
func (t *Table) SelectColumns(idx []int) (*Table, error) {
	cols := make([]*Column, len(idx))
	for i, j := range idx {
		if j < 0 || j >= len(t.columns) {
			return nil, fmt.Errorf("%w: %d (width %d)", ErrColumnOutOfRange, j, len(t.columns))
		}
		cols[i] = t.columns[j]
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		// keep the row count of a column-less projection
		out.rows = t.rows
	}
	return out, nil
}

// SelectRows returns a new table holding the given rows, in the given order,
// across every column.
func (t *Table) SelectRows(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.rows {
			return nil, fmt.Errorf("%w: %d (rows %d)", ErrRowOutOfRange, r, t.rows)
		}
	}
	out := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.columns)),
		rows:    len(rows),
	}
	for i, c := range t.columns {
		taken, err := c.Take(rows)
		if err != nil {
			return nil, err
		}
		out.columns[i] = taken
		out.index[c.name] = i
	}
	return out, nil
}

// ReplaceColumn returns a new table with the column named c.Name() replaced by c.
func (t *Table) ReplaceColumn(c *Column) (*Table, error) {
	i, ok := t.index[c.name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, c.name)
	}
	if c.Len() != t.rows {
		return nil, fmt.Errorf("%w: %q has %d rows, expected %d",
			ErrRowCountMismatch, c.name, c.Len(), t.rows)
	}
	out := t.Clone()
	out.columns[i] = c.clone()
	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   make(map[string]int, len(t.columns)),
		rows:    t.rows,
	}
	for i, c := range t.columns {
		out.columns[i] = c.clone()
		out.index[c.name] = i
	}
	return out
}

// Equal reports whether both tables have the same columns, in the same
// order, with identical cells.
func (t *Table) Equal(o *Table) bool {
	if t.rows != o.rows || len(t.columns) != len(o.columns) {
		return false
	}
	for i := range t.columns {
		if !t.columns[i].Equal(o.columns[i]) {
			return false
		}
	}
	return true
}

// String renders the table as tab-separated text, missing cells shown as NA.
func (t *Table) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Names(), "\t"))
	b.WriteByte('\n')
	for r := 0; r < t.rows; r++ {
		for i, c := range t.columns {
			if i > 0 {
				b.WriteByte('\t')
			}
			if c.IsMissing(r) {
				b.WriteString("NA")
			} else {
				b.WriteString(c.values[r].String())
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
