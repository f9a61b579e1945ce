package tableio

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/tabclean/internal/table"
)

type jsonTable struct {
	Columns []jsonColumn `json:"columns"`
}

type jsonColumn struct {
	Name   string        `json:"name"`
	Kind   string        `json:"kind,omitempty"`
	Values []interface{} `json:"values"`
}

// ReadJSON decodes a columnar JSON document. Null values are missing. A
// column without "kind" is numeric when every non-null value is a number.
func ReadJSON(r io.Reader) (*table.Table, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*table.Table, error) {
	var doc jsonTable
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json parse error: %w", err)
	}

	columns := make([]*table.Column, len(doc.Columns))
	for i, jc := range doc.Columns {
		kind, err := jsonKind(jc)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", jc.Name, err)
		}

		values := make([]table.Value, len(jc.Values))
		for r, raw := range jc.Values {
			v, err := jsonValue(raw, kind)
			if err != nil {
				return nil, fmt.Errorf("%w: column %q row %d", err, jc.Name, r)
			}
			values[r] = v
		}

		col, err := table.NewColumn(jc.Name, kind, values)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	return table.New(columns...)
}

func jsonKind(jc jsonColumn) (table.Kind, error) {
	if jc.Kind != "" {
		return table.ParseKind(jc.Kind)
	}
	for _, raw := range jc.Values {
		if raw == nil {
			continue
		}
		if _, ok := raw.(float64); !ok {
			return table.KindOther, nil
		}
	}
	return table.KindNumeric, nil
}

func jsonValue(raw interface{}, kind table.Kind) (table.Value, error) {
	if raw == nil {
		return table.Null(), nil
	}
	switch v := raw.(type) {
	case float64:
		if kind == table.KindNumeric {
			return table.Num(v), nil
		}
	case string:
		if kind == table.KindOther {
			return table.Str(v), nil
		}
	}
	return table.Value{}, fmt.Errorf("%w: %v is not %s", table.ErrTypeMismatch, raw, kind)
}

// WriteJSON encodes t as an indented columnar document.
func WriteJSON(w io.Writer, t *table.Table) error {
	doc := jsonTable{Columns: make([]jsonColumn, 0, t.Width())}
	for _, c := range t.Columns() {
		jc := jsonColumn{
			Name:   c.Name(),
			Kind:   c.Kind().String(),
			Values: make([]interface{}, c.Len()),
		}
		for r := 0; r < c.Len(); r++ {
			switch v := c.Value(r); {
			case v.IsMissing():
				jc.Values[r] = nil
			case c.IsNumeric():
				x, _ := v.Float()
				jc.Values[r] = x
			default:
				s, _ := v.Text()
				jc.Values[r] = s
			}
		}
		doc.Columns = append(doc.Columns, jc)
	}

	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json encode error: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("json write error: %w", err)
	}
	return nil
}

// WriteReport encodes any report value as indented JSON.
func WriteReport(w io.Writer, report interface{}) error {
	data, err := sonic.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("report encode error: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("report write error: %w", err)
	}
	return nil
}
