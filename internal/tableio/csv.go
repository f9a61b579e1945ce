package tableio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/tabclean/internal/table"
)

// DefaultMissingMarkers are the cell texts read as missing.
var DefaultMissingMarkers = []string{"", "NA", "N/A", "NaN", "null"}

// Schema forces the kind of named columns instead of inferring it.
type Schema struct {
	Numeric []string `yaml:"numeric" toml:"numeric"`
	Text    []string `yaml:"text" toml:"text"`
}

func (s Schema) kinds() map[string]table.Kind {
	kinds := make(map[string]table.Kind, len(s.Numeric)+len(s.Text))
	for _, name := range s.Numeric {
		kinds[name] = table.KindNumeric
	}
	for _, name := range s.Text {
		kinds[name] = table.KindOther
	}
	return kinds
}

// ReadOptions controls CSV decoding.
type ReadOptions struct {
	Schema Schema
	// MissingMarkers replaces DefaultMissingMarkers when non-nil.
	MissingMarkers []string
	// Comma is the field delimiter; 0 means ','.
	Comma rune
	// Sheet selects the worksheet of an XLSX workbook; empty means the first.
	Sheet string
}

func (o ReadOptions) isMissing(cell string) bool {
	markers := o.MissingMarkers
	if markers == nil {
		markers = DefaultMissingMarkers
	}
	cell = strings.TrimSpace(cell)
	for _, m := range markers {
		if strings.EqualFold(cell, m) {
			return true
		}
	}
	return false
}

// ReadCSV decodes a CSV document with a header row.
func ReadCSV(r io.Reader, opts ReadOptions) (*table.Table, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return decodeCSV(data, opts)
}

func decodeCSV(data []byte, opts ReadOptions) (*table.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv parse error: %w", err)
	}
	return decodeRecords(records, opts)
}

// decodeRecords builds a table from a header record followed by data
// records of the same width.
func decodeRecords(records [][]string, opts ReadOptions) (*table.Table, error) {
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	headers := records[0]
	rows := records[1:]

	kinds := opts.Schema.kinds()
	for name := range kinds {
		if !contains(headers, name) {
			return nil, fmt.Errorf("%w: %q", ErrSchemaColumn, name)
		}
	}

	columns := make([]*table.Column, len(headers))
	for j, name := range headers {
		name = strings.TrimSpace(name)
		cells := make([]string, len(rows))
		for i, rec := range rows {
			cells[i] = rec[j]
		}

		kind, forced := kinds[name]
		if !forced {
			kind = inferKind(cells, opts)
		}
		col, err := buildColumn(name, kind, cells, opts)
		if err != nil {
			return nil, err
		}
		columns[j] = col
	}

	return table.New(columns...)
}

// inferKind returns KindNumeric when every present cell parses as a float.
// A column with rows but no present cells is numeric.
func inferKind(cells []string, opts ReadOptions) table.Kind {
	if len(cells) == 0 {
		return table.KindOther
	}
	for _, cell := range cells {
		if opts.isMissing(cell) {
			continue
		}
		if _, err := parseFloat(cell); err != nil {
			return table.KindOther
		}
	}
	return table.KindNumeric
}

func buildColumn(name string, kind table.Kind, cells []string, opts ReadOptions) (*table.Column, error) {
	values := make([]table.Value, len(cells))
	for i, cell := range cells {
		if opts.isMissing(cell) {
			values[i] = table.Null()
			continue
		}
		if kind == table.KindOther {
			values[i] = table.Str(cell)
			continue
		}
		x, err := parseFloat(cell)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q row %d: %q is not a number",
				table.ErrTypeMismatch, name, i+1, cell)
		}
		values[i] = table.Num(x)
	}
	return table.NewColumn(name, kind, values)
}

func parseFloat(cell string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// overflow still yields ±Inf, left for the statistics layer to reject
			return x, nil
		}
		return 0, err
	}
	return x, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) == s {
			return true
		}
	}
	return false
}

// WriteCSV encodes t with a header row. Missing cells are written empty.
func WriteCSV(w io.Writer, t *table.Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Names()); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}

	cols := t.Columns()
	row := make([]string, len(cols))
	for r := 0; r < t.Rows(); r++ {
		for j, c := range cols {
			row[j] = c.Value(r).String()
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv flush error: %w", err)
	}
	return nil
}
