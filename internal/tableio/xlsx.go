package tableio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/GriffinCanCode/tabclean/internal/table"
)

// ErrNoSheet is returned when a workbook has no worksheet to read.
var ErrNoSheet = errors.New("workbook has no such sheet")

const defaultSheet = "Sheet1"

// ReadXLSX decodes one worksheet of an XLSX workbook. The first row is the
// header. Cell values are read raw, so numbers keep full precision, and go
// through the same missing-marker and kind inference rules as CSV. Trailing
// rows with no cells at all are not part of the sheet.
func ReadXLSX(r io.Reader, opts ReadOptions) (*table.Table, error) {
	data, err := readRaw(r)
	if err != nil {
		return nil, err
	}
	return decodeXLSX(data, opts)
}

func decodeXLSX(data []byte, opts ReadOptions) (*table.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xlsx open error: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheet
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("xlsx read error: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	// GetRows trims trailing empty cells; pad every row to the header width
	width := len(rows[0])
	for i, row := range rows[1:] {
		if len(row) > width {
			return nil, fmt.Errorf("xlsx row %d has %d cells, header has %d", i+2, len(row), width)
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i+1] = padded
		}
	}
	return decodeRecords(rows, opts)
}

// WriteXLSX encodes t as a single-sheet workbook. Numeric cells are stored
// as numbers and missing cells are left empty.
func WriteXLSX(w io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, t.Width())
	for j, name := range t.Names() {
		header[j] = name
	}
	if err := f.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx write error: %w", err)
	}

	cols := t.Columns()
	row := make([]interface{}, len(cols))
	for r := 0; r < t.Rows(); r++ {
		for j, c := range cols {
			v := c.Value(r)
			switch {
			case v.IsMissing():
				row[j] = nil
			case c.IsNumeric():
				x, _ := v.Float()
				row[j] = x
			default:
				s, _ := v.Text()
				row[j] = s
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(defaultSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx write error: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write error: %w", err)
	}
	return nil
}
