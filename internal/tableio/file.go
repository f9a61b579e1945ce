package tableio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/GriffinCanCode/tabclean/internal/table"
)

// Decode reads a table from r in the given format. An empty format is
// sniffed from the content.
func Decode(r io.Reader, format Format, opts ReadOptions) (*table.Table, error) {
	raw, err := readRaw(r)
	if err != nil {
		return nil, err
	}
	if format == "" {
		if f, err := DetectFormat(raw); err == nil && f == FormatXLSX {
			format = FormatXLSX
		}
	}
	if format == FormatXLSX {
		return decodeXLSX(raw, opts)
	}

	data, err := textOf(raw)
	if err != nil {
		return nil, err
	}
	if format == "" {
		if format, err = DetectFormat(data); err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatCSV:
		return decodeCSV(data, opts)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Encode writes t to w in the given format.
func Encode(w io.Writer, t *table.Table, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSON:
		return WriteJSON(w, t)
	case FormatXLSX:
		return WriteXLSX(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ReadFile loads a table from path. The format comes from the extension when
// it is recognised and from the content otherwise. A .tsv file defaults to
// tab-delimited fields.
func ReadFile(path string, opts ReadOptions) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format, _ := FormatFromPath(path)
	if opts.Comma == 0 && strings.HasSuffix(strings.TrimSuffix(strings.ToLower(path), ".gz"), ".tsv") {
		opts.Comma = '\t'
	}

	t, err := Decode(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteFile stores t at path, creating parent directories. An empty format
// is derived from the extension, defaulting to CSV. A .gz suffix compresses
// the output.
func WriteFile(path string, t *table.Table, format Format) (err error) {
	if format == "" {
		var ok bool
		if format, ok = FormatFromPath(path); !ok {
			format = FormatCSV
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	if isGzipPath(path) {
		zw := gzip.NewWriter(f)
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}

	return Encode(w, t, format)
}

// WriteReportFile stores a report as JSON at path.
func WriteReportFile(path string, report interface{}) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteReport(f, report)
}
