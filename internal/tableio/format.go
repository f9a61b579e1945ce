package tableio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies a table encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	ErrUnknownFormat = errors.New("unknown table format")
	ErrNoHeader      = errors.New("csv input has no header row")
	ErrSchemaColumn  = errors.New("schema names a column not in the input")
)

// ParseFormat accepts "csv", "json" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath derives a format from the file extension, ignoring a
// trailing .gz.
func FormatFromPath(path string) (Format, bool) {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(base, ".gz")
	switch filepath.Ext(base) {
	case ".csv", ".tsv", ".txt":
		return FormatCSV, true
	case ".json":
		return FormatJSON, true
	case ".xlsx":
		return FormatXLSX, true
	default:
		return "", false
	}
}

// DetectFormat sniffs content.
func DetectFormat(data []byte) (Format, error) {
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		switch {
		case m.Is(xlsxMIME):
			return FormatXLSX, nil
		case m.Is("application/json"):
			return FormatJSON, nil
		case m.Is("text/csv"), m.Is("text/tab-separated-values"), m.Is("text/plain"):
			return FormatCSV, nil
		}
	}
	return "", fmt.Errorf("%w: detected %s", ErrUnknownFormat, mtype.String())
}

// isGzipPath reports whether output to path should be gzip compressed.
func isGzipPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}
