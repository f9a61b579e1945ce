package table

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the declared type of a column.
type Kind uint8

const (
	// KindNumeric columns hold float64 values.
	KindNumeric Kind = iota + 1
	// KindOther columns hold text and are ignored by numeric steps.
	KindOther
)

// String returns the kind name used in encoded tables.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind converts an encoded kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "numeric", "number", "float":
		return KindNumeric, nil
	case "other", "text", "string":
		return KindOther, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Value is a single cell. The zero Value is missing.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric cell. NaN is treated as missing.
func Num(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{kind: KindNumeric, num: v}
}

// Str returns a text cell.
func Str(s string) Value {
	return Value{kind: KindOther, str: s}
}

// Null returns the missing marker.
func Null() Value {
	return Value{}
}

// IsMissing reports whether the cell has no recorded value.
func (v Value) IsMissing() bool {
	return v.kind == 0
}

// Kind returns the kind of a present value, or 0 when missing.
func (v Value) Kind() Kind {
	return v.kind
}

// Float returns the numeric payload.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumeric
}

// Text returns the text payload.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindOther
}

// String formats the cell for display and CSV output. Missing cells are empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindOther:
		return v.str
	default:
		return ""
	}
}
