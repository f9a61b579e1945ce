package table

import "errors"

var (
	ErrEmptyName        = errors.New("column name required")
	ErrNilColumn        = errors.New("nil column")
	ErrUnknownKind      = errors.New("unknown column kind")
	ErrTypeMismatch     = errors.New("value does not match column kind")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrRowCountMismatch = errors.New("columns have different row counts")
	ErrRowOutOfRange    = errors.New("row index out of range")
	ErrColumnOutOfRange = errors.New("column index out of range")
	ErrColumnNotFound   = errors.New("column not found")
	ErrFillKindMismatch = errors.New("fill value does not match column kind")
)
