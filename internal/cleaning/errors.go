package cleaning

import "errors"

var (
	ErrNilTable         = errors.New("input table is nil")
	ErrInvalidThreshold = errors.New("threshold out of range")
)
