// Package stats provides the column aggregates used by the cleaning pipeline.
//
// Built on gonum.org/v1/gonum/stat. Every function works on the present
// values of a column; callers strip missing cells before calling in.
// Standard deviations are population deviations (divisor n).
package stats

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmpty     = errors.New("no values")
	ErrNonFinite = errors.New("non-finite value")
)

// ValidateNumbers rejects NaN and infinite values.
func ValidateNumbers(xs []float64, name string) error {
	for i, x := range xs {
		if gomath.IsNaN(x) || gomath.IsInf(x, 0) {
			return fmt.Errorf("%w in %s at index %d: %v", ErrNonFinite, name, i, x)
		}
	}
	return nil
}

// Mean returns the arithmetic mean.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmpty
	}
	return stat.Mean(xs, nil), nil
}

// PopMeanStdDev returns the mean and population standard deviation.
func PopMeanStdDev(xs []float64) (mean, std float64, err error) {
	if len(xs) == 0 {
		return 0, 0, ErrEmpty
	}
	if isConstant(xs) {
		// rounding in the mean can leave a tiny nonzero deviation otherwise
		return xs[0], 0, nil
	}
	mean, std = stat.PopMeanStdDev(xs, nil)
	return mean, std, nil
}

// Median returns the middle value of xs, averaging the two middle values when
// len(xs) is even. xs is not modified.
func Median(xs []float64) (float64, error) {
	n := len(xs)
	if n == 0 {
		return 0, ErrEmpty
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 0 {
		// halve first so values near MaxFloat64 do not overflow
		return sorted[mid-1]/2 + sorted[mid]/2, nil
	}
	return sorted[mid], nil
}

// ZScore returns (x - mean) / std, or 0 when std is 0.
func ZScore(x, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (x - mean) / std
}

func isConstant(xs []float64) bool {
	for _, x := range xs[1:] {
		if x != xs[0] {
			return false
		}
	}
	return true
}

// ZScores standardizes xs against its own population mean and deviation.
// A constant slice yields all zeros.
func ZScores(xs []float64) ([]float64, error) {
	mean, std, err := PopMeanStdDev(xs)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = ZScore(x, mean, std)
	}
	return out, nil
}
