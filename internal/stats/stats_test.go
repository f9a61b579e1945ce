package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	m, err := Mean([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.5, m)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
	}{
		{name: "odd", input: []float64{3, 1, 2}, expected: 2},
		{name: "even averages middle pair", input: []float64{1, 2, 3, 100}, expected: 2.5},
		{name: "single", input: []float64{7}, expected: 7},
		{name: "unsorted with duplicates", input: []float64{5, 1, 5, 1}, expected: 3},
		{name: "negative", input: []float64{-4, -1, -3}, expected: -3},
		{name: "near max float", input: []float64{math.MaxFloat64, math.MaxFloat64}, expected: math.MaxFloat64},
		{name: "opposite extremes", input: []float64{-math.MaxFloat64, math.MaxFloat64}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("does not reorder input", func(t *testing.T) {
		in := []float64{3, 1, 2}
		_, err := Median(in)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, in)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Median([]float64{})
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestPopMeanStdDev(t *testing.T) {
	t.Run("population divisor", func(t *testing.T) {
		mean, std, err := PopMeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		require.NoError(t, err)
		assert.InDelta(t, 5.0, mean, 1e-12)
		assert.InDelta(t, 2.0, std, 1e-12)
	})

	t.Run("constant is exactly zero", func(t *testing.T) {
		mean, std, err := PopMeanStdDev([]float64{0.1, 0.1, 0.1})
		require.NoError(t, err)
		assert.Equal(t, 0.1, mean)
		assert.Equal(t, 0.0, std)
	})

	t.Run("single value", func(t *testing.T) {
		mean, std, err := PopMeanStdDev([]float64{42})
		require.NoError(t, err)
		assert.Equal(t, 42.0, mean)
		assert.Equal(t, 0.0, std)
	})

	t.Run("empty", func(t *testing.T) {
		_, _, err := PopMeanStdDev(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestZScores(t *testing.T) {
	t.Run("imputed sample column", func(t *testing.T) {
		z, err := ZScores([]float64{1, 2, 3, 100, 2.5})
		require.NoError(t, err)
		require.Len(t, z, 5)
		// mean 21.7, population std sqrt(1533.16)
		assert.InDelta(t, 78.3/math.Sqrt(1533.16), z[3], 1e-9)
		assert.Less(t, math.Abs(z[0]), 1.0)
	})

	t.Run("zero variance maps to zero", func(t *testing.T) {
		z, err := ZScores([]float64{1, 1, 1, 1, 1})
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0, 0, 0}, z)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ZScores(nil)
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestZScore(t *testing.T) {
	assert.Equal(t, 2.0, ZScore(9, 5, 2))
	assert.Equal(t, 0.0, ZScore(9, 5, 0))
}

func TestValidateNumbers(t *testing.T) {
	assert.NoError(t, ValidateNumbers([]float64{1, -2, 0}, "A"))

	err := ValidateNumbers([]float64{1, math.Inf(1)}, "A")
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Contains(t, err.Error(), "index 1")

	assert.ErrorIs(t, ValidateNumbers([]float64{math.NaN()}, "A"), ErrNonFinite)
}
