package cleaning

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/GriffinCanCode/tabclean/internal/stats"
	"github.com/GriffinCanCode/tabclean/internal/table"
)

// DropSparseColumns keeps the columns whose missing fraction is at most
// threshold, in their original order. On a zero-row table every fraction is
// 0, so every column is kept.
func DropSparseColumns(t *table.Table, threshold float64) (*table.Table, []DroppedColumn, error) {
	keep := make([]int, 0, t.Width())
	var dropped []DroppedColumn
	for i, c := range t.Columns() {
		frac := c.MissingFraction()
		if frac <= threshold {
			keep = append(keep, i)
			continue
		}
		dropped = append(dropped, DroppedColumn{Name: c.Name(), MissingFraction: frac})
	}

	out, err := t.SelectColumns(keep)
	if err != nil {
		return nil, nil, err
	}
	return out, dropped, nil
}

// ImputeMedian fills missing cells of the numeric columns at positions
// numeric with the median of their present values. A numeric column with no
// present values is left as is and its name returned in skipped.
func ImputeMedian(t *table.Table, numeric []int) (out *table.Table, imputed []Imputation, skipped []string, err error) {
	out = t
	for _, i := range numeric {
		c := t.ColumnAt(i)
		if c.MissingCount() == 0 {
			continue
		}

		present := c.Present()
		if err := stats.ValidateNumbers(present, c.Name()); err != nil {
			return nil, nil, nil, err
		}
		median, err := stats.Median(present)
		if errors.Is(err, stats.ErrEmpty) {
			skipped = append(skipped, c.Name())
			continue
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("median of %q: %w", c.Name(), err)
		}

		filledCol, filled, err := c.Fill(table.Num(median))
		if err != nil {
			return nil, nil, nil, err
		}
		if out, err = out.ReplaceColumn(filledCol); err != nil {
			return nil, nil, nil, err
		}
		imputed = append(imputed, Imputation{Column: c.Name(), Median: median, Filled: filled})
	}
	return out, imputed, skipped, nil
}

// FilterOutliers keeps the rows whose standardized score is strictly below
// threshold in absolute value for every numeric column at positions numeric.
// Scores use the population mean and deviation of each column's present
// values. A zero-variance column scores 0 everywhere and a missing cell
// scores 0, so neither removes rows. Row order is preserved and the dropped
// row positions are returned.
func FilterOutliers(t *table.Table, numeric []int, threshold float64) (*table.Table, []int, error) {
	cols := make([]columnMoments, 0, len(numeric))
	for _, i := range numeric {
		c := t.ColumnAt(i)
		present := c.Present()
		if len(present) == 0 {
			continue
		}
		if err := stats.ValidateNumbers(present, c.Name()); err != nil {
			return nil, nil, err
		}
		mean, std, err := stats.PopMeanStdDev(present)
		if err != nil {
			return nil, nil, fmt.Errorf("moments of %q: %w", c.Name(), err)
		}
		cols = append(cols, columnMoments{col: c, mean: mean, std: std})
	}
	if len(cols) == 0 {
		return t, nil, nil
	}

	keep := make([]int, 0, t.Rows())
	var dropped []int
	for r := 0; r < t.Rows(); r++ {
		if rowWithin(cols, r, threshold) {
			keep = append(keep, r)
		} else {
			dropped = append(dropped, r)
		}
	}
	if len(dropped) == 0 {
		return t, nil, nil
	}

	out, err := t.SelectRows(keep)
	if err != nil {
		return nil, nil, err
	}
	return out, dropped, nil
}

type columnMoments struct {
	col       *table.Column
	mean, std float64
}

func rowWithin(cols []columnMoments, r int, threshold float64) bool {
	for _, m := range cols {
		x, ok := m.col.Float(r)
		if !ok {
			continue
		}
		if gomath.Abs(stats.ZScore(x, m.mean, m.std)) >= threshold {
			return false
		}
	}
	return true
}
