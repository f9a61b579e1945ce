package cleaning

import (
	"fmt"
	"strings"
	"time"
)

// DroppedColumn records a column removed for missingness.
type DroppedColumn struct {
	Name            string  `json:"name"`
	MissingFraction float64 `json:"missing_fraction"`
}

// Imputation records the median written into a numeric column.
type Imputation struct {
	Column string  `json:"column"`
	Median float64 `json:"median"`
	Filled int     `json:"filled"`
}

// Shape is a row and column count.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// Report describes what one cleaning pass changed.
type Report struct {
	RunID          string          `json:"run_id"`
	BatchID        string          `json:"batch_id,omitempty"`
	Source         string          `json:"source,omitempty"`
	Config         Config          `json:"config"`
	Input          Shape           `json:"input"`
	Output         Shape           `json:"output"`
	DroppedColumns []DroppedColumn `json:"dropped_columns"`
	Imputations    []Imputation    `json:"imputations"`
	SkippedImputes []string        `json:"skipped_imputations"`
	DroppedRows    []int           `json:"dropped_rows"`
	StartedAt      time.Time       `json:"started_at"`
	Elapsed        time.Duration   `json:"elapsed_ns"`
}

// Summary returns a one-line human readable description.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d -> %dx%d", r.Input.Rows, r.Input.Columns, r.Output.Rows, r.Output.Columns)
	if n := len(r.DroppedColumns); n > 0 {
		names := make([]string, n)
		for i, d := range r.DroppedColumns {
			names[i] = d.Name
		}
		fmt.Fprintf(&b, "; dropped columns [%s]", strings.Join(names, ", "))
	}
	filled := 0
	for _, imp := range r.Imputations {
		filled += imp.Filled
	}
	if filled > 0 {
		fmt.Fprintf(&b, "; imputed %d cells", filled)
	}
	if n := len(r.DroppedRows); n > 0 {
		fmt.Fprintf(&b, "; dropped %d outlier rows", n)
	}
	return b.String()
}
