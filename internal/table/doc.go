// Package table provides an in-memory columnar table with explicit column types.
//
// Every column carries a Kind tag fixed at construction:
//   - KindNumeric: float64 cells
//   - KindOther: text cells that are never touched by numeric aggregates
//
// Any cell may be missing. The missing marker (Null) is distinct from every
// valid value, including the zero value and the empty string.
//
// Tables are values: selection operations (SelectColumns, SelectRows, Clone)
// always return freshly allocated tables that share no storage with the
// receiver, so callers can hand a table to a transformation without worrying
// about it being modified.
//
// Example Usage:
//
//	a, _ := table.NewNumeric("A", table.Num(1), table.Num(2), table.Null())
//	b, _ := table.NewText("B", table.Str("x"), table.Str("y"), table.Str("z"))
//	t, err := table.New(a, b)
package table
