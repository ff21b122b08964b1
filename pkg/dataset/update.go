package dataset

import "fmt"

// RowTransform computes a derived value from a single row. Implementations
// must not mutate the row.
type RowTransform interface {
	Transform(row Row) (any, error)
}

// TransformFunc adapts a plain function to RowTransform.
type TransformFunc func(row Row) (any, error)

// Transform calls f(row).
func (f TransformFunc) Transform(row Row) (any, error) {
	return f(row)
}

// UpdateColumn runs fn over every row in order and stores each result in
// column. The dataset is modified in place and also returned for chaining.
//
// Updates are not atomic: when fn fails on row i, rows before i already
// hold their new value and rows from i on are left untouched. A new column
// joins the schema once the first row holds it, or right away when d has
// no rows.
func UpdateColumn(d *Dataset, column string, fn RowTransform) (*Dataset, error) {
	if len(d.rows) == 0 {
		d.AddColumns(column)
	}
	for i, row := range d.rows {
		v, err := fn.Transform(row)
		if err != nil {
			return d, fmt.Errorf("update %s: row %d: %w", column, i, err)
		}
		row[column] = v
		if i == 0 {
			d.AddColumns(column)
		}
	}
	return d, nil
}
