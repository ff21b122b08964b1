package dataset

import (
	"errors"
	"fmt"
)

// ErrMaskLength is returned when a predicate yields a mask whose length
// differs from the number of rows.
var ErrMaskLength = errors.New("mask length does not match row count")

// Predicate maps a whole dataset to a boolean mask, one entry per row.
type Predicate func(d *Dataset) ([]bool, error)

// Where builds a Predicate that evaluates keep on every row.
func Where(keep func(row Row) bool) Predicate {
	return func(d *Dataset) ([]bool, error) {
		mask := make([]bool, d.Len())
		for i, row := range d.rows {
			mask[i] = keep(row)
		}
		return mask, nil
	}
}

// ConditionFilter returns a new dataset holding the rows selected by pred,
// in their original order and with every column. d is not modified. A nil
// d is treated as an empty dataset.
func ConditionFilter(d *Dataset, pred Predicate) (*Dataset, error) {
	if d == nil {
		d = New(nil)
	}
	mask, err := pred(d)
	if err != nil {
		return nil, fmt.Errorf("evaluate predicate: %w", err)
	}
	if len(mask) != d.Len() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrMaskLength, len(mask), d.Len())
	}

	out := New(d.columns)
	for i, keep := range mask {
		if keep {
			out.rows = append(out.rows, d.rows[i].Clone())
		}
	}
	return out, nil
}
