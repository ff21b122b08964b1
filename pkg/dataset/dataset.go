// Package dataset holds the in-memory table that review records are loaded
// into: an ordered list of rows sharing a set of named columns.
//
// Cells are dynamically typed. Field validation is deferred to the point a
// derivation reads a cell, so a malformed row only fails the column update
// that touches it.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cast"
)

var (
	// ErrMissingField is returned when a required cell is absent or null.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidField is returned when a cell holds a value of the wrong type.
	ErrInvalidField = errors.New("invalid field")
)

// Row maps column names to cell values.
type Row map[string]any

// Text returns the string stored in col.
func (r Row) Text(col string) (string, error) {
	v, ok := r[col]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingField, col)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrInvalidField, col, v)
	}
	return s, nil
}

// Ratio returns the numeric value stored in col. ok is false when the cell
// is absent, null or NaN, which callers treat as "no value" rather than an
// error.
func (r Row) Ratio(col string) (value float64, ok bool, err error) {
	v, present := r[col]
	if !present || v == nil {
		return 0, false, nil
	}
	if _, isBool := v.(bool); isBool {
		return 0, false, fmt.Errorf("%w: %s is bool, want number", ErrInvalidField, col)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", ErrInvalidField, col, err)
	}
	if math.IsNaN(f) {
		return 0, false, nil
	}
	return f, true, nil
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an ordered sequence of rows with a shared column list.
// Columns keep the order in which they were first seen.
type Dataset struct {
	columns []string
	index   map[string]struct{}
	rows    []Row
}

// New creates a dataset with the given columns and rows. Keys present in
// rows but missing from columns are appended in sorted order.
func New(columns []string, rows ...Row) *Dataset {
	d := &Dataset{index: make(map[string]struct{})}
	d.AddColumns(columns...)
	d.Append(rows...)
	return d
}

// AddColumns registers column names, ignoring ones already known.
func (d *Dataset) AddColumns(names ...string) {
	if d.index == nil {
		d.index = make(map[string]struct{})
	}
	for _, name := range names {
		if _, ok := d.index[name]; ok {
			continue
		}
		d.index[name] = struct{}{}
		d.columns = append(d.columns, name)
	}
}

// Append adds rows to the end of the dataset.
func (d *Dataset) Append(rows ...Row) {
	for _, row := range rows {
		var unseen []string
		for k := range row {
			if _, ok := d.index[k]; !ok {
				unseen = append(unseen, k)
			}
		}
		sort.Strings(unseen)
		d.AddColumns(unseen...)
		d.rows = append(d.rows, row)
	}
}

// Concat appends every row of other, keeping its column order for new columns.
func (d *Dataset) Concat(other *Dataset) {
	if other == nil {
		return
	}
	d.AddColumns(other.columns...)
	d.rows = append(d.rows, other.rows...)
}

// Columns returns a copy of the column names.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether name is part of the schema.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Rows returns the underlying rows. Mutating a returned row mutates the dataset.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Column returns the values of name for every row, nil where absent.
func (d *Dataset) Column(name string) []any {
	out := make([]any, len(d.rows))
	for i, row := range d.rows {
		out[i] = row[name]
	}
	return out
}
