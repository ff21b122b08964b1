// Package query compiles filter expressions into dataset predicates.
//
// Supported syntax:
//   - Presence: "like_level" (non-null, non-empty, non-zero)
//   - Comparison: "rating_ratio>=0.8", "website=douban", "like_level!=null"
//   - Boolean: "website=douban AND review_length>20", "a=1 OR b=2"
//
// AND and OR cannot be mixed in one expression.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// ErrInvalidFilter is returned for malformed expressions and unknown columns.
var ErrInvalidFilter = errors.New("invalid filter")

// nullLiteral compares against absent or null cells.
const nullLiteral = "null"

// Keywords are matched on the original text so that case folding never
// shifts byte offsets.
var (
	andRE = regexp.MustCompile(`(?i)\sAND\s`)
	orRE  = regexp.MustCompile(`(?i)\sOR\s`)
)

// operators in match order; two-character operators first.
var operators = []string{">=", "<=", "!=", "=", ">", "<"}

// condition is one parsed "field op value" term.
type condition struct {
	field string
	op    string // empty for a presence test
	value string
}

// Filter is a compiled expression.
type Filter struct {
	expr       string
	conditions []condition
	matchAny   bool // OR semantics when true
}

// Parse compiles expr. An empty expression matches every row.
func Parse(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	f := &Filter{expr: expr}
	if expr == "" {
		return f, nil
	}

	parts := andRE.Split(expr, -1)
	orParts := orRE.Split(expr, -1)
	if len(parts) > 1 && len(orParts) > 1 {
		return nil, fmt.Errorf("%w: cannot mix AND and OR: %s", ErrInvalidFilter, expr)
	}
	if len(orParts) > 1 {
		parts = orParts
		f.matchAny = true
	}

	for _, part := range parts {
		cond, err := parseSimpleFilter(part)
		if err != nil {
			return nil, err
		}
		f.conditions = append(f.conditions, cond)
	}
	return f, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Predicate returns the filter as a dataset.Predicate. Every referenced
// column must exist in the dataset it is evaluated against.
func (f *Filter) Predicate() dataset.Predicate {
	return func(d *dataset.Dataset) ([]bool, error) {
		for _, c := range f.conditions {
			if !d.HasColumn(c.field) {
				return nil, fmt.Errorf("%w: unknown column %s", ErrInvalidFilter, c.field)
			}
		}

		mask := make([]bool, d.Len())
		for i, row := range d.Rows() {
			mask[i] = f.match(row)
		}
		return mask, nil
	}
}

func (f *Filter) match(row dataset.Row) bool {
	if len(f.conditions) == 0 {
		return true
	}
	for _, c := range f.conditions {
		ok := c.match(row)
		if f.matchAny && ok {
			return true
		}
		if !f.matchAny && !ok {
			return false
		}
	}
	return !f.matchAny
}

// parseSimpleFilter parses a single term such as "rating_ratio>0.5".
func parseSimpleFilter(term string) (condition, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return condition{}, fmt.Errorf("%w: empty term", ErrInvalidFilter)
	}

	if !strings.ContainsAny(term, "=<>!") {
		return condition{field: term}, nil
	}

	// The first operator character splits the term, so values may contain
	// operator characters ("rating_level=Good (>=8/10)").
	idx := strings.IndexAny(term, "=<>!")
	for _, op := range operators {
		if !strings.HasPrefix(term[idx:], op) {
			continue
		}
		field := strings.TrimSpace(term[:idx])
		value := strings.TrimSpace(term[idx+len(op):])
		if field == "" {
			return condition{}, fmt.Errorf("%w: missing column in %q", ErrInvalidFilter, term)
		}
		value = strings.Trim(value, "\"'")
		return condition{field: field, op: op, value: value}, nil
	}

	return condition{}, fmt.Errorf("%w: %s", ErrInvalidFilter, term)
}

func (c condition) match(row dataset.Row) bool {
	cell := row[c.field]
	if c.op == "" {
		return truthy(cell)
	}

	if strings.EqualFold(c.value, nullLiteral) {
		switch c.op {
		case "=":
			return cell == nil
		case "!=":
			return cell != nil
		}
		return false
	}
	if cell == nil {
		return c.op == "!="
	}

	if lhs, err := toNumber(cell); err == nil {
		if rhs, err := toNumber(c.value); err == nil {
			return compare(lhs, rhs, c.op)
		}
	}
	return compare(cast.ToString(cell), c.value, c.op)
}

func toNumber(v any) (float64, error) {
	if _, isBool := v.(bool); isBool {
		return 0, fmt.Errorf("bool is not a number")
	}
	return cast.ToFloat64E(v)
}

func compare[T float64 | string](lhs, rhs T, op string) bool {
	switch op {
	case "=":
		return lhs == rhs
	case "!=":
		return lhs != rhs
	case ">":
		return lhs > rhs
	case ">=":
		return lhs >= rhs
	case "<":
		return lhs < rhs
	case "<=":
		return lhs <= rhs
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	if f, err := cast.ToFloat64E(v); err == nil {
		return f != 0
	}
	return true
}
