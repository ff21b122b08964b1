package mapreduce

import (
	"github.com/dtnitsch/film-review-explorer/pkg/analytics"
	"github.com/dtnitsch/film-review-explorer/pkg/dataset"
)

// Map generates a word frequency map for a single review.
func Map(content string, a *analytics.Analytics) map[string]int {
	return a.WordFrequency(content)
}

// MapColumn runs Map over the text in column for every row accepted by keep.
// Non-string cells are skipped.
func MapColumn(d *dataset.Dataset, column string, keep func(dataset.Row) bool, a *analytics.Analytics) []map[string]int {
	var out []map[string]int
	for _, row := range d.Rows() {
		if keep != nil && !keep(row) {
			continue
		}
		text, ok := row[column].(string)
		if !ok {
			continue
		}
		out = append(out, Map(text, a))
	}
	return out
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}
