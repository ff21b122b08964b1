package mapreduce

import (
	"fmt"
	"sort"
)

// TopKeywords returns the top N keywords from aggregated word counts as
// "word:count" strings (e.g., "acting:42"), ties broken alphabetically.
func TopKeywords(wordCounts map[string]int, n int) []string {
	type kv struct {
		Key   string
		Value int
	}

	ss := make([]kv, 0, len(wordCounts))
	for k, v := range wordCounts {
		ss = append(ss, kv{k, v})
	}

	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value != ss[j].Value {
			return ss[i].Value > ss[j].Value
		}
		return ss[i].Key < ss[j].Key
	})

	limit := max(min(n, len(ss)), 0)

	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Key, ss[i].Value)
	}

	return keywords
}
