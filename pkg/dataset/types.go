package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// ColumnTypes reports, for every column, the comma-joined set of Go type
// names found in it. Absent and null cells report as "null".
func ColumnTypes(d *Dataset) map[string]string {
	types := make(map[string]string, len(d.columns))
	for _, col := range d.columns {
		seen := make(map[string]struct{})
		for _, row := range d.rows {
			v, ok := row[col]
			if !ok || v == nil {
				seen["null"] = struct{}{}
				continue
			}
			seen[fmt.Sprintf("%T", v)] = struct{}{}
		}

		names := make([]string, 0, len(seen))
		for name := range seen {
			names = append(names, name)
		}
		sort.Strings(names)
		types[col] = strings.Join(names, ", ")
	}
	return types
}
