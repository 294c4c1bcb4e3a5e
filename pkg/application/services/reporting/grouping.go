// Package reporting derives groupings, summaries, stock alerts and titles
// from a canonical record set.
package reporting

import (
	"github.com/vsinha/reqrecon/pkg/application/dto"
	"github.com/vsinha/reqrecon/pkg/domain/entities"
)

// GroupBySector buckets records by sector in order of first appearance
func GroupBySector(records []entities.CanonicalRecord) []dto.Group {
	return groupBy(records, func(r entities.CanonicalRecord) string { return r.Sector })
}

// GroupByDepartment buckets records by department in order of first appearance
func GroupByDepartment(records []entities.CanonicalRecord) []dto.Group {
	return groupBy(records, func(r entities.CanonicalRecord) string { return r.Department })
}

// GroupByClient buckets records by client short-code in order of first appearance
func GroupByClient(records []entities.CanonicalRecord) []dto.Group {
	return groupBy(records, func(r entities.CanonicalRecord) string { return r.Client })
}

func groupBy(records []entities.CanonicalRecord, keyOf func(entities.CanonicalRecord) string) []dto.Group {
	groups := make([]dto.Group, 0)
	index := make(map[string]int)

	for _, r := range records {
		key := keyOf(r)
		pos, exists := index[key]
		if !exists {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, dto.Group{Key: key})
		}
		groups[pos].Records = append(groups[pos].Records, r)
	}
	return groups
}

func keys(groups []dto.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}
