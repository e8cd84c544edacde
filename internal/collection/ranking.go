package collection

import (
	"sort"

	"apple-inventory/internal/model"
)

// rebuildRankingLocked recomputes a category's model ranking from its
// current records. Known model names sort by their fixed catalog rank;
// unknown and custom names share the last rank, so the stable sort
// leaves them after all known names in encounter order.
func (c *Collection) rebuildRankingLocked(cat model.Category) {
	counts := make(map[string]int)
	var order []string
	for _, r := range c.byCategory[cat] {
		name := r.DisplayModel()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	entries := make([]RankEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, RankEntry{
			Model: name,
			Count: counts[name],
			Rank:  model.ModelRank(cat, name),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank < entries[j].Rank
	})

	if len(entries) == 0 {
		delete(c.ranking, cat)
		return
	}
	c.ranking[cat] = entries
}
