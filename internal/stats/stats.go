// Package stats computes aggregate figures over a collection snapshot.
// Everything here is a pure function; nothing mutates or persists.
package stats

import (
	"sort"

	"apple-inventory/internal/model"
)

// CategoryCount pairs a category with its record count.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// CategoryValue pairs a category with its summed estimated value.
type CategoryValue struct {
	Category model.Category `json:"category"`
	Value    int            `json:"value"`
}

// CategoryAverage pairs a category with its average estimated value.
type CategoryAverage struct {
	Category model.Category `json:"category"`
	Average  float64        `json:"average"`
}

// TotalValueByCategory sums estimated values per category. An absent
// value counts as 0.
func TotalValueByCategory(byCategory map[model.Category][]*model.ProductRecord) map[model.Category]int {
	totals := make(map[model.Category]int, len(byCategory))
	for c, records := range byCategory {
		total := 0
		for _, r := range records {
			total += r.EstimatedValue
		}
		totals[c] = total
	}
	return totals
}

// GrandTotal sums all per-category totals.
func GrandTotal(byCategory map[model.Category][]*model.ProductRecord) int {
	total := 0
	for _, v := range TotalValueByCategory(byCategory) {
		total += v
	}
	return total
}

// AverageValueByCategory computes the mean estimated value per
// category. Categories with zero records average 0.0.
func AverageValueByCategory(byCategory map[model.Category][]*model.ProductRecord) map[model.Category]float64 {
	averages := make(map[model.Category]float64, len(byCategory))
	for c, records := range byCategory {
		if len(records) == 0 {
			averages[c] = 0.0
			continue
		}
		total := 0
		for _, r := range records {
			total += r.EstimatedValue
		}
		averages[c] = float64(total) / float64(len(records))
	}
	return averages
}

// CountRanking returns non-empty categories sorted descending by count.
// Ties keep canonical category order.
func CountRanking(byCategory map[model.Category][]*model.ProductRecord) []CategoryCount {
	out := make([]CategoryCount, 0, len(byCategory))
	for _, c := range model.Categories() {
		if n := len(byCategory[c]); n > 0 {
			out = append(out, CategoryCount{Category: c, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ValueRanking returns non-empty categories sorted descending by total
// value. Ties keep canonical category order.
func ValueRanking(byCategory map[model.Category][]*model.ProductRecord) []CategoryValue {
	totals := TotalValueByCategory(byCategory)
	out := make([]CategoryValue, 0, len(byCategory))
	for _, c := range model.Categories() {
		if len(byCategory[c]) > 0 {
			out = append(out, CategoryValue{Category: c, Value: totals[c]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// AverageRanking returns non-empty categories sorted descending by
// average value. Ties keep canonical category order.
func AverageRanking(byCategory map[model.Category][]*model.ProductRecord) []CategoryAverage {
	averages := AverageValueByCategory(byCategory)
	out := make([]CategoryAverage, 0, len(byCategory))
	for _, c := range model.Categories() {
		if len(byCategory[c]) > 0 {
			out = append(out, CategoryAverage{Category: c, Average: averages[c]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Average > out[j].Average })
	return out
}

// TotalCount returns the number of records across all categories.
func TotalCount(byCategory map[model.Category][]*model.ProductRecord) int {
	n := 0
	for _, records := range byCategory {
		n += len(records)
	}
	return n
}
