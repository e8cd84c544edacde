// Package widget builds and persists the glanceable summary snapshot.
// The widget display reads only this cached snapshot; it never triggers
// recomputation, so the data is stale until the next mutation.
package widget

import (
	"encoding/json"
	"fmt"
	"time"

	"apple-inventory/internal/kvstore"
	"apple-inventory/internal/model"
	"apple-inventory/internal/stats"
)

// Summary is the precomputed aggregate snapshot for the at-a-glance
// display.
type Summary struct {
	TotalCount  int                     `json:"total_count"`
	Counts      []stats.CategoryCount   `json:"counts"`
	Values      []stats.CategoryValue   `json:"values"`
	Averages    []stats.CategoryAverage `json:"averages"`
	GrandTotal  int                     `json:"grand_total"`
	AccentColor string                  `json:"accent_color,omitempty"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// Build computes a summary from a byCategory snapshot.
func Build(byCategory map[model.Category][]*model.ProductRecord, accentColor string) *Summary {
	return &Summary{
		TotalCount:  stats.TotalCount(byCategory),
		Counts:      stats.CountRanking(byCategory),
		Values:      stats.ValueRanking(byCategory),
		Averages:    stats.AverageRanking(byCategory),
		GrandTotal:  stats.GrandTotal(byCategory),
		AccentColor: accentColor,
		GeneratedAt: time.Now(),
	}
}

// Write stores the summary in its reserved persistence slot.
func Write(a *kvstore.Adapter, s *Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode widget summary: %w", err)
	}
	if err := a.PutWidgetSummary(raw); err != nil {
		return fmt.Errorf("write widget summary: %w", err)
	}
	return nil
}

// Read loads the cached summary. The bool reports whether a summary has
// been written since the last reset.
func Read(a *kvstore.Adapter) (*Summary, bool, error) {
	raw, ok, err := a.GetWidgetSummary()
	if err != nil || !ok {
		return nil, false, err
	}
	var s Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("decode widget summary: %w", err)
	}
	return &s, true, nil
}
