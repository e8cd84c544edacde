// Package collection owns the in-memory product collection and its
// derived indices. It is the single source of truth; every other
// component reads through it. All state is kept synchronized with the
// persistence adapter, and the widget summary is recomputed and
// persisted after every mutation.
package collection

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"apple-inventory/internal/codec"
	"apple-inventory/internal/kvstore"
	"apple-inventory/internal/model"
	"apple-inventory/internal/widget"
)

// MaxRecords caps the collection size. Writes beyond the cap are
// rejected without error surfacing beyond ErrCapacity.
const MaxRecords = 1000

var (
	// ErrCapacity is returned when an add would exceed MaxRecords.
	ErrCapacity = errors.New("collection is at capacity")
	// ErrNotFound is returned by update/remove for an unknown record ID.
	ErrNotFound = errors.New("record not found")
)

// RankEntry is one model's slot in a category's model ranking.
type RankEntry struct {
	Model string `json:"model"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// LoadReport summarizes a LoadAll pass. Skipped counts index entries
// whose value was missing or failed to decode.
type LoadReport struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

// Collection is the stateful engine over the product records.
type Collection struct {
	mu         sync.RWMutex
	adapter    *kvstore.Adapter
	log        zerolog.Logger
	byCategory map[model.Category][]*model.ProductRecord
	flat       []*model.ProductRecord
	ranking    map[model.Category][]RankEntry
	observers  []func()
}

// New creates an empty collection over the given adapter. Call LoadAll
// to hydrate from persisted state.
func New(adapter *kvstore.Adapter, log zerolog.Logger) *Collection {
	return &Collection{
		adapter:    adapter,
		log:        log.With().Str("component", "collection").Logger(),
		byCategory: make(map[model.Category][]*model.ProductRecord),
		ranking:    make(map[model.Category][]RankEntry),
	}
}

// Subscribe registers an observer invoked after every mutation.
func (c *Collection) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.observers = append(c.observers, fn)
}

func (c *Collection) notify() {
	c.mu.RLock()
	observers := make([]func(), len(c.observers))
	copy(observers, c.observers)
	c.mu.RUnlock()

	for _, fn := range observers {
		fn()
	}
}

// LoadAll clears in-memory state and replays every persisted record in
// key-index order. Entries whose value is missing or undecodable are
// skipped and counted, not surfaced as errors.
func (c *Collection) LoadAll() (LoadReport, error) {
	c.mu.Lock()

	c.byCategory = make(map[model.Category][]*model.ProductRecord)
	c.flat = nil
	c.ranking = make(map[model.Category][]RankEntry)

	var report LoadReport
	keys, err := c.adapter.RecordKeys()
	if err != nil {
		c.mu.Unlock()
		return report, err
	}

	for _, key := range keys {
		raw, ok, err := c.adapter.GetRecord(key)
		if err != nil || !ok {
			c.log.Warn().Err(err).Str("key", key).Msg("indexed record missing, skipping")
			report.Skipped++
			continue
		}
		rec, err := codec.DecodeRecord(raw)
		if err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("record failed to decode, skipping")
			report.Skipped++
			continue
		}
		c.byCategory[rec.Category] = append(c.byCategory[rec.Category], rec)
		c.flat = append(c.flat, rec)
		report.Loaded++
	}

	for _, cat := range model.Categories() {
		c.rebuildRankingLocked(cat)
	}
	c.refreshSummaryLocked()
	c.mu.Unlock()

	c.notify()
	return report, nil
}

// AddOne assigns a fresh ID and inserts the record. Returns ErrCapacity
// as a no-op when the collection already holds MaxRecords.
func (c *Collection) AddOne(r *model.ProductRecord) (*model.ProductRecord, error) {
	c.mu.Lock()

	rec, err := c.addLocked(r)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	// Incremental ranking update: bump an existing entry, rebuild the
	// category when the model is not yet ranked.
	name := rec.DisplayModel()
	bumped := false
	for i := range c.ranking[rec.Category] {
		if c.ranking[rec.Category][i].Model == name {
			c.ranking[rec.Category][i].Count++
			bumped = true
			break
		}
	}
	if !bumped {
		c.rebuildRankingLocked(rec.Category)
	}

	c.refreshSummaryLocked()
	c.mu.Unlock()

	c.notify()
	return rec, nil
}

// AddMany inserts records in order, stopping silently once MaxRecords
// is reached; later items are dropped, already-written ones stay. The
// ranking rebuild and summary recompute happen once at the end. When an
// item fails mid-batch the earlier inserts stay; derived state is
// rebuilt before the error is returned, so rankings, summary and
// observers always reflect what was written.
func (c *Collection) AddMany(records []*model.ProductRecord) (int, error) {
	c.mu.Lock()

	added := 0
	var addErr error
	touched := make(map[model.Category]bool)
	for _, r := range records {
		if len(c.flat) >= MaxRecords {
			break
		}
		rec, err := c.addLocked(r)
		if err != nil {
			addErr = err
			break
		}
		touched[rec.Category] = true
		added++
	}

	for cat := range touched {
		c.rebuildRankingLocked(cat)
	}
	c.refreshSummaryLocked()
	c.mu.Unlock()

	c.notify()
	return added, addErr
}

// addLocked validates, assigns an ID, inserts into both indices and
// persists. Caller holds the write lock and handles rankings/summary.
func (c *Collection) addLocked(r *model.ProductRecord) (*model.ProductRecord, error) {
	if len(c.flat) >= MaxRecords {
		return nil, ErrCapacity
	}

	rec := r.Clone()
	if err := rec.Normalize(); err != nil {
		return nil, err
	}
	rec.ID = model.NewID(rec.Category)

	if err := c.persistLocked(rec); err != nil {
		return nil, err
	}

	c.byCategory[rec.Category] = append(c.byCategory[rec.Category], rec)
	c.flat = append(c.flat, rec)
	return rec, nil
}

// Update replaces the stored record matching r.ID. ID and category are
// immutable; the stored category wins over whatever r carries.
func (c *Collection) Update(r *model.ProductRecord) error {
	c.mu.Lock()

	idx := c.indexOfLocked(r.ID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	existing := c.flat[idx]

	rec := r.Clone()
	rec.ID = existing.ID
	rec.Category = existing.Category
	if err := rec.Normalize(); err != nil {
		c.mu.Unlock()
		return err
	}

	if err := c.persistLocked(rec); err != nil {
		c.mu.Unlock()
		return err
	}

	c.flat[idx] = rec
	list := c.byCategory[rec.Category]
	for i, cur := range list {
		if cur.ID == rec.ID {
			list[i] = rec
			break
		}
	}

	c.rebuildRankingLocked(rec.Category)
	c.refreshSummaryLocked()
	c.mu.Unlock()

	c.notify()
	return nil
}

// Remove deletes the record with the given ID from memory and
// persistence.
func (c *Collection) Remove(id string) error {
	c.mu.Lock()

	idx := c.indexOfLocked(id)
	if idx < 0 {
		c.mu.Unlock()
		return ErrNotFound
	}
	rec := c.flat[idx]

	if err := c.adapter.DeleteRecord(id); err != nil {
		c.mu.Unlock()
		return err
	}

	c.flat = append(c.flat[:idx], c.flat[idx+1:]...)
	list := c.byCategory[rec.Category]
	for i, cur := range list {
		if cur.ID == id {
			c.byCategory[rec.Category] = append(list[:i], list[i+1:]...)
			break
		}
	}

	// Decrement the ranking entry; drop it entirely at zero.
	name := rec.DisplayModel()
	entries := c.ranking[rec.Category]
	for i := range entries {
		if entries[i].Model == name {
			entries[i].Count--
			if entries[i].Count <= 0 {
				c.ranking[rec.Category] = append(entries[:i], entries[i+1:]...)
			}
			break
		}
	}

	c.refreshSummaryLocked()
	c.mu.Unlock()

	c.notify()
	return nil
}

// ResetAll clears all in-memory and persisted state except the accent
// color and first-launch flag.
func (c *Collection) ResetAll() error {
	c.mu.Lock()

	if err := c.adapter.Reset(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.byCategory = make(map[model.Category][]*model.ProductRecord)
	c.flat = nil
	c.ranking = make(map[model.Category][]RankEntry)
	c.mu.Unlock()

	c.notify()
	return nil
}

// Get returns the record with the given ID.
func (c *Collection) Get(id string) (*model.ProductRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	idx := c.indexOfLocked(id)
	if idx < 0 {
		return nil, false
	}
	return c.flat[idx].Clone(), true
}

// Records returns the category's records in insertion order.
func (c *Collection) Records(cat model.Category) []*model.ProductRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneSlice(c.byCategory[cat])
}

// All returns every record in global insertion order.
func (c *Collection) All() []*model.ProductRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneSlice(c.flat)
}

// QueryByModel returns the category's records whose resolved model name
// equals modelName, in insertion order.
func (c *Collection) QueryByModel(cat model.Category, modelName string) []*model.ProductRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*model.ProductRecord
	for _, r := range c.byCategory[cat] {
		if r.DisplayModel() == modelName {
			out = append(out, r.Clone())
		}
	}
	return out
}

// CountFor returns the ranked count for the first category containing
// the model name. Categories do not share model names in practice.
func (c *Collection) CountFor(modelName string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, cat := range model.Categories() {
		for _, e := range c.ranking[cat] {
			if e.Model == modelName {
				return e.Count
			}
		}
	}
	return 0
}

// Ranking returns the category's model ranking in display order.
func (c *Collection) Ranking(cat model.Category) []RankEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]RankEntry, len(c.ranking[cat]))
	copy(out, c.ranking[cat])
	return out
}

// Snapshot returns a deep copy of the byCategory index for the pure
// statistics functions.
func (c *Collection) Snapshot() map[model.Category][]*model.ProductRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[model.Category][]*model.ProductRecord, len(c.byCategory))
	for cat, records := range c.byCategory {
		out[cat] = cloneSlice(records)
	}
	return out
}

// Len returns the current collection size.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.flat)
}

func (c *Collection) indexOfLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, r := range c.flat {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) persistLocked(rec *model.ProductRecord) error {
	raw, err := codec.EncodeRecord(rec)
	if err != nil {
		return err
	}
	return c.adapter.PutRecord(rec.ID, raw)
}

// refreshSummaryLocked recomputes the widget summary and writes it to
// its reserved slot. A write failure leaves the previous snapshot in
// place; the widget tolerates stale data.
func (c *Collection) refreshSummaryLocked() {
	accent, err := c.adapter.AccentColor()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to read accent color")
	}
	s := widget.Build(c.byCategory, accent)
	if err := widget.Write(c.adapter, s); err != nil {
		c.log.Warn().Err(err).Msg("failed to persist widget summary")
	}
}

func cloneSlice(records []*model.ProductRecord) []*model.ProductRecord {
	out := make([]*model.ProductRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
