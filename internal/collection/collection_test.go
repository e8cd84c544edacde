package collection

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apple-inventory/internal/kvstore"
	"apple-inventory/internal/model"
)

func newTestCollection(t *testing.T) (*Collection, *kvstore.Adapter) {
	t.Helper()
	adapter := kvstore.NewAdapter(kvstore.NewMemory())
	return New(adapter, zerolog.Nop()), adapter
}

func iphone(modelName string, value int) *model.ProductRecord {
	return &model.ProductRecord{
		Category:       model.CategoryIPhone,
		Model:          modelName,
		EstimatedValue: value,
	}
}

func mac(modelName string, value int) *model.ProductRecord {
	return &model.ProductRecord{
		Category:       model.CategoryMac,
		Model:          modelName,
		EstimatedValue: value,
	}
}

func TestAddOneAssignsID(t *testing.T) {
	c, _ := newTestCollection(t)

	rec, err := c.AddOne(iphone("iPhone 13", 500))
	require.NoError(t, err)
	assert.Regexp(t, `^iphone_`, rec.ID)
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestAddOneRejectsUnknownCategory(t *testing.T) {
	c, _ := newTestCollection(t)

	_, err := c.AddOne(&model.ProductRecord{Category: "Newton", Model: "x"})
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCapacity(t *testing.T) {
	c, _ := newTestCollection(t)

	for i := 0; i < MaxRecords; i++ {
		_, err := c.AddOne(iphone("iPhone 13", 1))
		require.NoError(t, err)
	}
	assert.Equal(t, MaxRecords, c.Len())

	// The 1001st add is a no-op leaving state unchanged.
	_, err := c.AddOne(iphone("iPhone 13", 1))
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, MaxRecords, c.Len())
	assert.Equal(t, MaxRecords, c.CountFor("iPhone 13"))
}

func TestAddManyTruncatesAtCap(t *testing.T) {
	c, _ := newTestCollection(t)

	batch := make([]*model.ProductRecord, 0, MaxRecords+10)
	for i := 0; i < MaxRecords+10; i++ {
		batch = append(batch, iphone("iPhone 12", 1))
	}

	added, err := c.AddMany(batch)
	require.NoError(t, err)
	assert.Equal(t, MaxRecords, added)
	assert.Equal(t, MaxRecords, c.Len())
}

func TestAddManyErrorKeepsDerivedState(t *testing.T) {
	c, _ := newTestCollection(t)

	notified := 0
	c.Subscribe(func() { notified++ })

	batch := []*model.ProductRecord{
		iphone("iPhone 13", 1),
		{Category: "Newton", Model: "MessagePad"},
		iphone("iPhone 12", 1),
	}

	added, err := c.AddMany(batch)
	require.Error(t, err)
	assert.Equal(t, 1, added)

	// The record written before the failure stays visible everywhere:
	// ranking, summary and observers reflect it.
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, c.CountFor("iPhone 13"))
	entries := c.Ranking(model.CategoryIPhone)
	require.Len(t, entries, 1)
	assert.Equal(t, "iPhone 13", entries[0].Model)
	assert.Equal(t, 1, notified)
}

func TestUpdate(t *testing.T) {
	c, _ := newTestCollection(t)

	rec, err := c.AddOne(iphone("iPhone 13", 500))
	require.NoError(t, err)

	edited := rec.Clone()
	edited.EstimatedValue = 450
	edited.Comments = "screen scratch"
	require.NoError(t, c.Update(edited))

	got, ok := c.Get(rec.ID)
	require.True(t, ok)
	assert.Equal(t, 450, got.EstimatedValue)
	assert.Equal(t, "screen scratch", got.Comments)
	assert.Equal(t, 1, c.Len())
}

func TestUpdateNotFound(t *testing.T) {
	c, _ := newTestCollection(t)

	err := c.Update(iphone("iPhone 13", 500))
	assert.ErrorIs(t, err, ErrNotFound)

	missing := iphone("iPhone 13", 500)
	missing.ID = "iphone_missing"
	assert.ErrorIs(t, c.Update(missing), ErrNotFound)
}

func TestUpdateKeepsCategory(t *testing.T) {
	c, _ := newTestCollection(t)

	rec, err := c.AddOne(iphone("iPhone 13", 500))
	require.NoError(t, err)

	edited := rec.Clone()
	edited.Category = model.CategoryMac
	require.NoError(t, c.Update(edited))

	got, _ := c.Get(rec.ID)
	assert.Equal(t, model.CategoryIPhone, got.Category)
}

func TestRemoveNotFound(t *testing.T) {
	c, _ := newTestCollection(t)
	assert.ErrorIs(t, c.Remove("iphone_missing"), ErrNotFound)
}

func TestRemoveThenReloadDoesNotResurrect(t *testing.T) {
	c, adapter := newTestCollection(t)

	rec, err := c.AddOne(iphone("iPhone 13", 500))
	require.NoError(t, err)
	keep, err := c.AddOne(iphone("iPhone 12", 300))
	require.NoError(t, err)

	require.NoError(t, c.Remove(rec.ID))

	// Key index and stored value are both gone.
	keys, err := adapter.RecordKeys()
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, keys)
	_, ok, _ := adapter.GetRecord(rec.ID)
	assert.False(t, ok)

	report, err := c.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 1}, report)
	_, ok = c.Get(rec.ID)
	assert.False(t, ok)
}

func TestLoadAllSkipsCorruptRecords(t *testing.T) {
	c, adapter := newTestCollection(t)

	_, err := c.AddOne(iphone("iPhone 13", 500))
	require.NoError(t, err)
	require.NoError(t, adapter.PutRecord("iphone_corrupt", []byte("{not json")))

	report, err := c.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 1, Skipped: 1}, report)
	assert.Equal(t, 1, c.Len())
}

func TestLoadAllSkipsMissingValues(t *testing.T) {
	mem := kvstore.NewMemory()
	adapter := kvstore.NewAdapter(mem)
	c := New(adapter, zerolog.Nop())

	rec, err := c.AddOne(iphone("iPhone 13", 500))
	require.NoError(t, err)

	// Break the invariant behind the adapter's back: key stays listed
	// in the index, value gone.
	require.NoError(t, mem.Delete(rec.ID))

	report, err := c.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Skipped: 1}, report)
	assert.Equal(t, 0, c.Len())
}

func TestModelRankingStability(t *testing.T) {
	c, _ := newTestCollection(t)

	// Two records of the same known model increment one entry.
	_, err := c.AddOne(iphone("iPhone 13", 1))
	require.NoError(t, err)
	rec2, err := c.AddOne(iphone("iPhone 13", 1))
	require.NoError(t, err)

	entries := c.Ranking(model.CategoryIPhone)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Count)

	// Removing one decrements; removing the last drops the entry.
	require.NoError(t, c.Remove(rec2.ID))
	entries = c.Ranking(model.CategoryIPhone)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Count)

	remaining := c.All()
	require.Len(t, remaining, 1)
	require.NoError(t, c.Remove(remaining[0].ID))
	assert.Empty(t, c.Ranking(model.CategoryIPhone))
}

func TestModelRankingOrder(t *testing.T) {
	c, _ := newTestCollection(t)

	// Insert out of release order plus a custom name.
	_, err := c.AddOne(iphone("iPhone 15", 1))
	require.NoError(t, err)
	custom := iphone("Other", 1)
	custom.CustomModel = "Franken Phone"
	_, err = c.AddOne(custom)
	require.NoError(t, err)
	_, err = c.AddOne(iphone("iPhone 4", 1))
	require.NoError(t, err)

	entries := c.Ranking(model.CategoryIPhone)
	require.Len(t, entries, 3)
	assert.Equal(t, "iPhone 4", entries[0].Model)
	assert.Equal(t, "iPhone 15", entries[1].Model)
	// Custom names sort after all known names.
	assert.Equal(t, "Franken Phone", entries[2].Model)
}

func TestQueryByModel(t *testing.T) {
	c, _ := newTestCollection(t)

	a, _ := c.AddOne(iphone("iPhone 13", 1))
	_, err := c.AddOne(iphone("iPhone 12", 1))
	require.NoError(t, err)
	b, _ := c.AddOne(iphone("iPhone 13", 2))

	got := c.QueryByModel(model.CategoryIPhone, "iPhone 13")
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)

	assert.Empty(t, c.QueryByModel(model.CategoryMac, "iPhone 13"))
}

func TestCountFor(t *testing.T) {
	c, _ := newTestCollection(t)

	_, err := c.AddOne(mac("MacBook Air", 1))
	require.NoError(t, err)
	_, err = c.AddOne(mac("MacBook Air", 1))
	require.NoError(t, err)

	assert.Equal(t, 2, c.CountFor("MacBook Air"))
	assert.Equal(t, 0, c.CountFor("iPhone 13"))
}

func TestResetAll(t *testing.T) {
	c, adapter := newTestCollection(t)

	require.NoError(t, adapter.SetAccentColor("#00ff00"))
	_, err := c.AddOne(iphone("iPhone 13", 1))
	require.NoError(t, err)

	require.NoError(t, c.ResetAll())
	assert.Equal(t, 0, c.Len())

	keys, err := adapter.RecordKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	color, err := adapter.AccentColor()
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", color)
}

func TestObserversNotified(t *testing.T) {
	c, _ := newTestCollection(t)

	notified := 0
	c.Subscribe(func() { notified++ })

	_, err := c.AddOne(iphone("iPhone 13", 1))
	require.NoError(t, err)
	require.NoError(t, c.ResetAll())

	assert.Equal(t, 2, notified)
}

func TestPersistenceRoundTrip(t *testing.T) {
	c, adapter := newTestCollection(t)

	for i := 0; i < 5; i++ {
		_, err := c.AddOne(iphone(fmt.Sprintf("iPhone %d", 11+i), 100*i))
		require.NoError(t, err)
	}
	order := c.All()

	// A second collection over the same adapter rebuilds identical state.
	c2 := New(adapter, zerolog.Nop())
	report, err := c2.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Loaded: 5}, report)
	assert.Equal(t, order, c2.All())
	assert.Equal(t, c.Ranking(model.CategoryIPhone), c2.Ranking(model.CategoryIPhone))
}
