package kvstore

import (
	"encoding/json"
	"fmt"
)

// Reserved keys in the persistence key space. Everything else is a
// record key equal to the record's ID.
const (
	keyIndex         = "inventory_keys"
	keyWidgetSummary = "widget_summary"
	keyAccentColor   = "accent_color"
	keyFirstLaunch   = "first_launch"
)

// Adapter wraps a Store and maintains the ordered index of live record
// keys plus the reserved configuration and widget slots.
type Adapter struct {
	kv Store
}

// NewAdapter creates an adapter over the given backend.
func NewAdapter(kv Store) *Adapter {
	return &Adapter{kv: kv}
}

// RecordKeys returns the persisted key index in insertion order. A
// missing index reads as empty.
func (a *Adapter) RecordKeys() ([]string, error) {
	raw, ok, err := a.kv.Get(keyIndex)
	if err != nil {
		return nil, fmt.Errorf("read key index: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var keys []string
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("decode key index: %w", err)
	}
	return keys, nil
}

func (a *Adapter) writeKeys(keys []string) error {
	raw, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("encode key index: %w", err)
	}
	if err := a.kv.Put(keyIndex, raw); err != nil {
		return fmt.Errorf("write key index: %w", err)
	}
	return nil
}

// GetRecord reads a record value by its key.
func (a *Adapter) GetRecord(key string) ([]byte, bool, error) {
	return a.kv.Get(key)
}

// PutRecord stores a record value, appending the key to the index first
// when it is not already listed. The index is written before the value,
// so a partial failure leaves an indexed key without a value, which the
// load path skips, rather than an unlisted value nothing can reach.
func (a *Adapter) PutRecord(key string, value []byte) error {
	keys, err := a.RecordKeys()
	if err != nil {
		return err
	}
	listed := false
	for _, k := range keys {
		if k == key {
			listed = true
			break
		}
	}
	if !listed {
		if err := a.writeKeys(append(keys, key)); err != nil {
			return err
		}
	}

	if err := a.kv.Put(key, value); err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}

// DeleteRecord removes a record value and drops its key from the index.
func (a *Adapter) DeleteRecord(key string) error {
	if err := a.kv.Delete(key); err != nil {
		return fmt.Errorf("delete record %q: %w", key, err)
	}

	keys, err := a.RecordKeys()
	if err != nil {
		return err
	}
	for i, k := range keys {
		if k == key {
			return a.writeKeys(append(keys[:i], keys[i+1:]...))
		}
	}
	return nil
}

// PutWidgetSummary stores the cached summary snapshot.
func (a *Adapter) PutWidgetSummary(value []byte) error {
	return a.kv.Put(keyWidgetSummary, value)
}

// GetWidgetSummary reads the cached summary snapshot.
func (a *Adapter) GetWidgetSummary() ([]byte, bool, error) {
	return a.kv.Get(keyWidgetSummary)
}

// AccentColor returns the user-chosen accent color, empty when unset.
func (a *Adapter) AccentColor() (string, error) {
	raw, ok, err := a.kv.Get(keyAccentColor)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

// SetAccentColor stores the accent color.
func (a *Adapter) SetAccentColor(color string) error {
	return a.kv.Put(keyAccentColor, []byte(color))
}

// FirstLaunch reports whether the first-launch flag is still set. A
// missing flag reads as true.
func (a *Adapter) FirstLaunch() (bool, error) {
	raw, ok, err := a.kv.Get(keyFirstLaunch)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return string(raw) != "done", nil
}

// MarkLaunched clears the first-launch flag.
func (a *Adapter) MarkLaunched() error {
	return a.kv.Put(keyFirstLaunch, []byte("done"))
}

// Reset deletes every record, the key index, and the widget summary.
// The accent color and first-launch flag survive a reset.
func (a *Adapter) Reset() error {
	keys, err := a.RecordKeys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := a.kv.Delete(k); err != nil {
			return fmt.Errorf("reset: delete %q: %w", k, err)
		}
	}
	if err := a.kv.Delete(keyIndex); err != nil {
		return fmt.Errorf("reset: delete key index: %w", err)
	}
	if err := a.kv.Delete(keyWidgetSummary); err != nil {
		return fmt.Errorf("reset: delete widget summary: %w", err)
	}
	return nil
}
