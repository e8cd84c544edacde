// Package codec converts product records to and from their persisted
// key-value encoding and their per-category CSV rows.
package codec

import (
	"encoding/json"
	"fmt"

	"apple-inventory/internal/model"
)

// EncodeRecord serializes a record for the key-value store.
func EncodeRecord(r *model.ProductRecord) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record %q: %w", r.ID, err)
	}
	return raw, nil
}

// DecodeRecord deserializes a persisted record. Unknown fields are
// ignored and missing optional fields default, so older and newer
// encodings both decode; only malformed JSON or an unknown category is
// an error.
func DecodeRecord(raw []byte) (*model.ProductRecord, error) {
	var r model.ProductRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if err := r.Normalize(); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &r, nil
}
