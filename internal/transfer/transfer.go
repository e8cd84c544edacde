// Package transfer drives bulk CSV import and export through the codec
// and the collection.
package transfer

import (
	"errors"
	"fmt"

	"apple-inventory/internal/codec"
	"apple-inventory/internal/model"
)

// Inventory is the slice of the collection the orchestrator needs.
type Inventory interface {
	Records(model.Category) []*model.ProductRecord
	AddMany([]*model.ProductRecord) (int, error)
}

// ErrBadFileName flags an import file whose name is not one of the
// seven recognized per-category names.
var ErrBadFileName = errors.New("unrecognized import file name")

// ImportResult reports a completed import. Truncated is set when the
// collection hit its size cap mid-batch and later rows were dropped.
type ImportResult struct {
	Added     int  `json:"added"`
	Truncated bool `json:"truncated"`
}

// ExpectedFileNames lists the recognized import file names for
// user-facing naming-error alerts.
func ExpectedFileNames() []string {
	return codec.FileNames()
}

// Export emits one CSV blob per category, keyed by the category's fixed
// file name. Every category is present even when empty (header only).
func Export(c Inventory) (map[string]string, error) {
	files := make(map[string]string, len(model.Categories()))
	for _, cat := range model.Categories() {
		blob, err := codec.EncodeCSV(cat, c.Records(cat))
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", cat, err)
		}
		files[codec.FileName(cat)] = blob
	}
	return files, nil
}

// Import decodes the named CSV blobs and feeds the whole batch to the
// collection. Naming and decode errors abort before any record is
// written; the capacity cap only truncates, it does not error.
func Import(c Inventory, files map[string]string) (*ImportResult, error) {
	// Validate every file name before parsing anything.
	categories := make(map[string]model.Category, len(files))
	for name := range files {
		cat, ok := codec.CategoryForFile(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadFileName, name)
		}
		categories[name] = cat
	}

	// Decode the full batch up front so a parse error writes nothing.
	var batch []*model.ProductRecord
	for _, name := range codec.FileNames() {
		blob, ok := files[name]
		if !ok {
			continue
		}
		records, err := codec.DecodeCSV(categories[name], blob)
		if err != nil {
			return nil, fmt.Errorf("import %q: %w", name, err)
		}
		batch = append(batch, records...)
	}

	added, err := c.AddMany(batch)
	if err != nil {
		return nil, err
	}
	return &ImportResult{Added: added, Truncated: added < len(batch)}, nil
}
