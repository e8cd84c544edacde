package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"apple-inventory/internal/model"
)

// commonHeaders are the columns shared by every category, in fixed
// order. Category-specific columns follow them.
var commonHeaders = []string{
	"Model",
	"Color",
	"Year Acquired",
	"Estimated Value",
	"Working Status",
	"Condition",
	"Acquired As",
	"Warranty",
	"Physical Damage",
	"Original Box",
	"Comments",
}

var categoryHeaders = map[model.Category][]string{
	model.CategoryMac:        {"Form Factor", "Screen Size", "Processor", "Storage", "Memory", "Activation Lock"},
	model.CategoryIPhone:     {"Storage", "Carrier", "ESN Status", "Carrier Lock", "Activation Lock"},
	model.CategoryIPad:       {"Storage", "Connectivity", "Activation Lock"},
	model.CategoryAppleWatch: {"Case Size", "Case Material", "Band Type", "Activation Lock"},
	model.CategoryAirPods:    {"Case Type"},
	model.CategoryAppleTV:    {"Storage", "Remote Included"},
	model.CategoryIPod:       {"Storage"},
}

var fileNames = map[model.Category]string{
	model.CategoryMac:        "Mac.csv",
	model.CategoryIPhone:     "iPhone.csv",
	model.CategoryIPad:       "iPad.csv",
	model.CategoryAppleWatch: "Apple Watch.csv",
	model.CategoryAirPods:    "AirPods.csv",
	model.CategoryAppleTV:    "Apple TV.csv",
	model.CategoryIPod:       "iPod.csv",
}

// FileName returns the fixed export file name for a category.
func FileName(c model.Category) string {
	return fileNames[c]
}

// FileNames returns the seven recognized file names in category order.
func FileNames() []string {
	out := make([]string, 0, len(fileNames))
	for _, c := range model.Categories() {
		out = append(out, fileNames[c])
	}
	return out
}

// CategoryForFile maps a file name back to its category.
func CategoryForFile(name string) (model.Category, bool) {
	for c, f := range fileNames {
		if f == name {
			return c, true
		}
	}
	return "", false
}

// Headers returns the full column set for a category.
func Headers(c model.Category) []string {
	out := make([]string, 0, len(commonHeaders)+len(categoryHeaders[c]))
	out = append(out, commonHeaders...)
	out = append(out, categoryHeaders[c]...)
	return out
}

// EncodeCSV renders records of one category as a CSV blob with the
// category's fixed header row. Records are written in the order given.
func EncodeCSV(c model.Category, records []*model.ProductRecord) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Headers(c)); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if r.Category != c {
			return "", fmt.Errorf("record %q has category %q, want %q", r.ID, r.Category, c)
		}
		if err := w.Write(encodeRow(c, r)); err != nil {
			return "", fmt.Errorf("write row for %q: %w", r.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecodeCSV parses a CSV blob into records of the given category. The
// returned records carry no ID; the collection assigns one on add.
func DecodeCSV(c model.Category, data string) ([]*model.ProductRecord, error) {
	r := csv.NewReader(strings.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv: missing header row")
	}

	want := Headers(c)
	if len(rows[0]) != len(want) {
		return nil, fmt.Errorf("parse csv: expected %d columns, got %d", len(want), len(rows[0]))
	}
	for i, h := range rows[0] {
		if h != want[i] {
			return nil, fmt.Errorf("parse csv: column %d is %q, expected %q", i, h, want[i])
		}
	}

	records := make([]*model.ProductRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, decodeRow(c, row))
	}
	return records, nil
}

func encodeRow(c model.Category, r *model.ProductRecord) []string {
	row := []string{
		r.DisplayModel(),
		r.Color,
		intField(r.YearAcquired),
		intField(r.EstimatedValue),
		r.WorkingStatus,
		r.Condition,
		r.AcquiredAs,
		r.Warranty,
		yesNo(r.PhysicalDamage),
		yesNo(r.OriginalBox),
		r.Comments,
	}

	switch c {
	case model.CategoryMac:
		s := r.Mac
		row = append(row, s.FormFactor, s.ScreenSize, s.Processor, s.Storage, s.Memory, yesNo(s.ActivationLock))
	case model.CategoryIPhone:
		s := r.IPhone
		row = append(row, s.Storage, s.Carrier, s.ESNStatus, s.CarrierLock, yesNo(s.ActivationLock))
	case model.CategoryIPad:
		s := r.IPad
		row = append(row, s.Storage, s.Connectivity, yesNo(s.ActivationLock))
	case model.CategoryAppleWatch:
		s := r.Watch
		row = append(row, s.CaseSize, s.CaseMaterial, s.BandType, yesNo(s.ActivationLock))
	case model.CategoryAirPods:
		row = append(row, r.AirPods.CaseType)
	case model.CategoryAppleTV:
		s := r.AppleTV
		row = append(row, s.Storage, yesNo(s.RemoteIncluded))
	case model.CategoryIPod:
		row = append(row, r.IPod.Storage)
	}
	return row
}

func decodeRow(c model.Category, row []string) *model.ProductRecord {
	r := &model.ProductRecord{
		Category:       c,
		Color:          row[1],
		YearAcquired:   parseInt(row[2]),
		EstimatedValue: parseInt(row[3]),
		WorkingStatus:  row[4],
		Condition:      row[5],
		AcquiredAs:     row[6],
		Warranty:       row[7],
		PhysicalDamage: parseYesNo(row[8]),
		OriginalBox:    parseYesNo(row[9]),
		Comments:       row[10],
	}

	// Names outside the catalog become the category's override sentinel
	// with the cell text preserved as the custom model.
	if model.KnownModel(c, row[0]) {
		r.Model = row[0]
	} else {
		r.Model = model.OverrideSentinel(c)
		r.CustomModel = row[0]
	}

	extra := row[len(commonHeaders):]
	switch c {
	case model.CategoryMac:
		r.Mac = &model.MacSpec{
			FormFactor:     extra[0],
			ScreenSize:     extra[1],
			Processor:      extra[2],
			Storage:        extra[3],
			Memory:         extra[4],
			ActivationLock: parseYesNo(extra[5]),
		}
	case model.CategoryIPhone:
		r.IPhone = &model.IPhoneSpec{
			Storage:        extra[0],
			Carrier:        extra[1],
			ESNStatus:      extra[2],
			CarrierLock:    extra[3],
			ActivationLock: parseYesNo(extra[4]),
		}
	case model.CategoryIPad:
		r.IPad = &model.IPadSpec{
			Storage:        extra[0],
			Connectivity:   extra[1],
			ActivationLock: parseYesNo(extra[2]),
		}
	case model.CategoryAppleWatch:
		r.Watch = &model.WatchSpec{
			CaseSize:       extra[0],
			CaseMaterial:   extra[1],
			BandType:       extra[2],
			ActivationLock: parseYesNo(extra[3]),
		}
	case model.CategoryAirPods:
		r.AirPods = &model.AirPodsSpec{CaseType: extra[0]}
	case model.CategoryAppleTV:
		r.AppleTV = &model.AppleTVSpec{
			Storage:        extra[0],
			RemoteIncluded: parseYesNo(extra[1]),
		}
	case model.CategoryIPod:
		r.IPod = &model.IPodSpec{Storage: extra[0]}
	}
	return r
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// parseYesNo maps "Yes" to true; any other token, including an empty
// cell, reads as false.
func parseYesNo(s string) bool {
	return s == "Yes"
}

func intField(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
