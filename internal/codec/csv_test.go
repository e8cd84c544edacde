package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apple-inventory/internal/model"
)

func TestFileNames(t *testing.T) {
	names := FileNames()
	require.Len(t, names, 7)
	assert.Equal(t, "Mac.csv", names[0])

	cat, ok := CategoryForFile("Apple Watch.csv")
	require.True(t, ok)
	assert.Equal(t, model.CategoryAppleWatch, cat)

	_, ok = CategoryForFile("Newton.csv")
	assert.False(t, ok)
}

func TestCSVRoundTrip(t *testing.T) {
	records := []*model.ProductRecord{
		fullIPhone(),
		{
			ID:       "iphone_2",
			Category: model.CategoryIPhone,
			Model:    "iPhone 8",
			IPhone:   &model.IPhoneSpec{},
		},
		{
			ID:          "iphone_3",
			Category:    model.CategoryIPhone,
			Model:       "Other",
			CustomModel: "Prototype DVT",
			IPhone:      &model.IPhoneSpec{Storage: "64GB"},
		},
	}

	blob, err := EncodeCSV(model.CategoryIPhone, records)
	require.NoError(t, err)

	got, err := DecodeCSV(model.CategoryIPhone, blob)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// IDs are regenerated on add; every other field survives.
	for i := range got {
		want := records[i].Clone()
		want.ID = ""
		assert.Equal(t, want, got[i])
	}
}

func TestCSVRoundTripAllCategories(t *testing.T) {
	for _, cat := range model.Categories() {
		t.Run(string(cat), func(t *testing.T) {
			r := &model.ProductRecord{
				ID:             "test",
				Category:       cat,
				Model:          model.CatalogFor(cat)[0],
				Color:          "Silver",
				EstimatedValue: 100,
			}
			require.NoError(t, r.Normalize())

			blob, err := EncodeCSV(cat, []*model.ProductRecord{r})
			require.NoError(t, err)

			got, err := DecodeCSV(cat, blob)
			require.NoError(t, err)
			require.Len(t, got, 1)

			want := r.Clone()
			want.ID = ""
			assert.Equal(t, want, got[0])
		})
	}
}

func TestCSVBooleansAndBlanks(t *testing.T) {
	r := fullIPhone()
	blob, err := EncodeCSV(model.CategoryIPhone, []*model.ProductRecord{r})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(blob), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Yes")

	// Any token other than "Yes" decodes false; blanks decode to zero
	// values.
	header := strings.Join(Headers(model.CategoryIPhone), ",")
	row := `iPhone 13,,,,,,,,maybe,TRUE,,,,,,No`
	got, err := DecodeCSV(model.CategoryIPhone, header+"\n"+row)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].PhysicalDamage)
	assert.False(t, got[0].OriginalBox)
	assert.Equal(t, 0, got[0].YearAcquired)
	assert.Equal(t, 0, got[0].EstimatedValue)
}

func TestCSVUnknownModelBecomesOverride(t *testing.T) {
	header := strings.Join(Headers(model.CategoryIPod), ",")
	got, err := DecodeCSV(model.CategoryIPod, header+"\nHomebrew Pod,,,,,,,,No,No,,\n")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Earlier Models", got[0].Model)
	assert.Equal(t, "Homebrew Pod", got[0].CustomModel)
}

func TestDecodeCSVErrors(t *testing.T) {
	_, err := DecodeCSV(model.CategoryMac, "")
	assert.Error(t, err)

	// Wrong header set for the category.
	wrong := strings.Join(Headers(model.CategoryIPhone), ",")
	_, err = DecodeCSV(model.CategoryMac, wrong+"\n")
	assert.Error(t, err)

	// Ragged rows fail the parse.
	header := strings.Join(Headers(model.CategoryIPod), ",")
	_, err = DecodeCSV(model.CategoryIPod, header+"\nonly,two\n")
	assert.Error(t, err)
}

func TestEncodeCSVRejectsWrongCategory(t *testing.T) {
	_, err := EncodeCSV(model.CategoryMac, []*model.ProductRecord{fullIPhone()})
	assert.Error(t, err)
}
