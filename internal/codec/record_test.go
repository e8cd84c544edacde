package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apple-inventory/internal/model"
)

func fullIPhone() *model.ProductRecord {
	return &model.ProductRecord{
		ID:             "iphone_test",
		Category:       model.CategoryIPhone,
		Model:          "iPhone 13 Pro",
		Color:          "Sierra Blue",
		YearAcquired:   2022,
		EstimatedValue: 650,
		WorkingStatus:  "working",
		Condition:      "good",
		AcquiredAs:     "new",
		Warranty:       "expired",
		PhysicalDamage: true,
		OriginalBox:    true,
		Comments:       "daily driver",
		IPhone: &model.IPhoneSpec{
			Storage:        "256GB",
			Carrier:        "Unlocked",
			ESNStatus:      "clean",
			CarrierLock:    "unlocked",
			ActivationLock: true,
		},
	}
}

func TestRecordRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		record *model.ProductRecord
	}{
		{"all fields present", fullIPhone()},
		{
			"all optionals absent",
			&model.ProductRecord{
				ID:       "mac_test",
				Category: model.CategoryMac,
				Model:    "MacBook Air",
				Mac:      &model.MacSpec{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := EncodeRecord(tt.record)
			require.NoError(t, err)

			got, err := DecodeRecord(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.record, got)
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	raw := []byte(`{"id":"ipod_1","category":"iPod","model":"iPod nano","future_field":42}`)
	got, err := DecodeRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "ipod_1", got.ID)
	assert.Equal(t, "iPod nano", got.Model)
	// Missing spec defaults rather than failing.
	require.NotNil(t, got.IPod)
}

func TestDecodeFillsMissingSpec(t *testing.T) {
	raw := []byte(`{"id":"watch_1","category":"Apple Watch","model":"Series 7"}`)
	got, err := DecodeRecord(raw)
	require.NoError(t, err)
	require.NotNil(t, got.Watch)
	assert.Nil(t, got.IPhone)
}

func TestDecodeErrors(t *testing.T) {
	_, err := DecodeRecord([]byte(`{not json`))
	assert.Error(t, err)

	_, err = DecodeRecord([]byte(`{"id":"x","category":"Newton","model":"y"}`))
	assert.Error(t, err)
}
