package service

import (
	"testing"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenForward_UnparseableCoordinates(t *testing.T) {
	lookup := models.Lookup{Document: &models.Document{X: "not-a-number", Y: "37.4979"}}

	fields := flattenForward(lookup, "longitude", "latitude")

	// Either coordinate failing to parse defaults the whole row.
	assert.Nil(t, fields["longitude"])
	assert.Nil(t, fields["latitude"])
}

func TestFlattenReverse_FailureKeepsFieldSet(t *testing.T) {
	opts := NewReverseGeocodeOptions("lon", "lat")

	failed := flattenReverse(models.Lookup{Err: assert.AnError}, opts)
	succeeded := flattenReverse(addressLookup(), opts)

	require.Len(t, failed, 20)
	require.Len(t, succeeded, 20)
	for column := range succeeded {
		assert.Contains(t, failed, column)
		assert.Nil(t, failed[column])
	}
}

func TestCellFloat(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		expected  float64
		expectErr bool
	}{
		{name: "float64", value: 127.0276, expected: 127.0276},
		{name: "string", value: "127.0276", expected: 127.0276},
		{name: "padded string", value: " 37.4979 ", expected: 37.4979},
		{name: "int", value: 127, expected: 127},
		{name: "empty string", value: "", expectErr: true},
		{name: "nil", value: nil, expectErr: true},
		{name: "garbage", value: "abc", expectErr: true},
		{name: "bool", value: true, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cellFloat(tt.value)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
