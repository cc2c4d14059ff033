package service

import (
	"context"
	"testing"
	"time"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/dataset"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProvider is a mock implementation of the Provider interface
type MockProvider struct {
	mock.Mock
}

// Geocode implements Provider.
func (m *MockProvider) Geocode(ctx context.Context, address string) models.Lookup {
	args := m.Called(ctx, address)
	return args.Get(0).(models.Lookup)
}

// ReverseGeocode implements Provider.
func (m *MockProvider) ReverseGeocode(ctx context.Context, longitude, latitude float64) models.Lookup {
	args := m.Called(ctx, longitude, latitude)
	return args.Get(0).(models.Lookup)
}

func coordinateLookup(x, y string) models.Lookup {
	return models.Lookup{Document: &models.Document{X: x, Y: y}}
}

func TestGeoCodeService_Geocode(t *testing.T) {
	tests := []struct {
		name        string
		address     string
		mockLookup  models.Lookup
		expected    *models.Document
		expectError bool
	}{
		{
			name:        "empty address",
			address:     "",
			expectError: true,
		},
		{
			name:       "successful lookup",
			address:    "서울특별시 강남구 강남대로 396",
			mockLookup: coordinateLookup("127.0276", "37.4979"),
			expected:   &models.Document{X: "127.0276", Y: "37.4979"},
		},
		{
			name:       "no result",
			address:    "nonexistent address",
			mockLookup: models.Lookup{Err: models.ErrNoResult},
			expected:   nil,
		},
		{
			name:        "provider error",
			address:     "서울특별시 강남구 강남대로 396",
			mockLookup:  models.Lookup{Err: assert.AnError},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProvider := new(MockProvider)
			svc := NewGeoCodeService(mockProvider, zerolog.Nop())

			if tt.address != "" {
				mockProvider.On("Geocode", mock.Anything, tt.address).Return(tt.mockLookup)
			}

			result, err := svc.Geocode(context.Background(), tt.address)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			if tt.address != "" {
				mockProvider.AssertExpectations(t)
			}
		})
	}
}

func TestGeoCodeService_GeocodeTable_MissingColumn(t *testing.T) {
	table := dataset.New("name")
	table.Append(dataset.Row{"name": "강남역"})

	svc := NewGeoCodeService(new(MockProvider), zerolog.Nop())

	_, err := svc.GeocodeTable(context.Background(), table, NewGeocodeOptions("address"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address")
}

func TestGeoCodeService_GeocodeTable(t *testing.T) {
	table := dataset.New("name", "address")
	table.Append(dataset.Row{"name": "강남역", "address": "서울특별시 강남구 강남대로 396"})
	table.Append(dataset.Row{"name": "미상", "address": "nonexistent address"})
	table.Append(dataset.Row{"name": "역삼역", "address": "서울시 강남구 역삼동"})

	mockProvider := new(MockProvider)
	mockProvider.On("Geocode", mock.Anything, "서울특별시 강남구 강남대로 396").Return(coordinateLookup("127.0276", "37.4979"))
	mockProvider.On("Geocode", mock.Anything, "nonexistent address").Return(models.Lookup{Err: models.ErrNoResult})
	mockProvider.On("Geocode", mock.Anything, "서울시 강남구 역삼동").Return(coordinateLookup("127.0286", "37.4989"))

	svc := NewGeoCodeService(mockProvider, zerolog.Nop())

	opts := NewGeocodeOptions("address")
	opts.Delay = 0
	result, err := svc.GeocodeTable(context.Background(), table, opts)
	require.NoError(t, err)

	// Shape invariant: same row count, original columns preserved, order kept.
	assert.Equal(t, 3, result.Len())
	assert.Equal(t, []string{"name", "address", "longitude", "latitude"}, result.Columns())
	assert.Equal(t, "강남역", result.Value(0, "name"))
	assert.Equal(t, "역삼역", result.Value(2, "name"))

	assert.Equal(t, 127.0276, result.Value(0, "longitude"))
	assert.Equal(t, 37.4979, result.Value(0, "latitude"))

	// Failure substitution: the failed row keeps the column set with nil values.
	assert.Nil(t, result.Value(1, "longitude"))
	assert.Nil(t, result.Value(1, "latitude"))

	assert.Equal(t, 127.0286, result.Value(2, "longitude"))

	mockProvider.AssertExpectations(t)
}

func TestGeoCodeService_GeocodeTable_DoesNotMutateInput(t *testing.T) {
	table := dataset.New("address")
	table.Append(dataset.Row{"address": "서울시 강남구 역삼동"})

	mockProvider := new(MockProvider)
	mockProvider.On("Geocode", mock.Anything, mock.Anything).Return(coordinateLookup("127.0286", "37.4989"))

	svc := NewGeoCodeService(mockProvider, zerolog.Nop())

	opts := NewGeocodeOptions("address")
	opts.Delay = 0
	_, err := svc.GeocodeTable(context.Background(), table, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"address"}, table.Columns())
	assert.Nil(t, table.Value(0, "longitude"))
}

func TestGeoCodeService_GeocodeTable_Delay(t *testing.T) {
	table := dataset.New("address")
	table.Append(dataset.Row{"address": "a"})
	table.Append(dataset.Row{"address": "b"})
	table.Append(dataset.Row{"address": "c"})

	mockProvider := new(MockProvider)
	mockProvider.On("Geocode", mock.Anything, mock.Anything).Return(models.Lookup{Err: models.ErrNoResult})

	svc := NewGeoCodeService(mockProvider, zerolog.Nop())

	var slept []time.Duration
	svc.sleep = func(d time.Duration) { slept = append(slept, d) }

	opts := NewGeocodeOptions("address")
	opts.Delay = 100 * time.Millisecond
	_, err := svc.GeocodeTable(context.Background(), table, opts)
	require.NoError(t, err)

	// One pause per row, success or not.
	require.Len(t, slept, 3)
	for _, d := range slept {
		assert.Equal(t, 100*time.Millisecond, d)
	}
}

func TestGeoCodeService_GeocodeTable_EmptyTable(t *testing.T) {
	table := dataset.New("address")

	svc := NewGeoCodeService(new(MockProvider), zerolog.Nop())

	opts := NewGeocodeOptions("address")
	result, err := svc.GeocodeTable(context.Background(), table, opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
	assert.Equal(t, []string{"address", "longitude", "latitude"}, result.Columns())
}
