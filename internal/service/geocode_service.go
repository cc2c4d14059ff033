package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/dataset"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/rs/zerolog"
)

// Provider is the external geocoding service a batch talks to. Implementations
// must absorb transport and protocol faults into the returned Lookup so a
// single bad row never interrupts an iteration.
type Provider interface {
	Geocode(ctx context.Context, address string) models.Lookup
	ReverseGeocode(ctx context.Context, longitude, latitude float64) models.Lookup
}

// GeoCodeService contains the core business logic for forward geocoding:
// single lookups for the HTTP surface and row-wise conversion over tables.
type GeoCodeService struct {
	provider Provider
	log      zerolog.Logger
	sleep    func(time.Duration)
}

// NewGeoCodeService creates a new geo code service.
func NewGeoCodeService(provider Provider, log zerolog.Logger) *GeoCodeService {
	return &GeoCodeService{provider: provider, log: log, sleep: time.Sleep}
}

// Geocode converts one address into its best-matching document. A lookup
// without any match returns (nil, nil).
func (s *GeoCodeService) Geocode(ctx context.Context, address string) (*models.Document, error) {
	if strings.TrimSpace(address) == "" {
		return nil, fmt.Errorf("service: address cannot be empty")
	}
	lookup := s.provider.Geocode(ctx, address)
	if errors.Is(lookup.Err, models.ErrNoResult) {
		return nil, nil
	}
	if lookup.Err != nil {
		return nil, fmt.Errorf("service: failed to geocode address: %w", lookup.Err)
	}
	return lookup.Document, nil
}

// GeocodeTable converts the address column of a table into coordinate
// columns, row by row and in table order. The input table is never mutated;
// the returned table has the same row count with the longitude and latitude
// columns appended. Failed rows keep nil in both output columns.
func (s *GeoCodeService) GeocodeTable(ctx context.Context, table *dataset.Table, opts GeocodeOptions) (*dataset.Table, error) {
	opts = opts.withDefaults()
	if opts.AddressColumn == "" {
		return nil, fmt.Errorf("service: address column is required")
	}
	if !table.HasColumn(opts.AddressColumn) {
		return nil, fmt.Errorf("service: column '%s' not found in table", opts.AddressColumn)
	}

	out := table.Clone()
	out.AddColumn(opts.LongitudeColumn)
	out.AddColumn(opts.LatitudeColumn)

	total := out.Len()
	s.log.Info().Int("rows", total).Msg("geocoding started")

	converted := 0
	for i := 0; i < total; i++ {
		address, _ := out.Value(i, opts.AddressColumn).(string)
		lookup := s.provider.Geocode(ctx, address)

		for column, value := range flattenForward(lookup, opts.LongitudeColumn, opts.LatitudeColumn) {
			out.Set(i, column, value)
		}
		if lookup.OK() {
			converted++
		} else {
			s.log.Warn().Int("row", i).Err(lookup.Err).Msg("geocode lookup failed")
		}

		if opts.Delay > 0 {
			s.sleep(opts.Delay)
		}
		s.log.Debug().Int("processed", i+1).Int("total", total).Msg("processed row")
	}

	s.log.Info().Int("converted", converted).Int("rows", total).Msg("geocoding finished")
	return out, nil
}
