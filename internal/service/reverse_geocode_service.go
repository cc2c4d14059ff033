package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/archive"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/dataset"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"

	"github.com/rs/zerolog"
)

// ReverseGeoCodeService contains the core business logic for reverse
// geocoding: single lookups for the HTTP surface and row-wise conversion
// over tables, with optional raw-response archiving.
type ReverseGeoCodeService struct {
	provider Provider
	log      zerolog.Logger
	sleep    func(time.Duration)
	now      func() time.Time
}

// NewReverseGeoCodeService creates a new reverse geo code service.
func NewReverseGeoCodeService(provider Provider, log zerolog.Logger) *ReverseGeoCodeService {
	return &ReverseGeoCodeService{provider: provider, log: log, sleep: time.Sleep, now: time.Now}
}

// ReverseGeocode converts one coordinate pair into its address documents. A
// lookup without any match returns (nil, nil).
func (s *ReverseGeoCodeService) ReverseGeocode(ctx context.Context, longitude, latitude float64) (*models.Document, error) {
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", longitude)
	}
	lookup := s.provider.ReverseGeocode(ctx, longitude, latitude)
	if errors.Is(lookup.Err, models.ErrNoResult) {
		return nil, nil
	}
	if lookup.Err != nil {
		return nil, fmt.Errorf("service: failed to reverse geocode coordinates: %w", lookup.Err)
	}
	return lookup.Document, nil
}

// ReverseGeocodeTable converts the coordinate columns of a table into address
// columns, row by row and in table order. The input table is never mutated;
// the returned table has the same row count with the address columns (and,
// when IncludeDetails is set, the 18 sub-field columns) appended. Failed
// rows keep nil in every appended column. When archiving is enabled, every
// retained raw response is written after the iteration completes; write
// failures are logged and never affect the returned table.
func (s *ReverseGeoCodeService) ReverseGeocodeTable(ctx context.Context, table *dataset.Table, opts ReverseGeocodeOptions) (*dataset.Table, error) {
	opts = opts.withDefaults()
	if opts.LongitudeColumn == "" || opts.LatitudeColumn == "" {
		return nil, fmt.Errorf("service: longitude and latitude columns are required")
	}
	if !table.HasColumn(opts.LongitudeColumn) {
		return nil, fmt.Errorf("service: column '%s' not found in table", opts.LongitudeColumn)
	}
	if !table.HasColumn(opts.LatitudeColumn) {
		return nil, fmt.Errorf("service: column '%s' not found in table", opts.LatitudeColumn)
	}

	out := table.Clone()
	for _, column := range reverseAppendedColumns(opts) {
		out.AddColumn(column)
	}

	total := out.Len()
	s.log.Info().Int("rows", total).Bool("include_details", opts.IncludeDetails).Msg("reverse geocoding started")

	exchanges := make([]*models.Exchange, total)
	converted := 0
	for i := 0; i < total; i++ {
		lookup := s.lookupRow(ctx, out, i, opts)
		exchanges[i] = lookup.Exchange

		for column, value := range flattenReverse(lookup, opts) {
			out.Set(i, column, value)
		}
		if lookup.OK() {
			converted++
		} else {
			s.log.Warn().Int("row", i).Err(lookup.Err).Msg("reverse geocode lookup failed")
		}

		if opts.Delay > 0 {
			s.sleep(opts.Delay)
		}
		s.log.Debug().Int("processed", i+1).Int("total", total).Msg("processed row")
	}

	if opts.Archive.Enabled() {
		s.archiveExchanges(exchanges, opts.Archive)
	}

	s.log.Info().Int("converted", converted).Int("rows", total).Msg("reverse geocoding finished")
	return out, nil
}

func (s *ReverseGeoCodeService) lookupRow(ctx context.Context, t *dataset.Table, i int, opts ReverseGeocodeOptions) models.Lookup {
	longitude, err := cellFloat(t.Value(i, opts.LongitudeColumn))
	if err != nil {
		return models.Lookup{Err: fmt.Errorf("invalid longitude in column '%s': %w", opts.LongitudeColumn, err)}
	}
	latitude, err := cellFloat(t.Value(i, opts.LatitudeColumn))
	if err != nil {
		return models.Lookup{Err: fmt.Errorf("invalid latitude in column '%s': %w", opts.LatitudeColumn, err)}
	}
	return s.provider.ReverseGeocode(ctx, longitude, latitude)
}

func (s *ReverseGeoCodeService) archiveExchanges(exchanges []*models.Exchange, policy archive.Policy) {
	base := policy.BasePath(s.now())
	for i, exchange := range exchanges {
		if exchange == nil {
			continue
		}
		path := archive.PathFor(base, i, len(exchanges))
		written, err := archive.Write(exchange, path)
		if err != nil {
			s.log.Error().Err(err).Int("row", i).Msg("failed to archive response")
			continue
		}
		s.log.Debug().Str("path", written).Msg("archived response")
	}
}
