package service

import (
	"time"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/archive"
)

// DefaultDelay is the fixed pause inserted after every external call to stay
// under the service's rate limit.
const DefaultDelay = 100 * time.Millisecond

// GeocodeOptions configures a forward conversion batch.
type GeocodeOptions struct {
	// AddressColumn names the input column holding the address string. Required.
	AddressColumn string
	// LongitudeColumn / LatitudeColumn name the appended output columns.
	// Empty values fall back to "longitude" / "latitude".
	LongitudeColumn string
	LatitudeColumn  string
	// Delay is the pause after each lookup. Zero disables throttling.
	Delay time.Duration
}

// NewGeocodeOptions returns forward options with the documented defaults.
func NewGeocodeOptions(addressColumn string) GeocodeOptions {
	return GeocodeOptions{
		AddressColumn:   addressColumn,
		LongitudeColumn: "longitude",
		LatitudeColumn:  "latitude",
		Delay:           DefaultDelay,
	}
}

func (o GeocodeOptions) withDefaults() GeocodeOptions {
	if o.LongitudeColumn == "" {
		o.LongitudeColumn = "longitude"
	}
	if o.LatitudeColumn == "" {
		o.LatitudeColumn = "latitude"
	}
	return o
}

// ReverseGeocodeOptions configures a reverse conversion batch.
type ReverseGeocodeOptions struct {
	// LongitudeColumn / LatitudeColumn name the input coordinate columns. Required.
	LongitudeColumn string
	LatitudeColumn  string
	// AddressColumn / RoadAddressColumn name the appended output columns.
	// Empty values fall back to "address" / "road_address".
	AddressColumn     string
	RoadAddressColumn string
	// IncludeDetails appends the 18 road/lot sub-fields alongside the two
	// address strings.
	IncludeDetails bool
	// Archive controls raw response persistence.
	Archive archive.Policy
	// Delay is the pause after each lookup. Zero disables throttling.
	Delay time.Duration
}

// NewReverseGeocodeOptions returns reverse options with the documented
// defaults: detail fields on, archiving off, 100ms delay.
func NewReverseGeocodeOptions(longitudeColumn, latitudeColumn string) ReverseGeocodeOptions {
	return ReverseGeocodeOptions{
		LongitudeColumn:   longitudeColumn,
		LatitudeColumn:    latitudeColumn,
		AddressColumn:     "address",
		RoadAddressColumn: "road_address",
		IncludeDetails:    true,
		Archive:           archive.Disabled(),
		Delay:             DefaultDelay,
	}
}

func (o ReverseGeocodeOptions) withDefaults() ReverseGeocodeOptions {
	if o.AddressColumn == "" {
		o.AddressColumn = "address"
	}
	if o.RoadAddressColumn == "" {
		o.RoadAddressColumn = "road_address"
	}
	return o
}
