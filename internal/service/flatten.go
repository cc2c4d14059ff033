package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/models"
)

// detailColumns are the sub-fields appended when IncludeDetails is set, in
// output order: nine road-address fields, then nine lot-address fields.
var detailColumns = []string{
	"road_zone_no",
	"road_region_1depth",
	"road_region_2depth",
	"road_region_3depth",
	"road_name",
	"road_main_building_no",
	"road_sub_building_no",
	"road_building_name",
	"road_underground_yn",
	"address_region_1depth",
	"address_region_2depth",
	"address_region_3depth",
	"address_region_3depth_h",
	"address_h_code",
	"address_b_code",
	"address_main_no",
	"address_sub_no",
	"address_mountain_yn",
}

// flattenForward maps a lookup outcome onto the coordinate output columns.
// The field set is identical for successes and failures; failed rows carry
// nil values.
func flattenForward(l models.Lookup, longitudeColumn, latitudeColumn string) map[string]any {
	fields := map[string]any{longitudeColumn: nil, latitudeColumn: nil}
	if !l.OK() {
		return fields
	}
	longitude, errX := strconv.ParseFloat(l.Document.X, 64)
	latitude, errY := strconv.ParseFloat(l.Document.Y, 64)
	if errX != nil || errY != nil {
		return fields
	}
	fields[longitudeColumn] = longitude
	fields[latitudeColumn] = latitude
	return fields
}

// reverseAppendedColumns lists the output columns a reverse batch appends,
// in stable order.
func reverseAppendedColumns(opts ReverseGeocodeOptions) []string {
	columns := []string{opts.AddressColumn, opts.RoadAddressColumn}
	if opts.IncludeDetails {
		columns = append(columns, detailColumns...)
	}
	return columns
}

// flattenReverse maps a lookup outcome onto the reverse output columns. On
// success every field is a string; a document missing one of its address
// sub-structures yields empty strings for that group. On failure every field
// is nil.
func flattenReverse(l models.Lookup, opts ReverseGeocodeOptions) map[string]any {
	fields := make(map[string]any, 2+len(detailColumns))
	for _, column := range reverseAppendedColumns(opts) {
		fields[column] = nil
	}
	if !l.OK() {
		return fields
	}

	var road models.RoadAddress
	if l.Document.RoadAddress != nil {
		road = *l.Document.RoadAddress
	}
	var lot models.LotAddress
	if l.Document.Address != nil {
		lot = *l.Document.Address
	}

	fields[opts.AddressColumn] = lot.AddressName
	fields[opts.RoadAddressColumn] = road.AddressName
	if !opts.IncludeDetails {
		return fields
	}

	fields["road_zone_no"] = road.ZoneNo
	fields["road_region_1depth"] = road.Region1DepthName
	fields["road_region_2depth"] = road.Region2DepthName
	fields["road_region_3depth"] = road.Region3DepthName
	fields["road_name"] = road.RoadName
	fields["road_main_building_no"] = road.MainBuildingNo
	fields["road_sub_building_no"] = road.SubBuildingNo
	fields["road_building_name"] = road.BuildingName
	fields["road_underground_yn"] = road.UndergroundYN

	fields["address_region_1depth"] = lot.Region1DepthName
	fields["address_region_2depth"] = lot.Region2DepthName
	fields["address_region_3depth"] = lot.Region3DepthName
	fields["address_region_3depth_h"] = lot.Region3DepthH
	fields["address_h_code"] = lot.HCode
	fields["address_b_code"] = lot.BCode
	fields["address_main_no"] = lot.MainAddressNo
	fields["address_sub_no"] = lot.SubAddressNo
	fields["address_mountain_yn"] = lot.MountainYN
	return fields
}

// cellFloat coerces a table cell into a float64 coordinate.
func cellFloat(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case float32:
		return float64(value), nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, fmt.Errorf("empty coordinate")
		}
		return strconv.ParseFloat(trimmed, 64)
	case nil:
		return 0, fmt.Errorf("missing coordinate")
	default:
		return 0, fmt.Errorf("unsupported coordinate type %T", v)
	}
}
