package models

// Document is one candidate match returned by the geocoding service for a
// single query. Forward lookups fill X/Y, reverse lookups fill the two
// address sub-structures. Codes and building numbers stay strings so leading
// zeros survive.
type Document struct {
	AddressName string       `json:"address_name,omitempty"`
	AddressType string       `json:"address_type,omitempty"`
	X           string       `json:"x,omitempty"`
	Y           string       `json:"y,omitempty"`
	RoadAddress *RoadAddress `json:"road_address,omitempty"`
	Address     *LotAddress  `json:"address,omitempty"`
}

// RoadAddress is the road-name form of an address (road name + building number).
type RoadAddress struct {
	AddressName      string `json:"address_name"`
	ZoneNo           string `json:"zone_no"`
	Region1DepthName string `json:"region_1depth_name"`
	Region2DepthName string `json:"region_2depth_name"`
	Region3DepthName string `json:"region_3depth_name"`
	RoadName         string `json:"road_name"`
	MainBuildingNo   string `json:"main_building_no"`
	SubBuildingNo    string `json:"sub_building_no"`
	BuildingName     string `json:"building_name"`
	UndergroundYN    string `json:"underground_yn"`
}

// LotAddress is the traditional lot-number form of an address.
type LotAddress struct {
	AddressName      string `json:"address_name"`
	Region1DepthName string `json:"region_1depth_name"`
	Region2DepthName string `json:"region_2depth_name"`
	Region3DepthName string `json:"region_3depth_name"`
	Region3DepthH    string `json:"region_3depth_h_name"`
	HCode            string `json:"h_code"`
	BCode            string `json:"b_code"`
	MainAddressNo    string `json:"main_address_no"`
	SubAddressNo     string `json:"sub_address_no"`
	MountainYN       string `json:"mountain_yn"`
}

// Meta is the result envelope metadata returned alongside documents.
type Meta struct {
	TotalCount int `json:"total_count"`
}
