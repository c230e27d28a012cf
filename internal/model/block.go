package model

// AreaBlock is the smallest spatial aggregation unit: all infrastructure
// units sharing one area id, which encodes a coarse lat/lng grid cell.
type AreaBlock struct {
	ID           string  `json:"id"`
	Locality     string  `json:"locality"`
	Province     string  `json:"province"`
	District     string  `json:"district"`
	Subdistrict  string  `json:"subdistrict"`
	LocationType string  `json:"location_type"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	UnitCount      int     `json:"unit_count"`
	AvailablePorts float64 `json:"available_ports"`
	AreaPorts      float64 `json:"area_ports"`
	Score          float64 `json:"score"`
	AvgAgeDays     float64 `json:"avg_age_days"`

	Status InstallationStatus `json:"status"`
	Label  PriorityLabel      `json:"label"`
}

// Zone groups one or more AreaBlocks that share a locality name. A locality
// with a single block becomes a trivial one-member zone; the zone set is a
// strict partition of the block set.
type Zone struct {
	ID           string   `json:"id"`
	Locality     string   `json:"locality"`
	BlockIDs     []string `json:"block_ids"`
	Province     string   `json:"province"`
	District     string   `json:"district"`
	Subdistrict  string   `json:"subdistrict"`
	LocationType string   `json:"location_type"`

	// Centroid of the member blocks, rounded to 6 decimal places.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	BlockCount     int     `json:"block_count"`
	UnitCount      int     `json:"unit_count"`
	AvailablePorts float64 `json:"available_ports"`
	AreaPorts      float64 `json:"area_ports"`
	Score          float64 `json:"score"`
	AvgAgeDays     float64 `json:"avg_age_days"`

	Status InstallationStatus `json:"status"`
	Label  PriorityLabel      `json:"label"`
}
