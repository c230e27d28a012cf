package model

// PriorityLabel classifies a priority score into one of five bands.
type PriorityLabel string

// Priority label bands, highest first.
const (
	PriorityVeryHigh PriorityLabel = "VERY_HIGH"
	PriorityHigh     PriorityLabel = "HIGH"
	PriorityMedium   PriorityLabel = "MEDIUM"
	PriorityLow      PriorityLabel = "LOW"
	PriorityVeryLow  PriorityLabel = "VERY_LOW"
)

// InstallationStatus buckets a unit's age in service.
type InstallationStatus string

// Installation status values.
const (
	StatusNew    InstallationStatus = "New"
	StatusMedium InstallationStatus = "Medium"
	StatusOld    InstallationStatus = "Old"
)

// InfrastructureUnit is one serviceable access point from the upstream
// utilization dataset. Immutable after loading except for the score fields,
// which the scoring engine fills in.
type InfrastructureUnit struct {
	ID           string  `json:"id"`
	AreaID       string  `json:"area_id"`
	Locality     string  `json:"locality"`
	Province     string  `json:"province"`
	District     string  `json:"district"`
	Subdistrict  string  `json:"subdistrict"`
	LocationType string  `json:"location_type"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`

	// Capacity metrics. AreaPorts is the area-level available-port total,
	// repeated on every unit in the same area block.
	TotalPorts     float64 `json:"total_ports"`
	AvailablePorts float64 `json:"available_ports"`
	AreaPorts      float64 `json:"area_ports"`

	// AgeDays is days in service; nil when the dataset omits it.
	AgeDays *float64 `json:"age_days,omitempty"`

	// Filled by the scoring engine.
	Score  float64            `json:"score"`
	Label  PriorityLabel      `json:"label"`
	Status InstallationStatus `json:"status"`
}
