package model

// Confidence describes how trustworthy an assigned POI is, based on the
// search tier that produced it.
type Confidence string

// Confidence tiers, nearest/strictest first.
const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
	ConfidenceNone   Confidence = "NONE"
)

// POICandidate is a venue returned by the POI provider, scoped to a single
// locate call.
type POICandidate struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Rating     float64  `json:"rating"`
	Types      []string `json:"types"`
	DistanceKm float64  `json:"distance_km"`
}

// POIAssignment is the outcome of locating a POI for one anchor. When the
// anchor itself yielded nothing and a neighboring grid cell was searched
// instead, FallbackAreaID and FallbackDistanceKm record the provenance.
type POIAssignment struct {
	POI        *POICandidate `json:"poi,omitempty"`
	Confidence Confidence    `json:"confidence"`
	Keyword    string        `json:"keyword,omitempty"`

	AnchorAreaID       string  `json:"anchor_area_id"`
	FallbackAreaID     string  `json:"fallback_area_id,omitempty"`
	FallbackDistanceKm float64 `json:"fallback_distance_km,omitempty"`
	Remark             string  `json:"remark,omitempty"`
}

// Found reports whether the assignment carries an actual venue.
func (a *POIAssignment) Found() bool {
	return a != nil && a.POI != nil
}
