package model

import "time"

// RowLevel distinguishes zone overview rows from per-unit detail rows.
type RowLevel string

// Row levels.
const (
	LevelOverview RowLevel = "OVERVIEW"
	LevelDetail   RowLevel = "DETAIL"
)

// ReportRow is one flat output row consumed by the export and serve layers.
// Overview rows carry zone aggregates plus POI/timing enrichment; detail rows
// carry per-unit fields under their parent zone.
type ReportRow struct {
	Level    RowLevel `json:"level"`
	ZoneID   string   `json:"zone_id"`
	Locality string   `json:"locality"`

	// Overview fields.
	BlockCount     int     `json:"block_count,omitempty"`
	UnitCount      int     `json:"unit_count,omitempty"`
	AvailablePorts float64 `json:"available_ports,omitempty"`

	// Detail fields.
	UnitID string `json:"unit_id,omitempty"`

	Score        float64            `json:"score"`
	Label        PriorityLabel      `json:"label"`
	Status       InstallationStatus `json:"status,omitempty"`
	Province     string             `json:"province"`
	District     string             `json:"district"`
	Subdistrict  string             `json:"subdistrict"`
	LocationType string             `json:"location_type,omitempty"`
	Latitude     float64            `json:"latitude"`
	Longitude    float64            `json:"longitude"`
	MapsURL      string             `json:"maps_url"`

	POIName       string     `json:"poi_name,omitempty"`
	POIAddress    string     `json:"poi_address,omitempty"`
	POIPlaceID    string     `json:"poi_place_id,omitempty"`
	POIConfidence Confidence `json:"poi_confidence,omitempty"`
	POIDistanceKm float64    `json:"poi_distance_km,omitempty"`
	POIRemark     string     `json:"poi_remark,omitempty"`

	WeekdayPeaks string        `json:"weekday_peaks,omitempty"`
	WeekendPeaks string        `json:"weekend_peaks,omitempty"`
	BestDay      string        `json:"best_day,omitempty"`
	Activity     ActivityLevel `json:"activity,omitempty"`
	TimingStatus TimingStatus  `json:"timing_status,omitempty"`
}

// RunStatus tracks a persisted report run's lifecycle.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunSummary holds the headline counts for a completed report run.
type RunSummary struct {
	UnitsLoaded   int `json:"units_loaded"`
	UnitsExcluded int `json:"units_excluded"`
	AreaBlocks    int `json:"area_blocks"`
	Zones         int `json:"zones"`
	ZonesReported int `json:"zones_reported"`
	POIFound      int `json:"poi_found"`
	TimingLive    int `json:"timing_live"`
}

// RunParams records what a report run was asked to do.
type RunParams struct {
	DatasetPath string   `json:"dataset_path"`
	TopN        int      `json:"top_n"`
	Provinces   []string `json:"provinces,omitempty"`
	Districts   []string `json:"districts,omitempty"`
	Localities  []string `json:"localities,omitempty"`
	AreaIDs     []string `json:"area_ids,omitempty"`
}

// Run is a persisted report run.
type Run struct {
	ID        string      `json:"id"`
	Params    RunParams   `json:"params"`
	Status    RunStatus   `json:"status"`
	Error     string      `json:"error,omitempty"`
	Summary   *RunSummary `json:"summary,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
