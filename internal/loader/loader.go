// Package loader reads infrastructure unit datasets from CSV and XLSX files.
package loader

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/fieldscout/internal/model"
)

// Column names as they appear in the export header row. Matching is
// case-insensitive and ignores surrounding whitespace.
const (
	colUnitID         = "unit_id"
	colAreaID         = "area_id"
	colLocality       = "locality"
	colProvince       = "province"
	colDistrict       = "district"
	colSubdistrict    = "subdistrict"
	colLocationType   = "location_type"
	colLatitude       = "latitude"
	colLongitude      = "longitude"
	colTotalPorts     = "total_ports"
	colAvailablePorts = "available_ports"
	colAreaPorts      = "area_ports"
	colAgeDays        = "age_days"
)

var requiredColumns = []string{
	colUnitID, colAreaID, colLocality, colLatitude, colLongitude,
	colTotalPorts, colAvailablePorts,
}

// Result carries the parsed units together with row accounting so callers can
// report how much of the file survived validation.
type Result struct {
	Units    []model.InfrastructureUnit
	Rows     int // data rows seen, header excluded
	Excluded int // rows dropped for missing or malformed required fields
}

// Load parses a dataset file, dispatching on extension. ".xlsx" goes through
// the spreadsheet reader, everything else is treated as CSV.
func Load(path string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return LoadCSV(path)
	}
}

// header maps canonical column names to their index in the file.
type header map[string]int

func parseHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, c := range cells {
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("loader: dataset missing required columns %s", strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) get(cells []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

// parseRow converts one data row into a unit. A false second return means the
// row is excluded from the run rather than failing it.
func parseRow(h header, cells []string, line int) (model.InfrastructureUnit, bool) {
	u := model.InfrastructureUnit{
		ID:           h.get(cells, colUnitID),
		AreaID:       h.get(cells, colAreaID),
		Locality:     h.get(cells, colLocality),
		Province:     h.get(cells, colProvince),
		District:     h.get(cells, colDistrict),
		Subdistrict:  h.get(cells, colSubdistrict),
		LocationType: h.get(cells, colLocationType),
	}
	if u.ID == "" || u.AreaID == "" || u.Locality == "" {
		zap.L().Debug("loader: excluding row with missing identifiers", zap.Int("line", line))
		return u, false
	}

	var ok bool
	if u.Latitude, ok = parseFloat(h.get(cells, colLatitude)); !ok {
		zap.L().Debug("loader: excluding row with bad latitude", zap.Int("line", line), zap.String("unit", u.ID))
		return u, false
	}
	if u.Longitude, ok = parseFloat(h.get(cells, colLongitude)); !ok {
		zap.L().Debug("loader: excluding row with bad longitude", zap.Int("line", line), zap.String("unit", u.ID))
		return u, false
	}
	if u.TotalPorts, ok = parseFloat(h.get(cells, colTotalPorts)); !ok {
		return u, false
	}
	if u.AvailablePorts, ok = parseFloat(h.get(cells, colAvailablePorts)); !ok {
		return u, false
	}

	// Optional fields default rather than exclude.
	u.AreaPorts, _ = parseFloat(h.get(cells, colAreaPorts))
	if v, ok := parseFloat(h.get(cells, colAgeDays)); ok {
		u.AgeDays = &v
	}
	return u, true
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
