package pipeline

import (
	"strings"

	"github.com/sells-group/fieldscout/internal/model"
)

// Filter narrows a dataset before scoring. Empty fields match everything;
// set fields must all match. String matching is case-insensitive.
type Filter struct {
	Provinces    []string
	Districts    []string
	Subdistricts []string
	Localities   []string
	AreaIDs      []string
	LocationType string

	// Bounding box, applied only when MaxLat/MaxLng are set.
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Apply returns the units passing the filter, preserving input order.
func (f Filter) Apply(units []model.InfrastructureUnit) []model.InfrastructureUnit {
	var out []model.InfrastructureUnit
	for _, u := range units {
		if f.match(u) {
			out = append(out, u)
		}
	}
	return out
}

func (f Filter) match(u model.InfrastructureUnit) bool {
	if !matchAny(f.Provinces, u.Province) ||
		!matchAny(f.Districts, u.District) ||
		!matchAny(f.Subdistricts, u.Subdistrict) ||
		!matchAny(f.Localities, u.Locality) ||
		!matchAny(f.AreaIDs, u.AreaID) {
		return false
	}
	if f.LocationType != "" && !strings.EqualFold(f.LocationType, u.LocationType) {
		return false
	}
	if f.MaxLat != 0 || f.MaxLng != 0 {
		if u.Latitude < f.MinLat || u.Latitude > f.MaxLat ||
			u.Longitude < f.MinLng || u.Longitude > f.MaxLng {
			return false
		}
	}
	return true
}

func matchAny(wanted []string, value string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if strings.EqualFold(strings.TrimSpace(w), value) {
			return true
		}
	}
	return false
}
