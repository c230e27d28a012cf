// Package grid handles the coarse lat/lng grid encoded in area ids and the
// neighbor-cell rings used for POI fallback search.
package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Cell is one grid cell in integer grid units (decimal degrees * 1000).
type Cell struct {
	Lat int
	Lng int
}

// Offset is a displacement between cells in grid units.
type Offset struct {
	DLat int
	DLng int
}

// Rings returns the fallback neighbor offsets in search-preference order:
// axis-aligned neighbors first, then diagonals, then the extended ring.
func Rings() [][]Offset {
	return [][]Offset{
		{{-5, 0}, {5, 0}, {0, -5}, {0, 5}},
		{{-5, -5}, {-5, 5}, {5, -5}, {5, 5}},
		{
			{-10, 0}, {10, 0}, {0, -10}, {0, 10},
			{-10, -5}, {-10, 5}, {10, -5}, {10, 5},
		},
	}
}

// Decode parses an area id like "09320-099700" into its grid cell.
func Decode(areaID string) (Cell, error) {
	latStr, lngStr, ok := strings.Cut(areaID, "-")
	if !ok {
		return Cell{}, eris.Errorf("grid: malformed area id %q", areaID)
	}
	lat, err := strconv.Atoi(latStr)
	if err != nil {
		return Cell{}, eris.Wrapf(err, "grid: parse lat of area id %q", areaID)
	}
	lng, err := strconv.Atoi(lngStr)
	if err != nil {
		return Cell{}, eris.Wrapf(err, "grid: parse lng of area id %q", areaID)
	}
	return Cell{Lat: lat, Lng: lng}, nil
}

// ID formats the cell back into its canonical area id.
func (c Cell) ID() string {
	return fmt.Sprintf("%05d-%06d", c.Lat, c.Lng)
}

// Shift returns the cell displaced by the given offset.
func (c Cell) Shift(o Offset) Cell {
	return Cell{Lat: c.Lat + o.DLat, Lng: c.Lng + o.DLng}
}

// Center returns the cell's decimal-degree coordinate.
func (c Cell) Center() (lat, lng float64) {
	return float64(c.Lat) / 1000, float64(c.Lng) / 1000
}

const earthRadiusKm = 6371

// DistanceKm returns the Haversine great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
