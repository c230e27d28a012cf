package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/fieldscout/internal/model"
)

// buildRows flattens the ranked zones into report rows: one overview row per
// zone, in rank order, followed by that zone's units as detail rows, best
// unit first.
func buildRows(ranked []model.Zone, units []model.InfrastructureUnit, enrichments []enrichment) []model.ReportRow {
	unitsByArea := make(map[string][]model.InfrastructureUnit, len(units))
	for _, u := range units {
		unitsByArea[u.AreaID] = append(unitsByArea[u.AreaID], u)
	}

	var rows []model.ReportRow
	for i, zone := range ranked {
		rows = append(rows, overviewRow(zone, enrichments[i]))

		var members []model.InfrastructureUnit
		for _, blockID := range zone.BlockIDs {
			members = append(members, unitsByArea[blockID]...)
		}
		sort.SliceStable(members, func(a, b int) bool { return members[a].Score > members[b].Score })

		for _, u := range members {
			rows = append(rows, detailRow(zone, u))
		}
	}
	return rows
}

func overviewRow(zone model.Zone, e enrichment) model.ReportRow {
	row := model.ReportRow{
		Level:          model.LevelOverview,
		ZoneID:         zone.ID,
		Locality:       zone.Locality,
		BlockCount:     zone.BlockCount,
		UnitCount:      zone.UnitCount,
		AvailablePorts: zone.AvailablePorts,
		Score:          zone.Score,
		Label:          zone.Label,
		Status:         zone.Status,
		Province:       zone.Province,
		District:       zone.District,
		Subdistrict:    zone.Subdistrict,
		LocationType:   zone.LocationType,
		Latitude:       zone.Latitude,
		Longitude:      zone.Longitude,
		MapsURL:        mapsURL(zone.Latitude, zone.Longitude),
	}

	if e.poi != nil {
		row.POIConfidence = e.poi.Confidence
		row.POIRemark = e.poi.Remark
		if e.poi.Found() {
			row.POIName = e.poi.POI.Name
			row.POIAddress = e.poi.POI.Address
			row.POIPlaceID = e.poi.POI.PlaceID
			row.POIDistanceKm = e.poi.POI.DistanceKm
		}
	}

	row.WeekdayPeaks = strings.Join(e.timing.WeekdayPeaks, ", ")
	row.WeekendPeaks = strings.Join(e.timing.WeekendPeaks, ", ")
	row.BestDay = e.timing.BestDay
	row.Activity = e.timing.Activity
	row.TimingStatus = e.timing.Status
	return row
}

func detailRow(zone model.Zone, u model.InfrastructureUnit) model.ReportRow {
	return model.ReportRow{
		Level:        model.LevelDetail,
		ZoneID:       zone.ID,
		Locality:     u.Locality,
		UnitID:       u.ID,
		Score:        u.Score,
		Label:        u.Label,
		Status:       u.Status,
		Province:     u.Province,
		District:     u.District,
		Subdistrict:  u.Subdistrict,
		LocationType: u.LocationType,
		Latitude:     u.Latitude,
		Longitude:    u.Longitude,
		MapsURL:      mapsURL(u.Latitude, u.Longitude),
	}
}

func mapsURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", lat, lng)
}
