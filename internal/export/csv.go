// Package export writes report rows to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/fieldscout/internal/model"
)

// Header is the column order shared by both output formats.
var Header = []string{
	"level", "zone_id", "locality", "block_count", "unit_count",
	"available_ports", "unit_id", "score", "label", "status",
	"province", "district", "subdistrict", "location_type",
	"latitude", "longitude", "maps_url",
	"poi_name", "poi_address", "poi_confidence", "poi_distance_km", "poi_remark",
	"weekday_peaks", "weekend_peaks", "best_day", "activity", "timing_status",
}

// WriteCSV writes the report to path, header row first.
func WriteCSV(path string, rows []model.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: creating %s", path)
	}
	defer f.Close()

	return writeCSV(f, rows)
}

func writeCSV(w io.Writer, rows []model.ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: writing header")
	}
	for i, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return eris.Wrapf(err, "export: writing row %d", i)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flushing csv")
}

// record flattens one row into Header order.
func record(r model.ReportRow) []string {
	return []string{
		string(r.Level),
		r.ZoneID,
		r.Locality,
		intField(r.BlockCount),
		intField(r.UnitCount),
		floatField(r.AvailablePorts, 0),
		r.UnitID,
		strconv.FormatFloat(r.Score, 'f', 1, 64),
		string(r.Label),
		string(r.Status),
		r.Province,
		r.District,
		r.Subdistrict,
		r.LocationType,
		strconv.FormatFloat(r.Latitude, 'f', 6, 64),
		strconv.FormatFloat(r.Longitude, 'f', 6, 64),
		r.MapsURL,
		r.POIName,
		r.POIAddress,
		string(r.POIConfidence),
		floatField(r.POIDistanceKm, 2),
		r.POIRemark,
		r.WeekdayPeaks,
		r.WeekendPeaks,
		r.BestDay,
		string(r.Activity),
		string(r.TimingStatus),
	}
}

// intField renders zero as empty so detail-only columns stay blank on
// overview rows and vice versa.
func intField(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatField(v float64, prec int) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
