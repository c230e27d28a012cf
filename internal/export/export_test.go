package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/fieldscout/internal/model"
)

func sampleRows() []model.ReportRow {
	return []model.ReportRow{
		{
			Level: model.LevelOverview, ZoneID: "Bophut_ZONE_2BLOCKS", Locality: "Bophut",
			BlockCount: 2, UnitCount: 3, AvailablePorts: 14,
			Score: 61.0, Label: model.PriorityMedium, Status: model.StatusNew,
			Province: "Surat Thani", District: "Ko Samui", Subdistrict: "Bophut",
			Latitude: 9.3202, Longitude: 99.7002,
			MapsURL: "https://www.google.com/maps?q=9.320200,99.700200",
			POIName: "Corner Mart", POIConfidence: model.ConfidenceHigh, POIDistanceKm: 0.42,
			WeekdayPeaks: "09:00, 18:00", BestDay: "Friday",
			Activity: model.ActivityMedium, TimingStatus: model.TimingLive,
		},
		{
			Level: model.LevelDetail, ZoneID: "Bophut_ZONE_2BLOCKS", Locality: "Bophut",
			UnitID: "U1", Score: 76.0, Label: model.PriorityHigh, Status: model.StatusNew,
			Province: "Surat Thani", District: "Ko Samui", Subdistrict: "Bophut",
			Latitude: 9.3201, Longitude: 99.7001,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	for _, rec := range records[1:] {
		assert.Len(t, rec, len(Header))
	}

	overview := records[1]
	assert.Equal(t, "OVERVIEW", overview[0])
	assert.Equal(t, "Bophut_ZONE_2BLOCKS", overview[1])
	assert.Equal(t, "61.0", overview[7])
	assert.Equal(t, "Corner Mart", overview[17])
	assert.Equal(t, "0.42", overview[20])

	detail := records[2]
	assert.Equal(t, "DETAIL", detail[0])
	assert.Equal(t, "U1", detail[6])
	// overview-only columns stay blank on detail rows
	assert.Equal(t, "", detail[3])
	assert.Equal(t, "", detail[17])
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bophut_ZONE_2BLOCKS")
}

func TestWriteXLSXSplitsSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, sampleRows()))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	zones := f.Sheet["Zones"]
	require.NotNil(t, zones)
	require.Len(t, zones.Rows, 2) // header + one overview
	assert.Equal(t, "OVERVIEW", zones.Rows[1].Cells[0].String())
	assert.Equal(t, "Corner Mart", zones.Rows[1].Cells[17].String())

	units := f.Sheet["Units"]
	require.NotNil(t, units)
	require.Len(t, units.Rows, 2) // header + one detail
	assert.Equal(t, "U1", units.Rows[1].Cells[6].String())
}
