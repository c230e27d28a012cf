package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/fieldscout/internal/model"
)

func reportTestRows() []model.ReportRow {
	return []model.ReportRow{
		{Level: model.LevelOverview, ZoneID: "Maret_ZONE_1BLOCK", Locality: "Maret", Score: 80.0, Label: model.PriorityVeryHigh},
		{Level: model.LevelDetail, ZoneID: "Maret_ZONE_1BLOCK", UnitID: "U4", Score: 80.0, Label: model.PriorityVeryHigh},
	}
}

func TestWriteReportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeReport(path, reportTestRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "zone_id")
	assert.Contains(t, string(data), "Maret_ZONE_1BLOCK")
}

func TestWriteReportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, writeReport(path, reportTestRows()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteReportUnsupportedExtension(t *testing.T) {
	err := writeReport("out.pdf", reportTestRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestDatasetFilterFlags(t *testing.T) {
	cmd := &cobra.Command{}
	addFilterFlags(cmd)

	require.NoError(t, cmd.Flags().Set("locality", "Bophut"))
	require.NoError(t, cmd.Flags().Set("area", "09320-099700"))
	require.NoError(t, cmd.Flags().Set("location-type", "Commercial"))
	require.NoError(t, cmd.Flags().Set("bbox", "9.0,99.0,10.0,100.0"))

	f := datasetFilter(cmd)
	assert.Equal(t, []string{"Bophut"}, f.Localities)
	assert.Equal(t, []string{"09320-099700"}, f.AreaIDs)
	assert.Equal(t, "Commercial", f.LocationType)
	assert.Equal(t, 9.0, f.MinLat)
	assert.Equal(t, 99.0, f.MinLng)
	assert.Equal(t, 10.0, f.MaxLat)
	assert.Equal(t, 100.0, f.MaxLng)
}

func TestDatasetFilterNoFlags(t *testing.T) {
	cmd := &cobra.Command{}
	addFilterFlags(cmd)

	f := datasetFilter(cmd)
	assert.Empty(t, f.Localities)
	assert.Zero(t, f.MaxLat)
	assert.Zero(t, f.MaxLng)
}
