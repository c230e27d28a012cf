package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/fieldscout/internal/model"
)

// WriteXLSX writes the report as a spreadsheet with one sheet per row level:
// zone overviews on the first, unit details on the second.
func WriteXLSX(path string, rows []model.ReportRow) error {
	f := xlsx.NewFile()

	overview, err := f.AddSheet("Zones")
	if err != nil {
		return eris.Wrap(err, "export: adding zones sheet")
	}
	detail, err := f.AddSheet("Units")
	if err != nil {
		return eris.Wrap(err, "export: adding units sheet")
	}

	addHeader(overview)
	addHeader(detail)

	for _, row := range rows {
		sheet := detail
		if row.Level == model.LevelOverview {
			sheet = overview
		}
		xr := sheet.AddRow()
		for _, cell := range record(row) {
			xr.AddCell().SetString(cell)
		}
	}

	return eris.Wrapf(f.Save(path), "export: saving %s", path)
}

func addHeader(sheet *xlsx.Sheet) {
	row := sheet.AddRow()
	for _, h := range Header {
		row.AddCell().SetString(h)
	}
}
