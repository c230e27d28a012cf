package loader

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// LoadXLSX reads a unit dataset from the first sheet of a spreadsheet export.
// Row one is the header; exclusion semantics match the CSV path.
func LoadXLSX(path string) (*Result, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: opening dataset %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("loader: dataset %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("loader: dataset %s has no header row", path)
	}

	h, err := parseHeader(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blankRow(cells) {
			continue
		}
		res.Rows++

		u, ok := parseRow(h, cells, i+2)
		if !ok {
			res.Excluded++
			continue
		}
		res.Units = append(res.Units, u)
	}

	zap.L().Info("loaded dataset",
		zap.Int("rows", res.Rows),
		zap.Int("units", len(res.Units)),
		zap.Int("excluded", res.Excluded))
	return res, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

// blankRow reports whether every cell is empty. Spreadsheets commonly carry
// trailing formatted-but-empty rows.
func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
