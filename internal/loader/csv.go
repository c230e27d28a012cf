package loader

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// LoadCSV reads a unit dataset from a CSV file. The first row must be the
// header. Rows with missing identifiers or unparseable coordinates are
// excluded and counted, not fatal.
func LoadCSV(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "loader: opening dataset %s", path)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		return nil, eris.Wrap(err, "loader: reading header row")
	}
	h, err := parseHeader(head)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	line := 1
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "loader: reading row %d", line+1)
		}
		line++
		res.Rows++

		u, ok := parseRow(h, cells, line)
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
