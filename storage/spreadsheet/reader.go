package spreadsheet

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/vidyalabs/vidya/core/roster"
)

var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ReadFile loads a workbook or CSV file into a raw cell grid.
// The format is picked from the file extension.
func ReadFile(path string) (roster.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening spreadsheet")
	}
	defer f.Close()
	return Read(f, filepath.Ext(path))
}

// Read loads spreadsheet data from r; ext selects the decoder
// (".xlsx" or ".csv", case-insensitive).
func Read(r io.Reader, ext string) (roster.Grid, error) {
	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm":
		return readWorkbook(r)
	case ".csv":
		return readCSV(r)
	case ".xls":
		// the legacy binary format cannot be decoded
		return nil, errors.Wrap(ErrUnsupportedFormat, "legacy .xls workbook, re-save it as .xlsx")
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
}

// readWorkbook decodes the first sheet of an Excel workbook.
func readWorkbook(r io.Reader) (roster.Grid, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening workbook")
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheets[0])
	}

	grid := make(roster.Grid, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func readCSV(r io.Reader) (roster.Grid, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rosters have ragged rows

	var grid roster.Grid
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading csv")
		}
		cells := make([]interface{}, 0, len(record))
		for _, cell := range record {
			cells = append(cells, cell)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}
