package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/lvillar/certgen"
)

// ReadXLSX reads a dataset from the first sheet of an XLSX workbook. The
// first row is the header row. Excel trims trailing empty cells, so short
// rows are padded with empty strings to the header width; the dataset
// invariant is that absent data is an empty string, never a missing slot.
func ReadXLSX(r io.Reader) (*certgen.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("sheet: opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("sheet: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("sheet: reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet: sheet %q has no header row", sheets[0])
	}

	headers := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) > len(headers) {
			row = row[:len(headers)]
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		data = append(data, row)
	}

	ds, err := certgen.NewDataset(headers, data)
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	return ds, nil
}
