// Package sheet acquires the tabular dataset that feeds a batch: local or
// remote CSV (including Google Sheets share links) and XLSX workbooks.
//
// Every source returns a validated certgen.Dataset or a descriptive error;
// the rest of the pipeline never sees a partial or ragged grid.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/lvillar/certgen"
)

// ParseCSV reads a dataset from CSV: the first record is the header row,
// the rest are data rows. Ragged input fails; it never yields a dataset
// with rows narrower than the header.
func ParseCSV(r io.Reader) (*certgen.Dataset, error) {
	cr := csv.NewReader(r)
	// All records must have the header's field count.
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("sheet: reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("sheet: csv has no header row")
	}
	ds, err := certgen.NewDataset(records[0], records[1:])
	if err != nil {
		return nil, fmt.Errorf("sheet: %w", err)
	}
	return ds, nil
}
