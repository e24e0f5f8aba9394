// Package tabular reads inventory line items from CSV files and writes
// enriched results to CSV or XLSX artifacts.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/partscout/partscout/internal/common"
	"github.com/partscout/partscout/internal/model"
)

// Input column headers. All five are required; extra columns are ignored.
const (
	ColumnItemNumber  = "Item #"
	ColumnDescription = "Item Description"
	ColumnQuantity    = "Qty"
	ColumnUnitRetail  = "Unit Retail"
	ColumnExtRetail   = "Ext. Retail"
)

var requiredColumns = []string{
	ColumnItemNumber, ColumnDescription, ColumnQuantity, ColumnUnitRetail, ColumnExtRetail,
}

// ReadLineItems parses the input file into line items indexed by their
// original row position. A missing required column is a validation error;
// unparseable numeric cells fall back to zero rather than aborting the load.
func ReadLineItems(path string) ([]model.LineItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumns, strings.Join(missing, ", "))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read input rows: %w", err)
	}
	if len(records) == 0 {
		return nil, common.ErrEmptyInput
	}

	items := make([]model.LineItem, 0, len(records))
	for i, record := range records {
		cell := func(name string) string {
			idx := columns[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		items = append(items, model.LineItem{
			Index:       i,
			ItemNumber:  cell(ColumnItemNumber),
			Description: cell(ColumnDescription),
			Quantity:    parseInt(cell(ColumnQuantity)),
			UnitRetail:  parseMoney(cell(ColumnUnitRetail)),
			ExtRetail:   parseMoney(cell(ColumnExtRetail)),
		})
	}

	return items, nil
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}

func parseMoney(s string) float64 {
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
