package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/partscout/partscout/internal/model"
)

// Output adds the enrichment columns after the original five.
var outputHeader = []string{
	ColumnItemNumber, ColumnDescription, ColumnQuantity, ColumnUnitRetail, ColumnExtRetail,
	"Part Number", "Category", "Makes", "Source",
}

const xlsxSheetName = "Enriched Parts"

// Write exports enriched rows to the given path, choosing the format by
// extension: .xlsx produces a spreadsheet, anything else CSV. Rows must
// already be in original file order; the writer preserves it.
func Write(path string, rows []model.EnrichedRow) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, rows)
	}
	return writeCSV(path, rows)
}

// exportCells renders one enriched row into output column order.
func exportCells(row model.EnrichedRow) []string {
	makes := model.MakesNotProcessed
	source := "N/A"
	switch row.Category {
	case model.CategoryAutomotive:
		if row.Resolution != nil {
			makes = row.Resolution.MakesString()
			source = row.Resolution.Source
		}
	case model.CategoryTool:
		makes = model.MakesNotATool
	case model.CategoryUnknown:
		makes = model.MakesUnknownItem
	}

	return []string{
		row.Item.ItemNumber,
		row.Item.Description,
		strconv.Itoa(row.Item.Quantity),
		strconv.FormatFloat(row.Item.UnitRetail, 'f', 2, 64),
		strconv.FormatFloat(row.Item.ExtRetail, 'f', 2, 64),
		row.LookupKey,
		string(row.Category),
		makes,
		source,
	}
}

func writeCSV(path string, rows []model.EnrichedRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(outputHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(exportCells(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Item.Index, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}
	return f.Close()
}

func writeXLSX(path string, rows []model.EnrichedRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	writeRow := func(rowNum int, cells []string) error {
		addr, err := excelize.JoinCellName("A", rowNum)
		if err != nil {
			return err
		}
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return f.SetSheetRow(xlsxSheetName, addr, &values)
	}

	if err := writeRow(1, outputHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, exportCells(row)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Item.Index, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export file: %w", err)
	}
	return nil
}
