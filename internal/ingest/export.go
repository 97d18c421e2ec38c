package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tbourn/go-reschedule-backend/internal/domain"
)

// ExportSheet is the sheet name of exported workbooks.
const ExportSheet = "Reagendamentos"

// exportColumns is the column order of exported workbooks. Headers are the
// canonical aliases, so an export can be ingested again.
var exportColumns = []Field{
	FieldWorkOrder, FieldSKU, FieldProduct, FieldTechnician, FieldDate,
	FieldHadReschedule, FieldReason, FieldPartCode, FieldType, FieldPartName,
}

func exportCells(r domain.Reschedule) []any {
	had := "NÃO"
	if r.HadReschedule {
		had = affirmative
	}
	return []any{
		r.WorkOrder, r.StockKeepingID, r.Product, r.Technician, r.Date,
		had, r.ReasonCode, r.PartCodeValue(), r.Type, r.PartNameValue(),
	}
}

// WriteWorkbook renders records as a single-sheet xlsx workbook on w.
func WriteWorkbook(w io.Writer, records []domain.Reschedule) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = columnAliases[col][0]
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(exportColumns))
	if err := f.SetCellStyle(ExportSheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportCells(r)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
