package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"IDXScreener/internal/model"
)

// SheetName is the worksheet holding the results.
const SheetName = "Results"

// RenderSpreadsheet returns the report as an .xlsx workbook.
func RenderSpreadsheet(rep *model.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	cols := Columns(rep.Mode)
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	if rep.Empty() {
		if err := f.SetCellValue(SheetName, "A2", NoCandidatesText); err != nil {
			return nil, fmt.Errorf("write notice: %w", err)
		}
	}
	for i, r := range rep.Results {
		row := []interface{}{
			r.Symbol,
			RoundPrice(r.Price),
			r.Lot,
			RoundPrice(r.TakeProfit),
			RoundPrice(r.StopLoss),
			r.EstProfit,
			r.EstLoss,
		}
		if rep.Mode == model.ModeScreening {
			if r.RSI.IsSome() {
				row = append(row, RoundPrice(r.RSI.Unwrap()))
			} else {
				row = append(row, "-")
			}
		}
		row = append(row, SignalText(r.Signal))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write %s: %w", r.Symbol, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
