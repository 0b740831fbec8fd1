package services

import (
	"context"
	"fmt"
	"lexium/services/i18n"

	"github.com/xuri/excelize/v2"
)

// Sheet names are stable so spreadsheets built on top of the export keep working
const (
	sheetHoursPerCase    = "HoursPerCase"
	sheetHoursPerUser    = "HoursPerUser"
	sheetUnbilledPerCase = "UnbilledPerCase"
)

// XLSXContentType is the MIME type of the workbook export
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportReportsWorkbook writes the three reports into one workbook, one sheet
// each, with headers in the language of ctx
func ExportReportsWorkbook(ctx context.Context, reports *Reports) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	hoursStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return nil, fmt.Errorf("failed to create number style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	f.SetSheetName("Sheet1", sheetHoursPerCase)
	writeHeader(f, sheetHoursPerCase, headerStyle,
		i18n.T(ctx, "reports.columns.number"),
		i18n.T(ctx, "reports.columns.case"),
		i18n.T(ctx, "reports.columns.client"),
		i18n.T(ctx, "reports.columns.total_hours"),
	)
	for i, r := range reports.HoursPerCase {
		row := i + 2
		setRow(f, sheetHoursPerCase, row, r.Number, r.Name, r.ClientName, r.TotalHours.InexactFloat64())
		setStyle(f, sheetHoursPerCase, 4, row, hoursStyle)
	}
	f.SetColWidth(sheetHoursPerCase, "A", "A", 14)
	f.SetColWidth(sheetHoursPerCase, "B", "C", 36)
	f.SetColWidth(sheetHoursPerCase, "D", "D", 14)

	if _, err := f.NewSheet(sheetHoursPerUser); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	writeHeader(f, sheetHoursPerUser, headerStyle,
		i18n.T(ctx, "reports.columns.username"),
		i18n.T(ctx, "reports.columns.name"),
		i18n.T(ctx, "reports.columns.total_seconds"),
		i18n.T(ctx, "reports.columns.total_hours"),
	)
	for i, r := range reports.HoursPerUser {
		row := i + 2
		setRow(f, sheetHoursPerUser, row, r.Username, r.FullName(), r.TotalSeconds, r.TotalHours().InexactFloat64())
		setStyle(f, sheetHoursPerUser, 4, row, hoursStyle)
	}
	f.SetColWidth(sheetHoursPerUser, "A", "B", 24)
	f.SetColWidth(sheetHoursPerUser, "C", "D", 14)

	if _, err := f.NewSheet(sheetUnbilledPerCase); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	writeHeader(f, sheetUnbilledPerCase, headerStyle,
		i18n.T(ctx, "reports.columns.number"),
		i18n.T(ctx, "reports.columns.case"),
		i18n.T(ctx, "reports.columns.client"),
		i18n.T(ctx, "reports.columns.billing_type"),
		i18n.T(ctx, "reports.columns.rate"),
		i18n.T(ctx, "reports.columns.unbilled_hours"),
		i18n.T(ctx, "reports.columns.estimated_amount"),
	)
	for i, r := range reports.UnbilledPerCase {
		row := i + 2
		setRow(f, sheetUnbilledPerCase, row,
			r.Number, r.Name, r.ClientName,
			i18n.T(ctx, "billing_type."+string(r.BillingType)),
			r.RateAmount.InexactFloat64(),
			r.UnbilledHours.InexactFloat64(),
			r.EstimatedAmount.InexactFloat64(),
		)
		setStyle(f, sheetUnbilledPerCase, 5, row, moneyStyle)
		setStyle(f, sheetUnbilledPerCase, 6, row, hoursStyle)
		setStyle(f, sheetUnbilledPerCase, 7, row, moneyStyle)
	}
	if n := len(reports.UnbilledPerCase); n > 0 {
		totalRow := n + 2
		setRow(f, sheetUnbilledPerCase, totalRow, i18n.T(ctx, "reports.total"))
		cell, _ := excelize.CoordinatesToCellName(7, totalRow)
		f.SetCellFormula(sheetUnbilledPerCase, cell, fmt.Sprintf("SUM(G2:G%d)", totalRow-1))
		setStyle(f, sheetUnbilledPerCase, 7, totalRow, moneyStyle)
	}
	f.SetColWidth(sheetUnbilledPerCase, "A", "A", 14)
	f.SetColWidth(sheetUnbilledPerCase, "B", "C", 36)
	f.SetColWidth(sheetUnbilledPerCase, "D", "G", 16)

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers ...string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	first, _ := excelize.CoordinatesToCellName(1, 1)
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, first, last, style)
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func setStyle(f *excelize.File, sheet string, col, row, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	f.SetCellStyle(sheet, cell, cell, style)
}
