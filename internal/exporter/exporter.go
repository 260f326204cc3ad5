// Package exporter renders a selected month to an .xlsx workbook: the
// calendar grid, a stats summary, and the raw line items.
package exporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fante86/calenpag/internal/format"
	"github.com/fante86/calenpag/internal/model"
)

const (
	sheetCalendar = "Calendário"
	sheetRecords  = "Lançamentos"
	sheetSummary  = "Resumo"
)

// Exporter builds month workbooks.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export renders the calendar and its month-filtered records into a new
// workbook.
func (e *Exporter) Export(cal *model.Calendar, monthRecords []*model.PaymentRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetCalendar)

	if err := e.writeCalendarSheet(f, cal); err != nil {
		return nil, err
	}
	if err := e.writeSummarySheet(f, cal); err != nil {
		return nil, err
	}
	if err := e.writeRecordsSheet(f, monthRecords); err != nil {
		return nil, err
	}
	return f, nil
}

func (e *Exporter) writeCalendarSheet(f *excelize.File, cal *model.Calendar) error {
	title := fmt.Sprintf("%s de %d", cal.MonthName, cal.Year)
	if err := f.SetCellValue(sheetCalendar, "A1", title); err != nil {
		return err
	}
	if err := f.MergeCell(sheetCalendar, "A1", "G1"); err != nil {
		return err
	}

	for i, dia := range cal.Weekdays {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheetCalendar, cell, dia); err != nil {
			return err
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetRowStyle(sheetCalendar, 1, 2, headerStyle)

	for wi, week := range cal.Weeks {
		rowNum := wi + 3
		for ci, cellData := range week {
			cell, _ := excelize.CoordinatesToCellName(ci+1, rowNum)
			if err := f.SetCellValue(sheetCalendar, cell, dayCellText(cellData)); err != nil {
				return err
			}
		}
	}
	return nil
}

// dayCellText renders one grid cell the way the page shows it: day number,
// then one line per non-empty status bucket.
func dayCellText(cell model.DayCell) string {
	if cell.Day == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d", cell.Day)
	if cell.PendingCount > 0 {
		fmt.Fprintf(&b, "\n%d a pagar • %s", cell.PendingCount, cell.PendingTotal)
	}
	if cell.PaidCount > 0 {
		fmt.Fprintf(&b, "\n%d pagos • %s", cell.PaidCount, cell.PaidTotal)
	}
	return b.String()
}

func (e *Exporter) writeSummarySheet(f *excelize.File, cal *model.Calendar) error {
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Mês", fmt.Sprintf("%s de %d", cal.MonthName, cal.Year)},
		{"Total a Pagar", cal.Stats.PendingTotal},
		{"Títulos a Pagar", cal.Stats.PendingCount},
		{"Total Pago", cal.Stats.PaidTotal},
		{"Títulos Pagos", cal.Stats.PaidCount},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) writeRecordsSheet(f *excelize.File, records []*model.PaymentRecord) error {
	if _, err := f.NewSheet(sheetRecords); err != nil {
		return err
	}

	headers := []interface{}{
		"Fornecedor", "Documento", "Vencimento", "Pagamento",
		"Status", "Valor", "Conta", "Planejamento", "Observação",
	}
	if err := f.SetSheetRow(sheetRecords, "A1", &headers); err != nil {
		return err
	}

	for i, r := range records {
		paymentDate := ""
		if !r.PaymentDate.IsZero() {
			paymentDate = format.DataBR(r.PaymentDate)
		}
		row := []interface{}{
			r.Supplier,
			r.DocumentNumber,
			format.DataBR(r.DueDate),
			paymentDate,
			statusLabel(r.Status),
			format.Real(r.AmountCents()),
			r.Account,
			r.PlanningNote,
			r.Note,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetRecords, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func statusLabel(s model.Status) string {
	switch s {
	case model.StatusPending:
		return "A Pagar"
	case model.StatusPaid:
		return "Pago"
	default:
		return string(s)
	}
}
