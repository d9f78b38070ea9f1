// Package export renders expense reports as Excel workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
)

// SheetName is the name of the single report sheet
const SheetName = "Expense Report"

// itemHeaderRow is the row holding the line item column titles
const itemHeaderRow = 12

var itemColumns = []string{"Date", "Category", "Description", "Amount", "Currency", "Receipt"}

// WorkbookExporter implements port.ReportExporter
type WorkbookExporter struct {
	invoicePrefix string
	logger        *zap.Logger
}

// NewWorkbookExporter creates an exporter that labels reports with invoice
// numbers starting with invoicePrefix
func NewWorkbookExporter(invoicePrefix string, logger *zap.Logger) *WorkbookExporter {
	return &WorkbookExporter{
		invoicePrefix: invoicePrefix,
		logger:        logger,
	}
}

// Export writes report as an .xlsx workbook: trip details on top, one row per
// line item below and a total row last.
// Implements port.ReportExporter interface
func (e *WorkbookExporter) Export(w io.Writer, report expense.Submission) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := fill(f, report, e.invoicePrefix); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Expense report exported",
		zap.String("full_name", report.Trip.FullName),
		zap.Int("items", len(report.Items)))
	return nil
}

// fill lays the report out on the report sheet of f
func fill(f *excelize.File, report expense.Submission, invoicePrefix string) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	sheet := &sheetWriter{f: f}

	trip := report.Trip
	details := [][2]interface{}{
		{"Invoice #", entity.NewInvoiceNumber(invoicePrefix, trip).String()},
		{"Full name", trip.FullName},
		{"Email", trip.Email},
		{"Start date", trip.StartDate},
		{"End date", trip.EndDate},
		{"Duration (days)", trip.DateDuration},
		{"Travel location", trip.TravelLocation},
		{"Client", trip.Client},
		{"Project", trip.Project},
		{"PM/PMO", entity.LabelFor(entity.ProjectManagers, trip.PMO)},
	}
	for i, kv := range details {
		row := i + 1
		sheet.row(row, []interface{}{kv[0], kv[1]})
		sheet.style(cell(1, row), cell(1, row), bold)
	}

	headers := make([]interface{}, len(itemColumns))
	for i, c := range itemColumns {
		headers[i] = c
	}
	sheet.row(itemHeaderRow, headers)
	sheet.style(cell(1, itemHeaderRow), cell(len(itemColumns), itemHeaderRow), bold)

	row := itemHeaderRow
	for _, item := range report.Items {
		row++
		receipt := ""
		if item.Receipt != nil {
			receipt = item.Receipt.Name
		}
		sheet.row(row, []interface{}{
			item.ExpenseDate,
			item.Category,
			item.Description,
			item.Amount.InexactFloat64(),
			item.Currency,
			receipt,
		})
	}
	if row > itemHeaderRow {
		sheet.style(cell(4, itemHeaderRow+1), cell(4, row), money)
	}

	totalRow := row + 1
	sheet.row(totalRow, []interface{}{"Total", nil, nil, entity.SumAmounts(report.Items).InexactFloat64()})
	sheet.style(cell(1, totalRow), cell(1, totalRow), bold)
	sheet.style(cell(4, totalRow), cell(4, totalRow), boldMoney)
	if sheet.err != nil {
		return sheet.err
	}

	for col, width := range map[string]float64{"A": 16, "B": 28, "C": 40, "D": 12, "E": 10, "F": 30} {
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

// sheetWriter writes to the report sheet and keeps the first error. Later
// writes are skipped once one failed.
type sheetWriter struct {
	f   *excelize.File
	err error
}

// row writes values starting at column A
func (s *sheetWriter) row(row int, values []interface{}) {
	if s.err != nil {
		return
	}
	if err := s.f.SetSheetRow(SheetName, cell(1, row), &values); err != nil {
		s.err = fmt.Errorf("failed to set row %d: %w", row, err)
	}
}

func (s *sheetWriter) style(from, to string, style int) {
	if s.err != nil {
		return
	}
	if err := s.f.SetCellStyle(SheetName, from, to, style); err != nil {
		s.err = fmt.Errorf("failed to style %s:%s: %w", from, to, err)
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
