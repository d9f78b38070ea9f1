package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
)

func sampleReport() expense.Submission {
	return expense.Submission{
		Trip: entity.TripDetails{
			FullName:       "Jane Doe",
			Email:          "jane@example.com",
			StartDate:      "2025-05-12",
			EndDate:        "2025-05-15",
			DateDuration:   4,
			TravelLocation: "Indianapolis",
			Client:         "BMS",
			Project:        "Fill finish",
			PMO:            "Rachel",
			ResourceType:   "Consultant",
		},
		Items: []entity.ExpenseItem{
			{
				ID:          "a",
				ExpenseDate: "2025-05-12",
				Category:    "Hotel",
				Description: "Three nights",
				Amount:      decimal.RequireFromString("612.30"),
				Currency:    "USD",
				Receipt:     &entity.Receipt{Name: "hotel.pdf"},
			},
			{
				ID:          "b",
				ExpenseDate: "2025-05-13",
				Category:    "Meals",
				Description: "Dinner",
				Amount:      decimal.RequireFromString("45.20"),
				Currency:    "USD",
			},
		},
	}
}

func TestWorkbookExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	exp := NewWorkbookExporter("", zap.NewNop())

	require.NoError(t, exp.Export(&buf, sampleReport()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}
	get := func(c string) string {
		v, err := f.GetCellValue(SheetName, c, raw)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Invoice #", get("A1"))
	assert.Equal(t, "iSSi-EXP-BMS-JD-250512", get("B1"))
	assert.Equal(t, "Rachel Liao", get("B10"))

	assert.Equal(t, "Date", get("A12"))
	assert.Equal(t, "Receipt", get("F12"))

	assert.Equal(t, "Three nights", get("C13"))
	assert.Equal(t, "612.3", get("D13"))
	assert.Equal(t, "hotel.pdf", get("F13"))
	assert.Equal(t, "Dinner", get("C14"))
	assert.Empty(t, get("F14"))

	assert.Equal(t, "Total", get("A15"))
	assert.Equal(t, "657.5", get("D15"))
}

func TestWorkbookExporter_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	exp := NewWorkbookExporter("ACME", zap.NewNop())

	require.NoError(t, exp.Export(&buf, expense.Submission{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(SheetName, "A13")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)
}

func TestFill_ReturnsSheetErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	err := fill(f, sampleReport(), entity.DefaultInvoicePrefix)

	require.Error(t, err)
	var missing excelize.ErrSheetNotExist
	assert.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "failed to set row 1")
}
