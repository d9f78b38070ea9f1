package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense item validation keys
const (
	FieldItemDate        = "date"
	FieldItemCategory    = "category"
	FieldItemDescription = "description"
	FieldItemAmount      = "amount"
	FieldItemCurrency    = "currency"
	FieldItemReceipt     = "receiptFile"
)

// Receipt is an uploaded receipt file held in memory until submission
type Receipt struct {
	Name        string `json:"name"`
	ContentType string `json:"type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// ExpenseItem is one line item of a travel expense report
type ExpenseItem struct {
	ID          string          `json:"id"`
	ExpenseDate string          `json:"expenseDate"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Receipt     *Receipt        `json:"receipt,omitempty"`
}

// NewExpenseItem returns an empty pending item dated today in the default currency
func NewExpenseItem(now time.Time) ExpenseItem {
	return ExpenseItem{
		ExpenseDate: FormatDate(now),
		Amount:      decimal.Zero,
		Currency:    DefaultExpenseCurrency,
	}
}

// ChangedFields lists the validation keys of the fields that differ from other.
// The receipt is compared by presence only.
func (e ExpenseItem) ChangedFields(other ExpenseItem) []string {
	var changed []string
	if e.ExpenseDate != other.ExpenseDate {
		changed = append(changed, FieldItemDate)
	}
	if e.Category != other.Category {
		changed = append(changed, FieldItemCategory)
	}
	if e.Description != other.Description {
		changed = append(changed, FieldItemDescription)
	}
	if !e.Amount.Equal(other.Amount) {
		changed = append(changed, FieldItemAmount)
	}
	if e.Currency != other.Currency {
		changed = append(changed, FieldItemCurrency)
	}
	if (e.Receipt == nil) != (other.Receipt == nil) {
		changed = append(changed, FieldItemReceipt)
	}
	return changed
}

// RoundAmount rounds a money amount to cents
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SumAmounts adds the item amounts and rounds the result to cents
func SumAmounts(items []ExpenseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return RoundAmount(total)
}
