package expense

import (
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
)

// ItemView is a line item as rendered to clients; receipt bytes are omitted
type ItemView struct {
	ID          string `json:"id,omitempty"`
	ExpenseDate string `json:"expenseDate"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	ReceiptName string `json:"receiptName,omitempty"`
	HasReceipt  bool   `json:"hasReceipt"`
}

// View is the renderable state of a report
type View struct {
	ID            string                 `json:"id"`
	Tab           workflow.State         `json:"tab"`
	Trip          entity.TripDetails     `json:"trip"`
	Pending       ItemView               `json:"pending"`
	Expenses      []ItemView             `json:"expenses"`
	Total         string                 `json:"total"`
	TripErrors    validation.FieldErrors `json:"tripErrors"`
	ItemErrors    validation.FieldErrors `json:"itemErrors"`
	Banner        *entity.Banner         `json:"banner,omitempty"`
	InvoiceNumber string                 `json:"invoiceNumber,omitempty"`
	CanSubmit     bool                   `json:"canSubmit"`
	// Next is the tab the current one leads to, empty when there is none
	Next workflow.State `json:"next,omitempty"`
}

func toItemView(item entity.ExpenseItem, amount string) ItemView {
	v := ItemView{
		ID:          item.ID,
		ExpenseDate: item.ExpenseDate,
		Category:    item.Category,
		Description: item.Description,
		Amount:      amount,
		Currency:    item.Currency,
	}
	if item.Receipt != nil {
		v.ReceiptName = item.Receipt.Name
		v.HasReceipt = true
	}
	return v
}

// View renders the current state
func (r *Report) View() View {
	expenses := make([]ItemView, 0, len(r.items))
	for _, item := range r.items {
		expenses = append(expenses, toItemView(item, item.Amount.StringFixed(2)))
	}

	var banner *entity.Banner
	if r.banner != nil {
		b := *r.banner
		banner = &b
	}

	return View{
		ID:            r.id,
		Tab:           r.Tab(),
		Trip:          r.trip,
		Pending:       toItemView(r.pending, r.pending.Amount.String()),
		Expenses:      expenses,
		Total:         r.Total().StringFixed(2),
		TripErrors:    r.tripErrors.Clone(),
		ItemErrors:    r.itemErrors.Clone(),
		Banner:        banner,
		InvoiceNumber: r.invoiceNumber,
		CanSubmit:     r.CanSubmit(),
		Next:          r.next(),
	}
}

// next is the tab reachable from the current one. Guards are not evaluated.
func (r *Report) next() workflow.State {
	for _, tab := range []workflow.State{workflow.StateDetails, workflow.StateExpenses} {
		if trigger, ok := workflow.TriggerFor(r.Tab(), tab); ok && r.steps.CanFire(trigger) {
			return tab
		}
	}
	return ""
}
