package entity

import "github.com/shopspring/decimal"

// Invoice request field names
const (
	FieldInvoiceNumber = "invoiceNumber"
	FieldTotalAmount   = "totalAmount"
	FieldCurrency      = "currency"
	FieldNotes         = "notes"
)

// InvoiceRequest asks for an invoice to be generated for a client project
type InvoiceRequest struct {
	RequestorName string          `json:"requestorName"`
	Email         string          `json:"email"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Client        string          `json:"client"`
	Project       string          `json:"project"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Currency      string          `json:"currency"`
	Notes         string          `json:"notes"`
}

// NewInvoiceRequest returns the initial invoice request form
func NewInvoiceRequest() InvoiceRequest {
	return InvoiceRequest{
		TotalAmount: decimal.Zero,
		Currency:    DefaultInvoiceCurrency,
	}
}
