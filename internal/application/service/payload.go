package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
)

// TripPayload is the body posted for a travel notification. The expense
// report embeds it.
type TripPayload struct {
	FullName        string `json:"fullName"`
	NameInitial     string `json:"nameInitial"`
	Email           string `json:"email"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	DateDuration    string `json:"dateDuration"`
	TravelLocation  string `json:"travelLocation"`
	Client          string `json:"client"`
	Project         string `json:"project"`
	PMO             string `json:"pmo"`
	ResourceType    string `json:"resourceType"`
	AdditionalInfo  string `json:"additionalInfo"`
	InvoiceDatePart string `json:"invoiceDatePart"`
	NewInvoiceNum   string `json:"newInvoiceNum"`
}

// ExpensePayload is one line item of an expense report body
type ExpensePayload struct {
	ID            string               `json:"id"`
	ExpenseDate   string               `json:"expenseDate"`
	Category      string               `json:"category"`
	Description   string               `json:"description"`
	Amount        float64              `json:"amount"`
	Currency      string               `json:"currency"`
	ReceiptBase64 *port.EncodedReceipt `json:"receiptBase64,omitempty"`
}

// ExpenseReportPayload is the body posted for an expense report
type ExpenseReportPayload struct {
	TripPayload
	Expenses []ExpensePayload `json:"expenses"`
}

// ApprovalPayload is the body posted for an approval decision
type ApprovalPayload struct {
	RequestID     string  `json:"requestId"`
	RequestorName string  `json:"requestorName"`
	Client        string  `json:"client"`
	Project       string  `json:"project"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	ApproverName  string  `json:"approverName"`
	Comments      string  `json:"comments"`
}

// InvoiceRequestPayload is the body posted for an invoice request
type InvoiceRequestPayload struct {
	RequestorName string  `json:"requestorName"`
	Email         string  `json:"email"`
	InvoiceNumber string  `json:"invoiceNumber"`
	Client        string  `json:"client"`
	Project       string  `json:"project"`
	TotalAmount   float64 `json:"totalAmount"`
	Currency      string  `json:"currency"`
	Notes         string  `json:"notes"`
}

// NewTripPayload assembles the trip body with its derived invoice number
func NewTripPayload(trip entity.TripDetails, number entity.InvoiceNumber) TripPayload {
	return TripPayload{
		FullName:        trip.FullName,
		NameInitial:     number.Initials,
		Email:           trip.Email,
		StartDate:       trip.StartDate,
		EndDate:         trip.EndDate,
		DateDuration:    strconv.Itoa(trip.DateDuration),
		TravelLocation:  trip.TravelLocation,
		Client:          trip.Client,
		Project:         trip.Project,
		PMO:             trip.PMO,
		ResourceType:    trip.ResourceType,
		AdditionalInfo:  trip.AdditionalInfo,
		InvoiceDatePart: number.DatePart,
		NewInvoiceNum:   number.String(),
	}
}

// NewExpenseReportPayload assembles the report body, encoding every attached
// receipt in list order
func NewExpenseReportPayload(ctx context.Context, report expense.Submission, number entity.InvoiceNumber, encoder port.ReceiptEncoder) (*ExpenseReportPayload, error) {
	payload := &ExpenseReportPayload{
		TripPayload: NewTripPayload(report.Trip, number),
		Expenses:    make([]ExpensePayload, 0, len(report.Items)),
	}

	for _, item := range report.Items {
		line := ExpensePayload{
			ID:          item.ID,
			ExpenseDate: item.ExpenseDate,
			Category:    item.Category,
			Description: item.Description,
			Amount:      item.Amount.InexactFloat64(),
			Currency:    item.Currency,
		}
		if item.Receipt != nil {
			encoded, err := encoder.Encode(ctx, *item.Receipt)
			if err != nil {
				return nil, fmt.Errorf("%w: item %s: %v", errReceipt, item.ID, err)
			}
			line.ReceiptBase64 = &encoded
		}
		payload.Expenses = append(payload.Expenses, line)
	}

	return payload, nil
}

// NewApprovalPayload converts an approval decision to its body
func NewApprovalPayload(a entity.ApprovalDetails) ApprovalPayload {
	return ApprovalPayload{
		RequestID:     a.RequestID,
		RequestorName: a.RequestorName,
		Client:        a.Client,
		Project:       a.Project,
		Amount:        a.Amount.InexactFloat64(),
		Status:        a.Status,
		ApproverName:  a.ApproverName,
		Comments:      a.Comments,
	}
}

// NewInvoiceRequestPayload converts an invoice request to its body
func NewInvoiceRequestPayload(r entity.InvoiceRequest) InvoiceRequestPayload {
	return InvoiceRequestPayload{
		RequestorName: r.RequestorName,
		Email:         r.Email,
		InvoiceNumber: r.InvoiceNumber,
		Client:        r.Client,
		Project:       r.Project,
		TotalAmount:   r.TotalAmount.InexactFloat64(),
		Currency:      r.Currency,
		Notes:         r.Notes,
	}
}

// Reference returns the generated invoice number
func (p TripPayload) Reference() string { return p.NewInvoiceNum }

// ItemCount returns the number of line items
func (p ExpenseReportPayload) ItemCount() int { return len(p.Expenses) }

// Reference returns the approved request id
func (p ApprovalPayload) Reference() string { return p.RequestID }

// Reference returns the requested invoice number
func (p InvoiceRequestPayload) Reference() string { return p.InvoiceNumber }
