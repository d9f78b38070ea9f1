package http

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/garyjia/travel-forms/internal/domain/entity"
)

// Amount accepts a JSON number or numeric string. Empty values decode to
// zero.
type Amount struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		a.Decimal = decimal.Zero
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	a.Decimal = d
	return nil
}

// TripRequest is the body of a travel notification or trip details update
type TripRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	TravelLocation string `json:"travelLocation"`
	Client         string `json:"client"`
	Project        string `json:"project"`
	PMO            string `json:"pmo"`
	ResourceType   string `json:"resourceType"`
	AdditionalInfo string `json:"additionalInfo"`
}

func (r TripRequest) toEntity() entity.TripDetails {
	return entity.TripDetails{
		FullName:       r.FullName,
		Email:          r.Email,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		TravelLocation: r.TravelLocation,
		Client:         r.Client,
		Project:        r.Project,
		PMO:            r.PMO,
		ResourceType:   r.ResourceType,
		AdditionalInfo: r.AdditionalInfo,
	}
}

// ItemRequest is the body of a pending expense item update
type ItemRequest struct {
	ExpenseDate string `json:"expenseDate"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Currency    string `json:"currency"`
}

func (r ItemRequest) toEntity() entity.ExpenseItem {
	return entity.ExpenseItem{
		ExpenseDate: r.ExpenseDate,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount.Decimal,
		Currency:    r.Currency,
	}
}

// ApprovalRequest is the body of an approval decision
type ApprovalRequest struct {
	RequestID     string `json:"requestId"`
	RequestorName string `json:"requestorName"`
	Client        string `json:"client"`
	Project       string `json:"project"`
	Amount        Amount `json:"amount"`
	Status        string `json:"status"`
	ApproverName  string `json:"approverName"`
	Comments      string `json:"comments"`
}

func (r ApprovalRequest) toEntity() entity.ApprovalDetails {
	return entity.ApprovalDetails{
		RequestID:     r.RequestID,
		RequestorName: r.RequestorName,
		Client:        r.Client,
		Project:       r.Project,
		Amount:        r.Amount.Decimal,
		Status:        r.Status,
		ApproverName:  r.ApproverName,
		Comments:      r.Comments,
	}
}

// InvoiceRequestRequest is the body of an invoice request
type InvoiceRequestRequest struct {
	RequestorName string `json:"requestorName"`
	Email         string `json:"email"`
	InvoiceNumber string `json:"invoiceNumber"`
	Client        string `json:"client"`
	Project       string `json:"project"`
	TotalAmount   Amount `json:"totalAmount"`
	Currency      string `json:"currency"`
	Notes         string `json:"notes"`
}

func (r InvoiceRequestRequest) toEntity() entity.InvoiceRequest {
	return entity.InvoiceRequest{
		RequestorName: r.RequestorName,
		Email:         r.Email,
		InvoiceNumber: r.InvoiceNumber,
		Client:        r.Client,
		Project:       r.Project,
		TotalAmount:   r.TotalAmount.Decimal,
		Currency:      r.Currency,
		Notes:         r.Notes,
	}
}

// TabRequest selects the active expense report tab
type TabRequest struct {
	Tab string `json:"tab" binding:"required"`
}
