package entity

import "github.com/shopspring/decimal"

// Approval form field names
const (
	FieldRequestID     = "requestId"
	FieldRequestorName = "requestorName"
	FieldStatus        = "status"
	FieldApproverName  = "approverName"
	FieldComments      = "comments"
	FieldAmount        = "amount"
)

// ApprovalDetails records an approval decision against a request
type ApprovalDetails struct {
	RequestID     string          `json:"requestId"`
	RequestorName string          `json:"requestorName"`
	Client        string          `json:"client"`
	Project       string          `json:"project"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	ApproverName  string          `json:"approverName"`
	Comments      string          `json:"comments"`
}

// NewApprovalDetails returns the initial approval form
func NewApprovalDetails() ApprovalDetails {
	return ApprovalDetails{
		Amount: decimal.Zero,
		Status: ApprovalPending,
	}
}
