package validation

import "github.com/garyjia/travel-forms/internal/domain/entity"

// Trip computes the field errors of the trip details
func Trip(t entity.TripDetails) FieldErrors {
	return FieldErrors{
		entity.FieldFullName:       Blank(t.FullName),
		entity.FieldEmail:          Blank(t.Email) || !ValidEmail(t.Email),
		entity.FieldStartDate:      InvalidDate(t.StartDate),
		entity.FieldEndDate:        EndBeforeStart(t.StartDate, t.EndDate),
		entity.FieldTravelLocation: Blank(t.TravelLocation),
		entity.FieldClient:         NotSelected(entity.Clients, t.Client),
		entity.FieldProject:        Blank(t.Project),
		entity.FieldPMO:            NotSelected(entity.ProjectManagers, t.PMO),
		entity.FieldResourceType:   NotSelected(entity.ResourceTypes, t.ResourceType),
	}
}

// ValidateTrip returns a *Error when the trip details are incomplete
func ValidateTrip(t entity.TripDetails) error {
	errs := Trip(t)
	return failed(MsgCheckEntries, errs, map[string]string{
		entity.FieldFullName:       MsgRequired,
		entity.FieldEmail:          requiredOr(t.Email, MsgInvalidEmail),
		entity.FieldStartDate:      requiredOr(t.StartDate, MsgInvalidDate),
		entity.FieldEndDate:        MsgInvalidDate,
		entity.FieldTravelLocation: MsgRequired,
		entity.FieldClient:         requiredOr(t.Client, MsgInvalidValue),
		entity.FieldProject:        MsgRequired,
		entity.FieldPMO:            requiredOr(t.PMO, MsgInvalidValue),
		entity.FieldResourceType:   requiredOr(t.ResourceType, MsgInvalidValue),
	})
}

// ExpenseItem computes the field errors of a pending line item. A receipt is
// required before the item can be added.
func ExpenseItem(item entity.ExpenseItem) FieldErrors {
	return FieldErrors{
		entity.FieldItemDescription: Blank(item.Description),
		entity.FieldItemAmount:      NotPositive(item.Amount),
		entity.FieldItemCategory:    NotSelected(entity.ExpenseCategories, item.Category),
		entity.FieldItemDate:        InvalidDate(item.ExpenseDate),
		entity.FieldItemCurrency:    NotSelected(entity.ExpenseCurrencies, item.Currency),
		entity.FieldItemReceipt:     item.Receipt == nil,
	}
}

// ValidateExpenseItem returns a *Error when the pending item cannot be added
func ValidateExpenseItem(item entity.ExpenseItem) error {
	errs := ExpenseItem(item)
	return failed(MsgCheckItemEntry, errs, map[string]string{
		entity.FieldItemDescription: MsgRequired,
		entity.FieldItemAmount:      MsgInvalidAmt,
		entity.FieldItemCategory:    requiredOr(item.Category, MsgInvalidValue),
		entity.FieldItemDate:        requiredOr(item.ExpenseDate, MsgInvalidDate),
		entity.FieldItemCurrency:    requiredOr(item.Currency, MsgInvalidValue),
		entity.FieldItemReceipt:     MsgRequired,
	})
}

// Approval computes the field errors of an approval decision
func Approval(a entity.ApprovalDetails) FieldErrors {
	return FieldErrors{
		entity.FieldRequestID:     Blank(a.RequestID),
		entity.FieldRequestorName: Blank(a.RequestorName),
		entity.FieldStatus:        NotSelected(entity.ApprovalStatuses, a.Status),
		entity.FieldAmount:        a.Amount.IsNegative(),
	}
}

// ValidateApproval returns a *Error when the approval decision is incomplete
func ValidateApproval(a entity.ApprovalDetails) error {
	return failed(MsgCheckEntries, Approval(a), map[string]string{
		entity.FieldRequestID:     MsgRequired,
		entity.FieldRequestorName: MsgRequired,
		entity.FieldStatus:        requiredOr(a.Status, MsgInvalidValue),
		entity.FieldAmount:        MsgInvalidAmt,
	})
}

// InvoiceRequest computes the field errors of an invoice request
func InvoiceRequest(r entity.InvoiceRequest) FieldErrors {
	return FieldErrors{
		entity.FieldRequestorName: Blank(r.RequestorName),
		entity.FieldEmail:         Blank(r.Email) || !ValidEmail(r.Email),
		entity.FieldInvoiceNumber: Blank(r.InvoiceNumber),
		entity.FieldClient:        Blank(r.Client),
		entity.FieldProject:       Blank(r.Project),
		entity.FieldTotalAmount:   NotPositive(r.TotalAmount),
		entity.FieldCurrency:      NotSelected(entity.InvoiceCurrencies, r.Currency),
	}
}

// ValidateInvoiceRequest returns a *Error when the invoice request is incomplete
func ValidateInvoiceRequest(r entity.InvoiceRequest) error {
	return failed(MsgCheckEntries, InvoiceRequest(r), map[string]string{
		entity.FieldRequestorName: MsgRequired,
		entity.FieldEmail:         requiredOr(r.Email, MsgInvalidEmail),
		entity.FieldInvoiceNumber: MsgRequired,
		entity.FieldClient:        MsgRequired,
		entity.FieldProject:       MsgRequired,
		entity.FieldTotalAmount:   MsgInvalidAmt,
		entity.FieldCurrency:      requiredOr(r.Currency, MsgInvalidValue),
	})
}
