package entity

// Option is one entry of a fixed selection list
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Clients lists the selectable clients for trip forms
var Clients = []Option{
	{Value: "AZ", Label: "AZ"},
	{Value: "Beam", Label: "Beam"},
	{Value: "BC Hydro", Label: "BC Hydro"},
	{Value: "BMS", Label: "BMS"},
	{Value: "GSK", Label: "GSK"},
	{Value: "HP Hood", Label: "HP Hood"},
	{Value: "iSSi", Label: "iSSi"},
	{Value: "Just Evotec", Label: "Just Evotec"},
	{Value: "Merck", Label: "Merck"},
	{Value: "Modular", Label: "Modular"},
	{Value: "Motorola", Label: "Motorola"},
	{Value: "PTC", Label: "PTC"},
	{Value: "Resilience", Label: "Resilience"},
	{Value: "Stemcell", Label: "Stemcell"},
	{Value: "ThermoFisher", Label: "ThermoFisher"},
	{Value: "Other", Label: "Other"},
}

// ProjectManagers lists the PM/PMO assignees. Value is what gets submitted.
var ProjectManagers = []Option{
	{Value: "Adri", Label: "Adri Rautenbach"},
	{Value: "Anthea", Label: "Anthea Robinson-Shaw"},
	{Value: "Darlene", Label: "Darlene Henry"},
	{Value: "Jennifer", Label: "Jennifer Lam"},
	{Value: "Mariki", Label: "Mariki Bosman"},
	{Value: "Mary Ann", Label: "Mary Ann Agregado"},
	{Value: "Nadia", Label: "Nadia Rautenbach"},
	{Value: "Pierre", Label: "Pierre Roex"},
	{Value: "Rachel", Label: "Rachel Liao"},
	{Value: "Rocio", Label: "Rocio Phillips"},
	{Value: "Tai", Label: "Tai Chung"},
	{Value: "Thomas", Label: "Thomas Rautenbach"},
	{Value: "Vicky", Label: "Vicky Estrada"},
}

// ResourceTypes lists the traveller resource types
var ResourceTypes = []Option{
	{Value: "Employee", Label: "Employee"},
	{Value: "Consultant", Label: "Consultant"},
}

// ExpenseCategories lists line item categories
var ExpenseCategories = []Option{
	{Value: "Flight", Label: "Flight"},
	{Value: "Hotel", Label: "Hotel"},
	{Value: "Car Rental", Label: "Car Rental"},
	{Value: "Train", Label: "Train"},
	{Value: "Taxi", Label: "Taxi"},
	{Value: "Meals", Label: "Meals"},
	{Value: "Other", Label: "Other"},
}

// ExpenseCurrencies lists currencies accepted on line items
var ExpenseCurrencies = []Option{
	{Value: "USD", Label: "USD"},
	{Value: "EUR", Label: "EUR"},
	{Value: "GBP", Label: "GBP"},
	{Value: "CAD", Label: "CAD"},
	{Value: "JPY", Label: "JPY"},
}

// InvoiceCurrencies lists currencies accepted on invoice requests
var InvoiceCurrencies = []Option{
	{Value: "USD", Label: "USD"},
	{Value: "CAD", Label: "CAD"},
	{Value: "EUR", Label: "EUR"},
	{Value: "GBP", Label: "GBP"},
}

// Approval decision statuses
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// ApprovalStatuses lists the selectable approval decisions
var ApprovalStatuses = []Option{
	{Value: ApprovalPending, Label: ApprovalPending},
	{Value: ApprovalApproved, Label: ApprovalApproved},
	{Value: ApprovalRejected, Label: ApprovalRejected},
}

// Default selections
const (
	DefaultExpenseCurrency = "CAD"
	DefaultInvoiceCurrency = "USD"
)

// Contains reports whether value is one of the options
func Contains(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// LabelFor returns the display label for value, or value itself if unknown
func LabelFor(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Catalog bundles every selection list, served to clients rendering the forms
type Catalog struct {
	Clients           []Option `json:"clients"`
	ProjectManagers   []Option `json:"projectManagers"`
	ResourceTypes     []Option `json:"resourceTypes"`
	ExpenseCategories []Option `json:"expenseCategories"`
	ExpenseCurrencies []Option `json:"expenseCurrencies"`
	InvoiceCurrencies []Option `json:"invoiceCurrencies"`
	ApprovalStatuses  []Option `json:"approvalStatuses"`
}

// FullCatalog returns all selection lists
func FullCatalog() Catalog {
	return Catalog{
		Clients:           Clients,
		ProjectManagers:   ProjectManagers,
		ResourceTypes:     ResourceTypes,
		ExpenseCategories: ExpenseCategories,
		ExpenseCurrencies: ExpenseCurrencies,
		InvoiceCurrencies: InvoiceCurrencies,
		ApprovalStatuses:  ApprovalStatuses,
	}
}
