package entity

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultInvoicePrefix starts every generated expense invoice number
const DefaultInvoicePrefix = "iSSi-EXP"

// NameInitials takes the first letter of every space separated word of a
// full name, upper-cased: "jane van doe" -> "JVD"
func NameInitials(fullName string) string {
	var b strings.Builder
	for _, word := range strings.Split(fullName, " ") {
		if word == "" {
			continue
		}
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
	}
	return b.String()
}

// InvoiceDatePart renders a form date as yymmdd. It returns "" when the date
// cannot be parsed.
func InvoiceDatePart(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	return t.Format("060102")
}

// InvoiceNumber identifies a trip submission as
// <prefix>-<client>-<initials>-<yymmdd>
type InvoiceNumber struct {
	Prefix   string
	Client   string
	Initials string
	DatePart string
}

// NewInvoiceNumber derives the invoice number of a trip
func NewInvoiceNumber(prefix string, trip TripDetails) InvoiceNumber {
	if prefix == "" {
		prefix = DefaultInvoicePrefix
	}
	return InvoiceNumber{
		Prefix:   prefix,
		Client:   trip.Client,
		Initials: NameInitials(trip.FullName),
		DatePart: InvoiceDatePart(trip.StartDate),
	}
}

// String implements fmt.Stringer
func (n InvoiceNumber) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", n.Prefix, n.Client, n.Initials, n.DatePart)
}
