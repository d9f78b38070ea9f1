// Package validation holds the field-level predicates of every form and the
// per-field error map they produce.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/garyjia/travel-forms/internal/domain/entity"
)

// Banner messages for blocked transitions and submissions
const (
	MsgCheckEntries   = "Please check your entries."
	MsgCheckItemEntry = "Please check your expense item entry."
	MsgAddOneExpense  = "Please add at least one expense."
)

// Field feedback messages
const (
	MsgRequired     = "Required field"
	MsgInvalidEmail = "Invalid email"
	MsgInvalidDate  = "Invalid date"
	MsgInvalidValue = "Invalid selection"
	MsgInvalidAmt   = "Invalid amount"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldErrors maps a field name to whether it failed validation
type FieldErrors map[string]bool

// Any reports whether at least one field is invalid
func (f FieldErrors) Any() bool {
	for _, bad := range f {
		if bad {
			return true
		}
	}
	return false
}

// Invalid returns the sorted names of the invalid fields
func (f FieldErrors) Invalid() []string {
	var fields []string
	for name, bad := range f {
		if bad {
			fields = append(fields, name)
		}
	}
	sort.Strings(fields)
	return fields
}

// Clear marks the given fields valid again
func (f FieldErrors) Clear(fields ...string) {
	for _, name := range fields {
		if _, ok := f[name]; ok {
			f[name] = false
		}
	}
}

// Clone returns an independent copy
func (f FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Error is returned when a record fails validation. Message is the banner text.
type Error struct {
	Message  string
	Fields   FieldErrors
	Feedback map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (invalid: %s)", e.Message, strings.Join(e.Fields.Invalid(), ", "))
}

// Blank reports whether s is empty after trimming whitespace
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidEmail applies the loose something@something.something check
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// InvalidDate reports whether s is blank or not a form date
func InvalidDate(s string) bool {
	_, err := entity.ParseDate(s)
	return err != nil
}

// EndBeforeStart reports whether end is missing, unparsable, or earlier than
// start. An unparsable start does not make end invalid on its own.
func EndBeforeStart(start, end string) bool {
	e, err := entity.ParseDate(end)
	if err != nil {
		return true
	}
	s, err := entity.ParseDate(start)
	if err != nil {
		return false
	}
	return e.Before(s)
}

// NotPositive reports whether an amount is zero or negative
func NotPositive(d decimal.Decimal) bool {
	return !d.IsPositive()
}

// NotSelected reports whether value is empty or outside options
func NotSelected(options []entity.Option, value string) bool {
	return value == "" || !entity.Contains(options, value)
}

func failed(message string, errs FieldErrors, feedback map[string]string) error {
	if !errs.Any() {
		return nil
	}
	for name, bad := range errs {
		if !bad {
			delete(feedback, name)
		}
	}
	return &Error{Message: message, Fields: errs, Feedback: feedback}
}

// requiredOr picks the feedback of an invalid field: blank values are
// reported as required, anything else gets alt
func requiredOr(value, alt string) string {
	if Blank(value) {
		return MsgRequired
	}
	return alt
}
