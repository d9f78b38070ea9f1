// Package expense implements the two-step travel expense report: trip details
// first, then an itemized list of expenses built one pending item at a time.
package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
)

// ErrItemNotFound is returned for an unknown line item identifier
var ErrItemNotFound = errors.New("expense item not found")

// Report is the state of one expense report interaction. It is not safe for
// concurrent use; callers serialize access.
type Report struct {
	id            string
	trip          entity.TripDetails
	items         []entity.ExpenseItem
	pending       entity.ExpenseItem
	tripErrors    validation.FieldErrors
	itemErrors    validation.FieldErrors
	banner        *entity.Banner
	invoiceNumber string
	steps         workflow.StateMachine

	now   func() time.Time
	newID func() string
}

// Option customizes a Report
type Option func(*Report)

// WithClock sets the clock used for default dates
func WithClock(now func() time.Time) Option {
	return func(r *Report) { r.now = now }
}

// WithIDGenerator sets the line item identifier source
func WithIDGenerator(newID func() string) Option {
	return func(r *Report) { r.newID = newID }
}

// New creates a report in its initial state: details tab, default dates,
// empty list
func New(id string, opts ...Option) *Report {
	r := &Report{
		id:    id,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	r.reset()
	return r
}

func (r *Report) reset() {
	now := r.now()
	r.trip = entity.NewTripDetails(now)
	r.items = nil
	r.pending = entity.NewExpenseItem(now)
	r.tripErrors = validation.FieldErrors{}
	r.itemErrors = validation.FieldErrors{}
	r.steps = workflow.NewBuilder().
		PermitIf(workflow.StateDetails, workflow.TriggerContinue, workflow.StateExpenses, r.detailsComplete).
		PermitIf(workflow.StateExpenses, workflow.TriggerBack, workflow.StateDetails, r.hasItems).
		Build(workflow.StateDetails)
}

// detailsComplete guards the move to the expenses tab
func (r *Report) detailsComplete(context.Context) bool {
	err := validation.ValidateTrip(r.trip)
	r.tripErrors = validation.Trip(r.trip)
	if err != nil {
		r.banner = entity.ErrorBanner(validation.MsgCheckEntries)
		return false
	}
	r.banner = nil
	return true
}

// hasItems guards leaving the expenses tab
func (r *Report) hasItems(context.Context) bool {
	if len(r.items) == 0 {
		r.banner = entity.ErrorBanner(validation.MsgAddOneExpense)
		return false
	}
	r.banner = nil
	return true
}

// errNoExpenses reports an empty expense list
func errNoExpenses() error {
	return &validation.Error{
		Message:  validation.MsgAddOneExpense,
		Fields:   validation.FieldErrors{"expenses": true},
		Feedback: map[string]string{"expenses": validation.MsgAddOneExpense},
	}
}

// ID returns the report identifier
func (r *Report) ID() string { return r.id }

// Tab returns the active step
func (r *Report) Tab() workflow.State { return r.steps.State() }

// Trip returns the trip details
func (r *Report) Trip() entity.TripDetails { return r.trip }

// Pending returns the item being composed
func (r *Report) Pending() entity.ExpenseItem { return r.pending }

// Banner returns the current banner, nil when none is shown
func (r *Report) Banner() *entity.Banner { return r.banner }

// Items returns a copy of the line items in insertion order
func (r *Report) Items() []entity.ExpenseItem {
	return append([]entity.ExpenseItem(nil), r.items...)
}

// Total is the sum of the line item amounts rounded to cents
func (r *Report) Total() decimal.Decimal {
	return entity.SumAmounts(r.items)
}

// UpdateTrip replaces the trip details. The duration is recomputed, errors of
// edited fields are cleared and any error banner is dismissed.
func (r *Report) UpdateTrip(trip entity.TripDetails) {
	trip = trip.Normalize()
	r.tripErrors.Clear(r.trip.ChangedFields(trip)...)
	r.trip = trip
	r.dismissError()
}

// UpdatePending replaces the editable fields of the pending item. Its receipt
// and identifier are kept. Errors of edited fields are cleared and any error
// banner is dismissed.
func (r *Report) UpdatePending(item entity.ExpenseItem) {
	item.ID = ""
	item.Receipt = r.pending.Receipt
	r.itemErrors.Clear(r.pending.ChangedFields(item)...)
	r.pending = item
	r.dismissError()
}

func (r *Report) dismissError() {
	if r.banner != nil && r.banner.Kind == entity.BannerError {
		r.banner = nil
	}
}

// AttachReceipt sets the receipt of the pending item
func (r *Report) AttachReceipt(receipt entity.Receipt) {
	r.pending.Receipt = &receipt
	r.itemErrors.Clear(entity.FieldItemReceipt)
}

// AddPending validates the pending item and appends it to the list with a
// fresh identifier and its amount rounded to cents. The pending item is then
// reset.
func (r *Report) AddPending() (entity.ExpenseItem, error) {
	r.itemErrors = validation.ExpenseItem(r.pending)
	if err := validation.ValidateExpenseItem(r.pending); err != nil {
		r.banner = entity.ErrorBanner(validation.MsgCheckItemEntry)
		return entity.ExpenseItem{}, err
	}

	added := r.pending
	added.ID = r.newID()
	added.Amount = entity.RoundAmount(added.Amount)
	r.items = append(r.items, added)
	r.pending = entity.NewExpenseItem(r.now())
	return added, nil
}

// Remove deletes the line item with the given identifier
func (r *Report) Remove(id string) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// ClearReceipt detaches the receipt of a listed item
func (r *Report) ClearReceipt(id string) error {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Receipt = nil
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// GoTo switches tabs. Leaving the details tab requires valid trip details;
// leaving the expenses tab requires at least one item.
func (r *Report) GoTo(ctx context.Context, tab workflow.State) error {
	from := r.Tab()
	if tab == from {
		return nil
	}
	trigger, ok := workflow.TriggerFor(from, tab)
	if !ok || !r.steps.CanFire(trigger) {
		return fmt.Errorf("%w: %s to %s", workflow.ErrInvalidTransition, from, tab)
	}
	if err := r.steps.Fire(ctx, trigger); err != nil {
		if !errors.Is(err, workflow.ErrGuardFailed) {
			return err
		}
		if from == workflow.StateExpenses {
			return errNoExpenses()
		}
		return validation.ValidateTrip(r.trip)
	}
	return nil
}

// DismissBanner hides the current banner
func (r *Report) DismissBanner() {
	r.banner = nil
}

// CanSubmit reports whether the submit action is offered: expenses tab with at
// least one item
func (r *Report) CanSubmit() bool {
	return r.Tab() == workflow.StateExpenses && len(r.items) > 0
}

// ValidateForSubmit checks the trip details and that at least one item was
// added, setting the error banner when either fails
func (r *Report) ValidateForSubmit() error {
	r.tripErrors = validation.Trip(r.trip)
	if err := validation.ValidateTrip(r.trip); err != nil {
		r.banner = entity.ErrorBanner(validation.MsgCheckEntries)
		return err
	}
	if len(r.items) == 0 {
		r.banner = entity.ErrorBanner(validation.MsgAddOneExpense)
		return errNoExpenses()
	}
	return nil
}

// Submission is a point-in-time copy of what gets sent
type Submission struct {
	Trip  entity.TripDetails
	Items []entity.ExpenseItem
}

// Snapshot copies the submittable state
func (r *Report) Snapshot() Submission {
	return Submission{Trip: r.trip, Items: r.Items()}
}

// Succeeded resets the report to its defaults and shows message
func (r *Report) Succeeded(invoiceNumber, message string) {
	r.reset()
	r.invoiceNumber = invoiceNumber
	r.banner = entity.SuccessBanner(message)
}

// Failed shows message and leaves entered data intact
func (r *Report) Failed(message string) {
	r.banner = entity.ErrorBanner(message)
}
