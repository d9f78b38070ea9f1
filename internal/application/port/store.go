package port

import (
	"errors"

	"github.com/garyjia/travel-forms/internal/domain/expense"
)

// ErrDraftNotFound is returned for unknown or expired drafts
var ErrDraftNotFound = errors.New("draft not found")

// DraftStore keeps expense reports between requests
type DraftStore interface {
	// Save stores a new report
	Save(report *expense.Report) error
	// Update runs fn with exclusive access to the report
	Update(id string, fn func(report *expense.Report) error) error
	// Delete forgets a report. Unknown ids yield ErrDraftNotFound.
	Delete(id string) error
}
