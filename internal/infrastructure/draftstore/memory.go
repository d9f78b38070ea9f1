// Package draftstore keeps expense report drafts in memory.
package draftstore

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/expense"
)

// DefaultTTL is how long an untouched draft is kept
const DefaultTTL = 2 * time.Hour

type entry struct {
	report     *expense.Report
	lastAccess time.Time
}

// MemoryStore implements port.DraftStore. Drafts idle longer than the TTL are
// treated as missing and removed by EvictExpired.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// Option customizes a MemoryStore
type Option func(*MemoryStore)

// WithClock sets the clock used for idle tracking
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an empty store
func NewMemoryStore(ttl time.Duration, logger *zap.Logger, opts ...Option) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &MemoryStore{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a new report
// Implements port.DraftStore interface
func (s *MemoryStore) Save(report *expense.Report) error {
	if report == nil || report.ID() == "" {
		return fmt.Errorf("report must have an id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[report.ID()]; exists {
		return fmt.Errorf("draft %s already exists", report.ID())
	}
	s.entries[report.ID()] = &entry{report: report, lastAccess: s.now()}
	return nil
}

// Update runs fn while holding the store lock and refreshes the draft's idle
// timer. fn must not block.
// Implements port.DraftStore interface
func (s *MemoryStore) Update(id string, fn func(report *expense.Report) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	now := s.now()
	if !ok || s.expired(e, now) {
		return fmt.Errorf("%w: %s", port.ErrDraftNotFound, id)
	}
	e.lastAccess = now
	return fn(e.report)
}

// Delete forgets a report
// Implements port.DraftStore interface
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok || s.expired(e, s.now()) {
		return fmt.Errorf("%w: %s", port.ErrDraftNotFound, id)
	}
	delete(s.entries, id)
	return nil
}

// Len returns the number of stored drafts, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EvictExpired removes drafts idle longer than the TTL and returns how many
// were removed
func (s *MemoryStore) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Info("Evicted idle drafts",
			zap.Int("evicted", evicted),
			zap.Int("remaining", len(s.entries)))
	}
	return evicted
}

func (s *MemoryStore) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastAccess) > s.ttl
}
