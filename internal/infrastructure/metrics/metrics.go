// Package metrics exposes form submission counters in Prometheus format.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garyjia/travel-forms/internal/domain/event"
)

const namespace = "travel_forms"

// Outcome label values
const (
	OutcomeSubmitted = "submitted"
	OutcomeFailed    = "failed"
)

// Metrics owns a private registry so tests and multiple containers do not
// collide on the global one
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	items       prometheus.Counter
}

// New creates the collectors. drafts, when non-nil, reports the number of
// expense drafts held.
func New(drafts func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Form delivery attempts by form and outcome.",
		}, []string{"form", "outcome"}),
		items: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expense_items_submitted_total",
			Help:      "Expense line items delivered in accepted reports.",
		}),
	}
	m.registry.MustRegister(m.submissions, m.items)

	if drafts != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "expense_drafts",
			Help:      "Expense report drafts currently held in memory.",
		}, func() float64 { return float64(drafts()) }))
	}
	return m
}

// Observe counts a form lifecycle event. Its signature matches a dispatcher
// handler.
func (m *Metrics) Observe(_ context.Context, evt *event.Event) error {
	outcome := OutcomeSubmitted
	if evt.Type == event.TypeSubmissionFailed {
		outcome = OutcomeFailed
	}
	m.submissions.WithLabelValues(evt.Form, outcome).Inc()

	if outcome == OutcomeSubmitted {
		if n := evt.GetPayloadInt(event.KeyItemCount); n > 0 {
			m.items.Add(float64(n))
		}
	}
	return nil
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
