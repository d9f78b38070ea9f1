package service

import (
	"context"
	"encoding/base64"
	"io"
	"sync"
	"time"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
)

var testNow = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

var testConfig = Config{Now: func() time.Time { return testNow }}

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type submission struct {
	form    port.Form
	payload interface{}
}

type mockSubmitter struct {
	mu         sync.Mutex
	calls      []submission
	submitFunc func(ctx context.Context, form port.Form, payload interface{}) error
}

func (m *mockSubmitter) Submit(ctx context.Context, form port.Form, payload interface{}) error {
	m.mu.Lock()
	m.calls = append(m.calls, submission{form: form, payload: payload})
	m.mu.Unlock()
	if m.submitFunc != nil {
		return m.submitFunc(ctx, form, payload)
	}
	return nil
}

type mockNotifier struct {
	notifyFunc func(ctx context.Context, trip entity.TripDetails, invoiceNumber string) error
	notified   []string
}

func (m *mockNotifier) NotifyTrip(ctx context.Context, trip entity.TripDetails, invoiceNumber string) error {
	m.notified = append(m.notified, invoiceNumber)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, trip, invoiceNumber)
	}
	return nil
}

type mockEncoder struct {
	acceptFunc func(name, declaredType string, data []byte) (entity.Receipt, error)
	encodeFunc func(ctx context.Context, receipt entity.Receipt) (port.EncodedReceipt, error)
}

func (m *mockEncoder) Accept(name, declaredType string, data []byte) (entity.Receipt, error) {
	if m.acceptFunc != nil {
		return m.acceptFunc(name, declaredType, data)
	}
	return entity.Receipt{Name: name, ContentType: declaredType, Size: int64(len(data)), Data: data}, nil
}

func (m *mockEncoder) Encode(ctx context.Context, receipt entity.Receipt) (port.EncodedReceipt, error) {
	if m.encodeFunc != nil {
		return m.encodeFunc(ctx, receipt)
	}
	return port.EncodedReceipt{
		Name: receipt.Name,
		Type: receipt.ContentType,
		Data: base64.StdEncoding.EncodeToString(receipt.Data),
	}, nil
}

type mockExporter struct {
	exportFunc func(w io.Writer, report expense.Submission) error
}

func (m *mockExporter) Export(w io.Writer, report expense.Submission) error {
	if m.exportFunc != nil {
		return m.exportFunc(w, report)
	}
	_, err := io.WriteString(w, report.Trip.FullName)
	return err
}

type mockDrafts struct {
	mu      sync.Mutex
	reports map[string]*expense.Report
}

func newMockDrafts() *mockDrafts {
	return &mockDrafts{reports: make(map[string]*expense.Report)}
}

func (m *mockDrafts) Save(report *expense.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[report.ID()] = report
	return nil
}

func (m *mockDrafts) Update(id string, fn func(report *expense.Report) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[id]
	if !ok {
		return port.ErrDraftNotFound
	}
	return fn(r)
}

func (m *mockDrafts) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reports[id]; !ok {
		return port.ErrDraftNotFound
	}
	delete(m.reports, id)
	return nil
}
