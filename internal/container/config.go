// Package container wires the forms service together and manages the
// lifecycle of its background components.
package container

import (
	"fmt"
	"time"

	"github.com/garyjia/travel-forms/internal/application/port"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Submission endpoints
	Endpoint EndpointConfig

	// Form behaviour
	Forms FormsConfig

	// Receipt upload policy
	Receipt ReceiptConfig

	// Expense draft retention
	Drafts DraftConfig

	// Lark PMO notifications
	Lark LarkConfig
}

// EndpointConfig holds the outbound submission settings.
type EndpointConfig struct {
	// URLs maps every form to the URL its payload is posted to
	URLs map[port.Form]string

	// Timeout bounds each submission request
	Timeout time.Duration
}

// FormsConfig holds form behaviour settings.
type FormsConfig struct {
	// InvoicePrefix starts generated invoice numbers
	InvoicePrefix string
}

// ReceiptConfig holds the receipt upload policy.
type ReceiptConfig struct {
	// MaxSize is the largest accepted receipt in bytes
	MaxSize int64

	// AllowedTypes lists accepted MIME types
	AllowedTypes []string
}

// DraftConfig holds expense draft retention settings.
type DraftConfig struct {
	// TTL is how long an untouched draft is kept
	TTL time.Duration

	// SweepInterval is how often expired drafts are evicted
	SweepInterval time.Duration
}

// LarkConfig holds Lark API settings.
type LarkConfig struct {
	Enabled       bool
	AppID         string
	AppSecret     string
	ReceiveIDType string

	// Receivers maps a PM value to its Lark receive id
	Receivers map[string]string
}

// DefaultConfig returns a Config with sensible defaults. Endpoint URLs have
// no default and must be set.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URLs:    map[port.Form]string{},
			Timeout: 30 * time.Second,
		},
		Forms: FormsConfig{
			InvoicePrefix: "iSSi-EXP",
		},
		Receipt: ReceiptConfig{
			MaxSize: 10 << 20,
		},
		Drafts: DraftConfig{
			TTL:           2 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Lark: LarkConfig{
			ReceiveIDType: "open_id",
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	for _, form := range []port.Form{port.FormNotification, port.FormExpenseReport, port.FormApproval, port.FormInvoiceRequest} {
		if c.Endpoint.URLs[form] == "" {
			return fmt.Errorf("endpoint URL for %s is required", form)
		}
	}
	if c.Endpoint.Timeout <= 0 {
		return fmt.Errorf("endpoint timeout must be positive")
	}

	if c.Lark.Enabled && (c.Lark.AppID == "" || c.Lark.AppSecret == "") {
		return fmt.Errorf("lark app_id and app_secret are required when lark is enabled")
	}

	return nil
}
