package config

import (
	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	receivers := make(map[string]string, len(c.Lark.Receivers))
	for pm, id := range c.Lark.Receivers {
		receivers[pm] = id
	}

	return &container.Config{
		Endpoint: container.EndpointConfig{
			URLs: map[port.Form]string{
				port.FormNotification:   c.Endpoints.Notification,
				port.FormExpenseReport:  c.Endpoints.ExpenseReport,
				port.FormApproval:       c.Endpoints.Approval,
				port.FormInvoiceRequest: c.Endpoints.InvoiceRequest,
			},
			Timeout: c.Endpoints.Timeout,
		},
		Forms: container.FormsConfig{
			InvoicePrefix: c.Forms.InvoicePrefix,
		},
		Receipt: container.ReceiptConfig{
			MaxSize:      c.Receipts.MaxSize,
			AllowedTypes: append([]string(nil), c.Receipts.AllowedTypes...),
		},
		Drafts: container.DraftConfig{
			TTL:           c.Drafts.TTL,
			SweepInterval: c.Drafts.SweepInterval,
		},
		Lark: container.LarkConfig{
			Enabled:       c.Lark.Enabled,
			AppID:         c.Lark.AppID,
			AppSecret:     c.Lark.AppSecret,
			ReceiveIDType: c.Lark.ReceiveIDType,
			Receivers:     receivers,
		},
	}
}
