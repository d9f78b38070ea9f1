package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/application/service"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
	"github.com/garyjia/travel-forms/internal/domain/validation"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
)

// Version is reported by the health check
const Version = "1.0.0"

// Handlers contains all HTTP request handlers
type Handlers struct {
	services  Services
	maxUpload int64
	logger    Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, maxUpload int64, logger Logger) *Handlers {
	if maxUpload <= 0 {
		maxUpload = DefaultServerConfig().MaxUploadBytes
	}
	return &Handlers{
		services:  services,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Response represents a standard JSON response. Failed form actions still
// carry the form state in Data so clients can re-render entered values.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Version    string            `json:"version"`
	Components map[string]string `json:"components,omitempty"`
}

// FormDefaults holds the initial state of the single-step forms
type FormDefaults struct {
	Notification   entity.TripDetails     `json:"notification"`
	Approval       entity.ApprovalDetails `json:"approval"`
	InvoiceRequest entity.InvoiceRequest  `json:"invoiceRequest"`
}

// CatalogResponse carries the selection lists and the form defaults
type CatalogResponse struct {
	entity.Catalog
	Defaults FormDefaults `json:"defaults"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	}

	ready := true
	if h.services.Health != nil {
		ready, response.Components = h.services.Health()
	}
	if !ready {
		response.Status = "starting"
		c.JSON(http.StatusServiceUnavailable, Response{
			Success: false,
			Data:    response,
			Error:   "service not ready",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// GetCatalog handles GET /api/catalog
func (h *Handlers) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: CatalogResponse{
			Catalog: entity.FullCatalog(),
			Defaults: FormDefaults{
				Notification:   h.services.Notification.Defaults(),
				Approval:       h.services.Approval.Defaults(),
				InvoiceRequest: h.services.InvoiceRequest.Defaults(),
			},
		},
	})
}

// SubmitNotification handles POST /api/notifications
func (h *Handlers) SubmitNotification(c *gin.Context) {
	var req TripRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.services.Notification.Submit(c.Request.Context(), req.toEntity())
	respondForm(c, h, "notification", result, err)
}

// SubmitApproval handles POST /api/approvals
func (h *Handlers) SubmitApproval(c *gin.Context) {
	var req ApprovalRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.services.Approval.Submit(c.Request.Context(), req.toEntity())
	respondForm(c, h, "approval", result, err)
}

// SubmitInvoiceRequest handles POST /api/invoice-requests
func (h *Handlers) SubmitInvoiceRequest(c *gin.Context) {
	var req InvoiceRequestRequest
	if !h.bind(c, &req) {
		return
	}

	result, err := h.services.InvoiceRequest.Submit(c.Request.Context(), req.toEntity())
	respondForm(c, h, "invoice_request", result, err)
}

// bind decodes a JSON body, answering 400 when it is malformed
func (h *Handlers) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Error("Invalid request body", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid request body",
		})
		return false
	}
	return true
}

// respondForm writes a single-step form result
func respondForm[T any](c *gin.Context, h *Handlers, form string, result *service.FormResult[T], err error) {
	if err == nil {
		c.JSON(http.StatusOK, Response{
			Success: true,
			Data:    result,
		})
		return
	}

	status := statusFor(err, http.StatusBadGateway)
	if status != http.StatusUnprocessableEntity {
		h.logger.Error("Form submission failed", "form", form, "status", status, "error", err)
	}

	message := errorMessage(err)
	if result != nil && result.Banner != nil {
		message = result.Banner.Message
	}

	c.JSON(status, Response{
		Success: false,
		Data:    result,
		Error:   message,
	})
}

// statusFor maps a service error to an HTTP status. fallback covers errors
// with no specific mapping.
func statusFor(err error, fallback int) int {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, port.ErrDraftNotFound), errors.Is(err, expense.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, port.ErrReceiptTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, port.ErrReceiptType), errors.Is(err, workflow.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, port.ErrRejected):
		return http.StatusBadGateway
	}
	return fallback
}

// errorMessage returns the user-facing text for err
func errorMessage(err error) string {
	switch {
	case errors.Is(err, port.ErrDraftNotFound):
		return "expense report not found"
	case errors.Is(err, expense.ErrItemNotFound):
		return "expense item not found"
	case errors.Is(err, workflow.ErrInvalidTransition):
		return "invalid tab change"
	}
	return service.FailureBanner(err, service.MsgUnknownError).Message
}
