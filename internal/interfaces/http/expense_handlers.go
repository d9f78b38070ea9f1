package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/travel-forms/internal/application/service"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CreateExpenseReport handles POST /api/expense-reports
func (h *Handlers) CreateExpenseReport(c *gin.Context) {
	view, err := h.services.ExpenseReport.Create(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to create expense report", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to create expense report",
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    view,
	})
}

// GetExpenseReport handles GET /api/expense-reports/:id
func (h *Handlers) GetExpenseReport(c *gin.Context) {
	view, err := h.services.ExpenseReport.Get(c.Request.Context(), c.Param("id"))
	h.respondView(c, "get", view, err)
}

// UpdateTrip handles PUT /api/expense-reports/:id/trip
func (h *Handlers) UpdateTrip(c *gin.Context) {
	var req TripRequest
	if !h.bind(c, &req) {
		return
	}

	view, err := h.services.ExpenseReport.UpdateTrip(c.Request.Context(), c.Param("id"), req.toEntity())
	h.respondView(c, "update_trip", view, err)
}

// UpdatePending handles PUT /api/expense-reports/:id/pending
func (h *Handlers) UpdatePending(c *gin.Context) {
	var req ItemRequest
	if !h.bind(c, &req) {
		return
	}

	view, err := h.services.ExpenseReport.UpdatePending(c.Request.Context(), c.Param("id"), req.toEntity())
	h.respondView(c, "update_pending", view, err)
}

// AttachReceipt handles POST /api/expense-reports/:id/pending/receipt with a
// multipart "receipt" file
func (h *Handlers) AttachReceipt(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	header, err := c.FormFile("receipt")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, Response{
				Success: false,
				Error:   service.MsgReceiptTooLarge,
			})
			return
		}
		h.logger.Error("Missing receipt upload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "receipt file is required",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open receipt upload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   service.MsgReceiptUnreadable,
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("Failed to read receipt upload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   service.MsgReceiptUnreadable,
		})
		return
	}

	view, err := h.services.ExpenseReport.AttachReceipt(
		c.Request.Context(),
		c.Param("id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		data,
	)
	h.respondView(c, "attach_receipt", view, err)
}

// AddItem handles POST /api/expense-reports/:id/items
func (h *Handlers) AddItem(c *gin.Context) {
	view, err := h.services.ExpenseReport.AddItem(c.Request.Context(), c.Param("id"))
	h.respondView(c, "add_item", view, err)
}

// RemoveItem handles DELETE /api/expense-reports/:id/items/:itemId
func (h *Handlers) RemoveItem(c *gin.Context) {
	view, err := h.services.ExpenseReport.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	h.respondView(c, "remove_item", view, err)
}

// ClearReceipt handles DELETE /api/expense-reports/:id/items/:itemId/receipt
func (h *Handlers) ClearReceipt(c *gin.Context) {
	view, err := h.services.ExpenseReport.ClearReceipt(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	h.respondView(c, "clear_receipt", view, err)
}

// ChangeTab handles POST /api/expense-reports/:id/tab
func (h *Handlers) ChangeTab(c *gin.Context) {
	var req TabRequest
	if !h.bind(c, &req) {
		return
	}

	tab := workflow.State(req.Tab)
	if !tab.IsValid() {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   fmt.Sprintf("unknown tab %q", req.Tab),
		})
		return
	}

	view, err := h.services.ExpenseReport.ChangeTab(c.Request.Context(), c.Param("id"), tab)
	h.respondView(c, "change_tab", view, err)
}

// DismissBanner handles DELETE /api/expense-reports/:id/banner
func (h *Handlers) DismissBanner(c *gin.Context) {
	view, err := h.services.ExpenseReport.DismissBanner(c.Request.Context(), c.Param("id"))
	h.respondView(c, "dismiss_banner", view, err)
}

// SubmitExpenseReport handles POST /api/expense-reports/:id/submit
func (h *Handlers) SubmitExpenseReport(c *gin.Context) {
	view, err := h.services.ExpenseReport.Submit(c.Request.Context(), c.Param("id"))
	h.respondView(c, "submit", view, err)
}

// ExportExpenseReport handles GET /api/expense-reports/:id/export
func (h *Handlers) ExportExpenseReport(c *gin.Context) {
	id := c.Param("id")

	var buf bytes.Buffer
	if err := h.services.ExpenseReport.Export(c.Request.Context(), id, &buf); err != nil {
		status := statusFor(err, http.StatusInternalServerError)
		h.logger.Error("Failed to export expense report", "id", id, "error", err)
		c.JSON(status, Response{
			Success: false,
			Error:   errorMessage(err),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="expense-report-%s.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// DiscardExpenseReport handles DELETE /api/expense-reports/:id
func (h *Handlers) DiscardExpenseReport(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.ExpenseReport.Discard(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to discard expense report", "id", id, "error", err)
		c.JSON(statusFor(err, http.StatusInternalServerError), Response{
			Success: false,
			Error:   errorMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// respondView writes an expense report view. Failures keep the view in Data
// when the draft exists.
func (h *Handlers) respondView(c *gin.Context, action string, view *expense.View, err error) {
	if err == nil {
		c.JSON(http.StatusOK, Response{
			Success: true,
			Data:    view,
		})
		return
	}

	fallback := http.StatusInternalServerError
	if action == "submit" {
		fallback = http.StatusBadGateway
	}
	status := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Expense report action failed", "action", action, "id", c.Param("id"), "error", err)
	}

	message := errorMessage(err)
	if view != nil && view.Banner != nil && view.Banner.Kind == entity.BannerError {
		message = view.Banner.Message
	}

	resp := Response{Success: false, Error: message}
	if view != nil {
		resp.Data = view
	}
	c.JSON(status, resp)
}
