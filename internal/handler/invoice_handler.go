package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"lekha/internal/compose"
	"lekha/internal/domain"
	"lekha/internal/export"
	"lekha/internal/service"
)

// InvoiceHandler handles invoice lifecycle endpoints.
type InvoiceHandler struct {
	lifecycle service.LifecycleService
	worker    *service.ReminderWorker
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(lifecycle service.LifecycleService, worker *service.ReminderWorker) *InvoiceHandler {
	return &InvoiceHandler{lifecycle: lifecycle, worker: worker}
}

type invoiceLineRequest struct {
	Name     string          `json:"name"`
	HSNCode  string          `json:"hsn_code"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Discount decimal.Decimal `json:"discount"`
	GSTRate  decimal.Decimal `json:"gst_rate"`
}

type createInvoiceRequest struct {
	Mode          string               `json:"mode"`
	InvoiceNumber string               `json:"invoice_number"`
	InvoiceDate   string               `json:"invoice_date"`
	DueDate       string               `json:"due_date"`
	ClientName    string               `json:"client_name" binding:"required"`
	ClientEmail   string               `json:"client_email"`
	ClientGSTIN   string               `json:"client_gstin"`
	ClientAddress string               `json:"client_address"`
	ClientState   string               `json:"client_state"`
	FollowUpValue int                  `json:"followup_value"`
	FollowUpUnit  string               `json:"followup_unit"`
	Items         []invoiceLineRequest `json:"items" binding:"required"`
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	invoiceDate, err := parseOptionalDate(req.InvoiceDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid invoice_date: must be YYYY-MM-DD")
		return
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid due_date: must be YYYY-MM-DD")
		return
	}

	lines := make([]compose.RawLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, compose.RawLine{
			Name:     item.Name,
			HSNCode:  item.HSNCode,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			Discount: item.Discount,
			GSTRate:  item.GSTRate,
		})
	}

	entry, err := h.lifecycle.CreateInvoice(c.Request.Context(), service.CreateInvoiceInput{
		Mode:          req.Mode,
		InvoiceNumber: req.InvoiceNumber,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientGSTIN:   req.ClientGSTIN,
		ClientAddress: req.ClientAddress,
		ClientState:   req.ClientState,
		FollowUpValue: req.FollowUpValue,
		FollowUpUnit:  req.FollowUpUnit,
		Items:         lines,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, entry)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	entries, total, err := h.lifecycle.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByNumber handles GET /api/v1/invoices/:number
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	entry, err := h.lifecycle.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// Send handles POST /api/v1/invoices/:number/send
func (h *InvoiceHandler) Send(c *gin.Context) {
	entry, err := h.lifecycle.SendFromHistory(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// ChangeStatus handles POST /api/v1/invoices/:number/status
func (h *InvoiceHandler) ChangeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	status, err := domain.ParseInvoiceStatus(req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	entry, err := h.lifecycle.ChangeStatus(c.Request.Context(), c.Param("number"), status)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

// Export handles GET /api/v1/invoices/export?format=csv|xlsx
func (h *InvoiceHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	entries, _, err := h.lifecycle.List(c.Request.Context(), 0, 10000)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Render the whole file before writing any response bytes, so a render
	// failure still produces a clean error envelope instead of trailing a
	// truncated download.
	var buf bytes.Buffer
	var contentType string
	switch format {
	case "csv":
		contentType = "text/csv"
		err = export.WriteTrackerCSV(&buf, entries)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteTrackerXLSX(&buf, entries)
	}
	if err != nil {
		HandleError(c, err)
		return
	}

	stamp := time.Now().UTC().Format("20060102")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice_tracker_%s.%s", stamp, format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Sweep handles POST /api/v1/invoices/sweep. It triggers the reminder
// sweep immediately instead of waiting for the next tick.
func (h *InvoiceHandler) Sweep(c *gin.Context) {
	result, err := h.worker.Sweep(c.Request.Context(), time.Now().UTC())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, limit = 0, 20
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return offset, limit
}
