package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lekha/internal/port"
)

// AuditHandler exposes the append-only audit log.
type AuditHandler struct {
	audit port.AuditRepository
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit port.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /api/v1/audit
func (h *AuditHandler) List(c *gin.Context) {
	limit := 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}

	entries, err := h.audit.List(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}
