package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lekha/internal/service"
)

// ActionHandler handles interactive tracker actions.
type ActionHandler struct {
	dispatcher service.ActionDispatcher
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(dispatcher service.ActionDispatcher) *ActionHandler {
	return &ActionHandler{dispatcher: dispatcher}
}

// Dispatch handles POST /api/v1/actions
func (h *ActionHandler) Dispatch(c *gin.Context) {
	var req service.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	entry, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}
