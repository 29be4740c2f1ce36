package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lekha/internal/domain"
	"lekha/internal/service"
	"lekha/internal/tax"
)

// MasterHandler handles client, product and seller-profile endpoints.
type MasterHandler struct {
	masters service.MasterService
}

// NewMasterHandler creates a new MasterHandler.
func NewMasterHandler(masters service.MasterService) *MasterHandler {
	return &MasterHandler{masters: masters}
}

// ListClients handles GET /api/v1/clients
func (h *MasterHandler) ListClients(c *gin.Context) {
	clients, err := h.masters.ListClients(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, clients)
}

// CreateClient handles POST /api/v1/clients
func (h *MasterHandler) CreateClient(c *gin.Context) {
	var client domain.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.masters.CreateClient(c.Request.Context(), &client); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, client)
}

// ListProducts handles GET /api/v1/products
func (h *MasterHandler) ListProducts(c *gin.Context) {
	products, err := h.masters.ListProducts(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, products)
}

// CreateProduct handles POST /api/v1/products
func (h *MasterHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.masters.CreateProduct(c.Request.Context(), &product); err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, product)
}

// GetSellerProfile handles GET /api/v1/profile
func (h *MasterHandler) GetSellerProfile(c *gin.Context) {
	profile, err := h.masters.GetSellerProfile(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}

// UpsertSellerProfile handles PUT /api/v1/profile
func (h *MasterHandler) UpsertSellerProfile(c *gin.Context) {
	var profile domain.SellerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if err := h.masters.UpsertSellerProfile(c.Request.Context(), &profile); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}

// ListStates handles GET /api/v1/states. Clients use it to populate the
// state dropdown with the canonical "Name (Code)" labels.
func (h *MasterHandler) ListStates(c *gin.Context) {
	RespondOK(c, tax.StateLabels())
}
