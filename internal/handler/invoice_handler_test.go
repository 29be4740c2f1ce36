package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lekha/internal/domain"
	"lekha/mocks"
)

func setupInvoiceRouter(lifecycle *mocks.MockLifecycleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewInvoiceHandler(lifecycle, nil)

	r := gin.New()
	r.POST("/invoices", h.Create)
	r.GET("/invoices/export", h.Export)
	r.GET("/invoices/:number", h.GetByNumber)
	r.POST("/invoices/:number/status", h.ChangeStatus)
	return r
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)
	lifecycle.On("CreateInvoice", mock.Anything, mock.Anything).Return(&domain.TrackerEntry{
		InvoiceNumber: "INV-001",
		Status:        domain.StatusDraft,
	}, nil)

	body, _ := json.Marshal(gin.H{
		"mode":        "draft",
		"client_name": "Globex",
		"items":       []gin.H{{"name": "Consulting", "quantity": "1", "rate": "1000", "gst_rate": "0.18"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestCreateInvoiceEndpointRejectsBadDate(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)

	body, _ := json.Marshal(gin.H{
		"client_name":  "Globex",
		"invoice_date": "01/04/2025",
		"items":        []gin.H{{"name": "Consulting"}},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices", bytes.NewReader(body))
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	lifecycle.AssertNotCalled(t, "CreateInvoice", mock.Anything, mock.Anything)
}

func TestGetInvoiceEndpointNotFound(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)
	lifecycle.On("Get", mock.Anything, "INV-404").Return(nil, domain.ErrInvoiceNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/INV-404", nil)
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVOICE_NOT_FOUND", resp.Error.Code)
}

func TestExportEndpointWritesWholeCSV(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)
	lifecycle.On("List", mock.Anything, 0, 10000).Return([]domain.TrackerEntry{
		{InvoiceNumber: "INV-001", ClientName: "Globex", Status: domain.StatusDraft},
	}, 1, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/export?format=csv", nil)
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Invoice No,"))
	assert.Contains(t, w.Body.String(), "INV-001")
}

func TestExportEndpointFailureIsACleanEnvelope(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)
	lifecycle.On("List", mock.Anything, 0, 10000).Return(nil, 0, errors.New("db down"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/export", nil)
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	// The body must be only the error envelope, never file bytes with a
	// JSON tail.
	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestExportEndpointRejectsUnknownFormat(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/invoices/export?format=pdf", nil)
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	lifecycle.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusEndpointRejectsUnknownStatus(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)

	body, _ := json.Marshal(gin.H{"status": "Pending"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices/INV-001/status", bytes.NewReader(body))
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	lifecycle.AssertNotCalled(t, "ChangeStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatusEndpointConflictOnInvalidTransition(t *testing.T) {
	lifecycle := new(mocks.MockLifecycleService)
	lifecycle.On("ChangeStatus", mock.Anything, "INV-001", domain.StatusSent).
		Return(nil, domain.ErrInvalidTransition)

	body, _ := json.Marshal(gin.H{"status": "Sent"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/invoices/INV-001/status", bytes.NewReader(body))
	setupInvoiceRouter(lifecycle).ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
}
