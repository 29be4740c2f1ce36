package router

import (
	"github.com/gin-gonic/gin"

	"lekha/internal/handler"
	"lekha/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	invoiceH *handler.InvoiceHandler,
	masterH *handler.MasterHandler,
	statsH *handler.StatsHandler,
	actionH *handler.ActionHandler,
	auditH *handler.AuditHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Invoice lifecycle
	invoices := v1.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/export", invoiceH.Export)
	invoices.POST("/sweep", invoiceH.Sweep)
	invoices.GET("/:number", invoiceH.GetByNumber)
	invoices.POST("/:number/send", invoiceH.Send)
	invoices.POST("/:number/status", invoiceH.ChangeStatus)

	// Interactive tracker actions
	v1.POST("/actions", actionH.Dispatch)

	// Masters
	clients := v1.Group("/clients")
	clients.GET("", masterH.ListClients)
	clients.POST("", masterH.CreateClient)

	products := v1.Group("/products")
	products.GET("", masterH.ListProducts)
	products.POST("", masterH.CreateProduct)

	v1.GET("/profile", masterH.GetSellerProfile)
	v1.PUT("/profile", masterH.UpsertSellerProfile)
	v1.GET("/states", masterH.ListStates)

	// Dashboard
	v1.GET("/stats", statsH.GetStats)
	v1.GET("/audit", auditH.List)

	return r
}
