package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes.
// protected runs in order in front of every /api/v1 route, typically auth then rate limiting.
func SetupRoutes(router *gin.Engine, handler Handler, protected ...gin.HandlerFunc) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1", protected...)
	{
		// Custody chain
		v1.POST("/harvests", handler.SubmitHarvest)
		v1.GET("/harvests/:id/provenance", handler.GetProvenance)
		v1.POST("/transport/start", handler.StartTransport)
		v1.POST("/transport/complete", handler.CompleteTransport)
		v1.GET("/warehouse/deliveries", handler.ListWarehouseDeliveries)
		v1.POST("/warehouse/receipts", handler.ConfirmWarehouseReceipt)
		v1.GET("/warehouse/inventory", handler.ListInventoryLots)
		v1.GET("/warehouse/inspections", handler.ListInspections)
		v1.GET("/warehouse/reports/stats", handler.GetReportStats)
		v1.GET("/custody-events/:id/verify", handler.VerifyCustodyEvent)

		// Marketplace and settlement
		v1.GET("/products", handler.ListProducts)
		v1.POST("/purchases", handler.CreatePurchase)
		v1.GET("/purchases", handler.ListPurchases)
		v1.POST("/purchases/:id/cancel", handler.CancelPurchase)
		v1.GET("/escrows", handler.ListEscrows)
		v1.POST("/escrows/release", handler.ReleaseEscrow)
		v1.GET("/wallet", handler.GetWallet)

		// Operator endpoints; role checks happen in the services
		v1.POST("/wallet/deposits", handler.Deposit)
		v1.GET("/reconciliation", handler.ListReconciliationItems)
		v1.POST("/reconciliation/resolve", handler.ResolveReconciliationItem)
	}
}
