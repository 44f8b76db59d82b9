package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Allen-Brian/AGRICHAIN/internal/api/middleware"
	"github.com/Allen-Brian/AGRICHAIN/internal/custody"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitHarvest records a farmer's harvest batch
	// POST /api/v1/harvests
	SubmitHarvest(c *gin.Context)

	// GetProvenance returns the verified custody chain of a batch
	// GET /api/v1/harvests/:id/provenance
	GetProvenance(c *gin.Context)

	// StartTransport records a pickup
	// POST /api/v1/transport/start
	StartTransport(c *gin.Context)

	// CompleteTransport records a hand-over at the warehouse
	// POST /api/v1/transport/complete
	CompleteTransport(c *gin.Context)

	// ListWarehouseDeliveries lists deliveries awaiting or past receipt
	// GET /api/v1/warehouse/deliveries?status=<PENDING|COMPLETED>
	ListWarehouseDeliveries(c *gin.Context)

	// ConfirmWarehouseReceipt receives a delivery into inventory
	// POST /api/v1/warehouse/receipts
	ConfirmWarehouseReceipt(c *gin.Context)

	// ListInventoryLots lists warehouse stock
	// GET /api/v1/warehouse/inventory?status=<IN_STOCK|DEPLETED>
	ListInventoryLots(c *gin.Context)

	// ListInspections lists the quality inspections taken on receipt
	// GET /api/v1/warehouse/inspections?status=<APPROVED|CONDITIONAL>&search=<text>&from=<date>&to=<date>&limit=<limit>
	ListInspections(c *gin.Context)

	// GetReportStats summarises inspections over a period
	// GET /api/v1/warehouse/reports/stats?period=<7d|30d|90d|ytd>
	GetReportStats(c *gin.Context)

	// VerifyCustodyEvent re-hashes a stored custody event
	// GET /api/v1/custody-events/:id/verify
	VerifyCustodyEvent(c *gin.Context)

	// ListProducts lists marketplace products
	// GET /api/v1/products?search=<text>&cropType=<crop>&status=<AVAILABLE|SOLD_OUT>
	ListProducts(c *gin.Context)

	// CreatePurchase reserves inventory and holds the buyer's funds in escrow
	// POST /api/v1/purchases
	CreatePurchase(c *gin.Context)

	// ListPurchases lists the caller's purchases
	// GET /api/v1/purchases?status=<status>
	ListPurchases(c *gin.Context)

	// CancelPurchase refunds a held escrow and restores inventory
	// POST /api/v1/purchases/:id/cancel
	CancelPurchase(c *gin.Context)

	// ListEscrows lists the caller's escrows
	// GET /api/v1/escrows?status=<status>
	ListEscrows(c *gin.Context)

	// ReleaseEscrow releases a held escrow to the producer
	// POST /api/v1/escrows/release
	ReleaseEscrow(c *gin.Context)

	// GetWallet returns the caller's wallet
	// GET /api/v1/wallet
	GetWallet(c *gin.Context)

	// Deposit credits a buyer's wallet (API key only)
	// POST /api/v1/wallet/deposits
	Deposit(c *gin.Context)

	// ListReconciliationItems lists ledger/local discrepancies (API key only)
	// GET /api/v1/reconciliation?reason=<reason>&unresolved=<bool>&limit=<limit>
	ListReconciliationItems(c *gin.Context)

	// ResolveReconciliationItem closes a discrepancy (API key only)
	// POST /api/v1/reconciliation/resolve
	ResolveReconciliationItem(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	custody    custody.Manager
	settlement settlement.Service
}

// NewHandler creates a new REST API handler
func NewHandler(manager custody.Manager, service settlement.Service) Handler {
	return &handler{
		custody:    manager,
		settlement: service,
	}
}

// caller returns the authenticated caller or writes a 401
func (h *handler) caller(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondUnauthorized(c)
	}
	return caller, ok
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "agrichain-api",
	})
}
