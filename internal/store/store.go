package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations
type Store interface {
	// =============================================================================
	// Ledger channels
	// =============================================================================

	// GetLedgerChannel retrieves the channel mapped to a scope key, nil if none exists
	GetLedgerChannel(ctx context.Context, scopeKey string) (*schema.LedgerChannel, error)
	// InsertLedgerChannel inserts a scope mapping unless one already exists and returns the winning row
	InsertLedgerChannel(ctx context.Context, channel schema.LedgerChannel) (*schema.LedgerChannel, error)

	// =============================================================================
	// Custody chain
	// =============================================================================

	// GetHarvestBatch retrieves a harvest batch by ID, nil if not found
	GetHarvestBatch(ctx context.Context, id string) (*schema.HarvestBatch, error)
	// GetTransportJob retrieves a transport job by ID, nil if not found
	GetTransportJob(ctx context.Context, id string) (*schema.TransportJob, error)
	// GetTransportJobByHarvestID retrieves the transport job of a batch, nil if none exists
	GetTransportJobByHarvestID(ctx context.Context, harvestID string) (*schema.TransportJob, error)
	// GetWarehouseDelivery retrieves a warehouse delivery by ID, nil if not found
	GetWarehouseDelivery(ctx context.Context, id string) (*schema.WarehouseDelivery, error)
	// GetWarehouseDeliveries lists warehouse deliveries, optionally filtered by status
	GetWarehouseDeliveries(ctx context.Context, status domain.DeliveryStatus) ([]schema.WarehouseDelivery, error)
	// HasCustodyEvent checks whether a transition was already committed for a subject
	HasCustodyEvent(ctx context.Context, subjectID string, eventType domain.CustodyEventType) (bool, error)
	// GetCustodyEvent retrieves a custody event by ID, nil if not found
	GetCustodyEvent(ctx context.Context, id string) (*schema.CustodyEvent, error)
	// GetCustodyEventsByHarvestID retrieves the custody chain of a batch ordered by occurrence
	GetCustodyEventsByHarvestID(ctx context.Context, harvestID string) ([]schema.CustodyEvent, error)
	// GetCustodyEventsAfter retrieves custody events created after the cursor, ordered by (created_at, id)
	GetCustodyEventsAfter(ctx context.Context, cursor AuditCursor, limit int) ([]schema.CustodyEvent, error)

	// CommitHarvest persists a new batch and its HARVEST event
	CommitHarvest(ctx context.Context, input CommitHarvestInput) error
	// CommitTransportStart persists a transport job and its TRANSPORT_START event, moving the batch IN_TRANSIT
	CommitTransportStart(ctx context.Context, input CommitTransportStartInput) error
	// CommitTransportComplete delivers a job, moves the batch DELIVERED and opens a pending warehouse delivery
	CommitTransportComplete(ctx context.Context, input CommitTransportCompleteInput) (*schema.WarehouseDelivery, error)
	// CommitWarehouseReceipt completes a delivery and creates its inspection, inventory lot and product listing
	CommitWarehouseReceipt(ctx context.Context, input CommitWarehouseReceiptInput) (*WarehouseReceiptResult, error)

	// =============================================================================
	// Warehouse
	// =============================================================================

	// GetInventoryLots lists inventory lots, newest first, optionally filtered by status
	GetInventoryLots(ctx context.Context, status domain.InventoryStatus) ([]schema.InventoryLot, error)
	// GetQualityInspections lists inspections, newest first
	GetQualityInspections(ctx context.Context, filter InspectionFilter) ([]schema.QualityInspection, error)
	// GetInspectionStats aggregates the inspections taken since a point in time
	GetInspectionStats(ctx context.Context, since time.Time) (*InspectionStats, error)

	// =============================================================================
	// Reconciliation
	// =============================================================================

	// CreateReconciliationItem durably records a ledger/local divergence
	CreateReconciliationItem(ctx context.Context, item schema.ReconciliationItem) error
	// GetReconciliationItems lists reconciliation items, newest first
	GetReconciliationItems(ctx context.Context, filter ReconciliationFilter) ([]schema.ReconciliationItem, error)
	// ResolveReconciliationItem marks an item as resolved
	ResolveReconciliationItem(ctx context.Context, id, resolvedBy, resolution string) error

	// =============================================================================
	// Settlement
	// =============================================================================

	// GetProducts lists product listings with stock left
	GetProducts(ctx context.Context, filter ProductFilter) ([]schema.Product, error)
	// GetProductByID retrieves a product by ID, nil if not found
	GetProductByID(ctx context.Context, id string) (*schema.Product, error)
	// CreatePurchase reserves inventory, escrows funds and records the purchase in one transaction
	CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*PurchaseResult, error)
	// ReleaseEscrow releases an ACTIVE escrow owned by the buyer and completes its purchase
	ReleaseEscrow(ctx context.Context, input ReleaseEscrowInput) (*PurchaseResult, error)
	// CancelPurchase refunds a pending purchase and restores its inventory
	CancelPurchase(ctx context.Context, input CancelPurchaseInput) (*PurchaseResult, error)
	// GetPurchasesByBuyer lists a buyer's purchases, newest first
	GetPurchasesByBuyer(ctx context.Context, buyerID string, status domain.PurchaseStatus) ([]schema.Purchase, error)
	// GetEscrowsByBuyer lists a buyer's escrows, newest first
	GetEscrowsByBuyer(ctx context.Context, buyerID string, status domain.EscrowStatus) ([]schema.EscrowTransaction, error)
	// GetEscrowByID retrieves an escrow by ID, nil if not found
	GetEscrowByID(ctx context.Context, id string) (*schema.EscrowTransaction, error)
	// SetPayoutReference stamps the payout reference on an escrow unless one is set.
	// Returns false when a reference was already present.
	SetPayoutReference(ctx context.Context, escrowID, reference string) (bool, error)
	// GetEscrowsAwaitingPayout lists escrows released before the cutoff that have no payout reference, oldest first
	GetEscrowsAwaitingPayout(ctx context.Context, releasedBefore time.Time, limit int) ([]schema.EscrowTransaction, error)

	// =============================================================================
	// Wallets
	// =============================================================================

	// GetBuyer retrieves a buyer wallet, nil if not found
	GetBuyer(ctx context.Context, id string) (*schema.Buyer, error)
	// GetWalletTransactions lists the latest wallet transactions of a buyer
	GetWalletTransactions(ctx context.Context, buyerID string, limit int) ([]schema.WalletTransaction, error)
	// CreditBuyer adds funds to a buyer wallet, creating the wallet on first deposit
	CreditBuyer(ctx context.Context, input CreditBuyerInput) (*schema.WalletTransaction, error)
}

// CustodyEventInput is the ledger-anchored event row written with every custody commit
type CustodyEventInput struct {
	ID          string
	SubjectID   string
	EventType   domain.CustodyEventType
	HarvestID   string
	ActorID     string
	Fingerprint string
	ChannelID   string
	TxID        string
	// Payload is the canonical JSON that was fingerprinted
	Payload    []byte
	OccurredAt time.Time
}

// CommitHarvestInput contains the data to persist a HARVEST transition
type CommitHarvestInput struct {
	Event CustodyEventInput
	Batch schema.HarvestBatch
}

// CommitTransportStartInput contains the data to persist a TRANSPORT_START transition
type CommitTransportStartInput struct {
	Event CustodyEventInput
	Job   schema.TransportJob
}

// CommitTransportCompleteInput contains the data to persist a TRANSPORT_COMPLETE transition
type CommitTransportCompleteInput struct {
	Event              CustodyEventInput
	JobID              string
	TransporterID      string
	ActualDeliveryTime time.Time
	DeliveryLat        *float64
	DeliveryLong       *float64
	DistanceKm         float64
	// DeliveryID is the ID of the warehouse delivery to open
	DeliveryID string
}

// CommitWarehouseReceiptInput contains the data to persist a WAREHOUSE_RECEIPT transition
type CommitWarehouseReceiptInput struct {
	Event           CustodyEventInput
	DeliveryID      string
	ReceivedBy      string
	ReceivedAt      time.Time
	ActualWeightKg  decimal.NullDecimal
	QualityGrade    *string
	StorageLocation *string
	UnitPrice       decimal.Decimal
	LotID           string
	ProductID       string
	Inspection      InspectionInput
}

// InspectionInput is the quality inspection recorded with a warehouse receipt.
// Weights and variance are derived from the delivery when it is committed.
type InspectionInput struct {
	ID              string
	Status          domain.InspectionStatus
	MoistureContent decimal.NullDecimal
	PurityLevel     decimal.NullDecimal
	ForeignMatter   decimal.NullDecimal
	Notes           *string
}

// WarehouseReceiptResult contains the rows derived from a confirmed delivery
type WarehouseReceiptResult struct {
	Delivery   schema.WarehouseDelivery
	Inspection schema.QualityInspection
	Lot        schema.InventoryLot
	Product    schema.Product
}

// InspectionFilter filters inspection listings
type InspectionFilter struct {
	Status domain.InspectionStatus
	// Search matches crop type, harvest ID or delivery ID (case-insensitive)
	Search string
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

// InspectionStats summarises inspections over a window
type InspectionStats struct {
	Total       int64
	Approved    int64
	Conditional int64
	// AvgAbsVariancePct is the mean of |weight variance|, zero when there are no inspections
	AvgAbsVariancePct decimal.Decimal
}

// ReconciliationFilter filters reconciliation listings
type ReconciliationFilter struct {
	Reason         domain.ReconciliationReason
	SubjectID      string
	EventType      domain.CustodyEventType
	UnresolvedOnly bool
	Limit          int
}

// ProductFilter filters product listings
type ProductFilter struct {
	// Search matches crop type, quality grade or harvest ID (case-insensitive)
	Search   string
	CropType string
	Status   domain.ProductStatus
}

// CreatePurchaseInput contains the data to create a purchase
type CreatePurchaseInput struct {
	BuyerID         string
	ProductID       string
	Quantity        decimal.Decimal
	DeliveryAddress string
	EscrowReference string
}

// ReleaseEscrowInput contains the data to release an escrow
type ReleaseEscrowInput struct {
	BuyerID  string
	EscrowID string
}

// CancelPurchaseInput contains the data to cancel a purchase
type CancelPurchaseInput struct {
	BuyerID    string
	PurchaseID string
}

// PurchaseResult is a purchase together with its escrow
type PurchaseResult struct {
	Purchase schema.Purchase
	Escrow   schema.EscrowTransaction
}

// CreditBuyerInput contains the data to fund a buyer wallet
type CreditBuyerInput struct {
	BuyerID      string
	Amount       decimal.Decimal
	Counterparty string
	Description  string
	ReferenceID  *string
}

// AuditCursor marks the last custody event visited by the fingerprint audit
type AuditCursor struct {
	CreatedAt time.Time
	ID        string
}
