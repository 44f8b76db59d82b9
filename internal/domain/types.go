package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Role is the role carried by an authenticated caller
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleTransporter Role = "transporter"
	RoleWarehouse   Role = "warehouse"
	RoleBuyer       Role = "buyer"
	RoleAdmin       Role = "admin"
)

// IsValidRole checks if a role is known
func IsValidRole(role Role) bool {
	return role == RoleFarmer ||
		role == RoleTransporter ||
		role == RoleWarehouse ||
		role == RoleBuyer ||
		role == RoleAdmin
}

// Caller is the identity on whose behalf an operation runs.
// It is supplied by the authentication layer and never defaulted.
type Caller struct {
	ID   string
	Role Role
}

// Require checks that the caller is identified and holds one of the roles
func (c Caller) Require(roles ...Role) error {
	if strings.TrimSpace(c.ID) == "" {
		return NewValidationError("caller", "is required")
	}
	if !IsStorableText(c.ID) {
		return NewValidationError("caller", "must be valid UTF-8 without NUL bytes")
	}
	if len(roles) == 0 || slices.Contains(roles, c.Role) {
		return nil
	}
	return fmt.Errorf("%w: role %q cannot perform this operation", ErrForbidden, c.Role)
}

// CustodyEventType is the type of a custody transition
type CustodyEventType string

const (
	CustodyEventHarvest           CustodyEventType = "HARVEST"
	CustodyEventTransportStart    CustodyEventType = "TRANSPORT_START"
	CustodyEventTransportComplete CustodyEventType = "TRANSPORT_COMPLETE"
	CustodyEventWarehouseReceipt  CustodyEventType = "WAREHOUSE_RECEIPT"
)

// IsValidCustodyEventType checks if a custody event type is known
func IsValidCustodyEventType(t CustodyEventType) bool {
	return t == CustodyEventHarvest ||
		t == CustodyEventTransportStart ||
		t == CustodyEventTransportComplete ||
		t == CustodyEventWarehouseReceipt
}

// HarvestStatus is the lifecycle status of a harvest batch
type HarvestStatus string

const (
	HarvestStatusSubmitted HarvestStatus = "SUBMITTED"
	HarvestStatusInTransit HarvestStatus = "IN_TRANSIT"
	HarvestStatusDelivered HarvestStatus = "DELIVERED"
)

// TransportJobStatus is the status of a transport job
type TransportJobStatus string

const (
	TransportJobStatusPending   TransportJobStatus = "PENDING"
	TransportJobStatusAccepted  TransportJobStatus = "ACCEPTED"
	TransportJobStatusInTransit TransportJobStatus = "IN_TRANSIT"
	TransportJobStatusDelivered TransportJobStatus = "DELIVERED"
	TransportJobStatusCancelled TransportJobStatus = "CANCELLED"
)

// Terminal reports whether no further transition is possible
func (s TransportJobStatus) Terminal() bool {
	return s == TransportJobStatusDelivered || s == TransportJobStatusCancelled
}

// DeliveryStatus is the status of a warehouse delivery
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusCompleted DeliveryStatus = "COMPLETED"
)

// InventoryStatus is the status of an inventory lot
type InventoryStatus string

const (
	InventoryStatusInStock  InventoryStatus = "IN_STOCK"
	InventoryStatusDepleted InventoryStatus = "DEPLETED"
)

// InspectionStatus is the outcome of the quality inspection taken on receipt
type InspectionStatus string

const (
	InspectionStatusApproved    InspectionStatus = "APPROVED"
	InspectionStatusConditional InspectionStatus = "CONDITIONAL"
)

// ProductStatus is the status of a product listing
type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "AVAILABLE"
	ProductStatusSoldOut   ProductStatus = "SOLD_OUT"
)

// PurchaseStatus is the status of a purchase order
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// PaymentStatus is the payment status of a purchase order
type PaymentStatus string

const (
	PaymentStatusEscrowed PaymentStatus = "ESCROWED"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// EscrowStatus is the status of an escrow transaction
type EscrowStatus string

const (
	EscrowStatusActive   EscrowStatus = "ACTIVE"
	EscrowStatusReleased EscrowStatus = "RELEASED"
	EscrowStatusRefunded EscrowStatus = "REFUNDED"
)

// WalletTransactionType is the type of a wallet ledger entry
type WalletTransactionType string

const (
	WalletTransactionEscrow  WalletTransactionType = "ESCROW"
	WalletTransactionRefund  WalletTransactionType = "REFUND"
	WalletTransactionDeposit WalletTransactionType = "DEPOSIT"
)

// ReconciliationReason classifies a reconciliation item
type ReconciliationReason string

const (
	// ReconciliationLocalCommitFailed means the ledger holds an event the store does not
	ReconciliationLocalCommitFailed ReconciliationReason = "LOCAL_COMMIT_FAILED"
	// ReconciliationFingerprintMismatch means a stored payload no longer matches its fingerprint
	ReconciliationFingerprintMismatch ReconciliationReason = "FINGERPRINT_MISMATCH"
)

// ChannelScope selects how custody events are grouped into ledger channels
type ChannelScope string

const (
	ChannelScopeBatch  ChannelScope = "batch"
	ChannelScopeGlobal ChannelScope = "global"
)

// ScopeKey returns the ledger channel scope key for a harvest batch
func (s ChannelScope) ScopeKey(harvestID string) string {
	if s == ChannelScopeGlobal {
		return GLOBAL_CHANNEL_SCOPE
	}
	return BATCH_CHANNEL_PREFIX + harvestID
}

// GeoPoint is a latitude/longitude pair in degrees
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Valid checks the coordinate ranges
func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Long >= -180 && p.Long <= 180
}

// DistanceKm returns the great-circle distance between two points
func DistanceKm(a, b GeoPoint) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat - a.Lat)
	dLong := toRad(b.Long - a.Long)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLong/2)*math.Sin(dLong/2)

	return EARTH_RADIUS_KM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// RouteDistanceKm sums the distances along a route
func RouteDistanceKm(points []GeoPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += DistanceKm(points[i-1], points[i])
	}
	return total
}
