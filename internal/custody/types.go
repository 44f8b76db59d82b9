package custody

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// HarvestInput is a farmer's batch submission
type HarvestInput struct {
	// HarvestID is optional; a client-supplied ID makes resubmission idempotent
	HarvestID         string          `json:"harvestId" validate:"omitempty,uuid"`
	CropType          string          `json:"cropType" validate:"required,max=100,text"`
	EstimatedWeightKg decimal.Decimal `json:"estimatedWeightKg"`
	GPSLat            *float64        `json:"gpsLat" validate:"required,latitude"`
	GPSLong           *float64        `json:"gpsLong" validate:"required,longitude"`
	PhotoURLs         []string        `json:"photoUrls" validate:"max=20,dive,required,max=2048,text"`
	HarvestDate       *time.Time      `json:"harvestDate"`
}

// TransportStartInput is a transporter picking up a batch
type TransportStartInput struct {
	HarvestID             string    `json:"harvestId" validate:"required,uuid"`
	PickupLocation        string    `json:"pickupLocation" validate:"required,max=500,text"`
	DeliveryLocation      string    `json:"deliveryLocation" validate:"required,max=500,text"`
	ScheduledPickupTime   time.Time `json:"scheduledPickupTime" validate:"required"`
	ScheduledDeliveryTime time.Time `json:"scheduledDeliveryTime" validate:"required"`
	PickupLat             *float64  `json:"pickupLat" validate:"omitempty,latitude"`
	PickupLong            *float64  `json:"pickupLong" validate:"omitempty,longitude"`
}

// TransportCompleteInput is a transporter handing a batch over at the warehouse
type TransportCompleteInput struct {
	JobID              string            `json:"jobId" validate:"required,uuid"`
	ActualDeliveryTime time.Time         `json:"actualDeliveryTime" validate:"required"`
	DeliveryLat        *float64          `json:"deliveryLat" validate:"omitempty,latitude"`
	DeliveryLong       *float64          `json:"deliveryLong" validate:"omitempty,longitude"`
	Route              []domain.GeoPoint `json:"route" validate:"max=10000"`
}

// WarehouseReceiptInput is a warehouse confirming a pending delivery
type WarehouseReceiptInput struct {
	DeliveryID      string              `json:"deliveryId" validate:"required,uuid"`
	ActualWeightKg  decimal.NullDecimal `json:"actualWeightKg"`
	QualityGrade    *string             `json:"qualityGrade" validate:"omitempty,max=50,text"`
	UnitPrice       decimal.Decimal     `json:"unitPrice"`
	StorageLocation *string             `json:"storageLocation" validate:"omitempty,max=200,text"`
	// Inspection is optional; without it the receipt is recorded as an APPROVED inspection
	Inspection *InspectionInput `json:"inspection"`
}

// InspectionInput is the quality inspection taken when a delivery is received
type InspectionInput struct {
	Status          domain.InspectionStatus `json:"status" validate:"omitempty,oneof=APPROVED CONDITIONAL"`
	MoistureContent decimal.NullDecimal     `json:"moistureContent"`
	PurityLevel     decimal.NullDecimal     `json:"purityLevel"`
	ForeignMatter   decimal.NullDecimal     `json:"foreignMatter"`
	Notes           *string                 `json:"notes" validate:"omitempty,max=2000,text"`
}

// TransitionResult describes a committed custody transition
type TransitionResult struct {
	EventID       string                  `json:"eventId"`
	EventType     domain.CustodyEventType `json:"eventType"`
	SubjectID     string                  `json:"subjectId"`
	HarvestID     string                  `json:"harvestId"`
	Fingerprint   string                  `json:"fingerprint"`
	ChannelID     string                  `json:"channelId"`
	TransactionID string                  `json:"transactionId"`
	OccurredAt    time.Time               `json:"occurredAt"`

	JobID      string   `json:"jobId,omitempty"`
	DeliveryID string   `json:"deliveryId,omitempty"`
	DistanceKm *float64 `json:"distanceKm,omitempty"`
	LotID      string   `json:"lotId,omitempty"`
	ProductID  string   `json:"productId,omitempty"`

	InspectionID      string           `json:"inspectionId,omitempty"`
	WeightVariancePct *decimal.Decimal `json:"weightVariancePct,omitempty"`
}

// HarvestView is the batch summary returned with its provenance
type HarvestView struct {
	ID                string               `json:"id"`
	ProducerID        string               `json:"producerId"`
	CropType          string               `json:"cropType"`
	EstimatedWeightKg decimal.Decimal      `json:"estimatedWeightKg"`
	GPSLat            float64              `json:"gpsLat"`
	GPSLong           float64              `json:"gpsLong"`
	PhotoURLs         []string             `json:"photoUrls"`
	HarvestDate       *time.Time           `json:"harvestDate,omitempty"`
	Status            domain.HarvestStatus `json:"status"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// ProvenanceEvent is one link of a custody chain
type ProvenanceEvent struct {
	ID            string                  `json:"id"`
	EventType     domain.CustodyEventType `json:"eventType"`
	SubjectID     string                  `json:"subjectId"`
	ActorID       string                  `json:"actorId"`
	Fingerprint   string                  `json:"fingerprint"`
	ChannelID     string                  `json:"channelId"`
	TransactionID string                  `json:"transactionId"`
	OccurredAt    time.Time               `json:"occurredAt"`
	Payload       json.RawMessage         `json:"payload"`
	// Verified reports whether the stored payload still hashes to the fingerprint
	Verified bool `json:"verified"`
}

// Provenance is the ordered custody chain of a batch
type Provenance struct {
	Harvest HarvestView       `json:"harvest"`
	Events  []ProvenanceEvent `json:"events"`
	// Verified is true when every event verifies
	Verified bool `json:"verified"`
}

// Verification is the result of re-hashing a stored custody event
type Verification struct {
	EventID     string                  `json:"eventId"`
	EventType   domain.CustodyEventType `json:"eventType"`
	Fingerprint string                  `json:"fingerprint"`
	Recomputed  string                  `json:"recomputed"`
	Verified    bool                    `json:"verified"`
}

// DeliveryView is a warehouse delivery as shown to warehouse staff
type DeliveryView struct {
	ID             string                `json:"id"`
	HarvestID      string                `json:"harvestId"`
	TransportJobID string                `json:"transportJobId"`
	QuantityKg     decimal.Decimal       `json:"quantityKg"`
	ActualWeightKg decimal.NullDecimal   `json:"actualWeightKg"`
	QualityGrade   *string               `json:"qualityGrade,omitempty"`
	ReceivedBy     *string               `json:"receivedBy,omitempty"`
	ReceivedAt     *time.Time            `json:"receivedAt,omitempty"`
	Status         domain.DeliveryStatus `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// InventoryLotView is an inventory lot as shown to warehouse staff
type InventoryLotView struct {
	ID              string                 `json:"id"`
	DeliveryID      string                 `json:"deliveryId"`
	HarvestID       string                 `json:"harvestId"`
	CropType        string                 `json:"cropType"`
	QuantityKg      decimal.Decimal        `json:"quantityKg"`
	AvailableKg     decimal.Decimal        `json:"availableKg"`
	QualityGrade    *string                `json:"qualityGrade,omitempty"`
	StorageLocation *string                `json:"storageLocation,omitempty"`
	Status          domain.InventoryStatus `json:"status"`
	ReceivedAt      time.Time              `json:"receivedAt"`
}

// InspectionQuery filters the inspection history
type InspectionQuery struct {
	Status domain.InspectionStatus `json:"status" form:"status" validate:"omitempty,oneof=APPROVED CONDITIONAL"`
	Search string                  `json:"search" form:"search" validate:"max=200,text"`
	From   *time.Time              `json:"from" form:"from" time_format:"2006-01-02" time_utc:"1"`
	To     *time.Time              `json:"to" form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit  int                     `json:"limit" form:"limit" validate:"gte=0,lte=500"`
}

// InspectionView is a recorded quality inspection
type InspectionView struct {
	ID                string                  `json:"id"`
	DeliveryID        string                  `json:"deliveryId"`
	HarvestID         string                  `json:"harvestId"`
	CropType          string                  `json:"cropType"`
	ExpectedWeightKg  decimal.Decimal         `json:"expectedWeightKg"`
	ActualWeightKg    decimal.Decimal         `json:"actualWeightKg"`
	WeightVariancePct decimal.Decimal         `json:"weightVariancePct"`
	Status            domain.InspectionStatus `json:"status"`
	InspectorID       string                  `json:"inspectorId"`
	MoistureContent   decimal.NullDecimal     `json:"moistureContent"`
	PurityLevel       decimal.NullDecimal     `json:"purityLevel"`
	ForeignMatter     decimal.NullDecimal     `json:"foreignMatter"`
	QualityGrade      *string                 `json:"qualityGrade,omitempty"`
	Notes             *string                 `json:"notes,omitempty"`
	InspectedAt       time.Time               `json:"inspectedAt"`
}

// DateRange is the inclusive calendar window of a report
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ReportStats summarises the inspections of a period
type ReportStats struct {
	TotalInspections  int64               `json:"totalInspections"`
	Approved          int64               `json:"approved"`
	Conditional       int64               `json:"conditional"`
	ApprovalRate      decimal.Decimal     `json:"approvalRate"`
	AvgWeightVariance decimal.Decimal     `json:"avgWeightVariance"`
	Period            domain.ReportPeriod `json:"period"`
	DateRange         DateRange           `json:"dateRange"`
}

// The payloads below are the snapshots that get fingerprinted and stored.
// Field names are part of the audit trail and must not change.

type harvestPayload struct {
	EventType         domain.CustodyEventType `json:"event_type"`
	HarvestID         string                  `json:"harvest_id"`
	ProducerID        string                  `json:"producer_id"`
	CropType          string                  `json:"crop_type"`
	EstimatedWeightKg decimal.Decimal         `json:"estimated_weight_kg"`
	Location          domain.GeoPoint         `json:"location"`
	PhotoURLs         []string                `json:"photo_urls"`
	HarvestDate       *time.Time              `json:"harvest_date,omitempty"`
	Timestamp         time.Time               `json:"timestamp"`
}

type transportStartPayload struct {
	EventType             domain.CustodyEventType `json:"event_type"`
	HarvestID             string                  `json:"harvest_id"`
	JobID                 string                  `json:"job_id"`
	TransporterID         string                  `json:"transporter_id"`
	PickupLocation        string                  `json:"pickup_location"`
	DeliveryLocation      string                  `json:"delivery_location"`
	ScheduledPickupTime   time.Time               `json:"scheduled_pickup_time"`
	ScheduledDeliveryTime time.Time               `json:"scheduled_delivery_time"`
	PickupGPS             *domain.GeoPoint        `json:"pickup_gps,omitempty"`
	Timestamp             time.Time               `json:"timestamp"`
}

type transportCompletePayload struct {
	EventType          domain.CustodyEventType `json:"event_type"`
	HarvestID          string                  `json:"harvest_id"`
	JobID              string                  `json:"job_id"`
	DeliveryID         string                  `json:"delivery_id"`
	TransporterID      string                  `json:"transporter_id"`
	QuantityKg         decimal.Decimal         `json:"quantity_kg"`
	ActualDeliveryTime time.Time               `json:"actual_delivery_time"`
	DeliveryGPS        *domain.GeoPoint        `json:"delivery_gps,omitempty"`
	Route              []domain.GeoPoint       `json:"route"`
	DistanceKm         float64                 `json:"distance_km"`
	Timestamp          time.Time               `json:"timestamp"`
}

type warehouseReceiptPayload struct {
	EventType       domain.CustodyEventType `json:"event_type"`
	HarvestID       string                  `json:"harvest_id"`
	DeliveryID      string                  `json:"delivery_id"`
	TransportJobID  string                  `json:"transport_job_id"`
	ReceivedBy      string                  `json:"received_by"`
	DeclaredKg      decimal.Decimal         `json:"declared_kg"`
	ReceivedKg      decimal.Decimal         `json:"received_kg"`
	QualityGrade    *string                 `json:"quality_grade,omitempty"`
	UnitPrice       decimal.Decimal         `json:"unit_price"`
	StorageLocation *string                 `json:"storage_location,omitempty"`
	LotID           string                  `json:"lot_id"`
	ProductID       string                  `json:"product_id"`
	Timestamp       time.Time               `json:"timestamp"`
}

// ReconciliationQuery filters reconciliation listings
type ReconciliationQuery struct {
	Reason         domain.ReconciliationReason `json:"reason" form:"reason" validate:"omitempty,oneof=LOCAL_COMMIT_FAILED FINGERPRINT_MISMATCH"`
	UnresolvedOnly bool                        `json:"unresolved" form:"unresolved"`
	Limit          int                         `json:"limit" form:"limit" validate:"gte=0,lte=500"`
}

// ResolveReconciliationInput closes a reconciliation item
type ResolveReconciliationInput struct {
	ID         string `json:"id" validate:"required,max=64"`
	Resolution string `json:"resolution" validate:"required,max=2000,text"`
}

// ReconciliationView is a ledger/local divergence awaiting an operator
type ReconciliationView struct {
	ID            string                      `json:"id"`
	Reason        domain.ReconciliationReason `json:"reason"`
	SubjectID     string                      `json:"subjectId"`
	EventType     domain.CustodyEventType     `json:"eventType"`
	HarvestID     string                      `json:"harvestId"`
	ChannelID     string                      `json:"channelId,omitempty"`
	TransactionID string                      `json:"transactionId,omitempty"`
	Fingerprint   string                      `json:"fingerprint"`
	Payload       json.RawMessage             `json:"payload,omitempty"`
	Detail        string                      `json:"detail"`
	ResolvedAt    *time.Time                  `json:"resolvedAt,omitempty"`
	ResolvedBy    *string                     `json:"resolvedBy,omitempty"`
	Resolution    *string                     `json:"resolution,omitempty"`
	CreatedAt     time.Time                   `json:"createdAt"`
}
