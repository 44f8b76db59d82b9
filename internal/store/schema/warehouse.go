package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// WarehouseDelivery represents the warehouse_deliveries table.
// A delivery is opened when transport completes and confirmed by the receiving warehouse.
type WarehouseDelivery struct {
	// ID is the delivery identifier, subject of the WAREHOUSE_RECEIPT custody event
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// HarvestID is the batch being delivered
	HarvestID string `gorm:"column:harvest_id;not null;type:uuid;index"`
	// TransportJobID is the job that carried the batch
	TransportJobID string `gorm:"column:transport_job_id;not null;type:uuid;uniqueIndex"`
	// QuantityKg is the declared weight carried over from the batch
	QuantityKg decimal.Decimal `gorm:"column:quantity_kg;not null;type:numeric(20,4)"`
	// ActualWeightKg is the weight measured on receipt
	ActualWeightKg decimal.NullDecimal `gorm:"column:actual_weight_kg;type:numeric(20,4)"`
	QualityGrade   *string             `gorm:"column:quality_grade;type:text"`
	// ReceivedBy is the warehouse operator that confirmed receipt
	ReceivedBy *string              `gorm:"column:received_by;type:text"`
	ReceivedAt *time.Time           `gorm:"column:received_at;type:timestamptz"`
	Status     domain.DeliveryStatus `gorm:"column:status;not null;type:text;index"`
	CreatedAt  time.Time            `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt  time.Time            `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WarehouseDelivery model
func (WarehouseDelivery) TableName() string {
	return "warehouse_deliveries"
}

// InventoryLot represents the inventory_lots table - stock created 1:1 from a confirmed delivery
type InventoryLot struct {
	ID              string                 `gorm:"column:id;primaryKey;type:uuid"`
	DeliveryID      string                 `gorm:"column:delivery_id;not null;type:uuid;uniqueIndex"`
	HarvestID       string                 `gorm:"column:harvest_id;not null;type:uuid;index"`
	CropType        string                 `gorm:"column:crop_type;not null;type:text"`
	QuantityKg      decimal.Decimal        `gorm:"column:quantity_kg;not null;type:numeric(20,4)"`
	// AvailableKg never goes negative (CHECK constraint)
	AvailableKg     decimal.Decimal        `gorm:"column:available_kg;not null;type:numeric(20,4)"`
	QualityGrade    *string                `gorm:"column:quality_grade;type:text"`
	StorageLocation *string                `gorm:"column:storage_location;type:text"`
	Status          domain.InventoryStatus `gorm:"column:status;not null;type:text;index"`
	CreatedAt       time.Time              `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt       time.Time              `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the InventoryLot model
func (InventoryLot) TableName() string {
	return "inventory_lots"
}

// Product represents the products table - the buyer-facing listing of an inventory lot
type Product struct {
	ID             string               `gorm:"column:id;primaryKey;type:uuid"`
	InventoryLotID string               `gorm:"column:inventory_lot_id;not null;type:uuid;uniqueIndex"`
	HarvestID      string               `gorm:"column:harvest_id;not null;type:uuid;index"`
	ProducerID     string               `gorm:"column:producer_id;not null;type:text"`
	CropType       string               `gorm:"column:crop_type;not null;type:text;index"`
	QualityGrade   *string              `gorm:"column:quality_grade;type:text"`
	// AvailableKg mirrors the lot and is only decremented under a row lock
	AvailableKg decimal.Decimal      `gorm:"column:available_kg;not null;type:numeric(20,4)"`
	UnitPrice   decimal.Decimal      `gorm:"column:unit_price;not null;type:numeric(20,4)"`
	Status      domain.ProductStatus `gorm:"column:status;not null;type:text;index"`
	CreatedAt   time.Time            `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// QualityInspection represents the quality_inspections table - the inspection taken with a warehouse receipt
type QualityInspection struct {
	ID         string `gorm:"column:id;primaryKey;type:uuid"`
	DeliveryID string `gorm:"column:delivery_id;not null;type:uuid;uniqueIndex"`
	HarvestID  string `gorm:"column:harvest_id;not null;type:uuid;index"`
	CropType   string `gorm:"column:crop_type;not null;type:text"`
	// ExpectedWeightKg is the declared weight, ActualWeightKg the weight received into stock
	ExpectedWeightKg decimal.Decimal `gorm:"column:expected_weight_kg;not null;type:numeric(20,4)"`
	ActualWeightKg   decimal.Decimal `gorm:"column:actual_weight_kg;not null;type:numeric(20,4)"`
	// WeightVariancePct is signed: negative when less arrived than was declared
	WeightVariancePct decimal.Decimal         `gorm:"column:weight_variance_pct;not null;type:numeric(9,2)"`
	Status            domain.InspectionStatus `gorm:"column:status;not null;type:text;index"`
	InspectorID       string                  `gorm:"column:inspector_id;not null;type:text"`
	MoistureContent   decimal.NullDecimal     `gorm:"column:moisture_content;type:numeric(5,2)"`
	PurityLevel       decimal.NullDecimal     `gorm:"column:purity_level;type:numeric(5,2)"`
	ForeignMatter     decimal.NullDecimal     `gorm:"column:foreign_matter;type:numeric(5,2)"`
	QualityGrade      *string                 `gorm:"column:quality_grade;type:text"`
	Notes             *string                 `gorm:"column:notes;type:text"`
	InspectedAt       time.Time               `gorm:"column:inspected_at;not null;type:timestamptz;index"`
	CreatedAt         time.Time               `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the QualityInspection model
func (QualityInspection) TableName() string {
	return "quality_inspections"
}
