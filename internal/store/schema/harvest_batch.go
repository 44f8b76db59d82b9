package schema

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// HarvestBatch represents the harvest_batches table - one row per crop batch submitted by a producer
type HarvestBatch struct {
	// ID is the batch identifier (UUID), also the subject of the HARVEST custody event
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// ProducerID is the farmer who submitted the batch
	ProducerID string `gorm:"column:producer_id;not null;type:text;index"`
	// CropType is the commodity harvested (e.g. maize, coffee)
	CropType string `gorm:"column:crop_type;not null;type:text"`
	// EstimatedWeightKg is the weight declared at submission
	EstimatedWeightKg decimal.Decimal `gorm:"column:estimated_weight_kg;not null;type:numeric(20,4)"`
	// GPSLat and GPSLong locate the harvest
	GPSLat  float64 `gorm:"column:gps_lat;not null;type:double precision"`
	GPSLong float64 `gorm:"column:gps_long;not null;type:double precision"`
	// PhotoURLs are opaque media references supplied by the producer
	PhotoURLs datatypes.JSONSlice[string] `gorm:"column:photo_urls;type:jsonb"`
	// HarvestDate is when the crop was harvested, if supplied
	HarvestDate *time.Time `gorm:"column:harvest_date;type:timestamptz"`
	// Status only moves forward: SUBMITTED -> IN_TRANSIT -> DELIVERED
	Status domain.HarvestStatus `gorm:"column:status;not null;type:text;index"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the HarvestBatch model
func (HarvestBatch) TableName() string {
	return "harvest_batches"
}
