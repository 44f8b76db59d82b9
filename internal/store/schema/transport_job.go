package schema

import (
	"time"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// TransportJob represents the transport_jobs table - at most one job per harvest batch
type TransportJob struct {
	ID                    string                    `gorm:"column:id;primaryKey;type:uuid"`
	HarvestID             string                    `gorm:"column:harvest_id;not null;type:uuid;uniqueIndex"`
	TransporterID         string                    `gorm:"column:transporter_id;not null;type:text;index"`
	PickupLocation        string                    `gorm:"column:pickup_location;not null;type:text"`
	DeliveryLocation      string                    `gorm:"column:delivery_location;not null;type:text"`
	ScheduledPickupTime   time.Time                 `gorm:"column:scheduled_pickup_time;not null;type:timestamptz"`
	ScheduledDeliveryTime time.Time                 `gorm:"column:scheduled_delivery_time;not null;type:timestamptz"`
	ActualPickupTime      *time.Time                `gorm:"column:actual_pickup_time;type:timestamptz"`
	ActualDeliveryTime    *time.Time                `gorm:"column:actual_delivery_time;type:timestamptz"`
	PickupLat             *float64                  `gorm:"column:pickup_lat;type:double precision"`
	PickupLong            *float64                  `gorm:"column:pickup_long;type:double precision"`
	DeliveryLat           *float64                  `gorm:"column:delivery_lat;type:double precision"`
	DeliveryLong          *float64                  `gorm:"column:delivery_long;type:double precision"`
	DistanceKm            *float64                  `gorm:"column:distance_km;type:double precision"`
	Status                domain.TransportJobStatus `gorm:"column:status;not null;type:text;index"`
	CreatedAt             time.Time                 `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt             time.Time                 `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TransportJob model
func (TransportJob) TableName() string {
	return "transport_jobs"
}
