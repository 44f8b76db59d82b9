package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// CustodyEvent represents the custody_events table - immutable record of a custody transition
// anchored to the external ledger. Rows are never updated.
type CustodyEvent struct {
	// ID is the internal identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// SubjectID is the harvest, job or delivery the transition applies to
	SubjectID string `gorm:"column:subject_id;not null;type:text;uniqueIndex:idx_custody_events_subject_type"`
	// EventType is the custody transition type
	EventType domain.CustodyEventType `gorm:"column:event_type;not null;type:text;uniqueIndex:idx_custody_events_subject_type"`
	// HarvestID links every event of a batch's custody chain
	HarvestID string `gorm:"column:harvest_id;not null;type:uuid;index"`
	// ActorID is the caller that performed the transition
	ActorID string `gorm:"column:actor_id;not null;type:text"`
	// Fingerprint is the hex SHA-256 of the canonical payload
	Fingerprint string `gorm:"column:fingerprint;not null;type:char(64)"`
	// ChannelID is the ledger channel the fingerprint was appended to
	ChannelID string `gorm:"column:channel_id;not null;type:text"`
	// TxID is the ledger transaction id returned for the append
	TxID string `gorm:"column:tx_id;not null;type:text"`
	// Payload is the snapshot that was fingerprinted
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// OccurredAt is the transition timestamp included in the payload
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CustodyEvent model
func (CustodyEvent) TableName() string {
	return "custody_events"
}
