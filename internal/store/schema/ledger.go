package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// LedgerChannel represents the ledger_channels table - durable scope key to channel id mapping
type LedgerChannel struct {
	// ScopeKey identifies what the channel groups (e.g. batch:<harvest_id> or global)
	ScopeKey string `gorm:"column:scope_key;primaryKey;type:text"`
	// ChannelID is the provider-assigned channel identifier
	ChannelID string `gorm:"column:channel_id;not null;type:text"`
	// Memo is the description given to the provider at creation
	Memo      string    `gorm:"column:memo;not null;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerChannel model
func (LedgerChannel) TableName() string {
	return "ledger_channels"
}

// ReconciliationItem represents the reconciliation_items table - ledger/local divergences
// awaiting manual resolution
type ReconciliationItem struct {
	// ID is a ULID so items sort by creation
	ID          string                      `gorm:"column:id;primaryKey;type:text"`
	Reason      domain.ReconciliationReason `gorm:"column:reason;not null;type:text;index"`
	SubjectID   string                      `gorm:"column:subject_id;not null;type:text"`
	EventType   domain.CustodyEventType     `gorm:"column:event_type;not null;type:text"`
	HarvestID   string                      `gorm:"column:harvest_id;not null;type:text"`
	ChannelID   string                      `gorm:"column:channel_id;type:text"`
	TxID        string                      `gorm:"column:tx_id;type:text"`
	Fingerprint string                      `gorm:"column:fingerprint;not null;type:text"`
	Payload     datatypes.JSON              `gorm:"column:payload;type:jsonb"`
	// Detail is the local error that caused the divergence
	Detail     string     `gorm:"column:detail;not null;type:text"`
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
	ResolvedBy *string    `gorm:"column:resolved_by;type:text"`
	Resolution *string    `gorm:"column:resolution;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ReconciliationItem model
func (ReconciliationItem) TableName() string {
	return "reconciliation_items"
}
