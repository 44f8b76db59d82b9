package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// Buyer represents the buyers table - one wallet balance per buyer identity
type Buyer struct {
	// ID is the buyer identity issued by the authentication layer
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Balance never goes negative (CHECK constraint); every change has a wallet transaction
	Balance   decimal.Decimal `gorm:"column:balance;not null;type:numeric(20,4)"`
	CreatedAt time.Time       `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Buyer model
func (Buyer) TableName() string {
	return "buyers"
}

// Purchase represents the purchases table
type Purchase struct {
	ID        string `gorm:"column:id;primaryKey;type:uuid"`
	BuyerID   string `gorm:"column:buyer_id;not null;type:text;index"`
	ProductID string `gorm:"column:product_id;not null;type:uuid;index"`
	HarvestID string `gorm:"column:harvest_id;not null;type:uuid"`
	// Quantity is in kilograms
	Quantity decimal.Decimal `gorm:"column:quantity;not null;type:numeric(20,4)"`
	// UnitPrice is the listing price captured at purchase time
	UnitPrice decimal.Decimal `gorm:"column:unit_price;not null;type:numeric(20,4)"`
	// TotalPrice is always UnitPrice x Quantity, computed server-side
	TotalPrice      decimal.Decimal      `gorm:"column:total_price;not null;type:numeric(20,4)"`
	DeliveryAddress string               `gorm:"column:delivery_address;not null;type:text"`
	Status          domain.PurchaseStatus `gorm:"column:status;not null;type:text;index"`
	PaymentStatus   domain.PaymentStatus  `gorm:"column:payment_status;not null;type:text"`
	CompletedAt     *time.Time           `gorm:"column:completed_at;type:timestamptz"`
	CancelledAt     *time.Time           `gorm:"column:cancelled_at;type:timestamptz"`
	CreatedAt       time.Time            `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// EscrowTransaction represents the escrow_transactions table - one escrow per purchase
type EscrowTransaction struct {
	ID         string          `gorm:"column:id;primaryKey;type:uuid"`
	PurchaseID string          `gorm:"column:purchase_id;not null;type:uuid;uniqueIndex"`
	BuyerID    string          `gorm:"column:buyer_id;not null;type:text;index"`
	Amount     decimal.Decimal `gorm:"column:amount;not null;type:numeric(20,4)"`
	// EscrowReference is an opaque placeholder for a payment-network account. Not authoritative.
	EscrowReference string              `gorm:"column:escrow_reference;not null;type:text"`
	Status          domain.EscrowStatus `gorm:"column:status;not null;type:text;index"`
	ReleasedAt      *time.Time          `gorm:"column:released_at;type:timestamptz"`
	RefundedAt      *time.Time          `gorm:"column:refunded_at;type:timestamptz"`
	// PayoutReference is set once by the payout workflow
	PayoutReference  *string    `gorm:"column:payout_reference;type:text"`
	PayoutRecordedAt *time.Time `gorm:"column:payout_recorded_at;type:timestamptz"`
	CreatedAt        time.Time  `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the EscrowTransaction model
func (EscrowTransaction) TableName() string {
	return "escrow_transactions"
}

// WalletTransaction represents the wallet_transactions table - append-only ledger of balance changes
type WalletTransaction struct {
	ID      string                       `gorm:"column:id;primaryKey;type:uuid"`
	BuyerID string                       `gorm:"column:buyer_id;not null;type:text;index:idx_wallet_transactions_buyer_created"`
	Type    domain.WalletTransactionType `gorm:"column:type;not null;type:text"`
	// Amount is signed: debits are negative
	Amount       decimal.Decimal `gorm:"column:amount;not null;type:numeric(20,4)"`
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;not null;type:numeric(20,4)"`
	Counterparty string          `gorm:"column:counterparty;not null;type:text"`
	Description  string          `gorm:"column:description;not null;type:text"`
	// ReferenceID points at the escrow or deposit that caused the change
	ReferenceID *string   `gorm:"column:reference_id;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_wallet_transactions_buyer_created"`
}

// TableName specifies the table name for the WalletTransaction model
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
