package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

// PurchaseRequest is a buyer ordering from a product listing
type PurchaseRequest struct {
	ProductID       string          `json:"productId" validate:"required,uuid"`
	Quantity        decimal.Decimal `json:"quantity"`
	DeliveryAddress string          `json:"deliveryAddress" validate:"required,max=500,text"`
}

// ReleaseRequest names the escrow a buyer releases
type ReleaseRequest struct {
	EscrowID string `json:"escrowId" validate:"required,uuid"`
}

// DepositRequest funds a buyer wallet
type DepositRequest struct {
	BuyerID string          `json:"buyerId" validate:"required,max=200,text"`
	Amount  decimal.Decimal `json:"amount"`
	// Description is optional; a default is recorded otherwise
	Description string `json:"description" validate:"omitempty,max=500,text"`
}

// ProductQuery filters product listings
type ProductQuery struct {
	Search   string               `json:"search" form:"search" validate:"omitempty,max=100,text"`
	CropType string               `json:"cropType" form:"cropType" validate:"omitempty,max=100,text"`
	Status   domain.ProductStatus `json:"status" form:"status" validate:"omitempty,oneof=AVAILABLE SOLD_OUT"`
}

func (q ProductQuery) filter() store.ProductFilter {
	return store.ProductFilter{
		Search:   q.Search,
		CropType: q.CropType,
		Status:   q.Status,
	}
}

// ProductView is a buyer-facing listing
type ProductView struct {
	ID             string               `json:"id"`
	InventoryLotID string               `json:"inventoryLotId"`
	HarvestID      string               `json:"harvestId"`
	ProducerID     string               `json:"producerId"`
	CropType       string               `json:"cropType"`
	QualityGrade   *string              `json:"qualityGrade,omitempty"`
	AvailableKg    decimal.Decimal      `json:"availableKg"`
	UnitPrice      decimal.Decimal      `json:"unitPrice"`
	Status         domain.ProductStatus `json:"status"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// PurchaseView is a purchase order
type PurchaseView struct {
	ID              string                `json:"id"`
	BuyerID         string                `json:"buyerId"`
	ProductID       string                `json:"productId"`
	HarvestID       string                `json:"harvestId"`
	Quantity        decimal.Decimal       `json:"quantity"`
	UnitPrice       decimal.Decimal       `json:"unitPrice"`
	TotalPrice      decimal.Decimal       `json:"totalPrice"`
	DeliveryAddress string                `json:"deliveryAddress"`
	Status          domain.PurchaseStatus `json:"status"`
	PaymentStatus   domain.PaymentStatus  `json:"paymentStatus"`
	CompletedAt     *time.Time            `json:"completedAt,omitempty"`
	CancelledAt     *time.Time            `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// EscrowView is the escrow holding a purchase's funds
type EscrowView struct {
	ID              string              `json:"id"`
	PurchaseID      string              `json:"purchaseId"`
	BuyerID         string              `json:"buyerId"`
	Amount          decimal.Decimal     `json:"amount"`
	EscrowReference string              `json:"escrowReference"`
	Status          domain.EscrowStatus `json:"status"`
	ReleasedAt      *time.Time          `json:"releasedAt,omitempty"`
	RefundedAt      *time.Time          `json:"refundedAt,omitempty"`
	PayoutReference *string             `json:"payoutReference,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// Order is a purchase together with its escrow
type Order struct {
	Purchase PurchaseView `json:"purchase"`
	Escrow   EscrowView   `json:"escrow"`
}

// WalletTransactionView is one balance change
type WalletTransactionView struct {
	ID           string                       `json:"id"`
	Type         domain.WalletTransactionType `json:"type"`
	Amount       decimal.Decimal              `json:"amount"`
	BalanceAfter decimal.Decimal              `json:"balanceAfter"`
	Counterparty string                       `json:"counterparty"`
	Description  string                       `json:"description"`
	ReferenceID  *string                      `json:"referenceId,omitempty"`
	CreatedAt    time.Time                    `json:"createdAt"`
}

// WalletView is a buyer balance with its latest transactions
type WalletView struct {
	BuyerID      string                  `json:"buyerId"`
	Balance      decimal.Decimal         `json:"balance"`
	Transactions []WalletTransactionView `json:"transactions"`
}

func toProductView(p schema.Product) ProductView {
	return ProductView{
		ID:             p.ID,
		InventoryLotID: p.InventoryLotID,
		HarvestID:      p.HarvestID,
		ProducerID:     p.ProducerID,
		CropType:       p.CropType,
		QualityGrade:   p.QualityGrade,
		AvailableKg:    p.AvailableKg,
		UnitPrice:      p.UnitPrice,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}

func toPurchaseView(p schema.Purchase) PurchaseView {
	return PurchaseView{
		ID:              p.ID,
		BuyerID:         p.BuyerID,
		ProductID:       p.ProductID,
		HarvestID:       p.HarvestID,
		Quantity:        p.Quantity,
		UnitPrice:       p.UnitPrice,
		TotalPrice:      p.TotalPrice,
		DeliveryAddress: p.DeliveryAddress,
		Status:          p.Status,
		PaymentStatus:   p.PaymentStatus,
		CompletedAt:     p.CompletedAt,
		CancelledAt:     p.CancelledAt,
		CreatedAt:       p.CreatedAt,
	}
}

func toEscrowView(e schema.EscrowTransaction) EscrowView {
	return EscrowView{
		ID:              e.ID,
		PurchaseID:      e.PurchaseID,
		BuyerID:         e.BuyerID,
		Amount:          e.Amount,
		EscrowReference: e.EscrowReference,
		Status:          e.Status,
		ReleasedAt:      e.ReleasedAt,
		RefundedAt:      e.RefundedAt,
		PayoutReference: e.PayoutReference,
		CreatedAt:       e.CreatedAt,
	}
}

func toOrder(r *store.PurchaseResult) *Order {
	return &Order{
		Purchase: toPurchaseView(r.Purchase),
		Escrow:   toEscrowView(r.Escrow),
	}
}

func toWalletTransactionView(t schema.WalletTransaction) WalletTransactionView {
	return WalletTransactionView{
		ID:           t.ID,
		Type:         t.Type,
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Counterparty: t.Counterparty,
		Description:  t.Description,
		ReferenceID:  t.ReferenceID,
		CreatedAt:    t.CreatedAt,
	}
}
