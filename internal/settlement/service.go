package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/cache"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
)

const (
	ESCROW_REFERENCE_PREFIX  = "ESC-"
	DEPOSIT_REFERENCE_PREFIX = "DEP-"
	DEFAULT_DEPOSIT_MEMO     = "Wallet deposit"
)

// Service moves inventory and funds between buyers and listings.
// Every mutation is a single store transaction.
//
//go:generate mockgen -source=service.go -destination=../mocks/settlement.go -package=mocks -mock_names=Service=MockSettlementService
type Service interface {
	// CreatePurchase reserves stock and escrows the total from the buyer's balance
	CreatePurchase(ctx context.Context, caller domain.Caller, request PurchaseRequest) (*Order, error)
	// ReleaseEscrow completes a purchase and hands the escrow to the payout worker
	ReleaseEscrow(ctx context.Context, caller domain.Caller, escrowID string) (*Order, error)
	// CancelPurchase refunds a pending purchase and returns its stock
	CancelPurchase(ctx context.Context, caller domain.Caller, purchaseID string) (*Order, error)

	ListProducts(ctx context.Context, caller domain.Caller, query ProductQuery) ([]ProductView, error)
	ListPurchases(ctx context.Context, caller domain.Caller, status domain.PurchaseStatus) ([]PurchaseView, error)
	ListEscrows(ctx context.Context, caller domain.Caller, status domain.EscrowStatus) ([]EscrowView, error)
	GetWallet(ctx context.Context, caller domain.Caller) (*WalletView, error)
	// Deposit credits a buyer wallet. Admin only.
	Deposit(ctx context.Context, caller domain.Caller, request DepositRequest) (*WalletTransactionView, error)
}

type service struct {
	store  store.Store
	cache  cache.Cache
	payout Payout
}

// NewService creates a settlement service
func NewService(st store.Store, c cache.Cache, payout Payout) Service {
	if payout == nil {
		payout = NewNoopPayout()
	}

	return &service{
		store:  st,
		cache:  c,
		payout: payout,
	}
}

// CreatePurchase validates the order before touching the store
func (s *service) CreatePurchase(ctx context.Context, caller domain.Caller, request PurchaseRequest) (*Order, error) {
	if err := caller.Require(domain.RoleBuyer); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(request); err != nil {
		return nil, err
	}
	if err := domain.CheckAmount("quantity", request.Quantity); err != nil {
		return nil, err
	}

	result, err := s.store.CreatePurchase(ctx, store.CreatePurchaseInput{
		BuyerID:         caller.ID,
		ProductID:       normalizeUUID(request.ProductID),
		Quantity:        request.Quantity,
		DeliveryAddress: request.DeliveryAddress,
		EscrowReference: ESCROW_REFERENCE_PREFIX + ulid.Make().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	cache.InvalidateAll(ctx, s.cache, cache.NamespaceProducts, cache.NamespaceInventory)

	logger.InfoCtx(ctx, "Created purchase",
		zap.String("purchaseID", result.Purchase.ID),
		zap.String("escrowID", result.Escrow.ID),
		zap.String("buyerID", caller.ID),
		zap.String("total", result.Purchase.TotalPrice.String()))

	return toOrder(result), nil
}

// ReleaseEscrow commits the release, then dispatches the payout
func (s *service) ReleaseEscrow(ctx context.Context, caller domain.Caller, escrowID string) (*Order, error) {
	if err := caller.Require(domain.RoleBuyer); err != nil {
		return nil, err
	}
	id, err := parseUUID("escrowId", escrowID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.ReleaseEscrow(ctx, store.ReleaseEscrowInput{
		BuyerID:  caller.ID,
		EscrowID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to release escrow: %w", err)
	}

	logger.InfoCtx(ctx, "Released escrow",
		zap.String("escrowID", result.Escrow.ID),
		zap.String("purchaseID", result.Purchase.ID),
		zap.String("buyerID", caller.ID))

	// The release is committed; a payout that fails to start is only logged
	if err := s.payout.Dispatch(context.WithoutCancel(ctx), result.Escrow); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to dispatch escrow payout: %w", err),
			zap.String("escrowID", result.Escrow.ID))
	}

	return toOrder(result), nil
}

// CancelPurchase refunds an unreleased purchase
func (s *service) CancelPurchase(ctx context.Context, caller domain.Caller, purchaseID string) (*Order, error) {
	if err := caller.Require(domain.RoleBuyer); err != nil {
		return nil, err
	}
	id, err := parseUUID("purchaseId", purchaseID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.CancelPurchase(ctx, store.CancelPurchaseInput{
		BuyerID:    caller.ID,
		PurchaseID: id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel purchase: %w", err)
	}

	cache.InvalidateAll(ctx, s.cache, cache.NamespaceProducts, cache.NamespaceInventory)

	logger.InfoCtx(ctx, "Cancelled purchase",
		zap.String("purchaseID", result.Purchase.ID),
		zap.String("escrowID", result.Escrow.ID),
		zap.String("buyerID", caller.ID))

	return toOrder(result), nil
}

// ListProducts lists listings with stock left
func (s *service) ListProducts(ctx context.Context, caller domain.Caller, query ProductQuery) ([]ProductView, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(query); err != nil {
		return nil, err
	}

	return cache.GetOrLoad(ctx, s.cache, cache.NamespaceProducts, query, func(ctx context.Context) ([]ProductView, error) {
		products, err := s.store.GetProducts(ctx, query.filter())
		if err != nil {
			return nil, fmt.Errorf("failed to get products: %w", err)
		}

		views := make([]ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, toProductView(p))
		}
		return views, nil
	})
}

// ListPurchases lists the caller's purchases
func (s *service) ListPurchases(ctx context.Context, caller domain.Caller, status domain.PurchaseStatus) ([]PurchaseView, error) {
	if err := caller.Require(domain.RoleBuyer); err != nil {
		return nil, err
	}
	switch status {
	case "", domain.PurchaseStatusPending, domain.PurchaseStatusCompleted, domain.PurchaseStatusCancelled:
	default:
		return nil, domain.NewValidationError("status", "must be one of PENDING COMPLETED CANCELLED")
	}

	purchases, err := s.store.GetPurchasesByBuyer(ctx, caller.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}

	views := make([]PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		views = append(views, toPurchaseView(p))
	}
	return views, nil
}

// ListEscrows lists the caller's escrows
func (s *service) ListEscrows(ctx context.Context, caller domain.Caller, status domain.EscrowStatus) ([]EscrowView, error) {
	if err := caller.Require(domain.RoleBuyer); err != nil {
		return nil, err
	}
	switch status {
	case "", domain.EscrowStatusActive, domain.EscrowStatusReleased, domain.EscrowStatusRefunded:
	default:
		return nil, domain.NewValidationError("status", "must be one of ACTIVE RELEASED REFUNDED")
	}

	escrows, err := s.store.GetEscrowsByBuyer(ctx, caller.ID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrows: %w", err)
	}

	views := make([]EscrowView, 0, len(escrows))
	for _, e := range escrows {
		views = append(views, toEscrowView(e))
	}
	return views, nil
}

// GetWallet returns the caller's balance and latest transactions.
// A buyer that was never funded has a zero balance.
func (s *service) GetWallet(ctx context.Context, caller domain.Caller) (*WalletView, error) {
	if err := caller.Require(domain.RoleBuyer); err != nil {
		return nil, err
	}

	buyer, err := s.store.GetBuyer(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}

	wallet := &WalletView{
		BuyerID:      caller.ID,
		Balance:      decimal.Zero,
		Transactions: []WalletTransactionView{},
	}
	if buyer == nil {
		return wallet, nil
	}
	wallet.Balance = buyer.Balance

	txs, err := s.store.GetWalletTransactions(ctx, caller.ID, domain.WALLET_HISTORY_LIMIT)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet transactions: %w", err)
	}
	for _, t := range txs {
		wallet.Transactions = append(wallet.Transactions, toWalletTransactionView(t))
	}

	return wallet, nil
}

// Deposit credits a buyer wallet
func (s *service) Deposit(ctx context.Context, caller domain.Caller, request DepositRequest) (*WalletTransactionView, error) {
	if err := caller.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(request); err != nil {
		return nil, err
	}
	if err := domain.CheckAmount("amount", request.Amount); err != nil {
		return nil, err
	}

	description := request.Description
	if description == "" {
		description = DEFAULT_DEPOSIT_MEMO
	}
	reference := DEPOSIT_REFERENCE_PREFIX + ulid.Make().String()

	walletTx, err := s.store.CreditBuyer(ctx, store.CreditBuyerInput{
		BuyerID:      request.BuyerID,
		Amount:       request.Amount,
		Counterparty: caller.ID,
		Description:  description,
		ReferenceID:  &reference,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit buyer: %w", err)
	}

	logger.InfoCtx(ctx, "Credited buyer wallet",
		zap.String("buyerID", request.BuyerID),
		zap.String("amount", request.Amount.String()),
		zap.String("reference", reference),
		zap.String("by", caller.ID))

	view := toWalletTransactionView(*walletTx)
	return &view, nil
}

func normalizeUUID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}

func parseUUID(field, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", domain.NewValidationError(field, "must be a UUID")
	}
	return parsed.String(), nil
}
