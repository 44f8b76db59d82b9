package workflows

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
)

const (
	// Non-retryable activity error types
	ErrTypeEscrowNotFound    = "EscrowNotFound"
	ErrTypeEscrowNotReleased = "EscrowNotReleased"

	DEFAULT_PAYOUT_REFERENCE_PREFIX = "PAYOUT-"
)

// PayoutRequest identifies the released escrow to pay out
type PayoutRequest struct {
	EscrowID   string `json:"escrow_id"`
	PurchaseID string `json:"purchase_id"`
	BuyerID    string `json:"buyer_id"`
	// Amount is the decimal string of the escrowed amount
	Amount string `json:"amount"`
}

// PayoutResult is the payout reference stamped on the escrow
type PayoutResult struct {
	EscrowID  string `json:"escrow_id"`
	Reference string `json:"reference"`
	// AlreadyRecorded is true when an earlier attempt stamped the reference
	AlreadyRecorded bool `json:"already_recorded"`
}

// Executor defines the interface for executing settlement activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_settlement.go -package=mocks -mock_names=Executor=MockSettlementExecutor
type Executor interface {
	// RecordEscrowPayout stamps a payout reference on a released escrow unless one is already set.
	// No funds move.
	RecordEscrowPayout(ctx context.Context, request PayoutRequest, referencePrefix string) (*PayoutResult, error)
}

// executor is the concrete implementation of Executor
type executor struct {
	store            store.Store
	temporalActivity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(store store.Store, temporalActivity adapter.Activity) Executor {
	return &executor{
		store:            store,
		temporalActivity: temporalActivity,
	}
}

// RecordEscrowPayout stamps the payout reference. Safe to retry: the reference is only set once.
func (e *executor) RecordEscrowPayout(ctx context.Context, request PayoutRequest, referencePrefix string) (*PayoutResult, error) {
	attempt := e.temporalActivity.GetInfo(ctx).Attempt
	logger.InfoCtx(ctx, "Recording escrow payout",
		zap.String("escrowID", request.EscrowID),
		zap.Int32("attempt", attempt))

	escrow, err := e.store.GetEscrowByID(ctx, request.EscrowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get escrow: %w", err)
	}
	if escrow == nil {
		return nil, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("escrow %s not found", request.EscrowID), ErrTypeEscrowNotFound, nil)
	}
	if escrow.Status != domain.EscrowStatusReleased {
		return nil, temporal.NewNonRetryableApplicationError(
			fmt.Sprintf("escrow %s is %s", request.EscrowID, escrow.Status), ErrTypeEscrowNotReleased, nil)
	}
	if escrow.PayoutReference != nil {
		return &PayoutResult{EscrowID: escrow.ID, Reference: *escrow.PayoutReference, AlreadyRecorded: true}, nil
	}

	if referencePrefix == "" {
		referencePrefix = DEFAULT_PAYOUT_REFERENCE_PREFIX
	}
	reference := referencePrefix + ulid.Make().String()

	set, err := e.store.SetPayoutReference(ctx, escrow.ID, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to set payout reference: %w", err)
	}
	if !set {
		// A concurrent attempt won; report what it stored
		current, err := e.store.GetEscrowByID(ctx, escrow.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get escrow: %w", err)
		}
		if current == nil || current.PayoutReference == nil {
			return nil, fmt.Errorf("payout reference of escrow %s vanished", escrow.ID)
		}
		return &PayoutResult{EscrowID: escrow.ID, Reference: *current.PayoutReference, AlreadyRecorded: true}, nil
	}

	logger.InfoCtx(ctx, "Recorded escrow payout",
		zap.String("escrowID", escrow.ID),
		zap.String("reference", reference))

	return &PayoutResult{EscrowID: escrow.ID, Reference: reference}, nil
}
