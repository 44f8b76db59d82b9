package settlement

import (
	"context"
	"fmt"

	enums "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/providers/temporal"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
	"github.com/Allen-Brian/AGRICHAIN/internal/workflows"
)

// Payout is invoked after an escrow release has committed
//
//go:generate mockgen -source=payout.go -destination=../mocks/payout.go -package=mocks -mock_names=Payout=MockPayout
type Payout interface {
	// Dispatch starts the payout of a released escrow. Dispatching the same escrow twice is a no-op.
	Dispatch(ctx context.Context, escrow schema.EscrowTransaction) error
}

type temporalPayout struct {
	orchestrator temporal.TemporalOrchestrator
	taskQueue    string
}

// NewTemporalPayout creates a payout dispatcher that starts the payout workflow
func NewTemporalPayout(orchestrator temporal.TemporalOrchestrator, taskQueue string) Payout {
	return &temporalPayout{
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
	}
}

// Dispatch starts SettleEscrowPayout keyed on the escrow ID
func (p *temporalPayout) Dispatch(ctx context.Context, escrow schema.EscrowTransaction) error {
	options := client.StartWorkflowOptions{
		ID:                                       workflows.PayoutWorkflowID(escrow.ID),
		TaskQueue:                                p.taskQueue,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}

	request := workflows.PayoutRequest{
		EscrowID:   escrow.ID,
		PurchaseID: escrow.PurchaseID,
		BuyerID:    escrow.BuyerID,
		Amount:     escrow.Amount.String(),
	}

	w := workflows.NewWorkerSettlement(nil, workflows.WorkerSettlementConfig{}, nil)
	run, err := p.orchestrator.ExecuteWorkflow(ctx, options, w.SettleEscrowPayout, request)
	if err != nil {
		if temporal.IsAlreadyStarted(err) {
			logger.InfoCtx(ctx, "Escrow payout already started",
				zap.String("escrowID", escrow.ID),
				zap.String("workflowID", options.ID))
			return nil
		}
		return fmt.Errorf("failed to start payout workflow: %w", err)
	}

	// run may be nil in tests
	if run != nil {
		logger.InfoCtx(ctx, "Escrow payout workflow started",
			zap.String("escrowID", escrow.ID),
			zap.String("workflowID", run.GetID()),
			zap.String("runID", run.GetRunID()))
	}

	return nil
}

type noopPayout struct{}

// NewNoopPayout creates a payout dispatcher that does nothing, for deployments without a payout worker
func NewNoopPayout() Payout {
	return noopPayout{}
}

func (noopPayout) Dispatch(ctx context.Context, escrow schema.EscrowTransaction) error {
	logger.DebugCtx(ctx, "Payout dispatch disabled", zap.String("escrowID", escrow.ID))
	return nil
}
