package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
)

// SettleEscrowPayout records the payout of a released escrow.
// The workflow ID is derived from the escrow so a payout is started at most once.
func (w *workerSettlement) SettleEscrowPayout(ctx workflow.Context, request PayoutRequest) (*PayoutResult, error) {
	logger.InfoWf(ctx, "Starting escrow payout",
		zap.String("escrowID", request.EscrowID),
		zap.String("purchaseID", request.PurchaseID),
		zap.String("amount", request.Amount),
		zap.String("workflowID", w.temporalWorkflow.GetExecutionID(ctx)))

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Minute,
			MaximumAttempts:    10,
			NonRetryableErrorTypes: []string{
				ErrTypeEscrowNotFound,
				ErrTypeEscrowNotReleased,
			},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var result PayoutResult
	err := workflow.ExecuteActivity(ctx, w.executor.RecordEscrowPayout, request, w.config.PayoutReferencePrefix).Get(ctx, &result)
	if err != nil {
		logger.ErrorWf(ctx,
			fmt.Errorf("failed to record escrow payout"),
			zap.Error(err),
			zap.String("escrowID", request.EscrowID))
		return nil, err
	}

	logger.InfoWf(ctx, "Escrow payout recorded",
		zap.String("escrowID", result.EscrowID),
		zap.String("reference", result.Reference),
		zap.Bool("alreadyRecorded", result.AlreadyRecorded))

	return &result, nil
}
