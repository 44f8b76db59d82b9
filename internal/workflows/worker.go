package workflows

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
)

// WorkerSettlement defines the workflows run by the settlement worker
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_settlement.go -package=mocks -mock_names=WorkerSettlement=MockSettlementWorker
type WorkerSettlement interface {
	// SettleEscrowPayout records the payout of a released escrow
	SettleEscrowPayout(ctx workflow.Context, request PayoutRequest) (*PayoutResult, error)
}

type WorkerSettlementConfig struct {
	// PayoutReferencePrefix prefixes generated payout references
	PayoutReferencePrefix string
}

// workerSettlement is the concrete implementation of WorkerSettlement
type workerSettlement struct {
	config           WorkerSettlementConfig
	executor         Executor
	temporalWorkflow adapter.Workflow
}

// NewWorkerSettlement creates a new settlement worker instance
func NewWorkerSettlement(executor Executor, config WorkerSettlementConfig, temporalWorkflow adapter.Workflow) WorkerSettlement {
	if temporalWorkflow == nil {
		temporalWorkflow = adapter.NewWorkflow()
	}

	return &workerSettlement{
		config:           config,
		executor:         executor,
		temporalWorkflow: temporalWorkflow,
	}
}

// PayoutWorkflowID returns the workflow ID of an escrow's payout. One payout per escrow.
func PayoutWorkflowID(escrowID string) string {
	return "escrow-payout-" + escrowID
}
