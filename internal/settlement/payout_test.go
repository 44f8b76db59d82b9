package settlement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
	"github.com/Allen-Brian/AGRICHAIN/internal/workflows"
)

func releasedEscrow() schema.EscrowTransaction {
	return schema.EscrowTransaction{
		ID:         escrowID,
		PurchaseID: purchaseID,
		BuyerID:    buyer.ID,
		Amount:     decimal.RequireFromString("125.5"),
		Status:     domain.EscrowStatusReleased,
	}
}

func TestTemporalPayout_Dispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	payout := settlement.NewTemporalPayout(orchestrator, "settlement-task-queue")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, options client.StartWorkflowOptions, wf interface{}, args ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "escrow-payout-"+escrowID, options.ID)
			assert.Equal(t, "settlement-task-queue", options.TaskQueue)
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY, options.WorkflowIDReusePolicy)
			assert.True(t, options.WorkflowExecutionErrorWhenAlreadyStarted)

			require.Len(t, args, 1)
			assert.Equal(t, workflows.PayoutRequest{
				EscrowID:   escrowID,
				PurchaseID: purchaseID,
				BuyerID:    buyer.ID,
				Amount:     "125.5",
			}, args[0])
			return nil, nil
		})

	require.NoError(t, payout.Dispatch(context.Background(), releasedEscrow()))
}

func TestTemporalPayout_AlreadyStartedIsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	payout := settlement.NewTemporalPayout(orchestrator, "settlement-task-queue")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &serviceerror.WorkflowExecutionAlreadyStarted{Message: "already started"})

	require.NoError(t, payout.Dispatch(context.Background(), releasedEscrow()))
}

func TestTemporalPayout_StartFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	payout := settlement.NewTemporalPayout(orchestrator, "settlement-task-queue")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	assert.Error(t, payout.Dispatch(context.Background(), releasedEscrow()))
}

func TestNoopPayout(t *testing.T) {
	assert.NoError(t, settlement.NewNoopPayout().Dispatch(context.Background(), releasedEscrow()))
}
