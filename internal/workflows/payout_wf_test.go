package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	"github.com/Allen-Brian/AGRICHAIN/internal/workflows"
)

// PayoutWorkflowTestSuite is the test suite for the escrow payout workflow
type PayoutWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env              *testsuite.TestWorkflowEnvironment
	ctrl             *gomock.Controller
	executor         *mocks.MockSettlementExecutor
	temporalWorkflow *mocks.MockWorkflow
	worker           workflows.WorkerSettlement
}

// SetupTest is called before each test
func (s *PayoutWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockSettlementExecutor(s.ctrl)
	s.temporalWorkflow = mocks.NewMockWorkflow(s.ctrl)
	s.temporalWorkflow.EXPECT().GetExecutionID(gomock.Any()).Return("escrow-payout-e1").AnyTimes()
	s.worker = workflows.NewWorkerSettlement(s.executor, workflows.WorkerSettlementConfig{
		PayoutReferencePrefix: "TEST-",
	}, s.temporalWorkflow)
}

// TearDownTest is called after each test
func (s *PayoutWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

// TestPayoutWorkflowTestSuite runs the test suite
func TestPayoutWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(PayoutWorkflowTestSuite))
}

func testPayoutRequest() workflows.PayoutRequest {
	return workflows.PayoutRequest{
		EscrowID:   "e1",
		PurchaseID: "p1",
		BuyerID:    "buyer-1",
		Amount:     "125.5",
	}
}

func (s *PayoutWorkflowTestSuite) TestSettleEscrowPayout_Success() {
	request := testPayoutRequest()

	s.env.OnActivity(s.executor.RecordEscrowPayout, mock.Anything, request, "TEST-").
		Return(&workflows.PayoutResult{EscrowID: "e1", Reference: "TEST-01J"}, nil)

	s.env.ExecuteWorkflow(s.worker.SettleEscrowPayout, request)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.PayoutResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal("TEST-01J", result.Reference)
	s.False(result.AlreadyRecorded)
}

func (s *PayoutWorkflowTestSuite) TestSettleEscrowPayout_RetriesTransientErrors() {
	request := testPayoutRequest()

	var attempts int
	s.env.OnActivity(s.executor.RecordEscrowPayout, mock.Anything, request, "TEST-").Return(
		func(ctx context.Context, request workflows.PayoutRequest, prefix string) (*workflows.PayoutResult, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("store unavailable")
			}
			return &workflows.PayoutResult{EscrowID: "e1", Reference: "TEST-01J"}, nil
		})

	s.env.ExecuteWorkflow(s.worker.SettleEscrowPayout, request)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.Equal(3, attempts)
}

func (s *PayoutWorkflowTestSuite) TestSettleEscrowPayout_NonRetryableError() {
	request := testPayoutRequest()

	var attempts int
	s.env.OnActivity(s.executor.RecordEscrowPayout, mock.Anything, request, "TEST-").Return(
		func(ctx context.Context, request workflows.PayoutRequest, prefix string) (*workflows.PayoutResult, error) {
			attempts++
			return nil, temporal.NewNonRetryableApplicationError("escrow e1 is ACTIVE", workflows.ErrTypeEscrowNotReleased, nil)
		})

	s.env.ExecuteWorkflow(s.worker.SettleEscrowPayout, request)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
	s.Equal(1, attempts)
}

func TestPayoutWorkflowID(t *testing.T) {
	if got := workflows.PayoutWorkflowID("abc"); got != "escrow-payout-abc" {
		t.Fatalf("unexpected workflow id %q", got)
	}
}
