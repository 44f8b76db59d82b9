package workflows_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
	"github.com/Allen-Brian/AGRICHAIN/internal/workflows"
)

type testExecutorMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	activity *mocks.MockActivity
	executor workflows.Executor
}

func setupTestExecutor(t *testing.T) *testExecutorMocks {
	ctrl := gomock.NewController(t)
	m := &testExecutorMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		activity: mocks.NewMockActivity(ctrl),
	}
	m.activity.EXPECT().GetInfo(gomock.Any()).Return(activity.Info{Attempt: 1}).AnyTimes()
	m.executor = workflows.NewExecutor(m.store, m.activity)
	return m
}

func releasedEscrow() *schema.EscrowTransaction {
	return &schema.EscrowTransaction{
		ID:      "e1",
		BuyerID: "buyer-1",
		Status:  domain.EscrowStatusReleased,
	}
}

func TestRecordEscrowPayout_StampsReference(t *testing.T) {
	m := setupTestExecutor(t)
	defer m.ctrl.Finish()

	var stamped string
	m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(releasedEscrow(), nil)
	m.store.EXPECT().
		SetPayoutReference(gomock.Any(), "e1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, escrowID, reference string) (bool, error) {
			stamped = reference
			return true, nil
		})

	result, err := m.executor.RecordEscrowPayout(context.Background(), workflows.PayoutRequest{EscrowID: "e1"}, "TEST-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Reference, "TEST-"))
	assert.Equal(t, stamped, result.Reference)
	assert.False(t, result.AlreadyRecorded)
}

func TestRecordEscrowPayout_DefaultPrefix(t *testing.T) {
	m := setupTestExecutor(t)
	defer m.ctrl.Finish()

	m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(releasedEscrow(), nil)
	m.store.EXPECT().SetPayoutReference(gomock.Any(), "e1", gomock.Any()).Return(true, nil)

	result, err := m.executor.RecordEscrowPayout(context.Background(), workflows.PayoutRequest{EscrowID: "e1"}, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Reference, workflows.DEFAULT_PAYOUT_REFERENCE_PREFIX))
}

func TestRecordEscrowPayout_AlreadyRecorded(t *testing.T) {
	m := setupTestExecutor(t)
	defer m.ctrl.Finish()

	escrow := releasedEscrow()
	ref := "TEST-EXISTING"
	escrow.PayoutReference = &ref
	m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(escrow, nil)
	// No SetPayoutReference: the reference is never overwritten

	result, err := m.executor.RecordEscrowPayout(context.Background(), workflows.PayoutRequest{EscrowID: "e1"}, "TEST-")
	require.NoError(t, err)
	assert.Equal(t, "TEST-EXISTING", result.Reference)
	assert.True(t, result.AlreadyRecorded)
}

func TestRecordEscrowPayout_LostRace(t *testing.T) {
	m := setupTestExecutor(t)
	defer m.ctrl.Finish()

	winner := releasedEscrow()
	ref := "TEST-WINNER"
	winner.PayoutReference = &ref

	gomock.InOrder(
		m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(releasedEscrow(), nil),
		m.store.EXPECT().SetPayoutReference(gomock.Any(), "e1", gomock.Any()).Return(false, nil),
		m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(winner, nil),
	)

	result, err := m.executor.RecordEscrowPayout(context.Background(), workflows.PayoutRequest{EscrowID: "e1"}, "TEST-")
	require.NoError(t, err)
	assert.Equal(t, "TEST-WINNER", result.Reference)
	assert.True(t, result.AlreadyRecorded)
}

func TestRecordEscrowPayout_NonRetryable(t *testing.T) {
	tests := []struct {
		name     string
		escrow   *schema.EscrowTransaction
		wantType string
	}{
		{
			name:     "missing escrow",
			escrow:   nil,
			wantType: workflows.ErrTypeEscrowNotFound,
		},
		{
			name:     "escrow still active",
			escrow:   &schema.EscrowTransaction{ID: "e1", Status: domain.EscrowStatusActive},
			wantType: workflows.ErrTypeEscrowNotReleased,
		},
		{
			name:     "escrow refunded",
			escrow:   &schema.EscrowTransaction{ID: "e1", Status: domain.EscrowStatusRefunded},
			wantType: workflows.ErrTypeEscrowNotReleased,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestExecutor(t)
			defer m.ctrl.Finish()

			m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(tt.escrow, nil)

			_, err := m.executor.RecordEscrowPayout(context.Background(), workflows.PayoutRequest{EscrowID: "e1"}, "TEST-")
			require.Error(t, err)

			var appErr *temporal.ApplicationError
			require.True(t, errors.As(err, &appErr))
			assert.True(t, appErr.NonRetryable())
			assert.Equal(t, tt.wantType, appErr.Type())
		})
	}
}

func TestRecordEscrowPayout_StoreFailureIsRetryable(t *testing.T) {
	m := setupTestExecutor(t)
	defer m.ctrl.Finish()

	m.store.EXPECT().GetEscrowByID(gomock.Any(), "e1").Return(nil, domain.ErrStoreUnavailable)

	_, err := m.executor.RecordEscrowPayout(context.Background(), workflows.PayoutRequest{EscrowID: "e1"}, "TEST-")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	var appErr *temporal.ApplicationError
	assert.False(t, errors.As(err, &appErr))
}
