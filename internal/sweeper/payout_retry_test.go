package sweeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
	"github.com/Allen-Brian/AGRICHAIN/internal/sweeper"
)

type testPayoutRetryMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	payout  *mocks.MockPayout
	clock   *mocks.MockClock
	now     time.Time
	sweeper sweeper.Sweeper
}

func setupTestPayoutRetrySweeper(t *testing.T) *testPayoutRetryMocks {
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testPayoutRetryMocks{
		ctrl:   ctrl,
		store:  mocks.NewMockStore(ctrl),
		payout: mocks.NewMockPayout(ctrl),
		clock:  mocks.NewMockClock(ctrl),
		now:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	tm.sweeper = sweeper.NewPayoutRetrySweeper(
		sweeper.PayoutRetryConfig{
			BatchSize:   5,
			GracePeriod: 10 * time.Minute,
			Interval:    time.Minute,
		},
		tm.store,
		tm.payout,
		tm.clock,
	)

	tm.clock.EXPECT().Now().Return(tm.now).AnyTimes()

	return tm
}

// stopAfterFirstSweep stops the sweeper at its first pause
func (tm *testPayoutRetryMocks) stopAfterFirstSweep() {
	tm.clock.EXPECT().After(time.Minute).DoAndReturn(func(d time.Duration) <-chan time.Time {
		go func() { _ = tm.sweeper.Stop(context.Background()) }()
		return make(chan time.Time)
	}).Times(1)
}

func releasedEscrow(id string) schema.EscrowTransaction {
	releasedAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	return schema.EscrowTransaction{
		ID:         id,
		PurchaseID: "purchase-" + id,
		BuyerID:    "buyer-1",
		Amount:     decimal.RequireFromString("50"),
		Status:     domain.EscrowStatusReleased,
		ReleasedAt: &releasedAt,
	}
}

func TestPayoutRetrySweeper_Name(t *testing.T) {
	tm := setupTestPayoutRetrySweeper(t)
	defer tm.ctrl.Finish()

	assert.Equal(t, "payout-retry", tm.sweeper.Name())
}

func TestPayoutRetrySweeper_RedispatchesStaleEscrows(t *testing.T) {
	tm := setupTestPayoutRetrySweeper(t)
	defer tm.ctrl.Finish()
	tm.stopAfterFirstSweep()

	first := releasedEscrow("e1")
	second := releasedEscrow("e2")

	tm.store.EXPECT().
		GetEscrowsAwaitingPayout(gomock.Any(), tm.now.Add(-10*time.Minute), 5).
		Return([]schema.EscrowTransaction{first, second}, nil)
	gomock.InOrder(
		tm.payout.EXPECT().Dispatch(gomock.Any(), first).Return(nil),
		tm.payout.EXPECT().Dispatch(gomock.Any(), second).Return(nil),
	)

	require.NoError(t, tm.sweeper.Start(context.Background()))
}

func TestPayoutRetrySweeper_DispatchFailureContinues(t *testing.T) {
	tm := setupTestPayoutRetrySweeper(t)
	defer tm.ctrl.Finish()
	tm.stopAfterFirstSweep()

	first := releasedEscrow("e1")
	second := releasedEscrow("e2")

	tm.store.EXPECT().
		GetEscrowsAwaitingPayout(gomock.Any(), gomock.Any(), 5).
		Return([]schema.EscrowTransaction{first, second}, nil)
	tm.payout.EXPECT().Dispatch(gomock.Any(), first).Return(errors.New("temporal unavailable"))
	tm.payout.EXPECT().Dispatch(gomock.Any(), second).Return(nil)

	require.NoError(t, tm.sweeper.Start(context.Background()))
}

func TestPayoutRetrySweeper_StoreError(t *testing.T) {
	tm := setupTestPayoutRetrySweeper(t)
	defer tm.ctrl.Finish()
	tm.stopAfterFirstSweep()

	tm.store.EXPECT().
		GetEscrowsAwaitingPayout(gomock.Any(), gomock.Any(), 5).
		Return(nil, errors.New("connection reset"))
	tm.payout.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, tm.sweeper.Start(context.Background()))
}

func TestPayoutRetrySweeper_NothingAwaiting(t *testing.T) {
	tm := setupTestPayoutRetrySweeper(t)
	defer tm.ctrl.Finish()
	tm.stopAfterFirstSweep()

	tm.store.EXPECT().
		GetEscrowsAwaitingPayout(gomock.Any(), gomock.Any(), 5).
		Return([]schema.EscrowTransaction{}, nil)

	require.NoError(t, tm.sweeper.Start(context.Background()))
}
