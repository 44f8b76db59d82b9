package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/settlement"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
)

const (
	DEFAULT_PAYOUT_RETRY_BATCH_SIZE = 100
	DEFAULT_PAYOUT_RETRY_GRACE      = 15 * time.Minute
	DEFAULT_PAYOUT_RETRY_INTERVAL   = 5 * time.Minute
)

// PayoutRetryConfig holds configuration for the payout retry sweeper
type PayoutRetryConfig struct {
	BatchSize int
	// GracePeriod is how long a released escrow may wait for its payout before being re-dispatched
	GracePeriod time.Duration
	Interval    time.Duration
}

// payoutRetrySweeper re-dispatches payouts for released escrows that never got a payout reference.
// Dispatch is idempotent per escrow, so overlapping with the release path is harmless.
type payoutRetrySweeper struct {
	loop
	config  PayoutRetryConfig
	store   store.Store
	payout  settlement.Payout
	clock   adapter.Clock
	running atomic.Bool
}

// NewPayoutRetrySweeper creates a new payout retry sweeper
func NewPayoutRetrySweeper(config PayoutRetryConfig, st store.Store, payout settlement.Payout, clock adapter.Clock) Sweeper {
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_PAYOUT_RETRY_BATCH_SIZE
	}
	if config.GracePeriod <= 0 {
		config.GracePeriod = DEFAULT_PAYOUT_RETRY_GRACE
	}
	if config.Interval <= 0 {
		config.Interval = DEFAULT_PAYOUT_RETRY_INTERVAL
	}

	return &payoutRetrySweeper{
		loop:   newLoop(),
		config: config,
		store:  st,
		payout: payout,
		clock:  clock,
	}
}

func (s *payoutRetrySweeper) Name() string {
	return "payout-retry"
}

// Start runs a sweep every interval until stopped
func (s *payoutRetrySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting payout retry sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Duration("grace_period", s.config.GracePeriod),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		if err := s.sweep(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, s.clock.After(s.config.Interval)) {
			logger.InfoCtx(ctx, "Payout retry sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper
func (s *payoutRetrySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Payout retry sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

func (s *payoutRetrySweeper) sweep(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.config.GracePeriod)

	escrows, err := s.store.GetEscrowsAwaitingPayout(ctx, cutoff, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get escrows awaiting payout: %w", err)
	}
	if len(escrows) == 0 {
		return nil
	}

	dispatched := 0
	for _, escrow := range escrows {
		if s.stopped() || ctx.Err() != nil {
			break
		}
		if err := s.payout.Dispatch(ctx, escrow); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to re-dispatch payout: %w", err),
				zap.String("escrowID", escrow.ID))
			continue
		}
		dispatched++
	}

	logger.InfoCtx(ctx, "Payout retry sweep completed",
		zap.Int("awaiting", len(escrows)),
		zap.Int("dispatched", dispatched),
	)

	return nil
}
