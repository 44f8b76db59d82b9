package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/canonical"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

const (
	DEFAULT_AUDIT_BATCH_SIZE     = 500
	DEFAULT_AUDIT_WORKER_POOL    = 8
	DEFAULT_AUDIT_CYCLE_INTERVAL = time.Hour
)

// FingerprintAuditConfig holds configuration for the fingerprint audit sweeper
type FingerprintAuditConfig struct {
	BatchSize      int           // Events verified per batch
	WorkerPoolSize int           // Concurrent verifiers
	CycleInterval  time.Duration // Pause between full passes over the custody log
}

// fingerprintAuditSweeper re-hashes stored custody payloads and records
// any that no longer match their fingerprint
type fingerprintAuditSweeper struct {
	loop
	config  FingerprintAuditConfig
	store   store.Store
	cursors store.CursorStore
	clock   adapter.Clock
	pool    pond.Pool
	running atomic.Bool
}

// NewFingerprintAuditSweeper creates a new fingerprint audit sweeper
func NewFingerprintAuditSweeper(
	config FingerprintAuditConfig,
	st store.Store,
	cursors store.CursorStore,
	clock adapter.Clock,
) Sweeper {
	if config.BatchSize <= 0 {
		config.BatchSize = DEFAULT_AUDIT_BATCH_SIZE
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = DEFAULT_AUDIT_WORKER_POOL
	}
	if config.CycleInterval <= 0 {
		config.CycleInterval = DEFAULT_AUDIT_CYCLE_INTERVAL
	}

	return &fingerprintAuditSweeper{
		loop:    newLoop(),
		config:  config,
		store:   st,
		cursors: cursors,
		clock:   clock,
	}
}

// Name returns the sweeper's name
func (s *fingerprintAuditSweeper) Name() string {
	return "fingerprint-audit"
}

// Start walks the custody log batch by batch, pausing between full passes
func (s *fingerprintAuditSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting fingerprint audit sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("cycle_interval", s.config.CycleInterval),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)
	defer s.pool.StopAndWait()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Fingerprint audit sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Fingerprint audit sweeper stop requested")
			return nil
		default:
			if err := s.runBatch(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
				// Back off before retrying a failed batch
				s.sleep(ctx, s.clock.After(s.config.CycleInterval))
			}
		}
	}
}

// Stop gracefully stops the sweeper
func (s *fingerprintAuditSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping fingerprint audit sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Fingerprint audit sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Fingerprint audit sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runBatch verifies the next batch of custody events after the stored cursor
func (s *fingerprintAuditSweeper) runBatch(ctx context.Context) error {
	startTime := s.clock.Now()

	cursor, err := s.cursors.GetAuditCursor(ctx, s.Name())
	if err != nil {
		return fmt.Errorf("failed to get audit cursor: %w", err)
	}

	events, err := s.store.GetCustodyEventsAfter(ctx, cursor, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get custody events: %w", err)
	}

	if len(events) == 0 {
		if !cursor.CreatedAt.IsZero() {
			// Pass complete; the next pass starts from the first event again
			logger.InfoCtx(ctx, "Fingerprint audit pass completed")
			if err := s.cursors.SetAuditCursor(ctx, s.Name(), store.AuditCursor{}); err != nil {
				return fmt.Errorf("failed to reset audit cursor: %w", err)
			}
		}
		s.sleep(ctx, s.clock.After(s.config.CycleInterval))
		return nil
	}

	var verifiedCount, mismatchCount atomic.Int32

	group := s.pool.NewGroup()
	for _, event := range events {
		group.Submit(func() {
			s.auditEvent(ctx, event, &verifiedCount, &mismatchCount)
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("failed to audit custody events: %w", err)
	}

	last := events[len(events)-1]
	if err := s.cursors.SetAuditCursor(ctx, s.Name(), store.AuditCursor{CreatedAt: last.CreatedAt, ID: last.ID}); err != nil {
		return fmt.Errorf("failed to set audit cursor: %w", err)
	}

	logger.InfoCtx(ctx, "Fingerprint audit batch completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("total_checked", len(events)),
		zap.Int32("verified", verifiedCount.Load()),
		zap.Int32("mismatched", mismatchCount.Load()),
	)

	return nil
}

// auditEvent verifies one event and records a reconciliation item on mismatch
func (s *fingerprintAuditSweeper) auditEvent(ctx context.Context, event schema.CustodyEvent, verifiedCount, mismatchCount *atomic.Int32) {
	if canonical.VerifyJSON(event.Payload, event.Fingerprint) {
		verifiedCount.Add(1)
		return
	}
	mismatchCount.Add(1)

	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.EventType)),
		zap.String("subject_id", event.SubjectID),
		zap.String("harvest_id", event.HarvestID),
		zap.String("fingerprint", event.Fingerprint),
	}

	// One open item per event is enough
	open, err := s.store.GetReconciliationItems(ctx, store.ReconciliationFilter{
		Reason:         domain.ReconciliationFingerprintMismatch,
		SubjectID:      event.SubjectID,
		EventType:      event.EventType,
		UnresolvedOnly: true,
		Limit:          1,
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to check open reconciliation items: %w", err), fields...)
		return
	}
	if len(open) > 0 {
		logger.WarnCtx(ctx, "Custody event still fails verification", append(fields, zap.String("reconciliation_id", open[0].ID))...)
		return
	}

	item := schema.ReconciliationItem{
		ID:          ulid.MustNew(ulid.Timestamp(s.clock.Now()), ulid.DefaultEntropy()).String(),
		Reason:      domain.ReconciliationFingerprintMismatch,
		SubjectID:   event.SubjectID,
		EventType:   event.EventType,
		HarvestID:   event.HarvestID,
		ChannelID:   event.ChannelID,
		TxID:        event.TxID,
		Fingerprint: event.Fingerprint,
		Payload:     event.Payload,
		Detail:      fmt.Sprintf("stored payload of custody event %s no longer matches its fingerprint", event.ID),
	}
	if err := s.store.CreateReconciliationItem(ctx, item); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record reconciliation item: %w", err), fields...)
		return
	}

	logger.ErrorCtx(ctx, fmt.Errorf("custody event %s failed fingerprint audit", event.ID),
		append(fields, zap.String("reconciliation_id", item.ID))...)
}
