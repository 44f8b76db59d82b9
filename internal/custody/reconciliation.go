package custody

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
)

const DEFAULT_RECONCILIATION_LIMIT = 100

// ListReconciliationItems lists reconciliation items, newest first
func (m *manager) ListReconciliationItems(ctx context.Context, caller domain.Caller, query ReconciliationQuery) ([]ReconciliationView, error) {
	if err := caller.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(query); err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit == 0 {
		limit = DEFAULT_RECONCILIATION_LIMIT
	}

	items, err := m.store.GetReconciliationItems(ctx, store.ReconciliationFilter{
		Reason:         query.Reason,
		UnresolvedOnly: query.UnresolvedOnly,
		Limit:          limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reconciliation items: %w", err)
	}

	views := make([]ReconciliationView, 0, len(items))
	for _, item := range items {
		views = append(views, ReconciliationView{
			ID:            item.ID,
			Reason:        item.Reason,
			SubjectID:     item.SubjectID,
			EventType:     item.EventType,
			HarvestID:     item.HarvestID,
			ChannelID:     item.ChannelID,
			TransactionID: item.TxID,
			Fingerprint:   item.Fingerprint,
			Payload:       []byte(item.Payload),
			Detail:        item.Detail,
			ResolvedAt:    item.ResolvedAt,
			ResolvedBy:    item.ResolvedBy,
			Resolution:    item.Resolution,
			CreatedAt:     item.CreatedAt,
		})
	}

	return views, nil
}

// ResolveReconciliationItem marks an item resolved. Resolving twice is an invalid transition.
func (m *manager) ResolveReconciliationItem(ctx context.Context, caller domain.Caller, input ResolveReconciliationInput) error {
	if err := caller.Require(domain.RoleAdmin); err != nil {
		return err
	}
	if err := domain.ValidateStruct(input); err != nil {
		return err
	}

	if err := m.store.ResolveReconciliationItem(ctx, input.ID, caller.ID, input.Resolution); err != nil {
		return fmt.Errorf("failed to resolve reconciliation item: %w", err)
	}

	logger.InfoCtx(ctx, "Resolved reconciliation item",
		zap.String("reconciliationID", input.ID),
		zap.String("resolvedBy", caller.ID))

	return nil
}
