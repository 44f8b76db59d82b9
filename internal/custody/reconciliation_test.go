package custody_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Allen-Brian/AGRICHAIN/internal/custody"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

var admin = domain.Caller{ID: "ops-key", Role: domain.RoleAdmin}

func TestListReconciliationItems(t *testing.T) {
	m := setupTestManager(t, domain.ChannelScopeBatch)
	defer m.ctrl.Finish()

	m.store.EXPECT().
		GetReconciliationItems(gomock.Any(), store.ReconciliationFilter{
			Reason:         domain.ReconciliationLocalCommitFailed,
			UnresolvedOnly: true,
			Limit:          custody.DEFAULT_RECONCILIATION_LIMIT,
		}).
		Return([]schema.ReconciliationItem{
			{
				ID:          "01J0000000000000000000000A",
				Reason:      domain.ReconciliationLocalCommitFailed,
				SubjectID:   harvestID,
				EventType:   domain.CustodyEventHarvest,
				HarvestID:   harvestID,
				TxID:        "CUSTODY:42",
				Fingerprint: "abc",
				Payload:     datatypes.JSON(`{"a":1}`),
				Detail:      "store unavailable",
				CreatedAt:   fixedNow,
			},
		}, nil)

	items, err := m.manager.ListReconciliationItems(context.Background(), admin, custody.ReconciliationQuery{
		Reason:         domain.ReconciliationLocalCommitFailed,
		UnresolvedOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "CUSTODY:42", items[0].TransactionID)
	assert.JSONEq(t, `{"a":1}`, string(items[0].Payload))
	assert.Nil(t, items[0].ResolvedAt)
}

func TestListReconciliationItems_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		caller  domain.Caller
		query   custody.ReconciliationQuery
		wantErr error
	}{
		{
			name:    "non admin",
			caller:  warehouse,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "unknown reason",
			caller:  admin,
			query:   custody.ReconciliationQuery{Reason: "SOMETHING"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "limit too large",
			caller:  admin,
			query:   custody.ReconciliationQuery{Limit: 10000},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestManager(t, domain.ChannelScopeBatch)
			defer m.ctrl.Finish()

			_, err := m.manager.ListReconciliationItems(context.Background(), tt.caller, tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolveReconciliationItem(t *testing.T) {
	m := setupTestManager(t, domain.ChannelScopeBatch)
	defer m.ctrl.Finish()

	m.store.EXPECT().
		ResolveReconciliationItem(gomock.Any(), "01J0000000000000000000000A", "ops-key", "replayed commit").
		Return(nil)

	err := m.manager.ResolveReconciliationItem(context.Background(), admin, custody.ResolveReconciliationInput{
		ID:         "01J0000000000000000000000A",
		Resolution: "replayed commit",
	})
	require.NoError(t, err)
}

func TestResolveReconciliationItem_AlreadyResolved(t *testing.T) {
	m := setupTestManager(t, domain.ChannelScopeBatch)
	defer m.ctrl.Finish()

	m.store.EXPECT().
		ResolveReconciliationItem(gomock.Any(), "01J0000000000000000000000A", "ops-key", "again").
		Return(domain.ErrInvalidTransition)

	err := m.manager.ResolveReconciliationItem(context.Background(), admin, custody.ResolveReconciliationInput{
		ID:         "01J0000000000000000000000A",
		Resolution: "again",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestResolveReconciliationItem_RequiresResolution(t *testing.T) {
	m := setupTestManager(t, domain.ChannelScopeBatch)
	defer m.ctrl.Finish()

	err := m.manager.ResolveReconciliationItem(context.Background(), admin, custody.ResolveReconciliationInput{
		ID: "01J0000000000000000000000A",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
