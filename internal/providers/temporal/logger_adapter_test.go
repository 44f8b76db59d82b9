package temporal_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/log"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Allen-Brian/AGRICHAIN/internal/providers/temporal"
)

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := temporal.NewZapLoggerAdapter(zap.New(core))

	adapter.Info("Started worker", "TaskQueue", "settlement", "Attempt", 2)
	adapter.Error("Activity failed", "Error", errors.New("store unavailable"), 42, "dropped", "dangling")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	info := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "temporal", info["component"])
	assert.Equal(t, "settlement", info["TaskQueue"])
	assert.EqualValues(t, 2, info["Attempt"])

	errEntry := entries[1].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "store unavailable", errEntry["Error"])
	assert.NotContains(t, errEntry, "dangling")
	assert.Len(t, errEntry, 2) // component + Error
}

func TestZapLoggerAdapter_With(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	adapter := temporal.NewZapLoggerAdapter(zap.New(core))

	withLogger, ok := adapter.(log.WithLogger)
	require.True(t, ok)

	scoped := withLogger.With("WorkflowID", "escrow-payout-1")
	scoped.Warn("Retrying")
	adapter.Debug("Unscoped")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "escrow-payout-1", entries[0].ContextMap()["WorkflowID"])
	assert.NotContains(t, entries[1].ContextMap(), "WorkflowID")
}

func TestActivityTags(t *testing.T) {
	tags := temporal.ActivityTags(activity.Info{
		ActivityType:      activity.Type{Name: "RecordEscrowPayout"},
		WorkflowExecution: workflow.Execution{ID: "escrow-payout-1", RunID: "run-1"},
		TaskQueue:         "settlement",
		Attempt:           3,
	})

	assert.Equal(t, map[string]string{
		"temporal.activity_type": "RecordEscrowPayout",
		"temporal.workflow_id":   "escrow-payout-1",
		"temporal.run_id":        "run-1",
		"temporal.task_queue":    "settlement",
		"temporal.attempt":       "3",
	}, tags)
}
