package adapter

import (
	"context"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/workflow"
)

// Workflow defines the workflow info lookups used by settlement workflows
//
//go:generate mockgen -source=temporal.go -destination=../mocks/temporal.go -package=mocks -mock_names=Workflow=MockWorkflow,Activity=MockActivity
type Workflow interface {
	// GetExecutionID returns the workflow execution ID
	GetExecutionID(ctx workflow.Context) string

	// GetRunID returns the workflow run ID
	GetRunID(ctx workflow.Context) string
}

// RealWorkflow implements Workflow using the standard workflow package
type RealWorkflow struct{}

// NewWorkflow creates a new real workflow implementation
func NewWorkflow() Workflow {
	return &RealWorkflow{}
}

// GetExecutionID returns the workflow execution ID
func (w *RealWorkflow) GetExecutionID(ctx workflow.Context) string {
	return workflow.GetInfo(ctx).WorkflowExecution.ID
}

// GetRunID returns the workflow run ID
func (w *RealWorkflow) GetRunID(ctx workflow.Context) string {
	return workflow.GetInfo(ctx).WorkflowExecution.RunID
}

// Activity defines the activity info lookups used by settlement activities
type Activity interface {
	// GetInfo returns the activity info
	GetInfo(ctx context.Context) activity.Info
}

// RealActivity implements Activity using the standard activity package
type RealActivity struct{}

// NewActivity creates a new real activity implementation
func NewActivity() Activity {
	return &RealActivity{}
}

// GetInfo returns the activity info
func (a *RealActivity) GetInfo(ctx context.Context) activity.Info {
	return activity.GetInfo(ctx)
}
