package temporal

import (
	"context"
	"strconv"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor creates a worker interceptor that gives every activity
// execution its own Sentry hub tagged with the activity and workflow identity
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{}
}

// SentryActivityInterceptor scopes Sentry reporting per activity execution
type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

// InterceptActivity wraps activity execution to inject a tagged Sentry hub
func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{
			Next: next,
		},
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

// ExecuteActivity runs the activity with a cloned hub so tags never leak across executions
func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()

	info := activity.GetInfo(ctx)
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(ActivityTags(info))
	})

	ctx = sentry.SetHubOnContext(ctx, hub)
	return s.Next.ExecuteActivity(ctx, in)
}

// ActivityTags returns the Sentry tags identifying an activity execution.
// Payout workflow IDs embed the escrow ID, so the workflow ID is enough to find the escrow.
func ActivityTags(info activity.Info) map[string]string {
	return map[string]string{
		"temporal.activity_type": info.ActivityType.Name,
		"temporal.workflow_id":   info.WorkflowExecution.ID,
		"temporal.run_id":        info.WorkflowExecution.RunID,
		"temporal.task_queue":    info.TaskQueue,
		"temporal.attempt":       strconv.Itoa(int(info.Attempt)),
	}
}
