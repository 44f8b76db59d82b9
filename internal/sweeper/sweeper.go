package sweeper

import (
	"context"
	"time"
)

// Sweeper defines the interface for background audits.
// Sweepers run outside the request path and never mutate custody state.
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs the sweeper's main loop until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop signals the main loop and waits for in-progress work to finish
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging and cursor keys
	Name() string
}

// loop holds the start/stop plumbing shared by sweepers
type loop struct {
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

func newLoop() loop {
	return loop{
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// sleep waits for the duration. Returns false when interrupted by cancellation or Stop.
func (l *loop) sleep(ctx context.Context, after <-chan time.Time) bool {
	select {
	case <-after:
		return true
	case <-ctx.Done():
		return false
	case <-l.stopChan:
		return false
	}
}

// stopped reports whether Stop was requested
func (l *loop) stopped() bool {
	select {
	case <-l.stopChan:
		return true
	default:
		return false
	}
}
