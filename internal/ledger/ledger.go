package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/canonical"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

// ReceiptStatus is the outcome reported by the ledger for an append
type ReceiptStatus string

const (
	ReceiptStatusSuccess ReceiptStatus = "SUCCESS"
	// ReceiptStatusPending is only seen inside providers while a receipt is being resolved
	ReceiptStatusPending ReceiptStatus = "PENDING"
)

// Receipt is returned by the ledger for an appended message
type Receipt struct {
	TransactionID string        `json:"transactionId"`
	Status        ReceiptStatus `json:"status"`
}

// Success reports whether the ledger durably accepted the message
func (r *Receipt) Success() bool {
	return r != nil && r.Status == ReceiptStatusSuccess
}

// Service is the external append-only ledger
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=Service=MockLedgerService,Client=MockLedgerClient
type Service interface {
	// CreateChannel opens a new channel and returns its identifier
	CreateChannel(ctx context.Context, memo string) (string, error)
	// AppendMessage appends a message to a channel
	AppendMessage(ctx context.Context, channelID string, message []byte) (*Receipt, error)
}

// Client is what the custody chain uses to anchor fingerprints
type Client interface {
	// EnsureChannel returns the channel mapped to scopeKey, creating and persisting it on first use
	EnsureChannel(ctx context.Context, scopeKey, memo string) (string, error)
	// Append submits a message once. Any failure is domain.ErrLedgerUnavailable.
	Append(ctx context.Context, channelID string, message []byte) (*Receipt, error)
}

// ChannelStore persists scope to channel mappings
type ChannelStore interface {
	GetLedgerChannel(ctx context.Context, scopeKey string) (*schema.LedgerChannel, error)
	InsertLedgerChannel(ctx context.Context, channel schema.LedgerChannel) (*schema.LedgerChannel, error)
}

type client struct {
	service Service
	store   ChannelStore
	group   singleflight.Group
}

// NewClient creates a ledger client over a provider and the channel mapping store
func NewClient(service Service, store ChannelStore) Client {
	return &client{
		service: service,
		store:   store,
	}
}

// EnsureChannel returns the channel for a scope. Concurrent calls for one scope share a single
// creation; across processes the first persisted mapping wins.
func (c *client) EnsureChannel(ctx context.Context, scopeKey, memo string) (string, error) {
	if scopeKey == "" {
		return "", domain.NewValidationError("scope_key", "is required")
	}

	// The creation is shared by every waiter, so it must outlive whichever caller started it
	shared := context.WithoutCancel(ctx)
	resultCh := c.group.DoChan(scopeKey, func() (interface{}, error) {
		return c.ensureChannel(shared, scopeKey, memo)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-resultCh:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *client) ensureChannel(ctx context.Context, scopeKey, memo string) (string, error) {
	existing, err := c.store.GetLedgerChannel(ctx, scopeKey)
	if err != nil {
		return "", fmt.Errorf("failed to get ledger channel: %w", err)
	}
	if existing != nil {
		return existing.ChannelID, nil
	}

	channelID, err := c.service.CreateChannel(ctx, memo)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create channel: %w", domain.ErrLedgerUnavailable, err)
	}

	stored, err := c.store.InsertLedgerChannel(ctx, schema.LedgerChannel{
		ScopeKey:  scopeKey,
		ChannelID: channelID,
		Memo:      memo,
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist ledger channel: %w", err),
			zap.String("scopeKey", scopeKey),
			zap.String("channelID", channelID))
		return "", fmt.Errorf("failed to persist ledger channel: %w", err)
	}

	if stored.ChannelID != channelID {
		// Another process won the race; the channel created here stays empty
		logger.WarnCtx(ctx, "Ledger channel created concurrently, discarding ours",
			zap.String("scopeKey", scopeKey),
			zap.String("unusedChannelID", channelID),
			zap.String("channelID", stored.ChannelID))
	} else {
		logger.InfoCtx(ctx, "Created ledger channel",
			zap.String("scopeKey", scopeKey),
			zap.String("channelID", channelID))
	}

	return stored.ChannelID, nil
}

// Append submits the message exactly once
func (c *client) Append(ctx context.Context, channelID string, message []byte) (*Receipt, error) {
	if channelID == "" {
		return nil, domain.NewValidationError("channel_id", "is required")
	}
	if len(message) == 0 {
		return nil, domain.NewValidationError("message", "is required")
	}

	receipt, err := c.service.AppendMessage(ctx, channelID, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLedgerUnavailable, err)
	}
	if !receipt.Success() {
		status := ReceiptStatus("<nil>")
		if receipt != nil {
			status = receipt.Status
		}
		return nil, fmt.Errorf("%w: receipt status %s", domain.ErrLedgerUnavailable, status)
	}

	return receipt, nil
}

// RetryAppend re-submits a message while the ledger reports itself unavailable.
// It is never called implicitly: only use it for messages the provider deduplicates.
func RetryAppend(ctx context.Context, c Client, channelID string, message []byte, policy adapter.RetryPolicy) (*Receipt, error) {
	var receipt *Receipt

	operation := func() error {
		r, err := c.Append(ctx, channelID, message)
		if err != nil {
			if !errors.Is(err, domain.ErrLedgerUnavailable) {
				return backoff.Permanent(err)
			}
			logger.WarnCtx(ctx, "Ledger append failed, retrying", zap.String("channelID", channelID), zap.Error(err))
			return err
		}
		receipt = r
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = policy.InitialInterval
	b.MaxInterval = policy.MaxInterval
	b.MaxElapsedTime = policy.MaxElapsedTime

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return receipt, nil
}

// Message is the record appended to the ledger for a custody transition
type Message struct {
	EventType   domain.CustodyEventType `json:"event_type"`
	SubjectID   string                  `json:"subject_id"`
	HarvestID   string                  `json:"harvest_id"`
	Fingerprint string                  `json:"fingerprint"`
	ActorID     string                  `json:"actor_id"`
	Timestamp   time.Time               `json:"timestamp"`
}

// Encode returns the canonical bytes of the message
func (m Message) Encode() ([]byte, error) {
	m.Timestamp = m.Timestamp.UTC()
	return canonical.Canonicalize(m)
}
