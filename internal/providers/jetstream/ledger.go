package jetstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/canonical"
	"github.com/Allen-Brian/AGRICHAIN/internal/ledger"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
)

// Config holds the configuration for the JetStream backed ledger
type Config struct {
	URL            string
	StreamName     string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	// DuplicateWindow is how long the server remembers message IDs for deduplication
	DuplicateWindow time.Duration
}

// Service treats a JetStream stream as an append-only ledger.
// A channel is a subject under the stream; every append is acknowledged with a stream sequence.
type Service struct {
	nc  adapter.NatsConn
	js  adapter.JetStream
	cfg Config
}

// NewLedgerService connects to NATS and makes sure the ledger stream exists
func NewLedgerService(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (*Service, error) {
	if cfg.StreamName == "" || cfg.SubjectPrefix == "" {
		return nil, fmt.Errorf("stream name and subject prefix are required")
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(fmt.Errorf("disconnected from NATS: %w", err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	err = js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:        cfg.StreamName,
		Description: "Custody ledger",
		Subjects:    []string{cfg.SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		Storage:     jetstream.FileStorage,
		Duplicates:  cfg.DuplicateWindow,
		DenyDelete:  true,
		DenyPurge:   true,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure ledger stream: %w", err)
	}

	return &Service{nc: nc, js: js, cfg: cfg}, nil
}

// channelOpened is the first message of every channel
type channelOpened struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Memo    string `json:"memo"`
}

// CreateChannel allocates a subject and records the memo as its first message
func (s *Service) CreateChannel(ctx context.Context, memo string) (string, error) {
	channelID := fmt.Sprintf("%s.%s", s.cfg.SubjectPrefix, uuid.NewString())

	data, err := json.Marshal(channelOpened{Type: "channel_opened", Channel: channelID, Memo: memo})
	if err != nil {
		return "", fmt.Errorf("failed to marshal channel memo: %w", err)
	}

	if _, err := s.js.Publish(ctx, channelID, data,
		jetstream.WithMsgID("open:"+channelID),
		jetstream.WithExpectStream(s.cfg.StreamName),
	); err != nil {
		return "", fmt.Errorf("failed to open channel: %w", err)
	}

	logger.InfoCtx(ctx, "Opened ledger channel", zap.String("channelID", channelID), zap.String("memo", memo))

	return channelID, nil
}

// AppendMessage publishes the message on the channel subject.
// The message hash is the dedupe ID, so re-submitting within the duplicate window returns the original sequence.
func (s *Service) AppendMessage(ctx context.Context, channelID string, message []byte) (*ledger.Receipt, error) {
	if !strings.HasPrefix(channelID, s.cfg.SubjectPrefix+".") {
		return nil, fmt.Errorf("channel %s does not belong to stream %s", channelID, s.cfg.StreamName)
	}

	ack, err := s.js.Publish(ctx, channelID, message,
		jetstream.WithMsgID(canonical.Hash(message)),
		jetstream.WithExpectStream(s.cfg.StreamName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to publish ledger message: %w", err)
	}

	if ack.Duplicate {
		logger.WarnCtx(ctx, "Ledger message already appended",
			zap.String("channelID", channelID),
			zap.Uint64("sequence", ack.Sequence))
	}

	return &ledger.Receipt{
		TransactionID: fmt.Sprintf("%s:%d", ack.Stream, ack.Sequence),
		Status:        ledger.ReceiptStatusSuccess,
	}, nil
}

// Close closes the NATS connection
func (s *Service) Close() {
	if s.nc == nil {
		return
	}

	s.nc.Close()
}
