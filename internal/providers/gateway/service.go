package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/ledger"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
)

// Config holds the configuration for the HTTP consensus gateway
type Config struct {
	BaseURL       string
	APIKey        string
	SigningSecret string
	// ReceiptTimeout bounds how long a PENDING submission is polled for its receipt
	ReceiptTimeout time.Duration
	// ReceiptPollInterval is the first wait between receipt polls
	ReceiptPollInterval time.Duration
}

// Service talks to a ledger gateway over HTTP.
// Submissions are sent once; only receipt lookups, which are idempotent, are repeated.
type Service struct {
	cfg    Config
	http   adapter.HTTPClient
	json   adapter.JSON
	base64 adapter.Base64
	clock  adapter.Clock
}

// NewLedgerService creates a gateway backed ledger service
func NewLedgerService(cfg Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, base64 adapter.Base64, clock adapter.Clock) *Service {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = 30 * time.Second
	}
	if cfg.ReceiptPollInterval <= 0 {
		cfg.ReceiptPollInterval = 500 * time.Millisecond
	}

	return &Service{
		cfg:    cfg,
		http:   httpClient,
		json:   jsonAdapter,
		base64: base64,
		clock:  clock,
	}
}

type createChannelRequest struct {
	Memo string `json:"memo"`
}

type createChannelResponse struct {
	ChannelID string `json:"channelId"`
}

type appendMessageRequest struct {
	// Message is base64 so the gateway never re-encodes the canonical bytes
	Message string `json:"message"`
}

// CreateChannel asks the gateway for a new channel
func (s *Service) CreateChannel(ctx context.Context, memo string) (string, error) {
	body, err := s.json.Marshal(createChannelRequest{Memo: memo})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := s.post(ctx, s.cfg.BaseURL+"/channels", body)
	if err != nil {
		return "", fmt.Errorf("failed to create channel: %w", err)
	}

	var resp createChannelResponse
	if err := s.json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("failed to decode channel response: %w", err)
	}
	if resp.ChannelID == "" {
		return "", fmt.Errorf("gateway returned an empty channel id")
	}

	return resp.ChannelID, nil
}

// AppendMessage submits the message once and resolves a PENDING receipt by polling
func (s *Service) AppendMessage(ctx context.Context, channelID string, message []byte) (*ledger.Receipt, error) {
	body, err := s.json.Marshal(appendMessageRequest{Message: s.base64.Encode(message)})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/channels/%s/messages", s.cfg.BaseURL, url.PathEscape(channelID))
	respBody, err := s.post(ctx, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to submit message: %w", err)
	}

	var receipt ledger.Receipt
	if err := s.json.Unmarshal(respBody, &receipt); err != nil {
		return nil, fmt.Errorf("failed to decode submission response: %w", err)
	}
	if receipt.TransactionID == "" {
		return nil, fmt.Errorf("gateway returned an empty transaction id")
	}

	if receipt.Status != ledger.ReceiptStatusPending {
		return &receipt, nil
	}

	return s.waitForReceipt(ctx, receipt.TransactionID)
}

var errReceiptPending = errors.New("receipt pending")

// waitForReceipt polls the receipt endpoint until the transaction leaves PENDING
func (s *Service) waitForReceipt(ctx context.Context, txID string) (*ledger.Receipt, error) {
	endpoint := fmt.Sprintf("%s/transactions/%s/receipt", s.cfg.BaseURL, url.PathEscape(txID))
	headers := map[string]string{}
	if s.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + s.cfg.APIKey
	}

	var receipt ledger.Receipt
	operation := func() error {
		if err := s.http.GetJSON(ctx, endpoint, headers, &receipt); err != nil {
			return backoff.Permanent(err)
		}
		if receipt.Status == ledger.ReceiptStatusPending {
			return errReceiptPending
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.ReceiptPollInterval
	b.MaxInterval = s.cfg.ReceiptTimeout / 4
	b.MaxElapsedTime = s.cfg.ReceiptTimeout

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		if errors.Is(err, errReceiptPending) {
			// The message may still land: the transaction id is the only handle for reconciling it
			err = fmt.Errorf("%w: receipt for transaction %s not received within %s",
				domain.ErrLedgerUnavailable, txID, s.cfg.ReceiptTimeout)
		} else {
			err = fmt.Errorf("failed to resolve receipt for transaction %s: %w", txID, err)
		}
		logger.ErrorCtx(ctx, err, zap.String("txID", txID))
		return nil, err
	}

	if receipt.TransactionID == "" {
		receipt.TransactionID = txID
	}

	return &receipt, nil
}

func (s *Service) post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	headers := signedHeaders(s.cfg.SigningSecret, s.cfg.APIKey, uuid.NewString(), s.clock.Now(), body)
	return s.http.PostJSON(ctx, endpoint, headers, body)
}
