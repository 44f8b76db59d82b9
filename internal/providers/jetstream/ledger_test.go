package jetstream_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Brian/AGRICHAIN/internal/ledger"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	ledgerjs "github.com/Allen-Brian/AGRICHAIN/internal/providers/jetstream"
)

func testConfig() ledgerjs.Config {
	return ledgerjs.Config{
		URL:             "nats://localhost:4222",
		StreamName:      "CUSTODY",
		SubjectPrefix:   "custody",
		MaxReconnects:   3,
		ReconnectWait:   time.Second,
		ConnectionName:  "test",
		DuplicateWindow: 24 * time.Hour,
	}
}

func setupService(t *testing.T) (*ledgerjs.Service, *mocks.MockJetStream, *mocks.MockNatsConn) {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)

	natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nc, js, nil)
	js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, cfg jetstream.StreamConfig) error {
			assert.Equal(t, "CUSTODY", cfg.Name)
			assert.Equal(t, []string{"custody.>"}, cfg.Subjects)
			assert.True(t, cfg.DenyDelete)
			assert.True(t, cfg.DenyPurge)
			return nil
		})

	svc, err := ledgerjs.NewLedgerService(context.Background(), testConfig(), natsJS)
	require.NoError(t, err)
	return svc, js, nc
}

func TestNewLedgerService_StreamFailureClosesConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	natsJS := mocks.NewMockNatsJetStream(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	nc := mocks.NewMockNatsConn(ctrl)

	natsJS.EXPECT().Connect(gomock.Any(), gomock.Any()).Return(nc, js, nil)
	js.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(errors.New("not authorized"))
	nc.EXPECT().Close()

	_, err := ledgerjs.NewLedgerService(context.Background(), testConfig(), natsJS)
	require.Error(t, err)
}

func TestCreateChannel(t *testing.T) {
	svc, js, _ := setupService(t)

	var subject string
	js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, subj string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			subject = subj
			assert.Contains(t, string(data), `"memo":"custody chain for batch h1"`)
			return &jetstream.PubAck{Stream: "CUSTODY", Sequence: 1}, nil
		})

	channelID, err := svc.CreateChannel(context.Background(), "custody chain for batch h1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(channelID, "custody."))
	assert.Equal(t, channelID, subject)
}

func TestAppendMessage(t *testing.T) {
	t.Run("ack becomes receipt", func(t *testing.T) {
		svc, js, _ := setupService(t)

		js.EXPECT().Publish(gomock.Any(), "custody.c1", []byte(`{"a":1}`), gomock.Any(), gomock.Any()).
			Return(&jetstream.PubAck{Stream: "CUSTODY", Sequence: 42}, nil)

		receipt, err := svc.AppendMessage(context.Background(), "custody.c1", []byte(`{"a":1}`))
		require.NoError(t, err)
		assert.Equal(t, "CUSTODY:42", receipt.TransactionID)
		assert.Equal(t, ledger.ReceiptStatusSuccess, receipt.Status)
	})

	t.Run("duplicate ack keeps original sequence", func(t *testing.T) {
		svc, js, _ := setupService(t)

		js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&jetstream.PubAck{Stream: "CUSTODY", Sequence: 7, Duplicate: true}, nil)

		receipt, err := svc.AppendMessage(context.Background(), "custody.c1", []byte(`{"a":1}`))
		require.NoError(t, err)
		assert.Equal(t, "CUSTODY:7", receipt.TransactionID)
	})

	t.Run("publish failure", func(t *testing.T) {
		svc, js, _ := setupService(t)

		js.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("nats: timeout"))

		_, err := svc.AppendMessage(context.Background(), "custody.c1", []byte(`{"a":1}`))
		require.Error(t, err)
	})

	t.Run("foreign channel is rejected", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.AppendMessage(context.Background(), "events.other", []byte(`{"a":1}`))
		require.Error(t, err)
	})
}

func TestClose(t *testing.T) {
	svc, _, nc := setupService(t)
	nc.EXPECT().Close()
	svc.Close()
}
