package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestEvent creates a custody event input for a subject
func buildTestEvent(subjectID, harvestID string, eventType domain.CustodyEventType, actor string) CustodyEventInput {
	payload, _ := json.Marshal(map[string]any{
		"event_type": eventType,
		"subject_id": subjectID,
	})
	return CustodyEventInput{
		ID:          uuid.NewString(),
		SubjectID:   subjectID,
		EventType:   eventType,
		HarvestID:   harvestID,
		ActorID:     actor,
		Fingerprint: "0f1e2d3c4b5a69788796a5b4c3d2e1f00f1e2d3c4b5a69788796a5b4c3d2e1f0",
		ChannelID:   "custody.test",
		TxID:        "CUSTODY:1",
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	}
}

// buildTestHarvest creates a harvest commit input
func buildTestHarvest(producer string, weightKg int64) CommitHarvestInput {
	harvestID := uuid.NewString()
	return CommitHarvestInput{
		Event: buildTestEvent(harvestID, harvestID, domain.CustodyEventHarvest, producer),
		Batch: schema.HarvestBatch{
			ID:                harvestID,
			ProducerID:        producer,
			CropType:          "maize",
			EstimatedWeightKg: decimal.NewFromInt(weightKg),
			GPSLat:            -1.2921,
			GPSLong:           36.8219,
			PhotoURLs:         []string{"https://example.com/p/1.jpg"},
		},
	}
}

// buildTestTransportStart creates a transport start commit input
func buildTestTransportStart(harvestID, transporter string) CommitTransportStartInput {
	now := time.Now().UTC()
	return CommitTransportStartInput{
		Event: buildTestEvent(harvestID, harvestID, domain.CustodyEventTransportStart, transporter),
		Job: schema.TransportJob{
			ID:                    uuid.NewString(),
			HarvestID:             harvestID,
			TransporterID:         transporter,
			PickupLocation:        "Farm gate",
			DeliveryLocation:      "Central warehouse",
			ScheduledPickupTime:   now,
			ScheduledDeliveryTime: now.Add(4 * time.Hour),
			ActualPickupTime:      &now,
		},
	}
}

// buildTestTransportComplete creates a transport complete commit input
func buildTestTransportComplete(job schema.TransportJob) CommitTransportCompleteInput {
	return CommitTransportCompleteInput{
		Event:              buildTestEvent(job.ID, job.HarvestID, domain.CustodyEventTransportComplete, job.TransporterID),
		JobID:              job.ID,
		TransporterID:      job.TransporterID,
		ActualDeliveryTime: time.Now().UTC(),
		DistanceKm:         12.5,
		DeliveryID:         uuid.NewString(),
	}
}

// buildTestWarehouseReceipt creates a warehouse receipt commit input
func buildTestWarehouseReceipt(delivery schema.WarehouseDelivery, unitPrice int64) CommitWarehouseReceiptInput {
	grade := "A"
	return CommitWarehouseReceiptInput{
		Event:        buildTestEvent(delivery.ID, delivery.HarvestID, domain.CustodyEventWarehouseReceipt, "warehouse-1"),
		DeliveryID:   delivery.ID,
		ReceivedBy:   "warehouse-1",
		ReceivedAt:   time.Now().UTC(),
		QualityGrade: &grade,
		UnitPrice:    decimal.NewFromInt(unitPrice),
		LotID:        uuid.NewString(),
		ProductID:    uuid.NewString(),
	}
}

// seedProduct walks a batch through the full custody chain and returns the listed product
func seedProduct(t *testing.T, store Store, weightKg, unitPrice int64) *WarehouseReceiptResult {
	return seedPricedProduct(t, store, weightKg, decimal.NewFromInt(unitPrice))
}

func seedPricedProduct(t *testing.T, store Store, weightKg int64, unitPrice decimal.Decimal) *WarehouseReceiptResult {
	ctx := context.Background()

	harvest := buildTestHarvest("farmer-1", weightKg)
	require.NoError(t, store.CommitHarvest(ctx, harvest))

	start := buildTestTransportStart(harvest.Batch.ID, "transporter-1")
	require.NoError(t, store.CommitTransportStart(ctx, start))

	delivery, err := store.CommitTransportComplete(ctx, buildTestTransportComplete(start.Job))
	require.NoError(t, err)

	receipt := buildTestWarehouseReceipt(*delivery, 1)
	receipt.UnitPrice = unitPrice
	result, err := store.CommitWarehouseReceipt(ctx, receipt)
	require.NoError(t, err)
	return result
}

// fundBuyer credits a buyer wallet
func fundBuyer(t *testing.T, store Store, buyerID string, amount int64) {
	_, err := store.CreditBuyer(context.Background(), CreditBuyerInput{
		BuyerID:      buyerID,
		Amount:       decimal.NewFromInt(amount),
		Counterparty: "admin",
		Description:  "Wallet deposit",
	})
	require.NoError(t, err)
}

// =============================================================================
// Test: Ledger channels
// =============================================================================

func testLedgerChannels(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing scope returns nil", func(t *testing.T) {
		channel, err := store.GetLedgerChannel(ctx, "batch:"+uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, channel)
	})

	t.Run("first insert wins", func(t *testing.T) {
		scopeKey := "batch:" + uuid.NewString()

		stored, err := store.InsertLedgerChannel(ctx, schema.LedgerChannel{ScopeKey: scopeKey, ChannelID: "custody.first", Memo: "first"})
		require.NoError(t, err)
		assert.Equal(t, "custody.first", stored.ChannelID)

		stored, err = store.InsertLedgerChannel(ctx, schema.LedgerChannel{ScopeKey: scopeKey, ChannelID: "custody.second", Memo: "second"})
		require.NoError(t, err)
		assert.Equal(t, "custody.first", stored.ChannelID)

		channel, err := store.GetLedgerChannel(ctx, scopeKey)
		require.NoError(t, err)
		require.NotNil(t, channel)
		assert.Equal(t, "custody.first", channel.ChannelID)
	})
}

// =============================================================================
// Test: Custody chain
// =============================================================================

func testCustodyChain(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("full chain derives delivery, lot and product", func(t *testing.T) {
		harvest := buildTestHarvest("farmer-1", 100)
		require.NoError(t, store.CommitHarvest(ctx, harvest))

		batch, err := store.GetHarvestBatch(ctx, harvest.Batch.ID)
		require.NoError(t, err)
		require.NotNil(t, batch)
		assert.Equal(t, domain.HarvestStatusSubmitted, batch.Status)

		start := buildTestTransportStart(harvest.Batch.ID, "transporter-1")
		require.NoError(t, store.CommitTransportStart(ctx, start))

		batch, err = store.GetHarvestBatch(ctx, harvest.Batch.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.HarvestStatusInTransit, batch.Status)

		job, err := store.GetTransportJobByHarvestID(ctx, harvest.Batch.ID)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, domain.TransportJobStatusInTransit, job.Status)

		delivery, err := store.CommitTransportComplete(ctx, buildTestTransportComplete(*job))
		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryStatusPending, delivery.Status)
		assert.True(t, decimal.NewFromInt(100).Equal(delivery.QuantityKg))

		job, err = store.GetTransportJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransportJobStatusDelivered, job.Status)
		require.NotNil(t, job.DistanceKm)
		assert.InDelta(t, 12.5, *job.DistanceKm, 0.0001)

		pending, err := store.GetWarehouseDeliveries(ctx, domain.DeliveryStatusPending)
		require.NoError(t, err)
		assert.NotEmpty(t, pending)

		receipt := buildTestWarehouseReceipt(*delivery, 3)
		receipt.ActualWeightKg = decimal.NewNullDecimal(decimal.NewFromInt(95))
		result, err := store.CommitWarehouseReceipt(ctx, receipt)
		require.NoError(t, err)
		assert.Equal(t, domain.DeliveryStatusCompleted, result.Delivery.Status)
		assert.Equal(t, domain.InventoryStatusInStock, result.Lot.Status)
		assert.True(t, decimal.NewFromInt(95).Equal(result.Lot.AvailableKg))
		assert.Equal(t, domain.ProductStatusAvailable, result.Product.Status)
		assert.Equal(t, "farmer-1", result.Product.ProducerID)
		assert.Equal(t, "maize", result.Product.CropType)

		events, err := store.GetCustodyEventsByHarvestID(ctx, harvest.Batch.ID)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, domain.CustodyEventHarvest, events[0].EventType)
		assert.Equal(t, domain.CustodyEventWarehouseReceipt, events[3].EventType)

		stored, err := store.GetCustodyEvent(ctx, events[0].ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.JSONEq(t, string(harvest.Event.Payload), string(stored.Payload))
	})

	t.Run("receipt without measured weight uses declared quantity", func(t *testing.T) {
		result := seedProduct(t, store, 40, 5)
		assert.True(t, decimal.NewFromInt(40).Equal(result.Lot.QuantityKg))
		assert.True(t, decimal.NewFromInt(40).Equal(result.Product.AvailableKg))
	})

	t.Run("duplicate transition is rejected", func(t *testing.T) {
		harvest := buildTestHarvest("farmer-1", 10)
		require.NoError(t, store.CommitHarvest(ctx, harvest))

		has, err := store.HasCustodyEvent(ctx, harvest.Batch.ID, domain.CustodyEventHarvest)
		require.NoError(t, err)
		assert.True(t, has)

		err = store.CommitHarvest(ctx, harvest)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrAlreadyCommitted))
	})

	t.Run("transport cannot start twice", func(t *testing.T) {
		harvest := buildTestHarvest("farmer-1", 10)
		require.NoError(t, store.CommitHarvest(ctx, harvest))
		require.NoError(t, store.CommitTransportStart(ctx, buildTestTransportStart(harvest.Batch.ID, "transporter-1")))

		err := store.CommitTransportStart(ctx, buildTestTransportStart(harvest.Batch.ID, "transporter-2"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	})

	t.Run("transport complete by another transporter is not found", func(t *testing.T) {
		harvest := buildTestHarvest("farmer-1", 10)
		require.NoError(t, store.CommitHarvest(ctx, harvest))
		start := buildTestTransportStart(harvest.Batch.ID, "transporter-1")
		require.NoError(t, store.CommitTransportStart(ctx, start))

		input := buildTestTransportComplete(start.Job)
		input.TransporterID = "transporter-2"
		_, err := store.CommitTransportComplete(ctx, input)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		job, err := store.GetTransportJob(ctx, start.Job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransportJobStatusInTransit, job.Status)
	})

	t.Run("missing rows return nil", func(t *testing.T) {
		batch, err := store.GetHarvestBatch(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, batch)

		event, err := store.GetCustodyEvent(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Nil(t, event)
	})
}

// =============================================================================
// Test: Audit pagination
// =============================================================================

func testCustodyEventsAfter(t *testing.T, store Store) {
	ctx := context.Background()

	for range 3 {
		require.NoError(t, store.CommitHarvest(ctx, buildTestHarvest("farmer-audit", 5)))
	}

	var seen []string
	cursor := AuditCursor{}
	for {
		events, err := store.GetCustodyEventsAfter(ctx, cursor, 2)
		require.NoError(t, err)
		if len(events) == 0 {
			break
		}
		for _, e := range events {
			seen = append(seen, e.ID)
		}
		last := events[len(events)-1]
		cursor = AuditCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	assert.GreaterOrEqual(t, len(seen), 3)
	unique := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, len(seen))
}

// =============================================================================
// Test: Reconciliation
// =============================================================================

func testReconciliation(t *testing.T, store Store) {
	ctx := context.Background()

	id := "01JAY1XTSV6ZRG5F6QJ5W3M4N8"
	require.NoError(t, store.CreateReconciliationItem(ctx, schema.ReconciliationItem{
		ID:          id,
		Reason:      domain.ReconciliationLocalCommitFailed,
		SubjectID:   uuid.NewString(),
		EventType:   domain.CustodyEventHarvest,
		HarvestID:   uuid.NewString(),
		ChannelID:   "custody.x",
		TxID:        "CUSTODY:9",
		Fingerprint: "abc",
		Detail:      "store unavailable",
	}))

	items, err := store.GetReconciliationItems(ctx, ReconciliationFilter{UnresolvedOnly: true})
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, id, items[0].ID)

	require.NoError(t, store.ResolveReconciliationItem(ctx, id, "admin", "re-committed manually"))

	items, err = store.GetReconciliationItems(ctx, ReconciliationFilter{UnresolvedOnly: true})
	require.NoError(t, err)
	for _, item := range items {
		assert.NotEqual(t, id, item.ID)
	}

	err = store.ResolveReconciliationItem(ctx, id, "admin", "again")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	err = store.ResolveReconciliationItem(ctx, "missing", "admin", "x")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// =============================================================================
// Test: Purchases and escrow
// =============================================================================

func testCreatePurchase(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("purchase escrows funds and decrements stock", func(t *testing.T) {
		listing := seedProduct(t, store, 100, 2)
		buyerID := "buyer-" + uuid.NewString()
		fundBuyer(t, store, buyerID, 500)

		result, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         buyerID,
			ProductID:       listing.Product.ID,
			Quantity:        decimal.NewFromInt(60),
			DeliveryAddress: "12 Market Rd",
			EscrowReference: "escrow-ref-1",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.PurchaseStatusPending, result.Purchase.Status)
		assert.Equal(t, domain.PaymentStatusEscrowed, result.Purchase.PaymentStatus)
		assert.True(t, decimal.NewFromInt(120).Equal(result.Purchase.TotalPrice))
		assert.Equal(t, domain.EscrowStatusActive, result.Escrow.Status)
		assert.True(t, decimal.NewFromInt(120).Equal(result.Escrow.Amount))

		product, err := store.GetProductByID(ctx, listing.Product.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(40).Equal(product.AvailableKg))

		buyer, err := store.GetBuyer(ctx, buyerID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(380).Equal(buyer.Balance))

		txs, err := store.GetWalletTransactions(ctx, buyerID, domain.WALLET_HISTORY_LIMIT)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		var escrowTx *schema.WalletTransaction
		for i := range txs {
			if txs[i].Type == domain.WalletTransactionEscrow {
				escrowTx = &txs[i]
			}
		}
		require.NotNil(t, escrowTx)
		assert.True(t, decimal.NewFromInt(-120).Equal(escrowTx.Amount))
		assert.Equal(t, "Escrow payment for maize (Batch: "+listing.Product.HarvestID+")", escrowTx.Description)
		assert.Equal(t, "escrow-ref-1", escrowTx.Counterparty)
	})

	t.Run("buying the whole lot sells it out", func(t *testing.T) {
		listing := seedProduct(t, store, 10, 1)
		buyerID := "buyer-" + uuid.NewString()
		fundBuyer(t, store, buyerID, 10)

		_, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         buyerID,
			ProductID:       listing.Product.ID,
			Quantity:        decimal.NewFromInt(10),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		require.NoError(t, err)

		product, err := store.GetProductByID(ctx, listing.Product.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ProductStatusSoldOut, product.Status)
		assert.True(t, product.AvailableKg.IsZero())

		products, err := store.GetProducts(ctx, ProductFilter{})
		require.NoError(t, err)
		for _, p := range products {
			assert.NotEqual(t, listing.Product.ID, p.ID)
		}
	})

	t.Run("insufficient inventory leaves state unchanged", func(t *testing.T) {
		listing := seedProduct(t, store, 10, 1)
		buyerID := "buyer-" + uuid.NewString()
		fundBuyer(t, store, buyerID, 100)

		_, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         buyerID,
			ProductID:       listing.Product.ID,
			Quantity:        decimal.NewFromInt(11),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))

		buyer, err := store.GetBuyer(ctx, buyerID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(buyer.Balance))
	})

	t.Run("insufficient funds leaves state unchanged", func(t *testing.T) {
		listing := seedProduct(t, store, 100, 2)
		buyerID := "buyer-" + uuid.NewString()
		fundBuyer(t, store, buyerID, 100)

		_, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         buyerID,
			ProductID:       listing.Product.ID,
			Quantity:        decimal.NewFromInt(60),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))

		product, err := store.GetProductByID(ctx, listing.Product.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(100).Equal(product.AvailableKg))

		purchases, err := store.GetPurchasesByBuyer(ctx, buyerID, "")
		require.NoError(t, err)
		assert.Empty(t, purchases)
	})

	t.Run("buyer without wallet has insufficient funds", func(t *testing.T) {
		listing := seedProduct(t, store, 10, 1)

		_, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         "buyer-" + uuid.NewString(),
			ProductID:       listing.Product.ID,
			Quantity:        decimal.NewFromInt(1),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		assert.True(t, errors.Is(err, domain.ErrInsufficientFunds))
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         "buyer-x",
			ProductID:       uuid.NewString(),
			Quantity:        decimal.NewFromInt(1),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func testReleaseEscrow(t *testing.T, store Store) {
	ctx := context.Background()

	listing := seedProduct(t, store, 100, 2)
	buyerID := "buyer-" + uuid.NewString()
	fundBuyer(t, store, buyerID, 500)

	purchase, err := store.CreatePurchase(ctx, CreatePurchaseInput{
		BuyerID:         buyerID,
		ProductID:       listing.Product.ID,
		Quantity:        decimal.NewFromInt(10),
		DeliveryAddress: "addr",
		EscrowReference: "ref",
	})
	require.NoError(t, err)

	t.Run("another buyer cannot see the escrow", func(t *testing.T) {
		_, err := store.ReleaseEscrow(ctx, ReleaseEscrowInput{BuyerID: "someone-else", EscrowID: purchase.Escrow.ID})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("release completes the purchase", func(t *testing.T) {
		result, err := store.ReleaseEscrow(ctx, ReleaseEscrowInput{BuyerID: buyerID, EscrowID: purchase.Escrow.ID})
		require.NoError(t, err)
		assert.Equal(t, domain.EscrowStatusReleased, result.Escrow.Status)
		assert.NotNil(t, result.Escrow.ReleasedAt)
		assert.Equal(t, domain.PurchaseStatusCompleted, result.Purchase.Status)
		assert.Equal(t, domain.PaymentStatusPaid, result.Purchase.PaymentStatus)
	})

	t.Run("second release fails without changes", func(t *testing.T) {
		_, err := store.ReleaseEscrow(ctx, ReleaseEscrowInput{BuyerID: buyerID, EscrowID: purchase.Escrow.ID})
		assert.True(t, errors.Is(err, domain.ErrAlreadyReleased))

		escrow, err := store.GetEscrowByID(ctx, purchase.Escrow.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.EscrowStatusReleased, escrow.Status)
	})

	t.Run("unknown escrow is not found", func(t *testing.T) {
		_, err := store.ReleaseEscrow(ctx, ReleaseEscrowInput{BuyerID: buyerID, EscrowID: uuid.NewString()})
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		_, err = store.ReleaseEscrow(ctx, ReleaseEscrowInput{BuyerID: buyerID, EscrowID: "garbage"})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("payout reference is stamped once", func(t *testing.T) {
		set, err := store.SetPayoutReference(ctx, purchase.Escrow.ID, "payout-1")
		require.NoError(t, err)
		assert.True(t, set)

		set, err = store.SetPayoutReference(ctx, purchase.Escrow.ID, "payout-2")
		require.NoError(t, err)
		assert.False(t, set)

		escrow, err := store.GetEscrowByID(ctx, purchase.Escrow.ID)
		require.NoError(t, err)
		require.NotNil(t, escrow.PayoutReference)
		assert.Equal(t, "payout-1", *escrow.PayoutReference)
	})

	t.Run("listings filter by status", func(t *testing.T) {
		escrows, err := store.GetEscrowsByBuyer(ctx, buyerID, domain.EscrowStatusReleased)
		require.NoError(t, err)
		assert.Len(t, escrows, 1)

		escrows, err = store.GetEscrowsByBuyer(ctx, buyerID, domain.EscrowStatusActive)
		require.NoError(t, err)
		assert.Empty(t, escrows)

		purchases, err := store.GetPurchasesByBuyer(ctx, buyerID, domain.PurchaseStatusCompleted)
		require.NoError(t, err)
		assert.Len(t, purchases, 1)
	})
}

func testCancelPurchase(t *testing.T, store Store) {
	ctx := context.Background()

	listing := seedProduct(t, store, 100, 2)
	buyerID := "buyer-" + uuid.NewString()
	fundBuyer(t, store, buyerID, 500)

	purchase, err := store.CreatePurchase(ctx, CreatePurchaseInput{
		BuyerID:         buyerID,
		ProductID:       listing.Product.ID,
		Quantity:        decimal.NewFromInt(100),
		DeliveryAddress: "addr",
		EscrowReference: "ref",
	})
	require.NoError(t, err)

	result, err := store.CancelPurchase(ctx, CancelPurchaseInput{BuyerID: buyerID, PurchaseID: purchase.Purchase.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusCancelled, result.Purchase.Status)
	assert.Equal(t, domain.PaymentStatusRefunded, result.Purchase.PaymentStatus)
	assert.Equal(t, domain.EscrowStatusRefunded, result.Escrow.Status)

	product, err := store.GetProductByID(ctx, listing.Product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(product.AvailableKg))
	assert.Equal(t, domain.ProductStatusAvailable, product.Status)

	buyer, err := store.GetBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(buyer.Balance))

	_, err = store.CancelPurchase(ctx, CancelPurchaseInput{BuyerID: buyerID, PurchaseID: purchase.Purchase.ID})
	assert.True(t, errors.Is(err, domain.ErrAlreadyReleased))

	_, err = store.ReleaseEscrow(ctx, ReleaseEscrowInput{BuyerID: buyerID, EscrowID: purchase.Escrow.ID})
	assert.True(t, errors.Is(err, domain.ErrAlreadyReleased))
}

// receiveDelivery walks a batch to the warehouse and receives it with the given measured weight
func receiveDelivery(t *testing.T, store Store, declaredKg int64, actual decimal.NullDecimal, inspection InspectionInput) *WarehouseReceiptResult {
	ctx := context.Background()

	harvest := buildTestHarvest("farmer-1", declaredKg)
	require.NoError(t, store.CommitHarvest(ctx, harvest))
	start := buildTestTransportStart(harvest.Batch.ID, "transporter-1")
	require.NoError(t, store.CommitTransportStart(ctx, start))
	delivery, err := store.CommitTransportComplete(ctx, buildTestTransportComplete(start.Job))
	require.NoError(t, err)

	receipt := buildTestWarehouseReceipt(*delivery, 3)
	receipt.ActualWeightKg = actual
	receipt.Inspection = inspection
	result, err := store.CommitWarehouseReceipt(ctx, receipt)
	require.NoError(t, err)
	return result
}

func testWarehouseInspections(t *testing.T, store Store) {
	ctx := context.Background()
	since := time.Now().UTC().Add(-time.Minute)

	before, err := store.GetInspectionStats(ctx, since)
	require.NoError(t, err)

	approved := receiveDelivery(t, store, 200, decimal.NewNullDecimal(decimal.RequireFromString("195")), InspectionInput{})
	assert.NotEmpty(t, approved.Inspection.ID)
	assert.Equal(t, domain.InspectionStatusApproved, approved.Inspection.Status)
	assert.Equal(t, "-2.5", approved.Inspection.WeightVariancePct.String())
	assert.Equal(t, "warehouse-1", approved.Inspection.InspectorID)

	notes := "damp sacks"
	conditionalID := uuid.NewString()
	conditional := receiveDelivery(t, store, 100, decimal.NewNullDecimal(decimal.NewFromInt(110)), InspectionInput{
		ID:              conditionalID,
		Status:          domain.InspectionStatusConditional,
		MoistureContent: decimal.NewNullDecimal(decimal.RequireFromString("16.5")),
		Notes:           &notes,
	})
	assert.Equal(t, conditionalID, conditional.Inspection.ID)
	assert.Equal(t, "10", conditional.Inspection.WeightVariancePct.String())

	t.Run("inventory lists received lots", func(t *testing.T) {
		lots, err := store.GetInventoryLots(ctx, domain.InventoryStatusInStock)
		require.NoError(t, err)
		ids := make([]string, 0, len(lots))
		for _, l := range lots {
			ids = append(ids, l.ID)
			assert.Equal(t, domain.InventoryStatusInStock, l.Status)
		}
		assert.Contains(t, ids, approved.Lot.ID)
		assert.Contains(t, ids, conditional.Lot.ID)

		depleted, err := store.GetInventoryLots(ctx, domain.InventoryStatusDepleted)
		require.NoError(t, err)
		for _, l := range depleted {
			assert.NotEqual(t, approved.Lot.ID, l.ID)
		}
	})

	t.Run("history is filtered", func(t *testing.T) {
		found, err := store.GetQualityInspections(ctx, InspectionFilter{
			Status: domain.InspectionStatusConditional,
			Search: conditional.Delivery.HarvestID,
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, conditionalID, found[0].ID)
		assert.Equal(t, "16.5", found[0].MoistureContent.Decimal.String())
		assert.Equal(t, &notes, found[0].Notes)
		assert.False(t, found[0].PurityLevel.Valid)

		future := time.Now().UTC().Add(time.Hour)
		none, err := store.GetQualityInspections(ctx, InspectionFilter{Since: &future})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("stats count the new inspections", func(t *testing.T) {
		after, err := store.GetInspectionStats(ctx, since)
		require.NoError(t, err)
		assert.Equal(t, before.Total+2, after.Total)
		assert.Equal(t, before.Approved+1, after.Approved)
		assert.Equal(t, before.Conditional+1, after.Conditional)
		if before.Total == 0 {
			// mean of |-2.5| and |10|
			assert.Equal(t, "6.25", after.AvgAbsVariancePct.String())
		}
	})

	t.Run("a delivery is inspected once", func(t *testing.T) {
		// Receiving again fails on the delivery status before a second inspection is written
		_, err := store.CommitWarehouseReceipt(ctx, buildTestWarehouseReceipt(approved.Delivery, 3))
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		found, err := store.GetQualityInspections(ctx, InspectionFilter{Search: approved.Delivery.ID})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

// requireBalancedWallet checks the stored balance against the sum of the buyer's wallet journal
func requireBalancedWallet(t *testing.T, store Store, buyerID string, want string) {
	t.Helper()
	ctx := context.Background()

	buyer, err := store.GetBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.NotNil(t, buyer)
	assert.Equal(t, want, buyer.Balance.StringFixed(4))

	txs, err := store.GetWalletTransactions(ctx, buyerID, 1000)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	assert.True(t, sum.Equal(buyer.Balance), "journal sums to %s, balance is %s", sum, buyer.Balance)
}

func testFractionalTotals(t *testing.T, store Store) {
	ctx := context.Background()

	// 0.0001 * 0.5 = 0.00005, below the stored scale
	listing := seedPricedProduct(t, store, 10, decimal.RequireFromString("0.0001"))
	buyerID := "buyer-" + uuid.NewString()
	fundBuyer(t, store, buyerID, 1)

	for i := 0; i < 3; i++ {
		purchase, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         buyerID,
			ProductID:       listing.Product.ID,
			Quantity:        decimal.RequireFromString("0.5"),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		require.NoError(t, err)
		assert.Equal(t, "0.0001", purchase.Purchase.TotalPrice.StringFixed(4))
		assert.True(t, purchase.Escrow.Amount.Equal(purchase.Purchase.TotalPrice))
		requireBalancedWallet(t, store, buyerID, "0.9999")

		escrow, err := store.GetEscrowByID(ctx, purchase.Escrow.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.0001", escrow.Amount.StringFixed(4))

		_, err = store.CancelPurchase(ctx, CancelPurchaseInput{BuyerID: buyerID, PurchaseID: purchase.Purchase.ID})
		require.NoError(t, err)
		requireBalancedWallet(t, store, buyerID, "1.0000")
	}

	t.Run("quantity finer than the stored scale is rejected", func(t *testing.T) {
		_, err := store.CreatePurchase(ctx, CreatePurchaseInput{
			BuyerID:         buyerID,
			ProductID:       listing.Product.ID,
			Quantity:        decimal.RequireFromString("0.00001"),
			DeliveryAddress: "addr",
			EscrowReference: "ref",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		requireBalancedWallet(t, store, buyerID, "1.0000")
	})
}

func TestPurchaseTotal(t *testing.T) {
	tests := []struct {
		unitPrice string
		quantity  string
		want      string
	}{
		{unitPrice: "2", quantity: "100", want: "200.0000"},
		{unitPrice: "0.0001", quantity: "0.5", want: "0.0001"},
		{unitPrice: "1.2345", quantity: "0.0001", want: "0.0002"},
		{unitPrice: "3.3333", quantity: "3", want: "9.9999"},
	}

	for _, tt := range tests {
		t.Run(tt.unitPrice+"x"+tt.quantity, func(t *testing.T) {
			total := PurchaseTotal(decimal.RequireFromString(tt.unitPrice), decimal.RequireFromString(tt.quantity))
			assert.Equal(t, tt.want, total.StringFixed(4))
			assert.True(t, total.Equal(total.Round(domain.AMOUNT_DECIMAL_PLACES)))
		})
	}
}

// =============================================================================
// Test: Wallets and listings
// =============================================================================

func testWallet(t *testing.T, store Store) {
	ctx := context.Background()
	buyerID := "buyer-" + uuid.NewString()

	buyer, err := store.GetBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Nil(t, buyer)

	fundBuyer(t, store, buyerID, 25)
	fundBuyer(t, store, buyerID, 15)

	buyer, err = store.GetBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.NotNil(t, buyer)
	assert.True(t, decimal.NewFromInt(40).Equal(buyer.Balance))

	txs, err := store.GetWalletTransactions(ctx, buyerID, 1)
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func testGetProducts(t *testing.T, store Store) {
	ctx := context.Background()
	listing := seedProduct(t, store, 30, 4)

	products, err := store.GetProducts(ctx, ProductFilter{CropType: "MAIZE"})
	require.NoError(t, err)
	assert.NotEmpty(t, products)

	products, err = store.GetProducts(ctx, ProductFilter{Search: listing.Product.HarvestID[:8]})
	require.NoError(t, err)
	require.NotEmpty(t, products)
	assert.Equal(t, listing.Product.ID, products[0].ID)

	products, err = store.GetProducts(ctx, ProductFilter{CropType: "coffee"})
	require.NoError(t, err)
	assert.Empty(t, products)
}

// =============================================================================
// Test: Audit cursor
// =============================================================================

func testAuditCursor(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	cursors := NewCursorStore(db)

	cursor, err := cursors.GetAuditCursor(ctx, "fingerprint")
	require.NoError(t, err)
	assert.True(t, cursor.CreatedAt.IsZero())

	want := AuditCursor{CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 123456000, time.UTC), ID: uuid.NewString()}
	require.NoError(t, cursors.SetAuditCursor(ctx, "fingerprint", want))

	got, err := cursors.GetAuditCursor(ctx, "fingerprint")
	require.NoError(t, err)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.ID, got.ID)
}

// =============================================================================
// Test: Concurrent purchases
// =============================================================================

// testConcurrentPurchases runs against committed data, outside any per-test transaction
func testConcurrentPurchases(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	store := NewPGStore(db)

	listing := seedProduct(t, store, 100, 1)
	buyers := []string{"buyer-" + uuid.NewString(), "buyer-" + uuid.NewString()}
	for _, b := range buyers {
		fundBuyer(t, store, b, 1000)
	}
	t.Cleanup(func() { cleanupHarvest(db, listing.Product.HarvestID, buyers) })

	var wg sync.WaitGroup
	errs := make([]error, len(buyers))
	for i, b := range buyers {
		wg.Add(1)
		go func(i int, buyerID string) {
			defer wg.Done()
			_, errs[i] = store.CreatePurchase(ctx, CreatePurchaseInput{
				BuyerID:         buyerID,
				ProductID:       listing.Product.ID,
				Quantity:        decimal.NewFromInt(60),
				DeliveryAddress: "addr",
				EscrowReference: "ref",
			})
		}(i, b)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInsufficientInventory))
	}
	assert.Equal(t, 1, succeeded)

	product, err := store.GetProductByID(ctx, listing.Product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(40).Equal(product.AvailableKg))
}

// cleanupHarvest removes committed rows created by testConcurrentPurchases
func cleanupHarvest(db *gorm.DB, harvestID string, buyerIDs []string) {
	db.Where("buyer_id IN ?", buyerIDs).Delete(&schema.WalletTransaction{})
	db.Where("buyer_id IN ?", buyerIDs).Delete(&schema.EscrowTransaction{})
	db.Where("buyer_id IN ?", buyerIDs).Delete(&schema.Purchase{})
	db.Where("id IN ?", buyerIDs).Delete(&schema.Buyer{})
	db.Where("harvest_id = ?", harvestID).Delete(&schema.Product{})
	db.Where("harvest_id = ?", harvestID).Delete(&schema.InventoryLot{})
	db.Where("harvest_id = ?", harvestID).Delete(&schema.WarehouseDelivery{})
	db.Where("harvest_id = ?", harvestID).Delete(&schema.TransportJob{})
	db.Where("harvest_id = ?", harvestID).Delete(&schema.CustodyEvent{})
	db.Where("id = ?", harvestID).Delete(&schema.HarvestBatch{})
}

// RunStoreTests runs all store tests with the given store initialization
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"LedgerChannels", testLedgerChannels},
		{"CustodyChain", testCustodyChain},
		{"CustodyEventsAfter", testCustodyEventsAfter},
		{"Reconciliation", testReconciliation},
		{"CreatePurchase", testCreatePurchase},
		{"ReleaseEscrow", testReleaseEscrow},
		{"CancelPurchase", testCancelPurchase},
		{"FractionalTotals", testFractionalTotals},
		{"WarehouseInspections", testWarehouseInspections},
		{"Wallet", testWallet},
		{"GetProducts", testGetProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
