package custody

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Allen-Brian/AGRICHAIN/internal/adapter"
	"github.com/Allen-Brian/AGRICHAIN/internal/cache"
	"github.com/Allen-Brian/AGRICHAIN/internal/canonical"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/ledger"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

// Config holds the custody manager configuration
type Config struct {
	// ChannelScope selects one ledger channel per batch or a single global channel
	ChannelScope domain.ChannelScope
}

// Manager records custody transitions of harvest batches.
// Every transition is anchored to the ledger before it is committed locally.
//
//go:generate mockgen -source=manager.go -destination=../mocks/custody.go -package=mocks -mock_names=Manager=MockCustodyManager
type Manager interface {
	// SubmitHarvest records a new batch (HARVEST)
	SubmitHarvest(ctx context.Context, caller domain.Caller, input HarvestInput) (*TransitionResult, error)
	// StartTransport opens a transport job for a submitted batch (TRANSPORT_START)
	StartTransport(ctx context.Context, caller domain.Caller, input TransportStartInput) (*TransitionResult, error)
	// CompleteTransport delivers an in-transit job and opens a warehouse delivery (TRANSPORT_COMPLETE)
	CompleteTransport(ctx context.Context, caller domain.Caller, input TransportCompleteInput) (*TransitionResult, error)
	// ConfirmWarehouseReceipt turns a pending delivery into stock and a listing (WAREHOUSE_RECEIPT)
	ConfirmWarehouseReceipt(ctx context.Context, caller domain.Caller, input WarehouseReceiptInput) (*TransitionResult, error)

	// GetProvenance returns the verified custody chain of a batch
	GetProvenance(ctx context.Context, caller domain.Caller, harvestID string) (*Provenance, error)
	// VerifyEvent re-hashes a stored custody event
	VerifyEvent(ctx context.Context, caller domain.Caller, eventID string) (*Verification, error)
	// ListWarehouseDeliveries lists warehouse deliveries by status
	ListWarehouseDeliveries(ctx context.Context, caller domain.Caller, status domain.DeliveryStatus) ([]DeliveryView, error)
	// ListInventoryLots lists warehouse stock by status
	ListInventoryLots(ctx context.Context, caller domain.Caller, status domain.InventoryStatus) ([]InventoryLotView, error)
	// ListInspections lists the quality inspections taken on receipt
	ListInspections(ctx context.Context, caller domain.Caller, query InspectionQuery) ([]InspectionView, error)
	// GetReportStats summarises the inspections of a period
	GetReportStats(ctx context.Context, caller domain.Caller, period domain.ReportPeriod) (*ReportStats, error)

	// ListReconciliationItems lists ledger/local divergences for operators
	ListReconciliationItems(ctx context.Context, caller domain.Caller, query ReconciliationQuery) ([]ReconciliationView, error)
	// ResolveReconciliationItem closes a divergence once an operator has repaired it
	ResolveReconciliationItem(ctx context.Context, caller domain.Caller, input ResolveReconciliationInput) error
}

type manager struct {
	cfg    Config
	store  store.Store
	ledger ledger.Client
	cache  cache.Cache
	clock  adapter.Clock
}

// NewManager creates a custody manager
func NewManager(cfg Config, st store.Store, ledgerClient ledger.Client, c cache.Cache, clock adapter.Clock) Manager {
	if cfg.ChannelScope == "" {
		cfg.ChannelScope = domain.ChannelScopeBatch
	}

	return &manager{
		cfg:    cfg,
		store:  st,
		ledger: ledgerClient,
		cache:  c,
		clock:  clock,
	}
}

// transition is a custody event on its way to the ledger and the store
type transition struct {
	eventID    string
	eventType  domain.CustodyEventType
	subjectID  string
	harvestID  string
	actorID    string
	occurredAt time.Time
	payload    any
}

// anchored is a transition the ledger has accepted
type anchored struct {
	transition
	fingerprint string
	canonical   []byte
	channelID   string
	txID        string
}

func (a *anchored) event() store.CustodyEventInput {
	return store.CustodyEventInput{
		ID:          a.eventID,
		SubjectID:   a.subjectID,
		EventType:   a.eventType,
		HarvestID:   a.harvestID,
		ActorID:     a.actorID,
		Fingerprint: a.fingerprint,
		ChannelID:   a.channelID,
		TxID:        a.txID,
		Payload:     a.canonical,
		OccurredAt:  a.occurredAt,
	}
}

func (a *anchored) result() *TransitionResult {
	return &TransitionResult{
		EventID:       a.eventID,
		EventType:     a.eventType,
		SubjectID:     a.subjectID,
		HarvestID:     a.harvestID,
		Fingerprint:   a.fingerprint,
		ChannelID:     a.channelID,
		TransactionID: a.txID,
		OccurredAt:    a.occurredAt,
	}
}

func (m *manager) now() time.Time {
	// Postgres keeps microseconds
	return m.clock.Now().UTC().Truncate(time.Microsecond)
}

// ensureFirst rejects a transition already committed for its subject
func (m *manager) ensureFirst(ctx context.Context, subjectID string, eventType domain.CustodyEventType) error {
	exists, err := m.store.HasCustodyEvent(ctx, subjectID, eventType)
	if err != nil {
		return fmt.Errorf("failed to check custody event: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s for %s", domain.ErrAlreadyCommitted, eventType, subjectID)
	}
	return nil
}

// anchor fingerprints the payload and appends it to the ledger. Nothing local is written.
func (m *manager) anchor(ctx context.Context, t transition) (*anchored, error) {
	fingerprint, canonicalBytes, err := canonical.Fingerprint(t.payload)
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint %s payload: %w", t.eventType, err)
	}

	scopeKey := m.cfg.ChannelScope.ScopeKey(t.harvestID)
	channelID, err := m.ledger.EnsureChannel(ctx, scopeKey, channelMemo(m.cfg.ChannelScope, t.harvestID))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure ledger channel: %w", err)
	}

	message, err := ledger.Message{
		EventType:   t.eventType,
		SubjectID:   t.subjectID,
		HarvestID:   t.harvestID,
		Fingerprint: fingerprint,
		ActorID:     t.actorID,
		Timestamp:   t.occurredAt,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger message: %w", err)
	}

	receipt, err := m.ledger.Append(ctx, channelID, message)
	if err != nil {
		logger.WarnCtx(ctx, "Ledger append failed, transition not committed",
			zap.String("eventType", string(t.eventType)),
			zap.String("subjectID", t.subjectID),
			zap.Error(err))
		return nil, err
	}

	return &anchored{
		transition:  t,
		fingerprint: fingerprint,
		canonical:   canonicalBytes,
		channelID:   channelID,
		txID:        receipt.TransactionID,
	}, nil
}

// commit runs the local commit for an anchored transition. A failure here leaves the
// ledger ahead of the store, so it is recorded for reconciliation instead of retried.
func (m *manager) commit(ctx context.Context, a *anchored, fn func(ctx context.Context, event store.CustodyEventInput) error) error {
	// The ledger already holds the event; a cancelled request must not abort the commit
	ctx = context.WithoutCancel(ctx)

	if err := fn(ctx, a.event()); err != nil {
		return m.recordMismatch(ctx, a, err)
	}

	logger.InfoCtx(ctx, "Committed custody transition",
		zap.String("eventType", string(a.eventType)),
		zap.String("subjectID", a.subjectID),
		zap.String("harvestID", a.harvestID),
		zap.String("txID", a.txID))

	return nil
}

func (m *manager) recordMismatch(ctx context.Context, a *anchored, cause error) error {
	item := schema.ReconciliationItem{
		ID:          ulid.Make().String(),
		Reason:      domain.ReconciliationLocalCommitFailed,
		SubjectID:   a.subjectID,
		EventType:   a.eventType,
		HarvestID:   a.harvestID,
		ChannelID:   a.channelID,
		TxID:        a.txID,
		Fingerprint: a.fingerprint,
		Payload:     datatypes.JSON(a.canonical),
		Detail:      cause.Error(),
	}

	mismatch := &domain.MismatchError{
		ReconciliationID: item.ID,
		TransactionID:    a.txID,
		Cause:            cause,
	}

	fields := []zap.Field{
		zap.String("reconciliationID", item.ID),
		zap.String("eventType", string(a.eventType)),
		zap.String("subjectID", a.subjectID),
		zap.String("harvestID", a.harvestID),
		zap.String("channelID", a.channelID),
		zap.String("txID", a.txID),
		zap.String("fingerprint", a.fingerprint),
		zap.ByteString("payload", a.canonical),
	}

	if err := m.store.CreateReconciliationItem(ctx, item); err != nil {
		// The log line (and its Sentry event) is the only remaining record
		logger.ErrorCtx(ctx, fmt.Errorf("failed to record reconciliation item: %w", err), fields...)
	}
	logger.ErrorCtx(ctx, mismatch, fields...)

	return mismatch
}

func channelMemo(scope domain.ChannelScope, harvestID string) string {
	if scope == domain.ChannelScopeGlobal {
		return "custody chain"
	}
	return "custody chain for harvest " + harvestID
}

// SubmitHarvest records a new batch
func (m *manager) SubmitHarvest(ctx context.Context, caller domain.Caller, input HarvestInput) (*TransitionResult, error) {
	if err := caller.Require(domain.RoleFarmer); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := domain.CheckAmount("estimatedWeightKg", input.EstimatedWeightKg); err != nil {
		return nil, err
	}

	harvestID := input.HarvestID
	if harvestID == "" {
		harvestID = uuid.NewString()
	} else {
		harvestID = normalizeUUID(harvestID)
	}

	if err := m.ensureFirst(ctx, harvestID, domain.CustodyEventHarvest); err != nil {
		return nil, err
	}

	photos := input.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	var harvestDate *time.Time
	if input.HarvestDate != nil {
		d := input.HarvestDate.UTC()
		harvestDate = &d
	}

	now := m.now()
	t := transition{
		eventID:    uuid.NewString(),
		eventType:  domain.CustodyEventHarvest,
		subjectID:  harvestID,
		harvestID:  harvestID,
		actorID:    caller.ID,
		occurredAt: now,
		payload: harvestPayload{
			EventType:         domain.CustodyEventHarvest,
			HarvestID:         harvestID,
			ProducerID:        caller.ID,
			CropType:          input.CropType,
			EstimatedWeightKg: input.EstimatedWeightKg,
			Location:          domain.GeoPoint{Lat: *input.GPSLat, Long: *input.GPSLong},
			PhotoURLs:         photos,
			HarvestDate:       harvestDate,
			Timestamp:         now,
		},
	}

	a, err := m.anchor(ctx, t)
	if err != nil {
		return nil, err
	}

	err = m.commit(ctx, a, func(ctx context.Context, event store.CustodyEventInput) error {
		return m.store.CommitHarvest(ctx, store.CommitHarvestInput{
			Event: event,
			Batch: schema.HarvestBatch{
				ID:                harvestID,
				ProducerID:        caller.ID,
				CropType:          input.CropType,
				EstimatedWeightKg: input.EstimatedWeightKg,
				GPSLat:            *input.GPSLat,
				GPSLong:           *input.GPSLong,
				PhotoURLs:         photos,
				HarvestDate:       harvestDate,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	return a.result(), nil
}

// StartTransport opens the transport job of a submitted batch
func (m *manager) StartTransport(ctx context.Context, caller domain.Caller, input TransportStartInput) (*TransitionResult, error) {
	if err := caller.Require(domain.RoleTransporter); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}
	if (input.PickupLat == nil) != (input.PickupLong == nil) {
		return nil, domain.NewValidationError("pickupLat", "and pickupLong must be given together")
	}
	if input.ScheduledDeliveryTime.Before(input.ScheduledPickupTime) {
		return nil, domain.NewValidationError("scheduledDeliveryTime", "must not be before scheduledPickupTime")
	}

	harvestID := normalizeUUID(input.HarvestID)
	batch, err := m.store.GetHarvestBatch(ctx, harvestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get harvest batch: %w", err)
	}
	if batch == nil {
		return nil, fmt.Errorf("harvest batch %s: %w", harvestID, domain.ErrNotFound)
	}
	if err := m.ensureFirst(ctx, harvestID, domain.CustodyEventTransportStart); err != nil {
		return nil, err
	}
	if batch.Status != domain.HarvestStatusSubmitted {
		return nil, fmt.Errorf("%w: harvest batch %s is %s", domain.ErrInvalidTransition, harvestID, batch.Status)
	}

	var pickupGPS *domain.GeoPoint
	if input.PickupLat != nil {
		pickupGPS = &domain.GeoPoint{Lat: *input.PickupLat, Long: *input.PickupLong}
	}

	now := m.now()
	jobID := uuid.NewString()
	t := transition{
		eventID:    uuid.NewString(),
		eventType:  domain.CustodyEventTransportStart,
		subjectID:  harvestID,
		harvestID:  harvestID,
		actorID:    caller.ID,
		occurredAt: now,
		payload: transportStartPayload{
			EventType:             domain.CustodyEventTransportStart,
			HarvestID:             harvestID,
			JobID:                 jobID,
			TransporterID:         caller.ID,
			PickupLocation:        input.PickupLocation,
			DeliveryLocation:      input.DeliveryLocation,
			ScheduledPickupTime:   input.ScheduledPickupTime.UTC(),
			ScheduledDeliveryTime: input.ScheduledDeliveryTime.UTC(),
			PickupGPS:             pickupGPS,
			Timestamp:             now,
		},
	}

	a, err := m.anchor(ctx, t)
	if err != nil {
		return nil, err
	}

	err = m.commit(ctx, a, func(ctx context.Context, event store.CustodyEventInput) error {
		return m.store.CommitTransportStart(ctx, store.CommitTransportStartInput{
			Event: event,
			Job: schema.TransportJob{
				ID:                    jobID,
				HarvestID:             harvestID,
				TransporterID:         caller.ID,
				PickupLocation:        input.PickupLocation,
				DeliveryLocation:      input.DeliveryLocation,
				ScheduledPickupTime:   input.ScheduledPickupTime.UTC(),
				ScheduledDeliveryTime: input.ScheduledDeliveryTime.UTC(),
				ActualPickupTime:      &now,
				PickupLat:             input.PickupLat,
				PickupLong:            input.PickupLong,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	result := a.result()
	result.JobID = jobID
	return result, nil
}

// CompleteTransport delivers an in-transit job owned by the caller
func (m *manager) CompleteTransport(ctx context.Context, caller domain.Caller, input TransportCompleteInput) (*TransitionResult, error) {
	if err := caller.Require(domain.RoleTransporter); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}
	if (input.DeliveryLat == nil) != (input.DeliveryLong == nil) {
		return nil, domain.NewValidationError("deliveryLat", "and deliveryLong must be given together")
	}
	for i, p := range input.Route {
		if !p.Valid() {
			return nil, domain.NewValidationError(fmt.Sprintf("route[%d]", i), "is out of range")
		}
	}

	jobID := normalizeUUID(input.JobID)
	job, err := m.store.GetTransportJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transport job: %w", err)
	}
	// Jobs of other transporters are reported as missing
	if job == nil || job.TransporterID != caller.ID {
		return nil, fmt.Errorf("transport job %s: %w", jobID, domain.ErrNotFound)
	}
	if err := m.ensureFirst(ctx, jobID, domain.CustodyEventTransportComplete); err != nil {
		return nil, err
	}
	if job.Status != domain.TransportJobStatusInTransit {
		return nil, fmt.Errorf("%w: transport job %s is %s", domain.ErrInvalidTransition, jobID, job.Status)
	}

	batch, err := m.store.GetHarvestBatch(ctx, job.HarvestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get harvest batch: %w", err)
	}
	if batch == nil {
		return nil, fmt.Errorf("harvest batch %s: %w", job.HarvestID, domain.ErrNotFound)
	}

	var deliveryGPS *domain.GeoPoint
	if input.DeliveryLat != nil {
		deliveryGPS = &domain.GeoPoint{Lat: *input.DeliveryLat, Long: *input.DeliveryLong}
	}
	route := input.Route
	if route == nil {
		route = []domain.GeoPoint{}
	}
	distanceKm := routeDistance(job, route, deliveryGPS)

	now := m.now()
	deliveryID := uuid.NewString()
	actualDelivery := input.ActualDeliveryTime.UTC()
	t := transition{
		eventID:    uuid.NewString(),
		eventType:  domain.CustodyEventTransportComplete,
		subjectID:  jobID,
		harvestID:  job.HarvestID,
		actorID:    caller.ID,
		occurredAt: now,
		payload: transportCompletePayload{
			EventType:          domain.CustodyEventTransportComplete,
			HarvestID:          job.HarvestID,
			JobID:              jobID,
			DeliveryID:         deliveryID,
			TransporterID:      caller.ID,
			QuantityKg:         batch.EstimatedWeightKg,
			ActualDeliveryTime: actualDelivery,
			DeliveryGPS:        deliveryGPS,
			Route:              route,
			DistanceKm:         distanceKm,
			Timestamp:          now,
		},
	}

	a, err := m.anchor(ctx, t)
	if err != nil {
		return nil, err
	}

	err = m.commit(ctx, a, func(ctx context.Context, event store.CustodyEventInput) error {
		_, err := m.store.CommitTransportComplete(ctx, store.CommitTransportCompleteInput{
			Event:              event,
			JobID:              jobID,
			TransporterID:      caller.ID,
			ActualDeliveryTime: actualDelivery,
			DeliveryLat:        input.DeliveryLat,
			DeliveryLong:       input.DeliveryLong,
			DistanceKm:         distanceKm,
			DeliveryID:         deliveryID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateAll(ctx, m.cache, cache.NamespaceDeliveries)

	result := a.result()
	result.JobID = jobID
	result.DeliveryID = deliveryID
	result.DistanceKm = &distanceKm
	return result, nil
}

// ConfirmWarehouseReceipt completes a pending delivery
func (m *manager) ConfirmWarehouseReceipt(ctx context.Context, caller domain.Caller, input WarehouseReceiptInput) (*TransitionResult, error) {
	if err := caller.Require(domain.RoleWarehouse); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := domain.CheckAmount("unitPrice", input.UnitPrice); err != nil {
		return nil, err
	}
	if input.ActualWeightKg.Valid {
		if err := domain.CheckAmount("actualWeightKg", input.ActualWeightKg.Decimal); err != nil {
			return nil, err
		}
	}
	inspection, err := inspectionInput(input.Inspection)
	if err != nil {
		return nil, err
	}

	deliveryID := normalizeUUID(input.DeliveryID)
	delivery, err := m.store.GetWarehouseDelivery(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get warehouse delivery: %w", err)
	}
	if delivery == nil {
		return nil, fmt.Errorf("warehouse delivery %s: %w", deliveryID, domain.ErrNotFound)
	}
	if err := m.ensureFirst(ctx, deliveryID, domain.CustodyEventWarehouseReceipt); err != nil {
		return nil, err
	}
	if delivery.Status != domain.DeliveryStatusPending {
		return nil, fmt.Errorf("%w: warehouse delivery %s is %s", domain.ErrInvalidTransition, deliveryID, delivery.Status)
	}

	received := delivery.QuantityKg
	if input.ActualWeightKg.Valid {
		received = input.ActualWeightKg.Decimal
	}

	now := m.now()
	lotID := uuid.NewString()
	productID := uuid.NewString()
	t := transition{
		eventID:    uuid.NewString(),
		eventType:  domain.CustodyEventWarehouseReceipt,
		subjectID:  deliveryID,
		harvestID:  delivery.HarvestID,
		actorID:    caller.ID,
		occurredAt: now,
		payload: warehouseReceiptPayload{
			EventType:       domain.CustodyEventWarehouseReceipt,
			HarvestID:       delivery.HarvestID,
			DeliveryID:      deliveryID,
			TransportJobID:  delivery.TransportJobID,
			ReceivedBy:      caller.ID,
			DeclaredKg:      delivery.QuantityKg,
			ReceivedKg:      received,
			QualityGrade:    input.QualityGrade,
			UnitPrice:       input.UnitPrice,
			StorageLocation: input.StorageLocation,
			LotID:           lotID,
			ProductID:       productID,
			Timestamp:       now,
		},
	}

	a, err := m.anchor(ctx, t)
	if err != nil {
		return nil, err
	}

	err = m.commit(ctx, a, func(ctx context.Context, event store.CustodyEventInput) error {
		_, err := m.store.CommitWarehouseReceipt(ctx, store.CommitWarehouseReceiptInput{
			Event:           event,
			DeliveryID:      deliveryID,
			ReceivedBy:      caller.ID,
			ReceivedAt:      now,
			ActualWeightKg:  input.ActualWeightKg,
			QualityGrade:    input.QualityGrade,
			StorageLocation: input.StorageLocation,
			UnitPrice:       input.UnitPrice,
			LotID:           lotID,
			ProductID:       productID,
			Inspection:      inspection,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateAll(ctx, m.cache,
		cache.NamespaceDeliveries, cache.NamespaceProducts, cache.NamespaceInventory, cache.NamespaceInspections)

	variance := domain.WeightVariancePercent(delivery.QuantityKg, received)
	result := a.result()
	result.DeliveryID = deliveryID
	result.LotID = lotID
	result.ProductID = productID
	result.InspectionID = inspection.ID
	result.WeightVariancePct = &variance
	return result, nil
}

// inspectionInput checks the optional inspection of a receipt and defaults it to APPROVED
func inspectionInput(in *InspectionInput) (store.InspectionInput, error) {
	out := store.InspectionInput{
		ID:     uuid.NewString(),
		Status: domain.InspectionStatusApproved,
	}
	if in == nil {
		return out, nil
	}

	percentages := []struct {
		field string
		value decimal.NullDecimal
	}{
		{"inspection.moistureContent", in.MoistureContent},
		{"inspection.purityLevel", in.PurityLevel},
		{"inspection.foreignMatter", in.ForeignMatter},
	}
	for _, p := range percentages {
		if !p.value.Valid {
			continue
		}
		if p.value.Decimal.IsNegative() || p.value.Decimal.GreaterThan(maxPercent) {
			return out, domain.NewValidationError(p.field, "must be between 0 and 100")
		}
		if !p.value.Decimal.Equal(p.value.Decimal.Round(domain.VARIANCE_DECIMAL_PLACES)) {
			return out, domain.NewValidationError(p.field, "must have at most 2 decimal places")
		}
	}

	if in.Status != "" {
		out.Status = in.Status
	}
	out.MoistureContent = in.MoistureContent
	out.PurityLevel = in.PurityLevel
	out.ForeignMatter = in.ForeignMatter
	out.Notes = in.Notes
	return out, nil
}

var maxPercent = decimal.NewFromInt(100)

// GetProvenance returns the custody chain of a batch with each event re-verified
func (m *manager) GetProvenance(ctx context.Context, caller domain.Caller, harvestID string) (*Provenance, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	id, err := parseUUID("harvestId", harvestID)
	if err != nil {
		return nil, err
	}

	batch, err := m.store.GetHarvestBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get harvest batch: %w", err)
	}
	if batch == nil {
		return nil, fmt.Errorf("harvest batch %s: %w", id, domain.ErrNotFound)
	}

	events, err := m.store.GetCustodyEventsByHarvestID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get custody events: %w", err)
	}

	provenance := &Provenance{
		Harvest:  toHarvestView(batch),
		Events:   make([]ProvenanceEvent, 0, len(events)),
		Verified: true,
	}
	for _, e := range events {
		verified := canonical.VerifyJSON(e.Payload, e.Fingerprint)
		if !verified {
			provenance.Verified = false
			logger.WarnCtx(ctx, "Custody event failed verification",
				zap.String("eventID", e.ID),
				zap.String("harvestID", id))
		}
		provenance.Events = append(provenance.Events, ProvenanceEvent{
			ID:            e.ID,
			EventType:     e.EventType,
			SubjectID:     e.SubjectID,
			ActorID:       e.ActorID,
			Fingerprint:   e.Fingerprint,
			ChannelID:     e.ChannelID,
			TransactionID: e.TxID,
			OccurredAt:    e.OccurredAt,
			Payload:       []byte(e.Payload),
			Verified:      verified,
		})
	}

	return provenance, nil
}

// VerifyEvent re-hashes the stored payload of a custody event
func (m *manager) VerifyEvent(ctx context.Context, caller domain.Caller, eventID string) (*Verification, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	id, err := parseUUID("eventId", eventID)
	if err != nil {
		return nil, err
	}

	event, err := m.store.GetCustodyEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get custody event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("custody event %s: %w", id, domain.ErrNotFound)
	}

	verification := &Verification{
		EventID:     event.ID,
		EventType:   event.EventType,
		Fingerprint: event.Fingerprint,
	}

	canonicalBytes, err := canonical.CanonicalizeJSON(event.Payload)
	if err != nil {
		logger.WarnCtx(ctx, "Stored custody payload is not canonicalizable", zap.String("eventID", id), zap.Error(err))
		return verification, nil
	}
	verification.Recomputed = canonical.Hash(canonicalBytes)
	verification.Verified = canonical.VerifyJSON(event.Payload, event.Fingerprint)

	return verification, nil
}

// ListWarehouseDeliveries lists deliveries for warehouse staff
func (m *manager) ListWarehouseDeliveries(ctx context.Context, caller domain.Caller, status domain.DeliveryStatus) ([]DeliveryView, error) {
	if err := caller.Require(domain.RoleWarehouse, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if status != "" && status != domain.DeliveryStatusPending && status != domain.DeliveryStatusCompleted {
		return nil, domain.NewValidationError("status", "must be one of PENDING COMPLETED")
	}

	query := struct {
		Status domain.DeliveryStatus `json:"status"`
	}{Status: status}

	return cache.GetOrLoad(ctx, m.cache, cache.NamespaceDeliveries, query, func(ctx context.Context) ([]DeliveryView, error) {
		deliveries, err := m.store.GetWarehouseDeliveries(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to get warehouse deliveries: %w", err)
		}

		views := make([]DeliveryView, 0, len(deliveries))
		for _, d := range deliveries {
			views = append(views, DeliveryView{
				ID:             d.ID,
				HarvestID:      d.HarvestID,
				TransportJobID: d.TransportJobID,
				QuantityKg:     d.QuantityKg,
				ActualWeightKg: d.ActualWeightKg,
				QualityGrade:   d.QualityGrade,
				ReceivedBy:     d.ReceivedBy,
				ReceivedAt:     d.ReceivedAt,
				Status:         d.Status,
				CreatedAt:      d.CreatedAt,
			})
		}
		return views, nil
	})
}

// ListInventoryLots lists warehouse stock, newest first
func (m *manager) ListInventoryLots(ctx context.Context, caller domain.Caller, status domain.InventoryStatus) ([]InventoryLotView, error) {
	if err := caller.Require(domain.RoleWarehouse, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if status != "" && status != domain.InventoryStatusInStock && status != domain.InventoryStatusDepleted {
		return nil, domain.NewValidationError("status", "must be one of IN_STOCK DEPLETED")
	}

	query := struct {
		Status domain.InventoryStatus `json:"status"`
	}{Status: status}

	return cache.GetOrLoad(ctx, m.cache, cache.NamespaceInventory, query, func(ctx context.Context) ([]InventoryLotView, error) {
		lots, err := m.store.GetInventoryLots(ctx, status)
		if err != nil {
			return nil, fmt.Errorf("failed to get inventory lots: %w", err)
		}

		views := make([]InventoryLotView, 0, len(lots))
		for _, l := range lots {
			views = append(views, InventoryLotView{
				ID:              l.ID,
				DeliveryID:      l.DeliveryID,
				HarvestID:       l.HarvestID,
				CropType:        l.CropType,
				QuantityKg:      l.QuantityKg,
				AvailableKg:     l.AvailableKg,
				QualityGrade:    l.QualityGrade,
				StorageLocation: l.StorageLocation,
				Status:          l.Status,
				ReceivedAt:      l.CreatedAt,
			})
		}
		return views, nil
	})
}

// ListInspections lists the inspection history, newest first
func (m *manager) ListInspections(ctx context.Context, caller domain.Caller, query InspectionQuery) ([]InspectionView, error) {
	if err := caller.Require(domain.RoleWarehouse, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if err := domain.ValidateStruct(query); err != nil {
		return nil, err
	}

	filter := store.InspectionFilter{
		Status: query.Status,
		Search: query.Search,
		Limit:  query.Limit,
	}
	if query.From != nil {
		from := query.From.UTC()
		filter.Since = &from
	}
	if query.To != nil {
		// To is a calendar day and inclusive
		until := query.To.UTC().AddDate(0, 0, 1)
		filter.Until = &until
	}
	if filter.Since != nil && filter.Until != nil && !filter.Since.Before(*filter.Until) {
		return nil, domain.NewValidationError("to", "must not be before from")
	}

	return cache.GetOrLoad(ctx, m.cache, cache.NamespaceInspections, query, func(ctx context.Context) ([]InspectionView, error) {
		inspections, err := m.store.GetQualityInspections(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to get quality inspections: %w", err)
		}

		views := make([]InspectionView, 0, len(inspections))
		for _, i := range inspections {
			views = append(views, InspectionView{
				ID:                i.ID,
				DeliveryID:        i.DeliveryID,
				HarvestID:         i.HarvestID,
				CropType:          i.CropType,
				ExpectedWeightKg:  i.ExpectedWeightKg,
				ActualWeightKg:    i.ActualWeightKg,
				WeightVariancePct: i.WeightVariancePct,
				Status:            i.Status,
				InspectorID:       i.InspectorID,
				MoistureContent:   i.MoistureContent,
				PurityLevel:       i.PurityLevel,
				ForeignMatter:     i.ForeignMatter,
				QualityGrade:      i.QualityGrade,
				Notes:             i.Notes,
				InspectedAt:       i.InspectedAt,
			})
		}
		return views, nil
	})
}

// GetReportStats summarises the inspections taken since the start of the period
func (m *manager) GetReportStats(ctx context.Context, caller domain.Caller, period domain.ReportPeriod) (*ReportStats, error) {
	if err := caller.Require(domain.RoleWarehouse, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if period == "" {
		period = domain.ReportPeriod30Days
	}

	now := m.now()
	start, err := period.Start(now)
	if err != nil {
		return nil, err
	}

	query := struct {
		Period domain.ReportPeriod `json:"period"`
		Start  time.Time           `json:"start"`
	}{Period: period, Start: start}

	return cache.GetOrLoad(ctx, m.cache, cache.NamespaceInspections, query, func(ctx context.Context) (*ReportStats, error) {
		stats, err := m.store.GetInspectionStats(ctx, start)
		if err != nil {
			return nil, fmt.Errorf("failed to get inspection stats: %w", err)
		}

		rate := decimal.Zero
		if stats.Total > 0 {
			rate = decimal.NewFromInt(stats.Approved).Mul(maxPercent).DivRound(decimal.NewFromInt(stats.Total), 1)
		}

		return &ReportStats{
			TotalInspections:  stats.Total,
			Approved:          stats.Approved,
			Conditional:       stats.Conditional,
			ApprovalRate:      rate,
			AvgWeightVariance: stats.AvgAbsVariancePct.Round(1),
			Period:            period,
			DateRange: DateRange{
				Start: start.Format(time.DateOnly),
				End:   now.Format(time.DateOnly),
			},
		}, nil
	})
}

// routeDistance sums pickup -> route -> delivery, rounded to metres
func routeDistance(job *schema.TransportJob, route []domain.GeoPoint, delivery *domain.GeoPoint) float64 {
	points := make([]domain.GeoPoint, 0, len(route)+2)
	if job.PickupLat != nil && job.PickupLong != nil {
		points = append(points, domain.GeoPoint{Lat: *job.PickupLat, Long: *job.PickupLong})
	}
	points = append(points, route...)
	if delivery != nil {
		points = append(points, *delivery)
	}

	return math.Round(domain.RouteDistanceKm(points)*1000) / 1000
}

func toHarvestView(b *schema.HarvestBatch) HarvestView {
	photos := []string(b.PhotoURLs)
	if photos == nil {
		photos = []string{}
	}
	return HarvestView{
		ID:                b.ID,
		ProducerID:        b.ProducerID,
		CropType:          b.CropType,
		EstimatedWeightKg: b.EstimatedWeightKg,
		GPSLat:            b.GPSLat,
		GPSLong:           b.GPSLong,
		PhotoURLs:         photos,
		HarvestDate:       b.HarvestDate,
		Status:            b.Status,
		CreatedAt:         b.CreatedAt,
	}
}

// normalizeUUID lowercases an already validated UUID so subject keys are stable
func normalizeUUID(id string) string {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return id
	}
	return parsed.String()
}

func parseUUID(field, id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", domain.NewValidationError(field, "must be a UUID")
	}
	return parsed.String(), nil
}
