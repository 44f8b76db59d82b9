package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/logger"
	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// UseReadReplica routes plain reads to a replica. Transactions and locking reads stay on the primary.
func UseReadReplica(db *gorm.DB, readDSN string) error {
	if strings.TrimSpace(readDSN) == "" {
		return nil
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{postgres.Open(readDSN)},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}

	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// domain kinds raised inside transactions; they are returned untouched
var passthroughErrors = []error{
	domain.ErrNotFound,
	domain.ErrInsufficientInventory,
	domain.ErrInsufficientFunds,
	domain.ErrAlreadyReleased,
	domain.ErrAlreadyCommitted,
	domain.ErrInvalidTransition,
	domain.ErrValidation,
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// wrapError classifies a database error into a domain kind
func wrapError(err error, action string) error {
	if err == nil {
		return nil
	}
	for _, kind := range passthroughErrors {
		if errors.Is(err, kind) {
			return err
		}
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: failed to %s: %w", domain.ErrAlreadyCommitted, action, err)
	}
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrStoreUnavailable, action, err)
}

// primary forces reads to the primary when a read replica is registered
func (s *pgStore) primary(ctx context.Context) *gorm.DB {
	if hasDBResolver(s.db) {
		return s.db.WithContext(ctx).Clauses(dbresolver.Write)
	}
	return s.db.WithContext(ctx)
}

// first loads a single row, returning nil when no row matches
func first[T any](db *gorm.DB, query string, args ...any) (*T, error) {
	var row T
	err := db.Where(query, args...).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// lockFirst loads a single row FOR UPDATE, returning ErrNotFound when no row matches
func lockFirst[T any](tx *gorm.DB, what string, query string, args ...any) (*T, error) {
	var row T
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(query, args...).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", what, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock %s: %w", what, err)
	}
	return &row, nil
}

// =============================================================================
// Ledger channels
// =============================================================================

// GetLedgerChannel retrieves the channel mapped to a scope key
func (s *pgStore) GetLedgerChannel(ctx context.Context, scopeKey string) (*schema.LedgerChannel, error) {
	channel, err := first[schema.LedgerChannel](s.db.WithContext(ctx), "scope_key = ?", scopeKey)
	if err != nil {
		return nil, wrapError(err, "get ledger channel")
	}
	if channel != nil || !hasDBResolver(s.db) {
		return channel, nil
	}

	// Replica can lag behind primary; retry on primary before returning nil.
	channel, err = first[schema.LedgerChannel](s.primary(ctx), "scope_key = ?", scopeKey)
	if err != nil {
		return nil, wrapError(err, "get ledger channel")
	}
	return channel, nil
}

// InsertLedgerChannel inserts the mapping unless the scope key is taken, then returns the stored row.
// The stored row belongs to whichever writer inserted first.
func (s *pgStore) InsertLedgerChannel(ctx context.Context, channel schema.LedgerChannel) (*schema.LedgerChannel, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope_key"}},
		DoNothing: true,
	}).Create(&channel).Error
	if err != nil {
		return nil, wrapError(err, "insert ledger channel")
	}

	stored, err := first[schema.LedgerChannel](s.primary(ctx), "scope_key = ?", channel.ScopeKey)
	if err != nil {
		return nil, wrapError(err, "get ledger channel")
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: ledger channel %s vanished after insert", domain.ErrStoreUnavailable, channel.ScopeKey)
	}

	return stored, nil
}

// =============================================================================
// Custody chain
// =============================================================================

// GetHarvestBatch retrieves a harvest batch by ID
func (s *pgStore) GetHarvestBatch(ctx context.Context, id string) (*schema.HarvestBatch, error) {
	batch, err := first[schema.HarvestBatch](s.primary(ctx), "id = ?", id)
	return batch, wrapError(err, "get harvest batch")
}

// GetTransportJob retrieves a transport job by ID
func (s *pgStore) GetTransportJob(ctx context.Context, id string) (*schema.TransportJob, error) {
	job, err := first[schema.TransportJob](s.primary(ctx), "id = ?", id)
	return job, wrapError(err, "get transport job")
}

// GetTransportJobByHarvestID retrieves the transport job of a batch
func (s *pgStore) GetTransportJobByHarvestID(ctx context.Context, harvestID string) (*schema.TransportJob, error) {
	job, err := first[schema.TransportJob](s.primary(ctx), "harvest_id = ?", harvestID)
	return job, wrapError(err, "get transport job")
}

// GetWarehouseDelivery retrieves a warehouse delivery by ID
func (s *pgStore) GetWarehouseDelivery(ctx context.Context, id string) (*schema.WarehouseDelivery, error) {
	delivery, err := first[schema.WarehouseDelivery](s.primary(ctx), "id = ?", id)
	return delivery, wrapError(err, "get warehouse delivery")
}

// GetWarehouseDeliveries lists warehouse deliveries, newest first
func (s *pgStore) GetWarehouseDeliveries(ctx context.Context, status domain.DeliveryStatus) ([]schema.WarehouseDelivery, error) {
	query := s.db.WithContext(ctx).Model(&schema.WarehouseDelivery{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var deliveries []schema.WarehouseDelivery
	if err := query.Order("created_at DESC").Find(&deliveries).Error; err != nil {
		return nil, wrapError(err, "get warehouse deliveries")
	}

	return deliveries, nil
}

// HasCustodyEvent checks whether the (subject, event type) pair was already committed
func (s *pgStore) HasCustodyEvent(ctx context.Context, subjectID string, eventType domain.CustodyEventType) (bool, error) {
	var count int64
	err := s.primary(ctx).Model(&schema.CustodyEvent{}).
		Where("subject_id = ? AND event_type = ?", subjectID, eventType).
		Count(&count).Error
	if err != nil {
		return false, wrapError(err, "check custody event")
	}

	return count > 0, nil
}

// GetCustodyEvent retrieves a custody event by ID
func (s *pgStore) GetCustodyEvent(ctx context.Context, id string) (*schema.CustodyEvent, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	event, err := first[schema.CustodyEvent](s.db.WithContext(ctx), "id = ?", id)
	return event, wrapError(err, "get custody event")
}

// GetCustodyEventsByHarvestID retrieves the custody chain of a batch
func (s *pgStore) GetCustodyEventsByHarvestID(ctx context.Context, harvestID string) ([]schema.CustodyEvent, error) {
	var events []schema.CustodyEvent
	err := s.db.WithContext(ctx).
		Where("harvest_id = ?", harvestID).
		Order("occurred_at ASC, created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, wrapError(err, "get custody events")
	}

	return events, nil
}

// GetCustodyEventsAfter retrieves the next page of custody events for the audit
func (s *pgStore) GetCustodyEventsAfter(ctx context.Context, cursor AuditCursor, limit int) ([]schema.CustodyEvent, error) {
	query := s.db.WithContext(ctx).Model(&schema.CustodyEvent{})
	if !cursor.CreatedAt.IsZero() {
		query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var events []schema.CustodyEvent
	if err := query.Order("created_at ASC, id ASC").Limit(limit).Find(&events).Error; err != nil {
		return nil, wrapError(err, "get custody events for audit")
	}

	return events, nil
}

func newCustodyEvent(input CustodyEventInput) schema.CustodyEvent {
	return schema.CustodyEvent{
		ID:          input.ID,
		SubjectID:   input.SubjectID,
		EventType:   input.EventType,
		HarvestID:   input.HarvestID,
		ActorID:     input.ActorID,
		Fingerprint: input.Fingerprint,
		ChannelID:   input.ChannelID,
		TxID:        input.TxID,
		Payload:     datatypes.JSON(input.Payload),
		OccurredAt:  input.OccurredAt,
	}
}

// CommitHarvest persists a new batch and its HARVEST event
func (s *pgStore) CommitHarvest(ctx context.Context, input CommitHarvestInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch := input.Batch
		batch.Status = domain.HarvestStatusSubmitted
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to create harvest batch: %w", err)
		}

		event := newCustodyEvent(input.Event)
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create custody event: %w", err)
		}

		return nil
	})

	return wrapError(err, "commit harvest")
}

// CommitTransportStart persists a transport job and its TRANSPORT_START event
func (s *pgStore) CommitTransportStart(ctx context.Context, input CommitTransportStartInput) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batch, err := lockFirst[schema.HarvestBatch](tx, "harvest batch", "id = ?", input.Job.HarvestID)
		if err != nil {
			return err
		}
		if batch.Status != domain.HarvestStatusSubmitted {
			return fmt.Errorf("%w: harvest batch %s is %s", domain.ErrInvalidTransition, batch.ID, batch.Status)
		}

		job := input.Job
		job.Status = domain.TransportJobStatusInTransit
		if err := tx.Create(&job).Error; err != nil {
			return fmt.Errorf("failed to create transport job: %w", err)
		}

		if err := tx.Model(&schema.HarvestBatch{}).
			Where("id = ?", batch.ID).
			Updates(map[string]any{
				"status":     domain.HarvestStatusInTransit,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to update harvest batch: %w", err)
		}

		event := newCustodyEvent(input.Event)
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create custody event: %w", err)
		}

		return nil
	})

	return wrapError(err, "commit transport start")
}

// CommitTransportComplete delivers a job, moves its batch DELIVERED and opens a pending warehouse delivery
func (s *pgStore) CommitTransportComplete(ctx context.Context, input CommitTransportCompleteInput) (*schema.WarehouseDelivery, error) {
	var delivery schema.WarehouseDelivery

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := lockFirst[schema.TransportJob](tx, "transport job", "id = ?", input.JobID)
		if err != nil {
			return err
		}
		if job.TransporterID != input.TransporterID {
			return fmt.Errorf("transport job %s: %w", job.ID, domain.ErrNotFound)
		}
		if job.Status != domain.TransportJobStatusInTransit {
			return fmt.Errorf("%w: transport job %s is %s", domain.ErrInvalidTransition, job.ID, job.Status)
		}

		batch, err := lockFirst[schema.HarvestBatch](tx, "harvest batch", "id = ?", job.HarvestID)
		if err != nil {
			return err
		}
		if batch.Status != domain.HarvestStatusInTransit {
			return fmt.Errorf("%w: harvest batch %s is %s", domain.ErrInvalidTransition, batch.ID, batch.Status)
		}

		now := time.Now()
		if err := tx.Model(&schema.TransportJob{}).
			Where("id = ?", job.ID).
			Updates(map[string]any{
				"status":               domain.TransportJobStatusDelivered,
				"actual_delivery_time": input.ActualDeliveryTime,
				"delivery_lat":         input.DeliveryLat,
				"delivery_long":        input.DeliveryLong,
				"distance_km":          input.DistanceKm,
				"updated_at":           now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update transport job: %w", err)
		}

		if err := tx.Model(&schema.HarvestBatch{}).
			Where("id = ?", batch.ID).
			Updates(map[string]any{
				"status":     domain.HarvestStatusDelivered,
				"updated_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to update harvest batch: %w", err)
		}

		delivery = schema.WarehouseDelivery{
			ID:             input.DeliveryID,
			HarvestID:      batch.ID,
			TransportJobID: job.ID,
			QuantityKg:     batch.EstimatedWeightKg,
			Status:         domain.DeliveryStatusPending,
		}
		if err := tx.Create(&delivery).Error; err != nil {
			return fmt.Errorf("failed to create warehouse delivery: %w", err)
		}

		event := newCustodyEvent(input.Event)
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create custody event: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, wrapError(err, "commit transport complete")
	}

	return &delivery, nil
}

// CommitWarehouseReceipt completes a delivery and creates its inventory lot and product listing
func (s *pgStore) CommitWarehouseReceipt(ctx context.Context, input CommitWarehouseReceiptInput) (*WarehouseReceiptResult, error) {
	var result WarehouseReceiptResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		delivery, err := lockFirst[schema.WarehouseDelivery](tx, "warehouse delivery", "id = ?", input.DeliveryID)
		if err != nil {
			return err
		}
		if delivery.Status != domain.DeliveryStatusPending {
			return fmt.Errorf("%w: warehouse delivery %s is %s", domain.ErrInvalidTransition, delivery.ID, delivery.Status)
		}

		var batch schema.HarvestBatch
		if err := tx.Where("id = ?", delivery.HarvestID).First(&batch).Error; err != nil {
			return fmt.Errorf("failed to get harvest batch: %w", err)
		}

		// Measured weight wins over the declared one
		quantity := delivery.QuantityKg
		if input.ActualWeightKg.Valid {
			quantity = input.ActualWeightKg.Decimal
		}

		receivedAt := input.ReceivedAt
		receivedBy := input.ReceivedBy
		if err := tx.Model(&schema.WarehouseDelivery{}).
			Where("id = ?", delivery.ID).
			Updates(map[string]any{
				"status":           domain.DeliveryStatusCompleted,
				"actual_weight_kg": input.ActualWeightKg,
				"quality_grade":    input.QualityGrade,
				"received_by":      receivedBy,
				"received_at":      receivedAt,
				"updated_at":       time.Now(),
			}).Error; err != nil {
			return fmt.Errorf("failed to update warehouse delivery: %w", err)
		}
		delivery.Status = domain.DeliveryStatusCompleted
		delivery.ActualWeightKg = input.ActualWeightKg
		delivery.QualityGrade = input.QualityGrade
		delivery.ReceivedBy = &receivedBy
		delivery.ReceivedAt = &receivedAt

		status := input.Inspection.Status
		if status == "" {
			status = domain.InspectionStatusApproved
		}
		inspection := schema.QualityInspection{
			ID:                input.Inspection.ID,
			DeliveryID:        delivery.ID,
			HarvestID:         delivery.HarvestID,
			CropType:          batch.CropType,
			ExpectedWeightKg:  delivery.QuantityKg,
			ActualWeightKg:    quantity,
			WeightVariancePct: domain.WeightVariancePercent(delivery.QuantityKg, quantity),
			Status:            status,
			InspectorID:       receivedBy,
			MoistureContent:   input.Inspection.MoistureContent,
			PurityLevel:       input.Inspection.PurityLevel,
			ForeignMatter:     input.Inspection.ForeignMatter,
			QualityGrade:      input.QualityGrade,
			Notes:             input.Inspection.Notes,
			InspectedAt:       receivedAt,
		}
		if inspection.ID == "" {
			inspection.ID = uuid.NewString()
		}
		if err := tx.Create(&inspection).Error; err != nil {
			return fmt.Errorf("failed to create quality inspection: %w", err)
		}

		lot := schema.InventoryLot{
			ID:              input.LotID,
			DeliveryID:      delivery.ID,
			HarvestID:       delivery.HarvestID,
			CropType:        batch.CropType,
			QuantityKg:      quantity,
			AvailableKg:     quantity,
			QualityGrade:    input.QualityGrade,
			StorageLocation: input.StorageLocation,
			Status:          domain.InventoryStatusInStock,
		}
		if err := tx.Create(&lot).Error; err != nil {
			return fmt.Errorf("failed to create inventory lot: %w", err)
		}

		product := schema.Product{
			ID:             input.ProductID,
			InventoryLotID: lot.ID,
			HarvestID:      delivery.HarvestID,
			ProducerID:     batch.ProducerID,
			CropType:       batch.CropType,
			QualityGrade:   input.QualityGrade,
			AvailableKg:    quantity,
			UnitPrice:      input.UnitPrice,
			Status:         domain.ProductStatusAvailable,
		}
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		event := newCustodyEvent(input.Event)
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to create custody event: %w", err)
		}

		result = WarehouseReceiptResult{Delivery: *delivery, Inspection: inspection, Lot: lot, Product: product}
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "commit warehouse receipt")
	}

	return &result, nil
}

// =============================================================================
// Warehouse
// =============================================================================

// GetInventoryLots lists inventory lots, newest first
func (s *pgStore) GetInventoryLots(ctx context.Context, status domain.InventoryStatus) ([]schema.InventoryLot, error) {
	query := s.db.WithContext(ctx).Model(&schema.InventoryLot{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var lots []schema.InventoryLot
	if err := query.Order("created_at DESC, id DESC").Find(&lots).Error; err != nil {
		return nil, wrapError(err, "get inventory lots")
	}

	return lots, nil
}

// GetQualityInspections lists inspections, newest first
func (s *pgStore) GetQualityInspections(ctx context.Context, filter InspectionFilter) ([]schema.QualityInspection, error) {
	query := s.db.WithContext(ctx).Model(&schema.QualityInspection{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Since != nil {
		query = query.Where("inspected_at >= ?", *filter.Since)
	}
	if filter.Until != nil {
		query = query.Where("inspected_at < ?", *filter.Until)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(crop_type) LIKE ? OR CAST(harvest_id AS TEXT) LIKE ? OR CAST(delivery_id AS TEXT) LIKE ?)",
			pattern, pattern, pattern)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var inspections []schema.QualityInspection
	if err := query.Order("inspected_at DESC, id DESC").Find(&inspections).Error; err != nil {
		return nil, wrapError(err, "get quality inspections")
	}

	return inspections, nil
}

// GetInspectionStats aggregates inspections taken at or after since
func (s *pgStore) GetInspectionStats(ctx context.Context, since time.Time) (*InspectionStats, error) {
	var row struct {
		Total       int64
		Approved    int64
		Conditional int64
		AvgVariance decimal.Decimal
	}

	err := s.db.WithContext(ctx).Model(&schema.QualityInspection{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS approved,
			COUNT(*) FILTER (WHERE status = ?) AS conditional,
			COALESCE(AVG(ABS(weight_variance_pct)), 0) AS avg_variance`,
			domain.InspectionStatusApproved, domain.InspectionStatusConditional).
		Where("inspected_at >= ?", since).
		Scan(&row).Error
	if err != nil {
		return nil, wrapError(err, "get inspection stats")
	}

	return &InspectionStats{
		Total:             row.Total,
		Approved:          row.Approved,
		Conditional:       row.Conditional,
		AvgAbsVariancePct: row.AvgVariance.Round(domain.VARIANCE_DECIMAL_PLACES),
	}, nil
}

// =============================================================================
// Reconciliation
// =============================================================================

// CreateReconciliationItem durably records a ledger/local divergence
func (s *pgStore) CreateReconciliationItem(ctx context.Context, item schema.ReconciliationItem) error {
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return wrapError(err, "create reconciliation item")
	}

	logger.WarnCtx(ctx, "Recorded reconciliation item",
		zap.String("id", item.ID),
		zap.String("reason", string(item.Reason)),
		zap.String("subjectID", item.SubjectID),
		zap.String("txID", item.TxID))

	return nil
}

// GetReconciliationItems lists reconciliation items, newest first
func (s *pgStore) GetReconciliationItems(ctx context.Context, filter ReconciliationFilter) ([]schema.ReconciliationItem, error) {
	query := s.db.WithContext(ctx).Model(&schema.ReconciliationItem{})
	if filter.Reason != "" {
		query = query.Where("reason = ?", filter.Reason)
	}
	if filter.SubjectID != "" {
		query = query.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.EventType != "" {
		query = query.Where("event_type = ?", filter.EventType)
	}
	if filter.UnresolvedOnly {
		query = query.Where("resolved_at IS NULL")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var items []schema.ReconciliationItem
	if err := query.Order("created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, wrapError(err, "get reconciliation items")
	}

	return items, nil
}

// ResolveReconciliationItem marks an unresolved item as resolved
func (s *pgStore) ResolveReconciliationItem(ctx context.Context, id, resolvedBy, resolution string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := lockFirst[schema.ReconciliationItem](tx, "reconciliation item", "id = ?", id)
		if err != nil {
			return err
		}
		if item.ResolvedAt != nil {
			return fmt.Errorf("%w: reconciliation item %s already resolved", domain.ErrInvalidTransition, id)
		}

		return tx.Model(&schema.ReconciliationItem{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"resolved_at": time.Now(),
				"resolved_by": resolvedBy,
				"resolution":  resolution,
			}).Error
	})

	return wrapError(err, "resolve reconciliation item")
}

// =============================================================================
// Settlement
// =============================================================================

// GetProducts lists product listings with stock left, newest first
func (s *pgStore) GetProducts(ctx context.Context, filter ProductFilter) ([]schema.Product, error) {
	query := s.db.WithContext(ctx).Model(&schema.Product{}).Where("available_kg > 0")
	if filter.CropType != "" {
		query = query.Where("LOWER(crop_type) = LOWER(?)", filter.CropType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(crop_type) LIKE ? OR LOWER(COALESCE(quality_grade, '')) LIKE ? OR CAST(harvest_id AS TEXT) LIKE ?)",
			pattern, pattern, pattern)
	}

	var products []schema.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, wrapError(err, "get products")
	}

	return products, nil
}

// GetProductByID retrieves a product by ID
func (s *pgStore) GetProductByID(ctx context.Context, id string) (*schema.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	product, err := first[schema.Product](s.db.WithContext(ctx), "id = ?", id)
	return product, wrapError(err, "get product")
}

// CreatePurchase reserves inventory and escrows the buyer's funds.
// Rows are locked product first, then inventory lot, then buyer.
func (s *pgStore) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*PurchaseResult, error) {
	if err := domain.CheckAmount("quantity", input.Quantity); err != nil {
		return nil, err
	}

	var result PurchaseResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the product and check stock
		product, err := lockFirst[schema.Product](tx, "product", "id = ?", input.ProductID)
		if err != nil {
			return err
		}
		if product.Status != domain.ProductStatusAvailable || input.Quantity.GreaterThan(product.AvailableKg) {
			return fmt.Errorf("%w: requested %s kg, %s kg available", domain.ErrInsufficientInventory,
				input.Quantity.String(), product.AvailableKg.String())
		}

		lot, err := lockFirst[schema.InventoryLot](tx, "inventory lot", "id = ?", product.InventoryLotID)
		if err != nil {
			return err
		}

		// 2. Price is always computed here, never taken from the client. The total is rounded
		// up to the stored scale once and that value is used for every row written below.
		total := PurchaseTotal(product.UnitPrice, input.Quantity)

		// 3. Lock the buyer and check funds
		buyer, err := lockFirst[schema.Buyer](tx, "buyer", "id = ?", input.BuyerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: buyer %s has no wallet", domain.ErrInsufficientFunds, input.BuyerID)
			}
			return err
		}
		if buyer.Balance.LessThan(total) {
			return fmt.Errorf("%w: balance %s, total %s", domain.ErrInsufficientFunds,
				buyer.Balance.String(), total.String())
		}

		// 4. Write purchase, inventory, escrow and wallet changes
		now := time.Now()
		purchase := schema.Purchase{
			ID:              uuid.NewString(),
			BuyerID:         buyer.ID,
			ProductID:       product.ID,
			HarvestID:       product.HarvestID,
			Quantity:        input.Quantity,
			UnitPrice:       product.UnitPrice,
			TotalPrice:      total,
			DeliveryAddress: input.DeliveryAddress,
			Status:          domain.PurchaseStatusPending,
			PaymentStatus:   domain.PaymentStatusEscrowed,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}

		if err := adjustStock(tx, product, lot, input.Quantity.Neg(), now); err != nil {
			return err
		}

		escrow := schema.EscrowTransaction{
			ID:              uuid.NewString(),
			PurchaseID:      purchase.ID,
			BuyerID:         buyer.ID,
			Amount:          total,
			EscrowReference: input.EscrowReference,
			Status:          domain.EscrowStatusActive,
		}
		if err := tx.Create(&escrow).Error; err != nil {
			return fmt.Errorf("failed to create escrow transaction: %w", err)
		}

		description := fmt.Sprintf("Escrow payment for %s (Batch: %s)", product.CropType, product.HarvestID)
		if _, err := applyWalletChange(tx, buyer, domain.WalletTransactionEscrow, total.Neg(),
			escrow.EscrowReference, description, &escrow.ID, now); err != nil {
			return err
		}

		result = PurchaseResult{Purchase: purchase, Escrow: escrow}
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "create purchase")
	}

	return &result, nil
}

// PurchaseTotal prices a quantity at the stored scale, rounding fractions of the last place up
func PurchaseTotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity).RoundCeil(domain.AMOUNT_DECIMAL_PLACES)
}

// adjustStock moves the product and its lot by delta, flipping status at zero
func adjustStock(tx *gorm.DB, product *schema.Product, lot *schema.InventoryLot, delta decimal.Decimal, now time.Time) error {
	productAvailable := product.AvailableKg.Add(delta)
	productStatus := domain.ProductStatusAvailable
	if !productAvailable.IsPositive() {
		productStatus = domain.ProductStatusSoldOut
	}
	if err := tx.Model(&schema.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"available_kg": productAvailable,
			"status":       productStatus,
			"updated_at":   now,
		}).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	product.AvailableKg = productAvailable
	product.Status = productStatus

	lotAvailable := lot.AvailableKg.Add(delta)
	lotStatus := domain.InventoryStatusInStock
	if !lotAvailable.IsPositive() {
		lotStatus = domain.InventoryStatusDepleted
	}
	if err := tx.Model(&schema.InventoryLot{}).
		Where("id = ?", lot.ID).
		Updates(map[string]any{
			"available_kg": lotAvailable,
			"status":       lotStatus,
			"updated_at":   now,
		}).Error; err != nil {
		return fmt.Errorf("failed to update inventory lot: %w", err)
	}
	lot.AvailableKg = lotAvailable
	lot.Status = lotStatus

	return nil
}

var maxBalance = decimal.New(1, domain.AMOUNT_INTEGER_DIGITS)

// applyWalletChange moves a locked buyer balance by a signed amount and journals the change
func applyWalletChange(
	tx *gorm.DB,
	buyer *schema.Buyer,
	txType domain.WalletTransactionType,
	amount decimal.Decimal,
	counterparty, description string,
	referenceID *string,
	now time.Time,
) (*schema.WalletTransaction, error) {
	balance := buyer.Balance.Add(amount)
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, change %s", domain.ErrInsufficientFunds, buyer.Balance.String(), amount.String())
	}
	if balance.GreaterThanOrEqual(maxBalance) {
		return nil, domain.NewValidationError("amount", "would push the balance past the storable range")
	}

	if err := tx.Model(&schema.Buyer{}).
		Where("id = ?", buyer.ID).
		Updates(map[string]any{
			"balance":    balance,
			"updated_at": now,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to update buyer balance: %w", err)
	}
	buyer.Balance = balance

	walletTx := schema.WalletTransaction{
		ID:           uuid.NewString(),
		BuyerID:      buyer.ID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balance,
		Counterparty: counterparty,
		Description:  description,
		ReferenceID:  referenceID,
		CreatedAt:    now,
	}
	if err := tx.Create(&walletTx).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet transaction: %w", err)
	}

	return &walletTx, nil
}

// ReleaseEscrow releases an ACTIVE escrow owned by the buyer and completes its purchase
func (s *pgStore) ReleaseEscrow(ctx context.Context, input ReleaseEscrowInput) (*PurchaseResult, error) {
	if _, err := uuid.Parse(input.EscrowID); err != nil {
		return nil, fmt.Errorf("escrow %s: %w", input.EscrowID, domain.ErrNotFound)
	}

	var result PurchaseResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		escrow, err := lockFirst[schema.EscrowTransaction](tx, "escrow", "id = ?", input.EscrowID)
		if err != nil {
			return err
		}
		// Escrows of other buyers are indistinguishable from missing ones
		if escrow.BuyerID != input.BuyerID {
			return fmt.Errorf("escrow %s: %w", input.EscrowID, domain.ErrNotFound)
		}
		if escrow.Status != domain.EscrowStatusActive {
			return fmt.Errorf("%w: escrow %s is %s", domain.ErrAlreadyReleased, escrow.ID, escrow.Status)
		}

		purchase, err := lockFirst[schema.Purchase](tx, "purchase", "id = ?", escrow.PurchaseID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&schema.EscrowTransaction{}).
			Where("id = ?", escrow.ID).
			Updates(map[string]any{
				"status":      domain.EscrowStatusReleased,
				"released_at": now,
				"updated_at":  now,
			}).Error; err != nil {
			return fmt.Errorf("failed to release escrow: %w", err)
		}
		escrow.Status = domain.EscrowStatusReleased
		escrow.ReleasedAt = &now

		if err := tx.Model(&schema.Purchase{}).
			Where("id = ?", purchase.ID).
			Updates(map[string]any{
				"status":         domain.PurchaseStatusCompleted,
				"payment_status": domain.PaymentStatusPaid,
				"completed_at":   now,
				"updated_at":     now,
			}).Error; err != nil {
			return fmt.Errorf("failed to complete purchase: %w", err)
		}
		purchase.Status = domain.PurchaseStatusCompleted
		purchase.PaymentStatus = domain.PaymentStatusPaid
		purchase.CompletedAt = &now

		result = PurchaseResult{Purchase: *purchase, Escrow: *escrow}
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "release escrow")
	}

	return &result, nil
}

// CancelPurchase refunds a pending purchase and restores its inventory
func (s *pgStore) CancelPurchase(ctx context.Context, input CancelPurchaseInput) (*PurchaseResult, error) {
	if _, err := uuid.Parse(input.PurchaseID); err != nil {
		return nil, fmt.Errorf("purchase %s: %w", input.PurchaseID, domain.ErrNotFound)
	}

	var result PurchaseResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		purchase, err := lockFirst[schema.Purchase](tx, "purchase", "id = ?", input.PurchaseID)
		if err != nil {
			return err
		}
		if purchase.BuyerID != input.BuyerID {
			return fmt.Errorf("purchase %s: %w", input.PurchaseID, domain.ErrNotFound)
		}

		escrow, err := lockFirst[schema.EscrowTransaction](tx, "escrow", "purchase_id = ?", purchase.ID)
		if err != nil {
			return err
		}
		if purchase.Status != domain.PurchaseStatusPending || escrow.Status != domain.EscrowStatusActive {
			return fmt.Errorf("%w: purchase %s is %s with escrow %s", domain.ErrAlreadyReleased,
				purchase.ID, purchase.Status, escrow.Status)
		}

		product, err := lockFirst[schema.Product](tx, "product", "id = ?", purchase.ProductID)
		if err != nil {
			return err
		}
		lot, err := lockFirst[schema.InventoryLot](tx, "inventory lot", "id = ?", product.InventoryLotID)
		if err != nil {
			return err
		}
		buyer, err := lockFirst[schema.Buyer](tx, "buyer", "id = ?", purchase.BuyerID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := adjustStock(tx, product, lot, purchase.Quantity, now); err != nil {
			return err
		}

		if err := tx.Model(&schema.EscrowTransaction{}).
			Where("id = ?", escrow.ID).
			Updates(map[string]any{
				"status":      domain.EscrowStatusRefunded,
				"refunded_at": now,
				"updated_at":  now,
			}).Error; err != nil {
			return fmt.Errorf("failed to refund escrow: %w", err)
		}
		escrow.Status = domain.EscrowStatusRefunded
		escrow.RefundedAt = &now

		if err := tx.Model(&schema.Purchase{}).
			Where("id = ?", purchase.ID).
			Updates(map[string]any{
				"status":         domain.PurchaseStatusCancelled,
				"payment_status": domain.PaymentStatusRefunded,
				"cancelled_at":   now,
				"updated_at":     now,
			}).Error; err != nil {
			return fmt.Errorf("failed to cancel purchase: %w", err)
		}
		purchase.Status = domain.PurchaseStatusCancelled
		purchase.PaymentStatus = domain.PaymentStatusRefunded
		purchase.CancelledAt = &now

		description := fmt.Sprintf("Refund for %s (Batch: %s)", product.CropType, product.HarvestID)
		if _, err := applyWalletChange(tx, buyer, domain.WalletTransactionRefund, escrow.Amount,
			escrow.EscrowReference, description, &escrow.ID, now); err != nil {
			return err
		}

		result = PurchaseResult{Purchase: *purchase, Escrow: *escrow}
		return nil
	})
	if err != nil {
		return nil, wrapError(err, "cancel purchase")
	}

	return &result, nil
}

// GetPurchasesByBuyer lists a buyer's purchases, newest first
func (s *pgStore) GetPurchasesByBuyer(ctx context.Context, buyerID string, status domain.PurchaseStatus) ([]schema.Purchase, error) {
	query := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var purchases []schema.Purchase
	if err := query.Order("created_at DESC").Find(&purchases).Error; err != nil {
		return nil, wrapError(err, "get purchases")
	}

	return purchases, nil
}

// GetEscrowsByBuyer lists a buyer's escrows, newest first
func (s *pgStore) GetEscrowsByBuyer(ctx context.Context, buyerID string, status domain.EscrowStatus) ([]schema.EscrowTransaction, error) {
	query := s.db.WithContext(ctx).Where("buyer_id = ?", buyerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var escrows []schema.EscrowTransaction
	if err := query.Order("created_at DESC").Find(&escrows).Error; err != nil {
		return nil, wrapError(err, "get escrows")
	}

	return escrows, nil
}

// GetEscrowByID retrieves an escrow by ID
func (s *pgStore) GetEscrowByID(ctx context.Context, id string) (*schema.EscrowTransaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	escrow, err := first[schema.EscrowTransaction](s.primary(ctx), "id = ?", id)
	return escrow, wrapError(err, "get escrow")
}

// SetPayoutReference stamps the payout reference on an escrow unless one is set
func (s *pgStore) SetPayoutReference(ctx context.Context, escrowID, reference string) (bool, error) {
	now := time.Now()
	result := s.db.WithContext(ctx).Model(&schema.EscrowTransaction{}).
		Where("id = ? AND payout_reference IS NULL", escrowID).
		Updates(map[string]any{
			"payout_reference":   reference,
			"payout_recorded_at": now,
			"updated_at":         now,
		})
	if result.Error != nil {
		return false, wrapError(result.Error, "set payout reference")
	}

	return result.RowsAffected > 0, nil
}

// GetEscrowsAwaitingPayout lists released escrows still missing a payout reference
func (s *pgStore) GetEscrowsAwaitingPayout(ctx context.Context, releasedBefore time.Time, limit int) ([]schema.EscrowTransaction, error) {
	var escrows []schema.EscrowTransaction
	err := s.db.WithContext(ctx).
		Where("status = ? AND payout_reference IS NULL AND released_at < ?", domain.EscrowStatusReleased, releasedBefore).
		Order("released_at ASC, id ASC").
		Limit(limit).
		Find(&escrows).Error
	if err != nil {
		return nil, wrapError(err, "get escrows awaiting payout")
	}

	return escrows, nil
}

// =============================================================================
// Wallets
// =============================================================================

// GetBuyer retrieves a buyer wallet
func (s *pgStore) GetBuyer(ctx context.Context, id string) (*schema.Buyer, error) {
	buyer, err := first[schema.Buyer](s.db.WithContext(ctx), "id = ?", id)
	return buyer, wrapError(err, "get buyer")
}

// GetWalletTransactions lists the latest wallet transactions of a buyer
func (s *pgStore) GetWalletTransactions(ctx context.Context, buyerID string, limit int) ([]schema.WalletTransaction, error) {
	var txs []schema.WalletTransaction
	err := s.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, wrapError(err, "get wallet transactions")
	}

	return txs, nil
}

// CreditBuyer adds funds to a buyer wallet, creating the wallet on first deposit
func (s *pgStore) CreditBuyer(ctx context.Context, input CreditBuyerInput) (*schema.WalletTransaction, error) {
	var walletTx *schema.WalletTransaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&schema.Buyer{ID: input.BuyerID, Balance: decimal.Zero}).Error; err != nil {
			return fmt.Errorf("failed to create buyer: %w", err)
		}

		buyer, err := lockFirst[schema.Buyer](tx, "buyer", "id = ?", input.BuyerID)
		if err != nil {
			return err
		}

		walletTx, err = applyWalletChange(tx, buyer, domain.WalletTransactionDeposit, input.Amount,
			input.Counterparty, input.Description, input.ReferenceID, time.Now())
		return err
	})
	if err != nil {
		return nil, wrapError(err, "credit buyer")
	}

	return walletTx, nil
}
