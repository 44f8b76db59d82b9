package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Allen-Brian/AGRICHAIN/internal/store/schema"
)

//go:generate mockgen -source=cursor_store.go -destination=../mocks/cursor_store.go -package=mocks -mock_names=CursorStore=MockCursorStore

// CursorStore defines the interface for storing and retrieving audit cursors
type CursorStore interface {
	// GetAuditCursor retrieves the last custody event visited by a named audit
	GetAuditCursor(ctx context.Context, name string) (AuditCursor, error)
	// SetAuditCursor stores the last custody event visited by a named audit
	SetAuditCursor(ctx context.Context, name string, cursor AuditCursor) error
}

type cursorStore struct {
	db *gorm.DB
}

// NewCursorStore creates a new cursor store
func NewCursorStore(db *gorm.DB) CursorStore {
	return &cursorStore{db: db}
}

func auditCursorKey(name string) string {
	return fmt.Sprintf("audit_cursor:%s", name)
}

// GetAuditCursor retrieves the cursor; a zero cursor means start from the beginning
func (s *cursorStore) GetAuditCursor(ctx context.Context, name string) (AuditCursor, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", auditCursorKey(name)).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuditCursor{}, nil
		}
		return AuditCursor{}, fmt.Errorf("failed to get audit cursor: %w", err)
	}

	// Stored as "<created_at RFC3339Nano>|<event id>"
	createdAt, id, ok := strings.Cut(kv.Value, "|")
	if !ok {
		return AuditCursor{}, fmt.Errorf("malformed audit cursor: %q", kv.Value)
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return AuditCursor{}, fmt.Errorf("failed to parse audit cursor: %w", err)
	}

	return AuditCursor{CreatedAt: ts, ID: id}, nil
}

// SetAuditCursor stores the cursor
func (s *cursorStore) SetAuditCursor(ctx context.Context, name string, cursor AuditCursor) error {
	kv := schema.KeyValueStore{
		Key:   auditCursorKey(name),
		Value: cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + cursor.ID,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set audit cursor: %w", err)
	}

	return nil
}
