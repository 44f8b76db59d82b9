package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn, terminate, err := testDatabaseDSN(ctx)
	if err != nil {
		fmt.Printf("Failed to provision test database: %v\n", err)
		os.Exit(1)
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err == nil {
		err = applySQLFiles(testDB, "init_pg_db.sql", "pg_test_data.sql")
	}
	if err != nil {
		fmt.Printf("Failed to prepare test database: %v\n", err)
		terminate()
		os.Exit(1)
	}

	code := m.Run()
	terminate()
	os.Exit(code)
}

// testDatabaseDSN points at AGRICHAIN_TEST_DB_HOST when set, otherwise at a throwaway container
func testDatabaseDSN(ctx context.Context) (string, func(), error) {
	if host := os.Getenv("AGRICHAIN_TEST_DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			envOr("AGRICHAIN_TEST_DB_PORT", "5432"),
			envOr("AGRICHAIN_TEST_DB_USER", "postgres"),
			envOr("AGRICHAIN_TEST_DB_PASSWORD", "postgres"),
			envOr("AGRICHAIN_TEST_DB_NAME", "agrichain_test"),
		)
		return dsn, func() {}, nil
	}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("agrichain_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("start postgres container: %w", err)
	}

	terminate := func() {
		if err := container.Terminate(context.Background()); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("container connection string: %w", err)
	}
	return dsn, terminate, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// applySQLFiles executes files from db/ in order. Missing files after the first are skipped.
func applySQLFiles(db *gorm.DB, names ...string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	for i, name := range names {
		path := filepath.Join("..", "..", "db", name)
		content, err := os.ReadFile(path) //nolint:gosec,G304
		if err != nil {
			if i > 0 && os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read %s: %w", name, err)
		}
		if _, err := sqlDB.Exec(string(content)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

// initPGTestDB hands each test a store bound to a transaction that is rolled back afterwards
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	return NewPGStore(tx)
}

func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	require.NotNil(t, testDB)

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)

	t.Run("AuditCursor", func(t *testing.T) {
		tx := testDB.Begin()
		require.NoError(t, tx.Error)
		t.Cleanup(func() { tx.Rollback() })

		testAuditCursor(t, tx)
	})

	// Row locks are only observable across separate connections
	t.Run("ConcurrentPurchases", func(t *testing.T) {
		testConcurrentPurchases(t, testDB)
	})
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	tests := []struct {
		name         string
		maxOpen      int
		maxIdle      int
		lifetime     time.Duration
		idleTime     time.Duration
		wantOpen     int
		wantIdle     int
		wantLifetime time.Duration
		wantIdleTime time.Duration
	}{
		{
			name:         "zero values use defaults",
			wantOpen:     20,
			wantIdle:     5,
			wantLifetime: 5 * time.Minute,
			wantIdleTime: 10 * time.Minute,
		},
		{
			name:         "idle clamped to open",
			maxOpen:      3,
			maxIdle:      10,
			lifetime:     time.Minute,
			idleTime:     time.Minute,
			wantOpen:     3,
			wantIdle:     3,
			wantLifetime: time.Minute,
			wantIdleTime: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(tt.maxOpen, tt.maxIdle, tt.lifetime, tt.idleTime)
			require.Equal(t, tt.wantOpen, open)
			require.Equal(t, tt.wantIdle, idle)
			require.Equal(t, tt.wantLifetime, lifetime)
			require.Equal(t, tt.wantIdleTime, idleTime)
		})
	}
}
