package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(content), 0600)
	require.NoError(t, err)
	return configFile
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 20
  write_timeout: 20
  idle_timeout: 180
database:
  host: localhost
  port: 5432
  read_host: replica
  user: testuser
  password: testpass
  dbname: testdb
redis:
  addr: "redis:6379"
  db: 2
cache:
  ttl: "1m"
rate_limit:
  requests_per_second: 5
  burst: 10
ledger:
  provider: gateway
  channel_scope: global
  gateway:
    base_url: "https://ledger.example.com"
    api_key: "ledger-key"
temporal:
  host_port: "temporal:7233"
  namespace: "production"
auth:
  jwt_public_key: "test-public-key"
  api_keys:
    - "key1"
    - "key2"
settlement:
  payout_enabled: false
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 180, cfg.Server.IdleTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "replica", cfg.Database.ReadHost)
				assert.Equal(t, "redis:6379", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.True(t, cfg.Cache.Enabled) // default
				assert.Equal(t, time.Minute, cfg.Cache.TTL)
				assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 10, cfg.RateLimit.Burst)
				assert.True(t, cfg.RateLimit.EnableLocalFallback) // default
				assert.Equal(t, LedgerProviderGateway, cfg.Ledger.Provider)
				assert.Equal(t, domain.ChannelScopeGlobal, cfg.Ledger.ChannelScope)
				assert.Equal(t, "https://ledger.example.com", cfg.Ledger.Gateway.BaseURL)
				assert.Equal(t, 30*time.Second, cfg.Ledger.Gateway.ReceiptTimeout) // default
				assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "production", cfg.Temporal.Namespace)
				assert.Equal(t, "settlement", cfg.Temporal.SettlementTaskQueue) // default
				assert.Equal(t, "test-public-key", cfg.Auth.JWTPublicKey)
				assert.Equal(t, []string{"key1", "key2"}, cfg.Auth.APIKeys)
				assert.False(t, cfg.Settlement.PayoutEnabled)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)                   // default
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)  // default
				assert.Equal(t, 8080, cfg.Server.Port)       // default
				assert.Equal(t, 10, cfg.Server.ReadTimeout)  // default
				assert.Equal(t, 10, cfg.Server.WriteTimeout) // default
				assert.Equal(t, 120, cfg.Server.IdleTimeout) // default
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 40, cfg.RateLimit.Burst)
				assert.Equal(t, 0.5, cfg.RateLimit.LocalFallbackMultiplier)
				assert.Equal(t, LedgerProviderJetStream, cfg.Ledger.Provider)
				assert.Equal(t, domain.ChannelScopeBatch, cfg.Ledger.ChannelScope)
				assert.Equal(t, "CUSTODY_LEDGER", cfg.Ledger.NATS.StreamName)
				assert.Equal(t, "custody", cfg.Ledger.NATS.SubjectPrefix)
				assert.Equal(t, 2*time.Second, cfg.Ledger.NATS.ReconnectWait)
				assert.Equal(t, 2*time.Hour, cfg.Ledger.NATS.DuplicateWindow)
				assert.True(t, cfg.Settlement.PayoutEnabled)
			},
		},
		{
			name: "unknown ledger provider",
			configFile: `
ledger:
  provider: blockchain
`,
			expectError: true,
		},
		{
			name: "gateway provider without base url",
			configFile: `
ledger:
  provider: gateway
`,
			expectError: true,
		},
		{
			name: "unknown channel scope",
			configFile: `
ledger:
  channel_scope: per-farm
`,
			expectError: true,
		},
		{
			name:        "invalid yaml",
			configFile:  "database: [unterminated",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadWorkerSettlementConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *WorkerSettlementConfig)
	}{
		{
			name: "valid config file",
			configFile: `
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
temporal:
  host_port: "temporal:7233"
  settlement_task_queue: "payouts"
  max_concurrent_activity_execution_size: 5
settlement:
  payout_reference_prefix: "PO-"
`,
			validate: func(t *testing.T, cfg *WorkerSettlementConfig) {
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 10, cfg.Database.MaxOpenConns) // default
				assert.Equal(t, "temporal:7233", cfg.Temporal.HostPort)
				assert.Equal(t, "default", cfg.Temporal.Namespace) // default
				assert.Equal(t, "payouts", cfg.Temporal.SettlementTaskQueue)
				assert.Equal(t, 5, cfg.Temporal.MaxConcurrentActivityExecutionSize)
				assert.Equal(t, float64(20), cfg.Temporal.WorkerActivitiesPerSecond) // default
				assert.Equal(t, 2, cfg.Temporal.MaxConcurrentActivityTaskPollers)     // default
				assert.Equal(t, "PO-", cfg.Settlement.PayoutReferencePrefix)
			},
		},
		{
			name: "defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *WorkerSettlementConfig) {
				assert.Equal(t, "settlement", cfg.Temporal.SettlementTaskQueue)
				assert.Equal(t, "PAYOUT-", cfg.Settlement.PayoutReferencePrefix)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWorkerSettlementConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *SweeperConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  dbname: testdb
fingerprint_audit:
  batch_size: 50
  cycle_interval: "30m"
  worker:
    pool_size: 4
payout_retry:
  enabled: false
  grace_period: "1h"
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.True(t, cfg.FingerprintAudit.Enabled) // default
				assert.Equal(t, 50, cfg.FingerprintAudit.BatchSize)
				assert.Equal(t, 30*time.Minute, cfg.FingerprintAudit.CycleInterval)
				assert.Equal(t, 4, cfg.FingerprintAudit.Worker.WorkerPoolSize)
				assert.False(t, cfg.PayoutRetry.Enabled)
				assert.Equal(t, time.Hour, cfg.PayoutRetry.GracePeriod)
				assert.Equal(t, 5*time.Minute, cfg.PayoutRetry.Interval) // default
				assert.Equal(t, 100, cfg.PayoutRetry.BatchSize)          // default
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime) // default
			},
		},
		{
			name: "defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *SweeperConfig) {
				assert.Equal(t, 500, cfg.FingerprintAudit.BatchSize)
				assert.Equal(t, time.Hour, cfg.FingerprintAudit.CycleInterval)
				assert.Equal(t, 8, cfg.FingerprintAudit.Worker.WorkerPoolSize)
				assert.Equal(t, 15*time.Minute, cfg.PayoutRetry.GracePeriod)
				assert.Equal(t, "settlement", cfg.Temporal.SettlementTaskQueue)
			},
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadSweeperConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSweeperConfig_MissingFile(t *testing.T) {
	_, err := LoadSweeperConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestDatabaseConfig_ReadDSN(t *testing.T) {
	base := DatabaseConfig{
		Host:     "primary",
		Port:     5432,
		User:     "u",
		Password: "p",
		DBName:   "db",
		SSLMode:  "disable",
	}

	assert.Empty(t, base.ReadDSN())

	withReplica := base
	withReplica.ReadHost = "replica"
	assert.Equal(t, "host=replica port=5432 user=u password=p dbname=db sslmode=disable", withReplica.ReadDSN())

	withReplica.ReadPort = 6432
	assert.Equal(t, "host=replica port=6432 user=u password=p dbname=db sslmode=disable", withReplica.ReadDSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	// Restore the process environment after godotenv.Overload writes to it
	for _, key := range []string{
		"AGRICHAIN_DEBUG",
		"AGRICHAIN_DATABASE_HOST",
		"AGRICHAIN_DATABASE_PORT",
		"AGRICHAIN_DATABASE_USER",
		"AGRICHAIN_DATABASE_DBNAME",
		"AGRICHAIN_LEDGER_PROVIDER",
		"AGRICHAIN_LEDGER_GATEWAY_BASE_URL",
		"AGRICHAIN_RATE_LIMIT_REQUESTS_PER_SECOND",
	} {
		t.Setenv(key, os.Getenv(key))
	}

	tmpDir := t.TempDir()
	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	envContent := `AGRICHAIN_DEBUG=true
AGRICHAIN_DATABASE_HOST=env-host
AGRICHAIN_DATABASE_PORT=6432
AGRICHAIN_DATABASE_USER=env-user
AGRICHAIN_DATABASE_DBNAME=env-db
AGRICHAIN_LEDGER_PROVIDER=gateway
AGRICHAIN_LEDGER_GATEWAY_BASE_URL=https://env-ledger.example.com
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	// Per-service overlay wins over the shared file
	serviceEnv := `AGRICHAIN_RATE_LIMIT_REQUESTS_PER_SECOND=7
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.api.local"), []byte(serviceEnv), 0600))

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  user: file-user
  dbname: file-db
rate_limit:
  requests_per_second: 3
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.Equal(t, LedgerProviderGateway, cfg.Ledger.Provider)
	assert.Equal(t, "https://env-ledger.example.com", cfg.Ledger.Gateway.BaseURL)
	assert.Equal(t, 7, cfg.RateLimit.RequestsPerSecond)
}
