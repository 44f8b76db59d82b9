package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

const (
	LedgerProviderJetStream = "jetstream"
	LedgerProviderGateway   = "gateway"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds the JetStream ledger connection
type NATSConfig struct {
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	SubjectPrefix   string        `mapstructure:"subject_prefix"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// GatewayConfig holds the HTTP ledger gateway connection
type GatewayConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	SigningSecret       string        `mapstructure:"signing_secret"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
	ReceiptTimeout      time.Duration `mapstructure:"receipt_timeout"`
	ReceiptPollInterval time.Duration `mapstructure:"receipt_poll_interval"`
}

// LedgerConfig selects and configures the ledger provider
type LedgerConfig struct {
	// Provider is "jetstream" or "gateway"
	Provider     string              `mapstructure:"provider"`
	ChannelScope domain.ChannelScope `mapstructure:"channel_scope"`
	NATS         NATSConfig          `mapstructure:"nats"`
	Gateway      GatewayConfig       `mapstructure:"gateway"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds read-through query cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Prefix  string        `mapstructure:"prefix"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-caller API rate limit configuration
type RateLimitConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	RequestsPerSecond   int    `mapstructure:"requests_per_second"`
	Burst               int    `mapstructure:"burst"`
	RedisKeyPrefix      string `mapstructure:"redis_key_prefix"`
	EnableLocalFallback bool   `mapstructure:"enable_local_fallback"`
	// LocalFallbackMultiplier scales the per-replica rate while Redis is down
	LocalFallbackMultiplier float64       `mapstructure:"local_fallback_multiplier"`
	MaxLocalKeys            int           `mapstructure:"max_local_keys"`
	HealthCheckInterval     time.Duration `mapstructure:"health_check_interval"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	SettlementTaskQueue                string  `mapstructure:"settlement_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// SettlementConfig holds escrow payout configuration
type SettlementConfig struct {
	// PayoutEnabled starts the payout workflow after each escrow release
	PayoutEnabled         bool   `mapstructure:"payout_enabled"`
	PayoutReferencePrefix string `mapstructure:"payout_reference_prefix"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey   string   `mapstructure:"jwt_public_key"`
	APIKeys        []string `mapstructure:"api_keys"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Settlement SettlementConfig `mapstructure:"settlement"`
}

// WorkerSettlementConfig holds configuration for the settlement worker
type WorkerSettlementConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Settlement SettlementConfig `mapstructure:"settlement"`
}

// FingerprintAuditSweeperConfig holds configuration for the fingerprint audit sweeper
type FingerprintAuditSweeperConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	BatchSize     int           `mapstructure:"batch_size"`
	CycleInterval time.Duration `mapstructure:"cycle_interval"`
	Worker        WorkerConfig  `mapstructure:"worker"`
}

// PayoutRetrySweeperConfig holds configuration for the payout retry sweeper
type PayoutRetrySweeperConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	BatchSize   int           `mapstructure:"batch_size"`
	GracePeriod time.Duration `mapstructure:"grace_period"`
	Interval    time.Duration `mapstructure:"interval"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig       `mapstructure:",squash"`
	Database         DatabaseConfig                `mapstructure:"database"`
	Temporal         TemporalConfig                `mapstructure:"temporal"`
	FingerprintAudit FingerprintAuditSweeperConfig `mapstructure:"fingerprint_audit"`
	PayoutRetry      PayoutRetrySweeperConfig      `mapstructure:"payout_retry"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("ledger.provider", LedgerProviderJetStream)
	v.SetDefault("ledger.channel_scope", string(domain.ChannelScopeBatch))
	v.SetDefault("ledger.nats.url", "nats://localhost:4222")
	v.SetDefault("ledger.nats.stream_name", "CUSTODY_LEDGER")
	v.SetDefault("ledger.nats.subject_prefix", "custody")
	v.SetDefault("ledger.nats.max_reconnects", 10)
	v.SetDefault("ledger.nats.reconnect_wait", "2s")
	v.SetDefault("ledger.nats.connection_name", "agrichain-api")
	v.SetDefault("ledger.nats.duplicate_window", "2h")
	v.SetDefault("ledger.gateway.request_timeout", "10s")
	v.SetDefault("ledger.gateway.receipt_timeout", "30s")
	v.SetDefault("ledger.gateway.receipt_poll_interval", "500ms")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.settlement_task_queue", "settlement")
	v.SetDefault("settlement.payout_enabled", true)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Ledger.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadWorkerSettlementConfig loads configuration for worker-settlement
func LoadWorkerSettlementConfig(configFile string, envPath string) (*WorkerSettlementConfig, error) {
	v := configureViper("worker-settlement", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.settlement_task_queue", "settlement")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 2)
	v.SetDefault("settlement.payout_reference_prefix", "PAYOUT-")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config WorkerSettlementConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Database.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("fingerprint_audit.enabled", true)
	v.SetDefault("fingerprint_audit.batch_size", 500)
	v.SetDefault("fingerprint_audit.cycle_interval", "1h")
	v.SetDefault("fingerprint_audit.worker.pool_size", 8)
	v.SetDefault("payout_retry.enabled", true)
	v.SetDefault("payout_retry.batch_size", 100)
	v.SetDefault("payout_retry.grace_period", "15m")
	v.SetDefault("payout_retry.interval", "5m")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.settlement_task_queue", "settlement")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("AGRICHAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Cache
		"cache.enabled",
		"cache.prefix",
		"cache.ttl",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.redis_key_prefix",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		"rate_limit.max_local_keys",
		"rate_limit.health_check_interval",
		// Ledger
		"ledger.provider",
		"ledger.channel_scope",
		"ledger.nats.url",
		"ledger.nats.stream_name",
		"ledger.nats.subject_prefix",
		"ledger.nats.max_reconnects",
		"ledger.nats.reconnect_wait",
		"ledger.nats.connection_name",
		"ledger.nats.duplicate_window",
		"ledger.gateway.base_url",
		"ledger.gateway.api_key",
		"ledger.gateway.signing_secret",
		"ledger.gateway.request_timeout",
		"ledger.gateway.receipt_timeout",
		"ledger.gateway.receipt_poll_interval",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.settlement_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Settlement
		"settlement.payout_enabled",
		"settlement.payout_reference_prefix",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		"auth.allowed_origins",
		// Sweepers
		"fingerprint_audit.enabled",
		"fingerprint_audit.batch_size",
		"fingerprint_audit.cycle_interval",
		"fingerprint_audit.worker.pool_size",
		"payout_retry.enabled",
		"payout_retry.batch_size",
		"payout_retry.grace_period",
		"payout_retry.interval",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// Empty when no replica is configured. If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return ""
	}

	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func (c *LedgerConfig) validate() error {
	switch c.Provider {
	case LedgerProviderJetStream:
	case LedgerProviderGateway:
		if c.Gateway.BaseURL == "" {
			return errors.New("ledger.gateway.base_url is required for the gateway provider")
		}
	default:
		return fmt.Errorf("unknown ledger.provider %q", c.Provider)
	}

	switch c.ChannelScope {
	case domain.ChannelScopeBatch, domain.ChannelScopeGlobal:
	default:
		return fmt.Errorf("unknown ledger.channel_scope %q", c.ChannelScope)
	}
	return nil
}
