package config

import (
	"errors"
	"fmt"
	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"io/fs"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Ledger   LedgerConfig
	Notify   NotifyConfig
	Admin    AdminConfig

	SecretKey  string `env:"APP_SECRET_KEY,default=ChangeMe"`
	LogVerbose bool   `env:"APP_VERBOSE,default=0"`
	LogPretty  bool   `env:"APP_PRETTY,default=0"`
}

type ServerConfig struct {
	Listen       string        `env:"RUN_ADDRESS,default=localhost:8088"`
	TimeoutRead  time.Duration `env:"SERVER_TIMEOUT_READ,default=5s"`
	TimeoutWrite time.Duration `env:"SERVER_TIMEOUT_WRITE,default=10s"`
	TimeoutIdle  time.Duration `env:"SERVER_TIMEOUT_IDLE,default=1m"`
}

// DatabaseConfig selects the storage backend: an empty DSN runs on the in-memory store.
type DatabaseConfig struct {
	DSN         string `env:"DATABASE_URI,default="`
	TxAttempts  int    `env:"DATABASE_TX_ATTEMPTS,default=3"`
	MaxOpenConn int    `env:"DATABASE_MAX_OPEN_CONNS,default=25"`
}

// RedisConfig enables redis-backed sessions when Addr is not empty.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,default="`
	Password string `env:"REDIS_PASSWORD,default="`
	DB       int    `env:"REDIS_DB,default=0"`
}

type LedgerConfig struct {
	// MinDeposit is the smallest amount accepted by deposit requests and admin deposits.
	MinDeposit int64  `env:"LEDGER_MIN_DEPOSIT,default=10000"`
	Currency   string `env:"LEDGER_CURRENCY,default=VND"`
}

type NotifyConfig struct {
	URL         string        `env:"NOTIFY_URL,default="`
	Workers     int           `env:"NOTIFY_WORKERS,default=0"`
	QueueSize   int           `env:"NOTIFY_QUEUE_SIZE,default=128"`
	MaxAttempts int           `env:"NOTIFY_MAX_ATTEMPTS,default=5"`
	RetryDelay  time.Duration `env:"NOTIFY_RETRY_DELAY,default=1s"`
}

// AdminConfig seeds the first administrator on startup when both Email and Password are set.
// Email also receives operator notifications.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL,default="`
	Password string `env:"ADMIN_PASSWORD,default="`
	Name     string `env:"ADMIN_NAME,default=Administrator"`
}

// New config constructor
func New() Config {
	return Config{}
}

// Load config from environment and from .env file (if exists) and from flags
func (cfg *Config) Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".env load: %w", err)
	}

	if err := envdecode.StrictDecode(cfg); err != nil {
		return fmt.Errorf("env decode: %w", err)
	}

	pflag.StringVarP(&cfg.Server.Listen, "listen-addr", "a", cfg.Server.Listen, "Server address to listen on")
	pflag.StringVarP(&cfg.Database.DSN, "database-uri", "d", cfg.Database.DSN, "Database URI")
	pflag.StringVarP(&cfg.Redis.Addr, "redis-addr", "r", cfg.Redis.Addr, "Redis address for sessions")
	pflag.StringVarP(&cfg.Notify.URL, "notify-url", "n", cfg.Notify.URL, "Operator notification webhook base URL")
	pflag.Int64VarP(&cfg.Ledger.MinDeposit, "min-deposit", "m", cfg.Ledger.MinDeposit, "Minimum deposit amount")
	pflag.BoolVarP(&cfg.LogVerbose, "verbose", "v", cfg.LogVerbose, "Verbose output")
	pflag.BoolVarP(&cfg.LogPretty, "pretty", "p", cfg.LogPretty, "Pretty output")
	pflag.Parse()

	return cfg.Validate()
}

// Validate policy values that have no safe fallback
func (cfg *Config) Validate() error {
	if cfg.Ledger.MinDeposit <= 0 {
		return fmt.Errorf("ledger min deposit must be positive, got %d", cfg.Ledger.MinDeposit)
	}
	if cfg.Ledger.Currency == "" {
		return errors.New("ledger currency is empty")
	}
	if cfg.Database.TxAttempts < 1 {
		return fmt.Errorf("database tx attempts must be at least 1, got %d", cfg.Database.TxAttempts)
	}
	if cfg.Notify.QueueSize < 1 {
		return fmt.Errorf("notify queue size must be at least 1, got %d", cfg.Notify.QueueSize)
	}
	return nil
}

// MinDepositAmount returns the deposit floor as a decimal
func (c LedgerConfig) MinDepositAmount() decimal.Decimal {
	return decimal.NewFromInt(c.MinDeposit)
}
