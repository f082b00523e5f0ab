package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Directory sources
const (
	DirectoryMemory   = "memory"
	DirectoryPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken        string
	CashPool        decimal.Decimal
	DirectorySource string
	MigrationsPath  string
	Database        DatabaseConfig
	Receipt         ReceiptConfig
	Session         SessionConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// ReceiptConfig holds the bank details printed on receipts
type ReceiptConfig struct {
	BankName     string
	BranchName   string
	SupportPhone string
}

// SessionConfig holds idle session expiry and cash monitoring settings
type SessionConfig struct {
	IdleTimeout      time.Duration
	SweepInterval    time.Duration
	CashLowWatermark decimal.Decimal
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cashPool, err := getDecimal("ATM_CASH_POOL", "100000")
	if err != nil {
		return nil, err
	}
	watermark, err := getDecimal("CASH_LOW_WATERMARK", "10000")
	if err != nil {
		return nil, err
	}
	idleTimeout, err := getDuration("SESSION_IDLE_TIMEOUT", "2m")
	if err != nil {
		return nil, err
	}
	sweepInterval, err := getDuration("SESSION_SWEEP_INTERVAL", "30s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		CashPool:        cashPool,
		DirectorySource: getEnv("DIRECTORY_SOURCE", DirectoryMemory),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "file://migrations"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "atm"),
			User:     getEnv("DB_USER", "atm"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		Receipt: ReceiptConfig{
			BankName:     getEnv("BANK_NAME", "ABC Bank Ltd."),
			BranchName:   getEnv("BRANCH_NAME", "Downtown Branch"),
			SupportPhone: getEnv("SUPPORT_PHONE", "1800-123-4567"),
		},
		Session: SessionConfig{
			IdleTimeout:      idleTimeout,
			SweepInterval:    sweepInterval,
			CashLowWatermark: watermark,
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.CashPool.IsNegative() {
		return nil, fmt.Errorf("ATM_CASH_POOL cannot be negative")
	}
	if cfg.Session.IdleTimeout <= 0 || cfg.Session.SweepInterval <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT and SESSION_SWEEP_INTERVAL must be positive")
	}

	switch cfg.DirectorySource {
	case DirectoryMemory:
	case DirectoryPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for the postgres directory")
		}
	default:
		return nil, fmt.Errorf("DIRECTORY_SOURCE must be %q or %q, got %q",
			DirectoryMemory, DirectoryPostgres, cfg.DirectorySource)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(getEnv(key, defaultValue))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s is not a number: %w", key, err)
	}
	return value, nil
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%s is not a duration: %w", key, err)
	}
	return value, nil
}
