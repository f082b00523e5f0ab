package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atm/internal/config"
	"atm/internal/domain"
	"atm/internal/handler"
	"atm/internal/receipt"
	"atm/internal/repository"
	"atm/internal/repository/memory"
	"atm/internal/repository/postgres"
	"atm/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting ATM Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("directory_source", cfg.DirectorySource),
		zap.String("cash_pool", cfg.CashPool.String()),
	)

	// Load the account directory and the cash pool
	machine, err := loadMachine(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load machine", zap.Error(err))
	}

	// Initialize services
	renderer := receipt.NewPDFRenderer(receipt.Layout{
		BankName:     cfg.Receipt.BankName,
		BranchName:   cfg.Receipt.BranchName,
		SupportPhone: cfg.Receipt.SupportPhone,
	})
	authService := service.NewAuthService(machine, logger)
	txService := service.NewTransactionService(machine, renderer, logger)
	statsService := service.NewStatsService(machine, cfg.Session.CashLowWatermark, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, txService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start session expiry job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runSessionJob(ctx, bot, h, statsService, cfg.Session, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// loadMachine builds the machine from the configured directory source
func loadMachine(cfg *config.Config, logger *zap.Logger) (*domain.Machine, error) {
	var repo repository.AccountRepository

	switch cfg.DirectorySource {
	case config.DirectoryPostgres:
		// Connect to database with retries
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		// Accounts are read once; balances live in memory afterwards
		defer db.Close()

		logger.Info("Database connection established")

		if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
			return nil, err
		}

		logger.Info("Database migrations completed")

		repo = postgres.NewAccountRepo(db)
	default:
		repo = memory.NewAccountRepo()
	}

	return service.LoadMachine(repo, cfg.CashPool, logger)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates and seeds the accounts table
func runMigrations(db *sql.DB, sourceURL string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runSessionJob expires idle sessions and reports the cash level periodically
func runSessionJob(
	ctx context.Context,
	bot *tele.Bot,
	h *handler.Handler,
	statsService *service.StatsService,
	cfg config.SessionConfig,
	logger *zap.Logger,
) {
	statsService.ReportCashLevel()

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session job stopped")
			return
		case <-ticker.C:
			for _, userID := range h.ExpireIdleSessions(cfg.IdleTimeout) {
				if _, err := bot.Send(tele.ChatID(userID), handler.SessionTimeoutMessage); err != nil {
					logger.Warn("Failed to notify expired session",
						zap.Error(err),
						zap.Int64("user_id", userID),
					)
				}
			}
			statsService.ReportCashLevel()
		}
	}
}
