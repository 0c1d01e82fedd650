package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/servly/prosettle/internal/adapter/http"
	"github.com/servly/prosettle/internal/adapter/http/handler"
	"github.com/servly/prosettle/internal/adapter/http/middleware"
	postgresRepo "github.com/servly/prosettle/internal/adapter/repository/postgres"
	redisRepo "github.com/servly/prosettle/internal/adapter/repository/redis"
	"github.com/servly/prosettle/internal/infrastructure/config"
	"github.com/servly/prosettle/internal/infrastructure/eventpublisher"
	"github.com/servly/prosettle/internal/infrastructure/logger"
	"github.com/servly/prosettle/internal/infrastructure/logging"
	"github.com/servly/prosettle/internal/infrastructure/metrics"
	"github.com/servly/prosettle/internal/infrastructure/postgres"
	"github.com/servly/prosettle/internal/infrastructure/redis"
	"github.com/servly/prosettle/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Settlement policy is static per process; a bad table is a
	// deployment error, so fail fast.
	slabs, err := cfg.SlabTable()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid commission slabs")
	}
	rates, err := cfg.RateSchedule()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid progressive rates")
	}
	minimumRequired, err := cfg.MinimumRequired()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid minimum withdrawal")
	}
	location, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid settlement timezone")
	}

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier()
	counterRepo := postgresRepo.NewCounterRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	walletRepo := postgresRepo.NewWalletRepository(pool)
	decisionRepo := postgresRepo.NewDecisionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	appMetrics := metrics.New()

	// Initialize use cases
	settlementUC := usecase.NewSettlementUseCase(usecase.SettlementConfig{
		TxManager:    txManager,
		Retrier:      retrier,
		CounterRepo:  counterRepo,
		LedgerRepo:   ledgerRepo,
		WalletRepo:   walletRepo,
		DecisionRepo: decisionRepo,
		OutboxRepo:   outboxRepo,
		IDGen:        idGen,
		Cache:        cache,
		Metrics:      appMetrics,
		Slabs:        slabs,
		Rates:        rates,
		Location:     location,
	})
	withdrawalUC := usecase.NewWithdrawalUseCase(usecase.WithdrawalConfig{
		TxManager:       txManager,
		Retrier:         retrier,
		LedgerRepo:      ledgerRepo,
		WalletRepo:      walletRepo,
		OutboxRepo:      outboxRepo,
		IDGen:           idGen,
		Cache:           cache,
		Metrics:         appMetrics,
		MinimumRequired: minimumRequired,
	})
	walletUC := usecase.NewWalletUseCase(walletRepo, ledgerRepo, counterRepo, cache, minimumRequired)
	reconUC := usecase.NewReconciliationUseCase(walletRepo, ledgerRepo)

	// Start the outbox publisher
	publisherCtx, cancelPublisher := context.WithCancel(ctx)
	defer cancelPublisher()

	eventLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat).Logger
	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(eventLogger),
		Logger:     eventLogger,
		Metrics:    appMetrics,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Initialize handlers
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	walletHandler := handler.NewWalletHandler(walletUC, reconUC)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawalUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Rate limiter state grows per client IP; sweep it on a timer.
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-publisherCtx.Done():
				return
			case <-ticker.C:
				rateLimiter.CleanupLimiters()
			}
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SettlementHandler: settlementHandler,
		WalletHandler:     walletHandler,
		WithdrawalHandler: withdrawalHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		Logging:           middleware.NewLoggingMiddleware(log.Logger),
		RateLimiter:       rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	cancelPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
