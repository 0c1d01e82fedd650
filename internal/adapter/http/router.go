package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/servly/prosettle/internal/adapter/http/handler"
	"github.com/servly/prosettle/internal/adapter/http/middleware"
	"github.com/servly/prosettle/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	SettlementHandler *handler.SettlementHandler
	WalletHandler     *handler.WalletHandler
	WithdrawalHandler *handler.WithdrawalHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	Logging           *middleware.LoggingMiddleware
	RateLimiter       *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Settlement
		r.Route("/orders", func(r chi.Router) {
			r.Post("/completed", cfg.SettlementHandler.OrderCompleted)
			r.Get("/{id}/fee", cfg.SettlementHandler.GetFee)
		})

		// Withdrawals
		r.Post("/withdrawals", cfg.WithdrawalHandler.Create)

		// Professional wallets
		r.Route("/professionals/{id}", func(r chi.Router) {
			r.Get("/wallet", cfg.WalletHandler.GetWallet)
			r.Get("/eligibility", cfg.WalletHandler.GetEligibility)
			r.Get("/entries", cfg.WalletHandler.ListEntries)
			r.Get("/counters", cfg.WalletHandler.ListCounters)
			r.Get("/reconciliation", cfg.WalletHandler.Reconcile)
		})
	})

	return r
}
