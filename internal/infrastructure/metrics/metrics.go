package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Settlement metrics
	OrdersSettled      prometheus.Counter
	FeesResolved       *prometheus.CounterVec
	FeeCharged         prometheus.Histogram
	SettlementDuration prometheus.Histogram
	SettlementReplays  prometheus.Counter

	// Ledger metrics
	LedgerEntries *prometheus.CounterVec

	// Withdrawal metrics
	WithdrawalsPosted   prometheus.Counter
	WithdrawalsRejected *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisDuration   *prometheus.HistogramVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Settlement metrics
		OrdersSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prosettle_orders_settled_total",
			Help: "Total number of completed orders settled",
		}),
		FeesResolved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_fees_resolved_total",
				Help: "Total fee decisions by winning method",
			},
			[]string{"method"},
		),
		FeeCharged: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prosettle_fee_charged",
			Help:    "Commission fee amounts charged",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 2000, 5000},
		}),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "prosettle_settlement_duration_seconds",
			Help:    "Duration of order settlement",
			Buckets: prometheus.DefBuckets,
		}),
		SettlementReplays: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prosettle_settlement_replays_total",
			Help: "Total retried completions answered from the stored decision",
		}),

		// Ledger metrics
		LedgerEntries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_ledger_entries_total",
				Help: "Total ledger entries posted by type",
			},
			[]string{"type"},
		),

		// Withdrawal metrics
		WithdrawalsPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "prosettle_withdrawals_posted_total",
			Help: "Total number of withdrawals posted",
		}),
		WithdrawalsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_withdrawals_rejected_total",
				Help: "Total withdrawals rejected by reason",
			},
			[]string{"reason"},
		),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prosettle_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prosettle_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "prosettle_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prosettle_redis_duration_seconds",
				Help:    "Redis operation duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prosettle_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
	}
}
