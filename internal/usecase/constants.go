package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// SnapshotCacheTTL bounds staleness of cached wallet snapshots; every
	// ledger post also invalidates the cached snapshot explicitly.
	SnapshotCacheTTL = 30 * time.Second
)
