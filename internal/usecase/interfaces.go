package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
)

// CounterRepository defines data access for daily progressive counters.
type CounterRepository interface {
	// Get reads the counter for (professionalID, day). A missing row is
	// returned as a zero counter, not an error.
	Get(ctx context.Context, tx Transaction, professionalID, day string) (*domain.DailyCounter, error)
	// Increment atomically increments the counter for (professionalID, day),
	// creating it if absent, and returns the new count.
	Increment(ctx context.Context, tx Transaction, professionalID, day string, now time.Time) (int, error)
	ListByProfessional(ctx context.Context, professionalID string, limit, offset int) ([]*domain.DailyCounter, error)
}

// LedgerRepository defines data access for ledger entries.
type LedgerRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ListByProfessional(ctx context.Context, professionalID string, limit, offset int) ([]*domain.LedgerEntry, error)
	// SumByType folds the full entry stream for a professional into
	// per-type totals. Used for reconciliation against the wallet row.
	SumByType(ctx context.Context, professionalID string) (map[domain.EntryType]decimal.Decimal, error)
}

// WalletRepository defines data access for wallet snapshots.
type WalletRepository interface {
	GetByID(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error)
	// GetOrCreateForUpdate locks the wallet row for the duration of the
	// transaction, inserting an empty wallet on first use.
	GetOrCreateForUpdate(ctx context.Context, tx Transaction, professionalID string, now time.Time) (*domain.WalletSnapshot, error)
	UpdateTotals(ctx context.Context, tx Transaction, wallet *domain.WalletSnapshot, updatedAt time.Time) error
}

// DecisionRepository defines data access for fee decisions.
type DecisionRepository interface {
	Create(ctx context.Context, tx Transaction, decision *domain.FeeDecision) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.FeeDecision, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient contention errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
