package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/infrastructure/metrics"
)

// SettlementUseCase settles completed orders: it resolves the platform
// fee for an order and posts the matching earning and commission ledger
// entries in one transaction.
type SettlementUseCase struct {
	txManager    TransactionManager
	retrier      Retrier
	counterRepo  CounterRepository
	ledgerRepo   LedgerRepository
	walletRepo   WalletRepository
	decisionRepo DecisionRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	cache        Cache
	metrics      *metrics.Metrics

	slabs    *domain.SlabTable
	rates    *domain.RateSchedule
	location *time.Location
}

// SettlementConfig holds dependencies for SettlementUseCase.
type SettlementConfig struct {
	TxManager    TransactionManager
	Retrier      Retrier
	CounterRepo  CounterRepository
	LedgerRepo   LedgerRepository
	WalletRepo   WalletRepository
	DecisionRepo DecisionRepository
	OutboxRepo   OutboxRepository
	IDGen        IDGenerator
	Cache        Cache
	Metrics      *metrics.Metrics
	Slabs        *domain.SlabTable
	Rates        *domain.RateSchedule
	Location     *time.Location
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(cfg SettlementConfig) *SettlementUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &SettlementUseCase{
		txManager:    cfg.TxManager,
		retrier:      cfg.Retrier,
		counterRepo:  cfg.CounterRepo,
		ledgerRepo:   cfg.LedgerRepo,
		walletRepo:   cfg.WalletRepo,
		decisionRepo: cfg.DecisionRepo,
		outboxRepo:   cfg.OutboxRepo,
		idGen:        cfg.IDGen,
		cache:        cfg.Cache,
		metrics:      cfg.Metrics,
		slabs:        cfg.Slabs,
		rates:        cfg.Rates,
		location:     cfg.Location,
	}
}

// OrderCompletedInput describes one completed order reported by the
// order workflow. CompletedAt picks the counter day in the configured
// local timezone.
type OrderCompletedInput struct {
	OrderID        string
	ProfessionalID string
	OrderValue     decimal.Decimal
	CompletedAt    time.Time
}

// SettlementResult is the outcome of settling one order.
type SettlementResult struct {
	Decision *domain.FeeDecision
	Wallet   *domain.WalletSnapshot
	Replayed bool
}

// OnOrderCompleted resolves the fee for a completed order and posts the
// earning and commission entries. The whole unit is idempotent per
// order id: a retry for an already-settled order returns the original
// decision as a no-op, while a retry with different facts is a conflict.
func (uc *SettlementUseCase) OnOrderCompleted(ctx context.Context, input OrderCompletedInput) (*SettlementResult, error) {
	start := time.Now()

	if err := domain.ValidateOrderID(input.OrderID); err != nil {
		return nil, err
	}
	if err := domain.ValidateProfessionalID(input.ProfessionalID); err != nil {
		return nil, err
	}
	if err := domain.ValidateOrderValue(input.OrderValue); err != nil {
		return nil, err
	}

	completedAt := input.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	day := domain.DayKey(completedAt, uc.location)

	var result *SettlementResult
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.settle(ctx, input, day, completedAt)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateLedgerEntry) {
			return uc.replay(ctx, input)
		}
		return nil, err
	}

	uc.invalidateSnapshot(ctx, input.ProfessionalID)

	if uc.metrics != nil {
		uc.metrics.OrdersSettled.Inc()
		uc.metrics.FeesResolved.WithLabelValues(string(result.Decision.Method)).Inc()
		feeFloat, _ := result.Decision.FeeCharged.Float64()
		uc.metrics.FeeCharged.Observe(feeFloat)
		uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *SettlementUseCase) settle(ctx context.Context, input OrderCompletedInput, day string, completedAt time.Time) (*SettlementResult, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Locking the wallet row first serializes all settlement and
	// withdrawal activity for one professional without blocking others.
	wallet, err := uc.walletRepo.GetOrCreateForUpdate(ctx, tx, input.ProfessionalID, now)
	if err != nil {
		return nil, err
	}

	counter, err := uc.counterRepo.Get(ctx, tx, input.ProfessionalID, day)
	if err != nil {
		return nil, err
	}
	ordinal := counter.NextOrdinal()

	rate := uc.rates.RateFor(ordinal)
	progressiveFee := domain.ProgressiveFee(input.OrderValue, rate)

	slab, err := uc.slabs.Lookup(input.OrderValue)
	if err != nil {
		return nil, err
	}

	feeCharged, method := domain.ChooseFee(progressiveFee, slab.MaxCommission)

	decision := &domain.FeeDecision{
		OrderID:         input.OrderID,
		ProfessionalID:  input.ProfessionalID,
		OrderValue:      input.OrderValue,
		Ordinal:         ordinal,
		ProgressiveRate: rate,
		ProgressiveFee:  progressiveFee,
		SlabID:          slab.ID,
		SlabFee:         slab.MaxCommission,
		FeeCharged:      feeCharged,
		Method:          method,
		DecidedAt:       now,
	}

	// The decision insert doubles as the idempotency guard: its primary
	// key is the order id, so a retried completion fails here before any
	// ledger entry is written.
	if err := uc.decisionRepo.Create(ctx, tx, decision); err != nil {
		return nil, err
	}

	earning := &domain.LedgerEntry{
		ID:             uc.idGen.Generate(),
		ProfessionalID: input.ProfessionalID,
		OrderID:        input.OrderID,
		Type:           domain.EntryTypeEarning,
		Amount:         input.OrderValue,
		OccurredAt:     completedAt,
		CreatedAt:      now,
	}
	commission := &domain.LedgerEntry{
		ID:             uc.idGen.Generate(),
		ProfessionalID: input.ProfessionalID,
		OrderID:        input.OrderID,
		Type:           domain.EntryTypeCommission,
		Amount:         feeCharged,
		OccurredAt:     completedAt,
		CreatedAt:      now,
	}

	for _, entry := range []*domain.LedgerEntry{earning, commission} {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if err := uc.ledgerRepo.Create(ctx, tx, entry); err != nil {
			return nil, err
		}
		wallet.Apply(entry)
		if uc.metrics != nil {
			uc.metrics.LedgerEntries.WithLabelValues(string(entry.Type)).Inc()
		}
	}

	if err := uc.walletRepo.UpdateTotals(ctx, tx, wallet, now); err != nil {
		return nil, err
	}

	// Commit the counter only after the fee decision is final, never
	// speculatively; a rollback leaves the ordinal untouched for retry.
	if _, err := uc.counterRepo.Increment(ctx, tx, input.ProfessionalID, day, now); err != nil {
		return nil, err
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   input.OrderID,
			AggregateType: domain.AggregateTypeOrder,
			EventType:     domain.EventTypeOrderSettled,
			Payload: domain.OrderSettledEvent{
				OrderID:        input.OrderID,
				ProfessionalID: input.ProfessionalID,
				OrderValue:     input.OrderValue.String(),
				FeeCharged:     feeCharged.String(),
				Method:         string(method),
				Ordinal:        ordinal,
			}.Payload(),
			CreatedAt: now,
		}
		if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SettlementResult{Decision: decision, Wallet: wallet}, nil
}

// replay handles a retried completion for an already-settled order. A
// retry carrying the same facts is a success-no-op returning the stored
// decision; anything else needs manual reconciliation.
func (uc *SettlementUseCase) replay(ctx context.Context, input OrderCompletedInput) (*SettlementResult, error) {
	existing, err := uc.decisionRepo.GetByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if !existing.Matches(input.ProfessionalID, input.OrderValue) {
		return nil, domain.ErrLedgerConflict
	}

	wallet, err := uc.walletRepo.GetByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementReplays.Inc()
	}

	return &SettlementResult{Decision: existing, Wallet: wallet, Replayed: true}, nil
}

// GetFeeDecision retrieves the persisted fee decision for an order.
func (uc *SettlementUseCase) GetFeeDecision(ctx context.Context, orderID string) (*domain.FeeDecision, error) {
	return uc.decisionRepo.GetByOrderID(ctx, orderID)
}

func (uc *SettlementUseCase) invalidateSnapshot(ctx context.Context, professionalID string) {
	if uc.cache == nil {
		return
	}
	// Best effort: a stale cached snapshot self-expires via its TTL.
	_ = uc.cache.Delete(ctx, snapshotCacheKey(professionalID))
}

func snapshotCacheKey(professionalID string) string {
	return "wallet:snapshot:" + professionalID
}
