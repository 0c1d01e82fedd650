package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/infrastructure/metrics"
)

// WithdrawalUseCase posts withdrawals against a professional's wallet.
type WithdrawalUseCase struct {
	txManager  TransactionManager
	retrier    Retrier
	ledgerRepo LedgerRepository
	walletRepo WalletRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
	cache      Cache
	metrics    *metrics.Metrics

	minimumRequired decimal.Decimal
}

// WithdrawalConfig holds dependencies for WithdrawalUseCase.
type WithdrawalConfig struct {
	TxManager       TransactionManager
	Retrier         Retrier
	LedgerRepo      LedgerRepository
	WalletRepo      WalletRepository
	OutboxRepo      OutboxRepository
	IDGen           IDGenerator
	Cache           Cache
	Metrics         *metrics.Metrics
	MinimumRequired decimal.Decimal
}

// NewWithdrawalUseCase creates a new WithdrawalUseCase.
func NewWithdrawalUseCase(cfg WithdrawalConfig) *WithdrawalUseCase {
	return &WithdrawalUseCase{
		txManager:       cfg.TxManager,
		retrier:         cfg.Retrier,
		ledgerRepo:      cfg.LedgerRepo,
		walletRepo:      cfg.WalletRepo,
		outboxRepo:      cfg.OutboxRepo,
		idGen:           cfg.IDGen,
		cache:           cfg.Cache,
		metrics:         cfg.Metrics,
		minimumRequired: cfg.MinimumRequired,
	}
}

// WithdrawalResult is the outcome of a posted withdrawal.
type WithdrawalResult struct {
	Entry  *domain.LedgerEntry
	Wallet *domain.WalletSnapshot
}

// RequestWithdrawal validates and posts a withdrawal. Eligibility is
// re-checked under the wallet row lock at post time, so two racing
// requests whose combined amount exceeds the balance cannot both pass.
func (uc *WithdrawalUseCase) RequestWithdrawal(ctx context.Context, professionalID string, amount decimal.Decimal) (*WithdrawalResult, error) {
	if err := domain.ValidateProfessionalID(professionalID); err != nil {
		return nil, err
	}
	if err := domain.ValidateWithdrawalAmount(amount); err != nil {
		return nil, err
	}

	var result *WithdrawalResult
	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.post(ctx, professionalID, amount)
		return err
	})
	if err != nil {
		if uc.metrics != nil && isRejection(err) {
			uc.metrics.WithdrawalsRejected.WithLabelValues(rejectionReason(err)).Inc()
		}
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, snapshotCacheKey(professionalID))
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsPosted.Inc()
		uc.metrics.LedgerEntries.WithLabelValues(string(domain.EntryTypeWithdrawal)).Inc()
	}

	return result, nil
}

func (uc *WithdrawalUseCase) post(ctx context.Context, professionalID string, amount decimal.Decimal) (*WithdrawalResult, error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallet, err := uc.walletRepo.GetOrCreateForUpdate(ctx, tx, professionalID, now)
	if err != nil {
		return nil, err
	}

	if err := wallet.ValidateWithdrawal(amount, uc.minimumRequired); err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		ID:             uc.idGen.Generate(),
		ProfessionalID: professionalID,
		Type:           domain.EntryTypeWithdrawal,
		Amount:         amount,
		OccurredAt:     now,
		CreatedAt:      now,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	if err := uc.ledgerRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	wallet.Apply(entry)
	if err := uc.walletRepo.UpdateTotals(ctx, tx, wallet, now); err != nil {
		return nil, err
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   professionalID,
			AggregateType: domain.AggregateTypeWallet,
			EventType:     domain.EventTypeWithdrawalPosted,
			Payload: domain.WithdrawalPostedEvent{
				EntryID:        entry.ID,
				ProfessionalID: professionalID,
				Amount:         amount.String(),
				BalanceAfter:   wallet.CurrentBalance().String(),
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

	return &WithdrawalResult{Entry: entry, Wallet: wallet}, nil
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrNotEligible) ||
		errors.Is(err, domain.ErrInsufficientBalance) ||
		errors.Is(err, domain.ErrInvalidAmount)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	default:
		return "invalid_amount"
	}
}
