package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
)

// ReconciliationUseCase verifies wallet totals against the ledger.
// The wallet row is maintained incrementally in the same transaction as
// each ledger append; folding the full entry stream must reproduce it.
type ReconciliationUseCase struct {
	walletRepo WalletRepository
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(walletRepo WalletRepository, ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		walletRepo: walletRepo,
		ledgerRepo: ledgerRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	ProfessionalID    string
	StoredBalance     decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	CheckedAt         time.Time
}

// ReconcileWallet folds the professional's full ledger stream and
// compares the result with the stored running totals.
func (uc *ReconciliationUseCase) ReconcileWallet(ctx context.Context, professionalID string) (*ReconciliationResult, error) {
	if err := domain.ValidateProfessionalID(professionalID); err != nil {
		return nil, err
	}

	wallet, err := uc.walletRepo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	sums, err := uc.ledgerRepo.SumByType(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	calculated := sumOrZero(sums, domain.EntryTypeEarning).
		Sub(sumOrZero(sums, domain.EntryTypeCommission)).
		Sub(sumOrZero(sums, domain.EntryTypeWithdrawal))

	stored := wallet.CurrentBalance()
	diff := stored.Sub(calculated)

	return &ReconciliationResult{
		ProfessionalID:    professionalID,
		StoredBalance:     stored,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		CheckedAt:         time.Now().UTC(),
	}, nil
}

func sumOrZero(sums map[domain.EntryType]decimal.Decimal, t domain.EntryType) decimal.Decimal {
	if v, ok := sums[t]; ok {
		return v
	}
	return decimal.Zero
}
