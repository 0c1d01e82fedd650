package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
)

// WalletUseCase exposes read access to wallet balances, eligibility and
// the ledger entry stream.
type WalletUseCase struct {
	walletRepo  WalletRepository
	ledgerRepo  LedgerRepository
	counterRepo CounterRepository
	cache       Cache

	minimumRequired decimal.Decimal
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	walletRepo WalletRepository,
	ledgerRepo LedgerRepository,
	counterRepo CounterRepository,
	cache Cache,
	minimumRequired decimal.Decimal,
) *WalletUseCase {
	return &WalletUseCase{
		walletRepo:      walletRepo,
		ledgerRepo:      ledgerRepo,
		counterRepo:     counterRepo,
		cache:           cache,
		minimumRequired: minimumRequired,
	}
}

// cachedSnapshot is the cache wire form of a wallet snapshot.
type cachedSnapshot struct {
	ProfessionalID  string `json:"professional_id"`
	TotalEarned     string `json:"total_earned"`
	TotalCommission string `json:"total_commission"`
	TotalWithdrawn  string `json:"total_withdrawn"`
	Version         int64  `json:"version"`
}

// GetSnapshot retrieves the wallet snapshot for a professional.
func (uc *WalletUseCase) GetSnapshot(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error) {
	if err := domain.ValidateProfessionalID(professionalID); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, snapshotCacheKey(professionalID)); err == nil {
			var cached cachedSnapshot
			if json.Unmarshal([]byte(raw), &cached) == nil {
				if w, ok := cached.toDomain(); ok {
					return w, nil
				}
			}
		}
	}

	wallet, err := uc.walletRepo.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(fromDomain(wallet)); err == nil {
			_ = uc.cache.Set(ctx, snapshotCacheKey(professionalID), string(raw), SnapshotCacheTTL)
		}
	}

	return wallet, nil
}

// GetEligibility derives withdrawal eligibility for a professional.
func (uc *WalletUseCase) GetEligibility(ctx context.Context, professionalID string) (*domain.WithdrawalEligibility, error) {
	wallet, err := uc.GetSnapshot(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	e := wallet.Eligibility(uc.minimumRequired)
	return &e, nil
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	ProfessionalID string
	Limit          int
	Offset         int
}

// ListEntries lists ledger entries for a professional, newest first.
func (uc *WalletUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	if err := domain.ValidateProfessionalID(input.ProfessionalID); err != nil {
		return nil, err
	}

	limit, offset := domain.ClampPagination(input.Limit, input.Offset)
	return uc.ledgerRepo.ListByProfessional(ctx, input.ProfessionalID, limit, offset)
}

// ListCounters lists daily counter history for a professional.
func (uc *WalletUseCase) ListCounters(ctx context.Context, input ListEntriesInput) ([]*domain.DailyCounter, error) {
	if err := domain.ValidateProfessionalID(input.ProfessionalID); err != nil {
		return nil, err
	}

	limit, offset := domain.ClampPagination(input.Limit, input.Offset)
	return uc.counterRepo.ListByProfessional(ctx, input.ProfessionalID, limit, offset)
}

func fromDomain(w *domain.WalletSnapshot) cachedSnapshot {
	return cachedSnapshot{
		ProfessionalID:  w.ProfessionalID,
		TotalEarned:     w.TotalEarned.String(),
		TotalCommission: w.TotalCommission.String(),
		TotalWithdrawn:  w.TotalWithdrawn.String(),
		Version:         w.Version,
	}
}

func (c cachedSnapshot) toDomain() (*domain.WalletSnapshot, bool) {
	earned, err1 := decimal.NewFromString(c.TotalEarned)
	commission, err2 := decimal.NewFromString(c.TotalCommission)
	withdrawn, err3 := decimal.NewFromString(c.TotalWithdrawn)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}

	return &domain.WalletSnapshot{
		ProfessionalID:  c.ProfessionalID,
		TotalEarned:     earned,
		TotalCommission: commission,
		TotalWithdrawn:  withdrawn,
		Version:         c.Version,
		UpdatedAt:       time.Time{},
	}, true
}
