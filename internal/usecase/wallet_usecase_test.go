package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
	"github.com/servly/prosettle/internal/usecase/mocks"
)

func seedSnapshot(t *testing.T, repo *mocks.MockWalletRepository, professionalID string, earned, commission, withdrawn int64) {
	t.Helper()

	ctx := context.Background()
	now := time.Now().UTC()

	wallet, err := repo.GetOrCreateForUpdate(ctx, nil, professionalID, now)
	if err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}
	wallet.TotalEarned = decimal.NewFromInt(earned)
	wallet.TotalCommission = decimal.NewFromInt(commission)
	wallet.TotalWithdrawn = decimal.NewFromInt(withdrawn)
	if err := repo.UpdateTotals(ctx, nil, wallet, now); err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}
}

func TestWalletGetSnapshot_CacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	walletRepo := mocks.NewMockWalletRepository()
	seedSnapshot(t, walletRepo, "pro-1", 3000, 270, 500)

	uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockLedgerRepository(), mocks.NewMockCounterRepository(), cache, decimal.NewFromInt(500))

	cache.EXPECT().Get(gomock.Any(), "wallet:snapshot:pro-1").Return("", errors.New("redis: nil"))
	cache.EXPECT().Set(gomock.Any(), "wallet:snapshot:pro-1", gomock.Any(), usecase.SnapshotCacheTTL).Return(nil)

	wallet, err := uc.GetSnapshot(context.Background(), "pro-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wallet.CurrentBalance().Equal(decimal.NewFromInt(2230)) {
		t.Errorf("expected balance 2230, got %s", wallet.CurrentBalance())
	}
}

func TestWalletGetSnapshot_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	walletRepo := mocks.NewMockWalletRepository()
	walletRepo.GetByIDFunc = func(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error) {
		t.Fatal("repository must not be hit on cache hit")
		return nil, nil
	}

	uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockLedgerRepository(), mocks.NewMockCounterRepository(), cache, decimal.NewFromInt(500))

	cached := `{"professional_id":"pro-1","total_earned":"3000","total_commission":"270","total_withdrawn":"0","version":3}`
	cache.EXPECT().Get(gomock.Any(), "wallet:snapshot:pro-1").Return(cached, nil)

	wallet, err := uc.GetSnapshot(context.Background(), "pro-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wallet.CurrentBalance().Equal(decimal.NewFromInt(2730)) {
		t.Errorf("expected balance 2730, got %s", wallet.CurrentBalance())
	}
	if wallet.Version != 3 {
		t.Errorf("expected version 3, got %d", wallet.Version)
	}
}

func TestWalletGetSnapshot_CorruptCacheFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCache(ctrl)
	walletRepo := mocks.NewMockWalletRepository()
	seedSnapshot(t, walletRepo, "pro-1", 1000, 100, 0)

	uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockLedgerRepository(), mocks.NewMockCounterRepository(), cache, decimal.NewFromInt(500))

	cache.EXPECT().Get(gomock.Any(), "wallet:snapshot:pro-1").Return("{not json", nil)
	cache.EXPECT().Set(gomock.Any(), "wallet:snapshot:pro-1", gomock.Any(), usecase.SnapshotCacheTTL).Return(nil)

	wallet, err := uc.GetSnapshot(context.Background(), "pro-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !wallet.CurrentBalance().Equal(decimal.NewFromInt(900)) {
		t.Errorf("expected balance 900, got %s", wallet.CurrentBalance())
	}
}

func TestWalletGetSnapshot_NotFound(t *testing.T) {
	uc := usecase.NewWalletUseCase(mocks.NewMockWalletRepository(), mocks.NewMockLedgerRepository(), mocks.NewMockCounterRepository(), nil, decimal.NewFromInt(500))

	_, err := uc.GetSnapshot(context.Background(), "pro-missing")
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}
}

func TestWalletGetEligibility(t *testing.T) {
	tests := []struct {
		name        string
		earned      int64
		withdrawn   int64
		wantPercent string
		eligible    bool
	}{
		{name: "below minimum", earned: 200, wantPercent: "40", eligible: false},
		{name: "exactly at minimum", earned: 500, wantPercent: "100", eligible: true},
		{name: "above minimum capped at 100", earned: 5000, wantPercent: "100", eligible: true},
		{name: "drained wallet", earned: 1000, withdrawn: 1000, wantPercent: "0", eligible: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walletRepo := mocks.NewMockWalletRepository()
			seedSnapshot(t, walletRepo, "pro-1", tt.earned, 0, tt.withdrawn)

			uc := usecase.NewWalletUseCase(walletRepo, mocks.NewMockLedgerRepository(), mocks.NewMockCounterRepository(), nil, decimal.NewFromInt(500))

			e, err := uc.GetEligibility(context.Background(), "pro-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.IsEligible != tt.eligible {
				t.Errorf("expected eligible=%v, got %v", tt.eligible, e.IsEligible)
			}
			want, _ := decimal.NewFromString(tt.wantPercent)
			if !e.EligibilityPercent.Equal(want) {
				t.Errorf("expected percent %s, got %s", tt.wantPercent, e.EligibilityPercent)
			}
		})
	}
}

func TestWalletListEntries_Pagination(t *testing.T) {
	ledgerRepo := mocks.NewMockLedgerRepository()
	var gotLimit, gotOffset int
	ledgerRepo.ListByProfessionalFunc = func(ctx context.Context, professionalID string, limit, offset int) ([]*domain.LedgerEntry, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	uc := usecase.NewWalletUseCase(mocks.NewMockWalletRepository(), ledgerRepo, mocks.NewMockCounterRepository(), nil, decimal.NewFromInt(500))

	if _, err := uc.ListEntries(context.Background(), usecase.ListEntriesInput{ProfessionalID: "pro-1", Limit: 5000, Offset: -1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotLimit != 1000 {
		t.Errorf("expected limit clamped to 1000, got %d", gotLimit)
	}
	if gotOffset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", gotOffset)
	}
}
