package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
	"github.com/servly/prosettle/internal/usecase/mocks"
)

func TestReconcileWallet_Balanced(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	entries := []*domain.LedgerEntry{
		{ID: "e1", ProfessionalID: "pro-1", OrderID: "ord-1", Type: domain.EntryTypeEarning, Amount: decimal.NewFromInt(1000), OccurredAt: now, CreatedAt: now},
		{ID: "e2", ProfessionalID: "pro-1", OrderID: "ord-1", Type: domain.EntryTypeCommission, Amount: decimal.NewFromInt(100), OccurredAt: now, CreatedAt: now},
		{ID: "e3", ProfessionalID: "pro-1", Type: domain.EntryTypeWithdrawal, Amount: decimal.NewFromInt(400), OccurredAt: now, CreatedAt: now},
	}

	wallet, _ := walletRepo.GetOrCreateForUpdate(ctx, nil, "pro-1", now)
	for _, e := range entries {
		if err := ledgerRepo.Create(ctx, nil, e); err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
		wallet.Apply(e)
	}
	if err := walletRepo.UpdateTotals(ctx, nil, wallet, now); err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}

	uc := usecase.NewReconciliationUseCase(walletRepo, ledgerRepo)

	res, err := uc.ReconcileWallet(ctx, "pro-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.IsReconciled {
		t.Errorf("expected reconciled wallet, difference %s", res.Difference)
	}
	if !res.StoredBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected stored balance 500, got %s", res.StoredBalance)
	}
	if !res.CalculatedBalance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected calculated balance 500, got %s", res.CalculatedBalance)
	}
}

func TestReconcileWallet_Drift(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	// Stored totals say 1000 earned but the ledger only carries 900.
	wallet, _ := walletRepo.GetOrCreateForUpdate(ctx, nil, "pro-1", now)
	wallet.TotalEarned = decimal.NewFromInt(1000)
	if err := walletRepo.UpdateTotals(ctx, nil, wallet, now); err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}

	entry := &domain.LedgerEntry{ID: "e1", ProfessionalID: "pro-1", OrderID: "ord-1", Type: domain.EntryTypeEarning, Amount: decimal.NewFromInt(900), OccurredAt: now, CreatedAt: now}
	if err := ledgerRepo.Create(ctx, nil, entry); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}

	uc := usecase.NewReconciliationUseCase(walletRepo, ledgerRepo)

	res, err := uc.ReconcileWallet(ctx, "pro-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.IsReconciled {
		t.Error("expected drift to be reported")
	}
	if !res.Difference.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected difference 100, got %s", res.Difference)
	}
}

func TestReconcileWallet_EmptyLedger(t *testing.T) {
	walletRepo := mocks.NewMockWalletRepository()
	ledgerRepo := mocks.NewMockLedgerRepository()
	ctx := context.Background()

	if _, err := walletRepo.GetOrCreateForUpdate(ctx, nil, "pro-1", time.Now().UTC()); err != nil {
		t.Fatalf("failed to seed wallet: %v", err)
	}

	uc := usecase.NewReconciliationUseCase(walletRepo, ledgerRepo)

	res, err := uc.ReconcileWallet(ctx, "pro-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.IsReconciled {
		t.Error("expected empty wallet to reconcile")
	}
}

func TestReconcileWallet_UnknownProfessional(t *testing.T) {
	uc := usecase.NewReconciliationUseCase(mocks.NewMockWalletRepository(), mocks.NewMockLedgerRepository())

	_, err := uc.ReconcileWallet(context.Background(), "pro-missing")
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("expected ErrWalletNotFound, got %v", err)
	}
}
