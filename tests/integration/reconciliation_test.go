package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/tests/testutil"
)

func TestReconciliation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newSettlementStack(t, testDB)

	// Real activity: two settlements and one withdrawal.
	if _, err := stack.settlementUC.OnOrderCompleted(ctx, completedOrder("ord-r1", "pro-recon", 1000)); err != nil {
		t.Fatalf("failed to settle order: %v", err)
	}
	if _, err := stack.settlementUC.OnOrderCompleted(ctx, completedOrder("ord-r2", "pro-recon", 1000)); err != nil {
		t.Fatalf("failed to settle order: %v", err)
	}
	if _, err := stack.withdrawalUC.RequestWithdrawal(ctx, "pro-recon", decimal.NewFromInt(800)); err != nil {
		t.Fatalf("failed to withdraw: %v", err)
	}

	result, err := stack.reconUC.ReconcileWallet(ctx, "pro-recon")
	if err != nil {
		t.Fatalf("failed to reconcile: %v", err)
	}

	// 2000 earned - 190 commission - 800 withdrawn.
	if !result.CalculatedBalance.Equal(decimal.NewFromInt(1010)) {
		t.Errorf("expected calculated balance 1010, got %s", result.CalculatedBalance)
	}
	if !result.IsReconciled {
		t.Errorf("expected wallet to reconcile, difference %s", result.Difference)
	}

	// Tamper with the stored totals behind the ledger's back.
	testDB.SetWalletTotals(ctx, "pro-recon",
		decimal.NewFromInt(2100), decimal.NewFromInt(190), decimal.NewFromInt(800))

	result, err = stack.reconUC.ReconcileWallet(ctx, "pro-recon")
	if err != nil {
		t.Fatalf("failed to reconcile tampered wallet: %v", err)
	}

	if result.IsReconciled {
		t.Error("expected tampered wallet to report drift")
	}
	if !result.Difference.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected difference 100, got %s", result.Difference)
	}
}
