package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/adapter/repository/postgres"
	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
	"github.com/servly/prosettle/tests/testutil"
)

// settlementStack wires the use cases against the test database the
// same way cmd/server does, minus redis and metrics.
type settlementStack struct {
	settlementUC *usecase.SettlementUseCase
	withdrawalUC *usecase.WithdrawalUseCase
	walletUC     *usecase.WalletUseCase
	reconUC      *usecase.ReconciliationUseCase

	counterRepo *postgres.CounterRepository
	ledgerRepo  *postgres.LedgerRepository
	walletRepo  *postgres.WalletRepository
	outboxRepo  *postgres.OutboxRepository
}

func newSettlementStack(t *testing.T, testDB *testutil.TestDB) *settlementStack {
	t.Helper()

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	retrier := postgres.NewRetrier()
	counterRepo := postgres.NewCounterRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	walletRepo := postgres.NewWalletRepository(pool)
	decisionRepo := postgres.NewDecisionRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	idGen := postgres.NewULIDGenerator()

	slabs, err := domain.NewSlabTable([]domain.CommissionSlab{
		{ID: "low", MinPrice: decimal.Zero, MaxPrice: decimal.NewFromInt(2000), MaxCommission: decimal.NewFromInt(150)},
		{ID: "mid", MinPrice: decimal.NewFromInt(2000), MaxPrice: decimal.NewFromInt(10000), MaxCommission: decimal.NewFromInt(500)},
		{ID: "high", MinPrice: decimal.NewFromInt(10000), MaxCommission: decimal.NewFromInt(2000), OpenEnded: true},
	})
	if err != nil {
		t.Fatalf("failed to build slab table: %v", err)
	}

	rates, err := domain.NewRateSchedule([]decimal.Decimal{
		decimal.NewFromInt(10), decimal.NewFromInt(9), decimal.NewFromInt(8),
		decimal.NewFromInt(7), decimal.NewFromInt(6), decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("failed to build rate schedule: %v", err)
	}

	minimum := decimal.NewFromInt(500)

	return &settlementStack{
		settlementUC: usecase.NewSettlementUseCase(usecase.SettlementConfig{
			TxManager:    txManager,
			Retrier:      retrier,
			CounterRepo:  counterRepo,
			LedgerRepo:   ledgerRepo,
			WalletRepo:   walletRepo,
			DecisionRepo: decisionRepo,
			OutboxRepo:   outboxRepo,
			IDGen:        idGen,
			Slabs:        slabs,
			Rates:        rates,
		}),
		withdrawalUC: usecase.NewWithdrawalUseCase(usecase.WithdrawalConfig{
			TxManager:       txManager,
			Retrier:         retrier,
			LedgerRepo:      ledgerRepo,
			WalletRepo:      walletRepo,
			OutboxRepo:      outboxRepo,
			IDGen:           idGen,
			MinimumRequired: minimum,
		}),
		walletUC:    usecase.NewWalletUseCase(walletRepo, ledgerRepo, counterRepo, nil, minimum),
		reconUC:     usecase.NewReconciliationUseCase(walletRepo, ledgerRepo),
		counterRepo: counterRepo,
		ledgerRepo:  ledgerRepo,
		walletRepo:  walletRepo,
		outboxRepo:  outboxRepo,
	}
}

func completedOrder(orderID, professionalID string, value int64) usecase.OrderCompletedInput {
	return usecase.OrderCompletedInput{
		OrderID:        orderID,
		ProfessionalID: professionalID,
		OrderValue:     decimal.NewFromInt(value),
		CompletedAt:    time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestSettlementProgression(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newSettlementStack(t, testDB)

	// Three orders of 1000 in one day: 10%, 9%, 8%.
	expectedFees := []int64{100, 90, 80}
	for i, fee := range expectedFees {
		result, err := stack.settlementUC.OnOrderCompleted(ctx, completedOrder(
			testutil.GenerateID(), "pro-progress", 1000))
		if err != nil {
			t.Fatalf("failed to settle order %d: %v", i+1, err)
		}

		if result.Decision.Ordinal != i+1 {
			t.Errorf("order %d: expected ordinal %d, got %d", i+1, i+1, result.Decision.Ordinal)
		}
		if !result.Decision.FeeCharged.Equal(decimal.NewFromInt(fee)) {
			t.Errorf("order %d: expected fee %d, got %s", i+1, fee, result.Decision.FeeCharged)
		}
		if result.Decision.Method != domain.FeeMethodProgressive {
			t.Errorf("order %d: expected progressive method, got %s", i+1, result.Decision.Method)
		}
	}

	wallet, err := stack.walletRepo.GetByID(ctx, "pro-progress")
	if err != nil {
		t.Fatalf("failed to load wallet: %v", err)
	}
	if !wallet.TotalEarned.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected total earned 3000, got %s", wallet.TotalEarned)
	}
	if !wallet.TotalCommission.Equal(decimal.NewFromInt(270)) {
		t.Errorf("expected total commission 270, got %s", wallet.TotalCommission)
	}
	if !wallet.CurrentBalance().Equal(decimal.NewFromInt(2730)) {
		t.Errorf("expected balance 2730, got %s", wallet.CurrentBalance())
	}

	day := domain.DayKey(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), time.UTC)
	counter, err := stack.counterRepo.Get(ctx, nil, "pro-progress", day)
	if err != nil {
		t.Fatalf("failed to load counter: %v", err)
	}
	if counter.CompletedCount != 3 {
		t.Errorf("expected counter 3, got %d", counter.CompletedCount)
	}
}

func TestSettlementSlabCap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newSettlementStack(t, testDB)

	// 10% of 50000 is 5000; the open-ended slab caps it at 2000.
	result, err := stack.settlementUC.OnOrderCompleted(ctx, completedOrder("ord-big", "pro-cap", 50000))
	if err != nil {
		t.Fatalf("failed to settle order: %v", err)
	}

	if !result.Decision.FeeCharged.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected capped fee 2000, got %s", result.Decision.FeeCharged)
	}
	if result.Decision.Method != domain.FeeMethodSlab {
		t.Errorf("expected slab method, got %s", result.Decision.Method)
	}
	if !result.Decision.ProgressiveFee.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected progressive candidate 5000, got %s", result.Decision.ProgressiveFee)
	}
	if result.Decision.SlabID != "high" {
		t.Errorf("expected slab high, got %s", result.Decision.SlabID)
	}
}

func TestSettlementReplay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newSettlementStack(t, testDB)

	input := completedOrder("ord-replay", "pro-replay", 1000)

	first, err := stack.settlementUC.OnOrderCompleted(ctx, input)
	if err != nil {
		t.Fatalf("failed to settle order: %v", err)
	}
	if first.Replayed {
		t.Fatal("first settlement must not be a replay")
	}

	second, err := stack.settlementUC.OnOrderCompleted(ctx, input)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.Replayed {
		t.Fatal("expected second settlement to be a replay")
	}
	if !second.Decision.FeeCharged.Equal(first.Decision.FeeCharged) {
		t.Errorf("replay changed the fee: %s vs %s", second.Decision.FeeCharged, first.Decision.FeeCharged)
	}

	entries, err := stack.ledgerRepo.ListByProfessional(ctx, "pro-replay", 10, 0)
	if err != nil {
		t.Fatalf("failed to list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 ledger entries after replay, got %d", len(entries))
	}

	// Retrying with different facts is a conflict, not a new settlement.
	conflicting := input
	conflicting.OrderValue = decimal.NewFromInt(2000)
	if _, err := stack.settlementUC.OnOrderCompleted(ctx, conflicting); !errors.Is(err, domain.ErrLedgerConflict) {
		t.Fatalf("expected ErrLedgerConflict, got %v", err)
	}
}

func TestSettlementDailyReset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := newSettlementStack(t, testDB)

	day1 := completedOrder(testutil.GenerateID(), "pro-reset", 1000)
	if _, err := stack.settlementUC.OnOrderCompleted(ctx, day1); err != nil {
		t.Fatalf("failed to settle day-1 order: %v", err)
	}

	day2 := completedOrder(testutil.GenerateID(), "pro-reset", 1000)
	day2.CompletedAt = day1.CompletedAt.AddDate(0, 0, 1)

	result, err := stack.settlementUC.OnOrderCompleted(ctx, day2)
	if err != nil {
		t.Fatalf("failed to settle day-2 order: %v", err)
	}

	if result.Decision.Ordinal != 1 {
		t.Errorf("expected ordinal to reset to 1 on the next day, got %d", result.Decision.Ordinal)
	}
	if !result.Decision.FeeCharged.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected fee 100 on a fresh day, got %s", result.Decision.FeeCharged)
	}

	counters, err := stack.counterRepo.ListByProfessional(ctx, "pro-reset", 10, 0)
	if err != nil {
		t.Fatalf("failed to list counters: %v", err)
	}
	if len(counters) != 2 {
		t.Errorf("expected 2 counter rows, got %d", len(counters))
	}
}
