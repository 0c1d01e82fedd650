package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/infrastructure/postgres/generated"
	"github.com/servly/prosettle/internal/usecase"
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// GetByID retrieves a wallet snapshot by professional ID.
func (r *WalletRepository) GetByID(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error) {
	row, err := r.queries.GetWalletByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	return rowToWallet(row), nil
}

// GetOrCreateForUpdate retrieves a wallet with a FOR UPDATE lock, first
// creating an empty row if the professional has no wallet yet. The lock
// serializes all settlement and withdrawal activity for one professional.
func (r *WalletRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, professionalID string, now time.Time) (*domain.WalletSnapshot, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	err := queries.CreateWalletIfAbsent(ctx, generated.CreateWalletIfAbsentParams{
		ProfessionalID: professionalID,
		CreatedAt:      timeToPgTimestamptz(now),
	})
	if err != nil {
		return nil, err
	}

	row, err := queries.GetWalletByIDForUpdate(ctx, professionalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, err
	}

	return rowToWallet(row), nil
}

// UpdateTotals persists the wallet running totals.
func (r *WalletRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, wallet *domain.WalletSnapshot, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateWalletTotals(ctx, generated.UpdateWalletTotalsParams{
		ProfessionalID:  wallet.ProfessionalID,
		TotalEarned:     decimalToNumeric(wallet.TotalEarned),
		TotalCommission: decimalToNumeric(wallet.TotalCommission),
		TotalWithdrawn:  decimalToNumeric(wallet.TotalWithdrawn),
		UpdatedAt:       timeToPgTimestamptz(updatedAt),
	})
}

func rowToWallet(row generated.Wallet) *domain.WalletSnapshot {
	return &domain.WalletSnapshot{
		ProfessionalID:  row.ProfessionalID,
		TotalEarned:     numericToDecimal(row.TotalEarned),
		TotalCommission: numericToDecimal(row.TotalCommission),
		TotalWithdrawn:  numericToDecimal(row.TotalWithdrawn),
		Version:         row.Version,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
