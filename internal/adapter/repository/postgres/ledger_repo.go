package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/infrastructure/postgres/generated"
	"github.com/servly/prosettle/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a ledger entry. The entries table carries a unique
// constraint on (order_id, type), so a duplicate settlement posting
// surfaces as ErrDuplicateLedgerEntry.
func (r *LedgerRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:             entry.ID,
		ProfessionalID: entry.ProfessionalID,
		OrderID:        orderIDToPgText(entry.OrderID),
		Type:           string(entry.Type),
		Amount:         decimalToNumeric(entry.Amount),
		OccurredAt:     timeToPgTimestamptz(entry.OccurredAt),
		CreatedAt:      timeToPgTimestamptz(entry.CreatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateLedgerEntry
	}

	return err
}

// ListByProfessional retrieves ledger entries for a professional, newest first.
func (r *LedgerRepository) ListByProfessional(ctx context.Context, professionalID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.GetLedgerEntriesByProfessional(ctx, generated.GetLedgerEntriesByProfessionalParams{
		ProfessionalID: professionalID,
		Limit:          int32(limit),
		Offset:         int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToLedgerEntry(row))
	}

	return entries, nil
}

// SumByType folds the professional's full entry stream grouped by type.
func (r *LedgerRepository) SumByType(ctx context.Context, professionalID string) (map[domain.EntryType]decimal.Decimal, error) {
	rows, err := r.queries.SumLedgerEntriesByType(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	sums := make(map[domain.EntryType]decimal.Decimal, len(rows))
	for _, row := range rows {
		sums[domain.EntryType(row.Type)] = numericToDecimal(row.Total)
	}

	return sums, nil
}

func rowToLedgerEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		OrderID:        row.OrderID.String,
		Type:           domain.EntryType(row.Type),
		Amount:         numericToDecimal(row.Amount),
		OccurredAt:     row.OccurredAt.Time,
		CreatedAt:      row.CreatedAt.Time,
	}
}

// orderIDToPgText maps an empty order id to NULL so withdrawal entries
// stay outside the (order_id, type) unique constraint.
func orderIDToPgText(orderID string) pgtype.Text {
	return pgtype.Text{String: orderID, Valid: orderID != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
