package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/infrastructure/postgres/generated"
	"github.com/servly/prosettle/internal/usecase"
)

// CounterRepository implements usecase.CounterRepository.
type CounterRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(pool *pgxpool.Pool) *CounterRepository {
	return &CounterRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Get retrieves the daily counter for a professional and day. A missing
// row reads as a zero counter, so the first order of a day needs no
// prior insert.
func (r *CounterRepository) Get(ctx context.Context, tx usecase.Transaction, professionalID, day string) (*domain.DailyCounter, error) {
	queries := r.queries
	if tx != nil {
		queries = generated.New(tx.(*Tx).PgxTx())
	}

	row, err := queries.GetDailyCounter(ctx, generated.GetDailyCounterParams{
		ProfessionalID: professionalID,
		Day:            day,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.DailyCounter{ProfessionalID: professionalID, Day: day}, nil
		}

		return nil, err
	}

	return &domain.DailyCounter{
		ProfessionalID: row.ProfessionalID,
		Day:            row.Day,
		CompletedCount: int(row.CompletedCount),
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}

// Increment bumps the completed count for the day by one, upserting the
// row on first use, and returns the new count.
func (r *CounterRepository) Increment(ctx context.Context, tx usecase.Transaction, professionalID, day string, now time.Time) (int, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	count, err := queries.IncrementDailyCounter(ctx, generated.IncrementDailyCounterParams{
		ProfessionalID: professionalID,
		Day:            day,
		UpdatedAt:      timeToPgTimestamptz(now),
	})
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// ListByProfessional retrieves daily counter history, newest day first.
func (r *CounterRepository) ListByProfessional(ctx context.Context, professionalID string, limit, offset int) ([]*domain.DailyCounter, error) {
	rows, err := r.queries.ListDailyCountersByProfessional(ctx, generated.ListDailyCountersByProfessionalParams{
		ProfessionalID: professionalID,
		Limit:          int32(limit),
		Offset:         int32(offset),
	})
	if err != nil {
		return nil, err
	}

	counters := make([]*domain.DailyCounter, 0, len(rows))
	for _, row := range rows {
		counters = append(counters, &domain.DailyCounter{
			ProfessionalID: row.ProfessionalID,
			Day:            row.Day,
			CompletedCount: int(row.CompletedCount),
			UpdatedAt:      row.UpdatedAt.Time,
		})
	}

	return counters, nil
}
