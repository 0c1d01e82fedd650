package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/infrastructure/postgres/generated"
	"github.com/servly/prosettle/internal/usecase"
)

// DecisionRepository implements usecase.DecisionRepository.
type DecisionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewDecisionRepository creates a new DecisionRepository.
func NewDecisionRepository(pool *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create persists a fee decision. The primary key is the order id, so a
// retried settlement fails here with ErrDuplicateLedgerEntry before any
// ledger entry is written.
func (r *DecisionRepository) Create(ctx context.Context, tx usecase.Transaction, decision *domain.FeeDecision) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateFeeDecision(ctx, generated.CreateFeeDecisionParams{
		OrderID:         decision.OrderID,
		ProfessionalID:  decision.ProfessionalID,
		OrderValue:      decimalToNumeric(decision.OrderValue),
		Ordinal:         int32(decision.Ordinal),
		ProgressiveRate: decimalToNumeric(decision.ProgressiveRate),
		ProgressiveFee:  decimalToNumeric(decision.ProgressiveFee),
		SlabID:          decision.SlabID,
		SlabFee:         decimalToNumeric(decision.SlabFee),
		FeeCharged:      decimalToNumeric(decision.FeeCharged),
		Method:          string(decision.Method),
		DecidedAt:       timeToPgTimestamptz(decision.DecidedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateLedgerEntry
	}

	return err
}

// GetByOrderID retrieves the fee decision for an order.
func (r *DecisionRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.FeeDecision, error) {
	row, err := r.queries.GetFeeDecisionByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeeDecisionNotFound
		}

		return nil, err
	}

	return rowToDecision(row), nil
}

func rowToDecision(row generated.FeeDecision) *domain.FeeDecision {
	return &domain.FeeDecision{
		OrderID:         row.OrderID,
		ProfessionalID:  row.ProfessionalID,
		OrderValue:      numericToDecimal(row.OrderValue),
		Ordinal:         int(row.Ordinal),
		ProgressiveRate: numericToDecimal(row.ProgressiveRate),
		ProgressiveFee:  numericToDecimal(row.ProgressiveFee),
		SlabID:          row.SlabID,
		SlabFee:         numericToDecimal(row.SlabFee),
		FeeCharged:      numericToDecimal(row.FeeCharged),
		Method:          domain.FeeMethod(row.Method),
		DecidedAt:       row.DecidedAt.Time,
	}
}
