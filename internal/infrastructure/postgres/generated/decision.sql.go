
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createFeeDecision = `-- name: CreateFeeDecision :one
INSERT INTO fee_decisions (order_id, professional_id, order_value, ordinal, progressive_rate, progressive_fee, slab_id, slab_fee, fee_charged, method, decided_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING order_id, professional_id, order_value, ordinal, progressive_rate, progressive_fee, slab_id, slab_fee, fee_charged, method, decided_at
`

type CreateFeeDecisionParams struct {
	OrderID         string             `json:"order_id"`
	ProfessionalID  string             `json:"professional_id"`
	OrderValue      pgtype.Numeric     `json:"order_value"`
	Ordinal         int32              `json:"ordinal"`
	ProgressiveRate pgtype.Numeric     `json:"progressive_rate"`
	ProgressiveFee  pgtype.Numeric     `json:"progressive_fee"`
	SlabID          string             `json:"slab_id"`
	SlabFee         pgtype.Numeric     `json:"slab_fee"`
	FeeCharged      pgtype.Numeric     `json:"fee_charged"`
	Method          string             `json:"method"`
	DecidedAt       pgtype.Timestamptz `json:"decided_at"`
}

func (q *Queries) CreateFeeDecision(ctx context.Context, arg CreateFeeDecisionParams) (FeeDecision, error) {
	row := q.db.QueryRow(ctx, createFeeDecision,
		arg.OrderID,
		arg.ProfessionalID,
		arg.OrderValue,
		arg.Ordinal,
		arg.ProgressiveRate,
		arg.ProgressiveFee,
		arg.SlabID,
		arg.SlabFee,
		arg.FeeCharged,
		arg.Method,
		arg.DecidedAt,
	)
	var i FeeDecision
	err := row.Scan(
		&i.OrderID,
		&i.ProfessionalID,
		&i.OrderValue,
		&i.Ordinal,
		&i.ProgressiveRate,
		&i.ProgressiveFee,
		&i.SlabID,
		&i.SlabFee,
		&i.FeeCharged,
		&i.Method,
		&i.DecidedAt,
	)
	return i, err
}

const getFeeDecisionByOrderID = `-- name: GetFeeDecisionByOrderID :one
SELECT order_id, professional_id, order_value, ordinal, progressive_rate, progressive_fee, slab_id, slab_fee, fee_charged, method, decided_at FROM fee_decisions WHERE order_id = $1
`

func (q *Queries) GetFeeDecisionByOrderID(ctx context.Context, orderID string) (FeeDecision, error) {
	row := q.db.QueryRow(ctx, getFeeDecisionByOrderID, orderID)
	var i FeeDecision
	err := row.Scan(
		&i.OrderID,
		&i.ProfessionalID,
		&i.OrderValue,
		&i.Ordinal,
		&i.ProgressiveRate,
		&i.ProgressiveFee,
		&i.SlabID,
		&i.SlabFee,
		&i.FeeCharged,
		&i.Method,
		&i.DecidedAt,
	)
	return i, err
}
