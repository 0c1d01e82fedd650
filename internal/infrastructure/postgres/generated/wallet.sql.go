
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createWalletIfAbsent = `-- name: CreateWalletIfAbsent :exec
INSERT INTO wallets (professional_id, total_earned, total_commission, total_withdrawn, version, created_at, updated_at)
VALUES ($1, 0, 0, 0, 1, $2, $2)
ON CONFLICT (professional_id) DO NOTHING
`

type CreateWalletIfAbsentParams struct {
	ProfessionalID string             `json:"professional_id"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateWalletIfAbsent(ctx context.Context, arg CreateWalletIfAbsentParams) error {
	_, err := q.db.Exec(ctx, createWalletIfAbsent, arg.ProfessionalID, arg.CreatedAt)
	return err
}

const getWalletByID = `-- name: GetWalletByID :one
SELECT professional_id, total_earned, total_commission, total_withdrawn, version, created_at, updated_at FROM wallets WHERE professional_id = $1
`

func (q *Queries) GetWalletByID(ctx context.Context, professionalID string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByID, professionalID)
	var i Wallet
	err := row.Scan(
		&i.ProfessionalID,
		&i.TotalEarned,
		&i.TotalCommission,
		&i.TotalWithdrawn,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getWalletByIDForUpdate = `-- name: GetWalletByIDForUpdate :one
SELECT professional_id, total_earned, total_commission, total_withdrawn, version, created_at, updated_at FROM wallets WHERE professional_id = $1 FOR UPDATE
`

func (q *Queries) GetWalletByIDForUpdate(ctx context.Context, professionalID string) (Wallet, error) {
	row := q.db.QueryRow(ctx, getWalletByIDForUpdate, professionalID)
	var i Wallet
	err := row.Scan(
		&i.ProfessionalID,
		&i.TotalEarned,
		&i.TotalCommission,
		&i.TotalWithdrawn,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateWalletTotals = `-- name: UpdateWalletTotals :exec
UPDATE wallets
SET total_earned = $2, total_commission = $3, total_withdrawn = $4, version = version + 1, updated_at = $5
WHERE professional_id = $1
`

type UpdateWalletTotalsParams struct {
	ProfessionalID  string             `json:"professional_id"`
	TotalEarned     pgtype.Numeric     `json:"total_earned"`
	TotalCommission pgtype.Numeric     `json:"total_commission"`
	TotalWithdrawn  pgtype.Numeric     `json:"total_withdrawn"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateWalletTotals(ctx context.Context, arg UpdateWalletTotalsParams) error {
	_, err := q.db.Exec(ctx, updateWalletTotals,
		arg.ProfessionalID,
		arg.TotalEarned,
		arg.TotalCommission,
		arg.TotalWithdrawn,
		arg.UpdatedAt,
	)
	return err
}
