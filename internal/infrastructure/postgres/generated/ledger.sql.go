
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :one
INSERT INTO ledger_entries (id, professional_id, order_id, type, amount, occurred_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, professional_id, order_id, type, amount, occurred_at, created_at
`

type CreateLedgerEntryParams struct {
	ID             string             `json:"id"`
	ProfessionalID string             `json:"professional_id"`
	OrderID        pgtype.Text        `json:"order_id"`
	Type           string             `json:"type"`
	Amount         pgtype.Numeric     `json:"amount"`
	OccurredAt     pgtype.Timestamptz `json:"occurred_at"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) (LedgerEntry, error) {
	row := q.db.QueryRow(ctx, createLedgerEntry,
		arg.ID,
		arg.ProfessionalID,
		arg.OrderID,
		arg.Type,
		arg.Amount,
		arg.OccurredAt,
		arg.CreatedAt,
	)
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.ProfessionalID,
		&i.OrderID,
		&i.Type,
		&i.Amount,
		&i.OccurredAt,
		&i.CreatedAt,
	)
	return i, err
}

const getLedgerEntriesByProfessional = `-- name: GetLedgerEntriesByProfessional :many
SELECT id, professional_id, order_id, type, amount, occurred_at, created_at FROM ledger_entries WHERE professional_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type GetLedgerEntriesByProfessionalParams struct {
	ProfessionalID string `json:"professional_id"`
	Limit          int32  `json:"limit"`
	Offset         int32  `json:"offset"`
}

func (q *Queries) GetLedgerEntriesByProfessional(ctx context.Context, arg GetLedgerEntriesByProfessionalParams) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, getLedgerEntriesByProfessional, arg.ProfessionalID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerEntry{}
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.ProfessionalID,
			&i.OrderID,
			&i.Type,
			&i.Amount,
			&i.OccurredAt,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumLedgerEntriesByType = `-- name: SumLedgerEntriesByType :many
SELECT type, COALESCE(SUM(amount), 0)::numeric AS total FROM ledger_entries WHERE professional_id = $1 GROUP BY type
`

type SumLedgerEntriesByTypeRow struct {
	Type  string         `json:"type"`
	Total pgtype.Numeric `json:"total"`
}

func (q *Queries) SumLedgerEntriesByType(ctx context.Context, professionalID string) ([]SumLedgerEntriesByTypeRow, error) {
	rows, err := q.db.Query(ctx, sumLedgerEntriesByType, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []SumLedgerEntriesByTypeRow{}
	for rows.Next() {
		var i SumLedgerEntriesByTypeRow
		if err := rows.Scan(&i.Type, &i.Total); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
