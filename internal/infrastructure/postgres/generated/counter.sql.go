
package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getDailyCounter = `-- name: GetDailyCounter :one
SELECT professional_id, day, completed_count, updated_at FROM daily_counters WHERE professional_id = $1 AND day = $2
`

type GetDailyCounterParams struct {
	ProfessionalID string `json:"professional_id"`
	Day            string `json:"day"`
}

func (q *Queries) GetDailyCounter(ctx context.Context, arg GetDailyCounterParams) (DailyCounter, error) {
	row := q.db.QueryRow(ctx, getDailyCounter, arg.ProfessionalID, arg.Day)
	var i DailyCounter
	err := row.Scan(
		&i.ProfessionalID,
		&i.Day,
		&i.CompletedCount,
		&i.UpdatedAt,
	)
	return i, err
}

const incrementDailyCounter = `-- name: IncrementDailyCounter :one
INSERT INTO daily_counters (professional_id, day, completed_count, updated_at)
VALUES ($1, $2, 1, $3)
ON CONFLICT (professional_id, day)
DO UPDATE SET completed_count = daily_counters.completed_count + 1, updated_at = $3
RETURNING completed_count
`

type IncrementDailyCounterParams struct {
	ProfessionalID string             `json:"professional_id"`
	Day            string             `json:"day"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) IncrementDailyCounter(ctx context.Context, arg IncrementDailyCounterParams) (int32, error) {
	row := q.db.QueryRow(ctx, incrementDailyCounter, arg.ProfessionalID, arg.Day, arg.UpdatedAt)
	var completed_count int32
	err := row.Scan(&completed_count)
	return completed_count, err
}

const listDailyCountersByProfessional = `-- name: ListDailyCountersByProfessional :many
SELECT professional_id, day, completed_count, updated_at FROM daily_counters WHERE professional_id = $1 ORDER BY day DESC LIMIT $2 OFFSET $3
`

type ListDailyCountersByProfessionalParams struct {
	ProfessionalID string `json:"professional_id"`
	Limit          int32  `json:"limit"`
	Offset         int32  `json:"offset"`
}

func (q *Queries) ListDailyCountersByProfessional(ctx context.Context, arg ListDailyCountersByProfessionalParams) ([]DailyCounter, error) {
	rows, err := q.db.Query(ctx, listDailyCountersByProfessional, arg.ProfessionalID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []DailyCounter{}
	for rows.Next() {
		var i DailyCounter
		if err := rows.Scan(
			&i.ProfessionalID,
			&i.Day,
			&i.CompletedCount,
			&i.UpdatedAt,
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
