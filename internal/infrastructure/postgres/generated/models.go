
package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type DailyCounter struct {
	ProfessionalID string             `json:"professional_id"`
	Day            string             `json:"day"`
	CompletedCount int32              `json:"completed_count"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

type FeeDecision struct {
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

type LedgerEntry struct {
	ID             string             `json:"id"`
	ProfessionalID string             `json:"professional_id"`
	OrderID        pgtype.Text        `json:"order_id"`
	Type           string             `json:"type"`
	Amount         pgtype.Numeric     `json:"amount"`
	OccurredAt     pgtype.Timestamptz `json:"occurred_at"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	Published     bool               `json:"published"`
}

type Wallet struct {
	ProfessionalID  string             `json:"professional_id"`
	TotalEarned     pgtype.Numeric     `json:"total_earned"`
	TotalCommission pgtype.Numeric     `json:"total_commission"`
	TotalWithdrawn  pgtype.Numeric     `json:"total_withdrawn"`
	Version         int64              `json:"version"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}
