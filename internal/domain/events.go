package domain

import "time"

// Event types
const (
	EventTypeOrderSettled     = "order.settled"
	EventTypeWithdrawalPosted = "withdrawal.posted"
)

// Aggregate types
const (
	AggregateTypeOrder  = "order"
	AggregateTypeWallet = "wallet"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// OrderSettledEvent describes a settled order for downstream consumers.
type OrderSettledEvent struct {
	OrderID        string
	ProfessionalID string
	OrderValue     string
	FeeCharged     string
	Method         string
	Ordinal        int
}

// Payload returns the event in outbox wire form.
func (e OrderSettledEvent) Payload() map[string]any {
	return map[string]any{
		"order_id":        e.OrderID,
		"professional_id": e.ProfessionalID,
		"order_value":     e.OrderValue,
		"fee_charged":     e.FeeCharged,
		"method":          e.Method,
		"ordinal":         e.Ordinal,
	}
}

// WithdrawalPostedEvent describes a posted withdrawal for downstream
// consumers.
type WithdrawalPostedEvent struct {
	EntryID        string
	ProfessionalID string
	Amount         string
	BalanceAfter   string
}

// Payload returns the event in outbox wire form.
func (e WithdrawalPostedEvent) Payload() map[string]any {
	return map[string]any{
		"entry_id":        e.EntryID,
		"professional_id": e.ProfessionalID,
		"amount":          e.Amount,
		"balance_after":   e.BalanceAfter,
	}
}
