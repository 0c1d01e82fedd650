package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a ledger entry.
type EntryType string

const (
	EntryTypeEarning    EntryType = "earning"
	EntryTypeCommission EntryType = "commission"
	EntryTypeWithdrawal EntryType = "withdrawal"
)

// LedgerEntry is one immutable money movement for a professional.
// Entries are append-only; they are never mutated or deleted.
type LedgerEntry struct {
	ID             string
	ProfessionalID string
	OrderID        string // empty for withdrawals
	Type           EntryType
	Amount         decimal.Decimal
	OccurredAt     time.Time
	CreatedAt      time.Time
}

// Validate checks entry invariants before it is appended.
func (e *LedgerEntry) Validate() error {
	switch e.Type {
	case EntryTypeEarning, EntryTypeCommission:
		if e.OrderID == "" {
			return fmt.Errorf("%s entry requires an order id", e.Type)
		}
	case EntryTypeWithdrawal:
		if e.OrderID != "" {
			return fmt.Errorf("withdrawal entry must not carry an order id")
		}
	default:
		return fmt.Errorf("unknown entry type %q", e.Type)
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}
