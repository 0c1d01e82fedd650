package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletSnapshot holds the running totals for one professional. The
// totals are maintained in the same transaction as every ledger append,
// so CurrentBalance() is always consistent with the entry stream.
type WalletSnapshot struct {
	ProfessionalID  string
	TotalEarned     decimal.Decimal
	TotalCommission decimal.Decimal
	TotalWithdrawn  decimal.Decimal
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewWalletSnapshot returns an empty wallet for a professional.
func NewWalletSnapshot(professionalID string, now time.Time) *WalletSnapshot {
	return &WalletSnapshot{
		ProfessionalID:  professionalID,
		TotalEarned:     decimal.Zero,
		TotalCommission: decimal.Zero,
		TotalWithdrawn:  decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CurrentBalance derives the spendable balance.
func (w *WalletSnapshot) CurrentBalance() decimal.Decimal {
	return w.TotalEarned.Sub(w.TotalCommission).Sub(w.TotalWithdrawn)
}

// Apply folds one ledger entry into the running totals.
func (w *WalletSnapshot) Apply(e *LedgerEntry) {
	switch e.Type {
	case EntryTypeEarning:
		w.TotalEarned = w.TotalEarned.Add(e.Amount)
	case EntryTypeCommission:
		w.TotalCommission = w.TotalCommission.Add(e.Amount)
	case EntryTypeWithdrawal:
		w.TotalWithdrawn = w.TotalWithdrawn.Add(e.Amount)
	}
}

// ValidateWithdrawal checks a withdrawal request against the wallet
// under the configured minimum. Must be called with the wallet row
// locked so two racing requests cannot both pass.
func (w *WalletSnapshot) ValidateWithdrawal(amount, minimumRequired decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	balance := w.CurrentBalance()
	if balance.LessThan(minimumRequired) {
		return ErrNotEligible
	}
	if amount.GreaterThan(balance) {
		return ErrInsufficientBalance
	}

	return nil
}

// WithdrawalEligibility is derived on demand and never stored.
type WithdrawalEligibility struct {
	IsEligible         bool
	MinimumRequired    decimal.Decimal
	RemainingAmount    decimal.Decimal
	EligibilityPercent decimal.Decimal
}

// Eligibility derives withdrawal eligibility against the configured
// minimum. The percent is capped at 100.
func (w *WalletSnapshot) Eligibility(minimumRequired decimal.Decimal) WithdrawalEligibility {
	balance := w.CurrentBalance()

	remaining := minimumRequired.Sub(balance)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	hundred := decimal.NewFromInt(100)
	percent := hundred
	if minimumRequired.IsPositive() {
		percent = balance.Div(minimumRequired).Mul(hundred).Round(2)
		if percent.GreaterThan(hundred) {
			percent = hundred
		}
		if percent.IsNegative() {
			percent = decimal.Zero
		}
	}

	return WithdrawalEligibility{
		IsEligible:         balance.GreaterThanOrEqual(minimumRequired),
		MinimumRequired:    minimumRequired,
		RemainingAmount:    remaining,
		EligibilityPercent: percent,
	}
}
