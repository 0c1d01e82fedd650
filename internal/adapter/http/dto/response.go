package dto

import (
	"time"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
	"github.com/shopspring/decimal"
)

// FeeDecisionResponse represents a fee decision in API responses.
type FeeDecisionResponse struct {
	OrderID         string          `json:"order_id"`
	ProfessionalID  string          `json:"professional_id"`
	OrderValue      decimal.Decimal `json:"order_value"`
	Ordinal         int             `json:"ordinal"`
	ProgressiveRate decimal.Decimal `json:"progressive_rate"`
	ProgressiveFee  decimal.Decimal `json:"progressive_fee"`
	SlabID          string          `json:"slab_id"`
	SlabFee         decimal.Decimal `json:"slab_fee"`
	FeeCharged      decimal.Decimal `json:"fee_charged"`
	Method          string          `json:"method"`
	DecidedAt       time.Time       `json:"decided_at"`
}

// FeeDecisionFromDomain converts a domain fee decision to a response.
func FeeDecisionFromDomain(d *domain.FeeDecision) *FeeDecisionResponse {
	return &FeeDecisionResponse{
		OrderID:         d.OrderID,
		ProfessionalID:  d.ProfessionalID,
		OrderValue:      d.OrderValue,
		Ordinal:         d.Ordinal,
		ProgressiveRate: d.ProgressiveRate,
		ProgressiveFee:  d.ProgressiveFee,
		SlabID:          d.SlabID,
		SlabFee:         d.SlabFee,
		FeeCharged:      d.FeeCharged,
		Method:          string(d.Method),
		DecidedAt:       d.DecidedAt,
	}
}

// WalletResponse represents a wallet snapshot in API responses.
type WalletResponse struct {
	ProfessionalID  string          `json:"professional_id"`
	TotalEarned     decimal.Decimal `json:"total_earned"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	TotalWithdrawn  decimal.Decimal `json:"total_withdrawn"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	Version         int64           `json:"version"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// WalletFromDomain converts a domain wallet snapshot to a response.
func WalletFromDomain(w *domain.WalletSnapshot) *WalletResponse {
	return &WalletResponse{
		ProfessionalID:  w.ProfessionalID,
		TotalEarned:     w.TotalEarned,
		TotalCommission: w.TotalCommission,
		TotalWithdrawn:  w.TotalWithdrawn,
		CurrentBalance:  w.CurrentBalance(),
		Version:         w.Version,
		UpdatedAt:       w.UpdatedAt,
	}
}

// SettlementResponse is the outcome of settling one completed order.
type SettlementResponse struct {
	Decision *FeeDecisionResponse `json:"decision"`
	Wallet   *WalletResponse      `json:"wallet"`
	Replayed bool                 `json:"replayed"`
}

// SettlementFromResult converts a use case settlement result to a response.
func SettlementFromResult(res *usecase.SettlementResult) *SettlementResponse {
	return &SettlementResponse{
		Decision: FeeDecisionFromDomain(res.Decision),
		Wallet:   WalletFromDomain(res.Wallet),
		Replayed: res.Replayed,
	}
}

// EligibilityResponse represents withdrawal eligibility in API responses.
type EligibilityResponse struct {
	IsEligible         bool            `json:"is_eligible"`
	MinimumRequired    decimal.Decimal `json:"minimum_required"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	EligibilityPercent decimal.Decimal `json:"eligibility_percent"`
}

// EligibilityFromDomain converts domain eligibility to a response.
func EligibilityFromDomain(e *domain.WithdrawalEligibility) *EligibilityResponse {
	return &EligibilityResponse{
		IsEligible:         e.IsEligible,
		MinimumRequired:    e.MinimumRequired,
		RemainingAmount:    e.RemainingAmount,
		EligibilityPercent: e.EligibilityPercent,
	}
}

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID             string          `json:"id"`
	ProfessionalID string          `json:"professional_id"`
	OrderID        string          `json:"order_id,omitempty"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	OccurredAt     time.Time       `json:"occurred_at"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerEntryFromDomain converts a domain ledger entry to a response.
func LedgerEntryFromDomain(e *domain.LedgerEntry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:             e.ID,
		ProfessionalID: e.ProfessionalID,
		OrderID:        e.OrderID,
		Type:           string(e.Type),
		Amount:         e.Amount,
		OccurredAt:     e.OccurredAt,
		CreatedAt:      e.CreatedAt,
	}
}

// LedgerEntriesFromDomain converts domain ledger entries to responses.
func LedgerEntriesFromDomain(entries []*domain.LedgerEntry) []*LedgerEntryResponse {
	result := make([]*LedgerEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = LedgerEntryFromDomain(e)
	}
	return result
}

// WithdrawalResponse is the outcome of a posted withdrawal.
type WithdrawalResponse struct {
	Entry  *LedgerEntryResponse `json:"entry"`
	Wallet *WalletResponse      `json:"wallet"`
}

// WithdrawalFromResult converts a use case withdrawal result to a response.
func WithdrawalFromResult(res *usecase.WithdrawalResult) *WithdrawalResponse {
	return &WithdrawalResponse{
		Entry:  LedgerEntryFromDomain(res.Entry),
		Wallet: WalletFromDomain(res.Wallet),
	}
}

// CounterResponse represents a daily counter in API responses.
type CounterResponse struct {
	ProfessionalID string    `json:"professional_id"`
	Day            string    `json:"day"`
	CompletedCount int       `json:"completed_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CountersFromDomain converts domain counters to responses.
func CountersFromDomain(counters []*domain.DailyCounter) []*CounterResponse {
	result := make([]*CounterResponse, len(counters))
	for i, c := range counters {
		result[i] = &CounterResponse{
			ProfessionalID: c.ProfessionalID,
			Day:            c.Day,
			CompletedCount: c.CompletedCount,
			UpdatedAt:      c.UpdatedAt,
		}
	}
	return result
}

// ReconciliationResponse represents a reconciliation check result.
type ReconciliationResponse struct {
	ProfessionalID    string          `json:"professional_id"`
	StoredBalance     decimal.Decimal `json:"stored_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromResult converts a use case reconciliation result to a response.
func ReconciliationFromResult(res *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		ProfessionalID:    res.ProfessionalID,
		StoredBalance:     res.StoredBalance,
		CalculatedBalance: res.CalculatedBalance,
		Difference:        res.Difference,
		IsReconciled:      res.IsReconciled,
		CheckedAt:         res.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
