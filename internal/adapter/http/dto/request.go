package dto

import (
	"time"

	"github.com/servly/prosettle/internal/usecase"
	"github.com/shopspring/decimal"
)

// OrderCompletedRequest reports one completed order for settlement.
type OrderCompletedRequest struct {
	OrderID        string          `json:"order_id"`
	ProfessionalID string          `json:"professional_id"`
	OrderValue     decimal.Decimal `json:"order_value"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OrderCompletedRequest) ToUseCaseInput() usecase.OrderCompletedInput {
	input := usecase.OrderCompletedInput{
		OrderID:        r.OrderID,
		ProfessionalID: r.ProfessionalID,
		OrderValue:     r.OrderValue,
	}
	if r.CompletedAt != nil {
		input.CompletedAt = *r.CompletedAt
	}

	return input
}

// WithdrawalRequest represents a withdrawal request against a wallet.
type WithdrawalRequest struct {
	ProfessionalID string          `json:"professional_id"`
	Amount         decimal.Decimal `json:"amount"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
