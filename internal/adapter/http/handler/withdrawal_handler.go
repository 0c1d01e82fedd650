package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/adapter/http/dto"
	"github.com/servly/prosettle/internal/usecase"
)

// WithdrawalService defines the behavior needed by WithdrawalHandler.
type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, professionalID string, amount decimal.Decimal) (*usecase.WithdrawalResult, error)
}

// WithdrawalHandler handles withdrawal HTTP requests.
type WithdrawalHandler struct {
	withdrawalUC WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalUC WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUC: withdrawalUC}
}

// Create posts a withdrawal against a professional's wallet.
func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.withdrawalUC.RequestWithdrawal(r.Context(), req.ProfessionalID, req.Amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post withdrawal", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalFromResult(result))
}
