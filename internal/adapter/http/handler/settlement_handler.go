package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/servly/prosettle/internal/adapter/http/dto"
	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	OnOrderCompleted(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error)
	GetFeeDecision(ctx context.Context, orderID string) (*domain.FeeDecision, error)
}

// SettlementHandler handles order settlement HTTP requests.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// OrderCompleted settles a completed order. A retried completion with
// unchanged facts returns the original decision with 200 instead of 201.
func (h *SettlementHandler) OrderCompleted(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderCompletedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.settlementUC.OnOrderCompleted(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to settle order", err.Error())

		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.SettlementFromResult(result))
}

// GetFee retrieves the persisted fee decision for an order.
func (h *SettlementHandler) GetFee(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	decision, err := h.settlementUC.GetFeeDecision(r.Context(), orderID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get fee decision", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FeeDecisionFromDomain(decision))
}
