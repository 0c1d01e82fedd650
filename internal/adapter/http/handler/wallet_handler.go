package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/servly/prosettle/internal/adapter/http/dto"
	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	GetSnapshot(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error)
	GetEligibility(ctx context.Context, professionalID string) (*domain.WithdrawalEligibility, error)
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
	ListCounters(ctx context.Context, input usecase.ListEntriesInput) ([]*domain.DailyCounter, error)
}

// ReconciliationService defines the behavior needed for wallet audits.
type ReconciliationService interface {
	ReconcileWallet(ctx context.Context, professionalID string) (*usecase.ReconciliationResult, error)
}

// WalletHandler handles wallet read HTTP requests.
type WalletHandler struct {
	walletUC WalletService
	reconUC  ReconciliationService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService, reconUC ReconciliationService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC, reconUC: reconUC}
}

// GetWallet retrieves the wallet snapshot for a professional.
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "id")
	if professionalID == "" {
		writeError(w, http.StatusBadRequest, "missing professional ID", "")
		return
	}

	wallet, err := h.walletUC.GetSnapshot(r.Context(), professionalID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.WalletFromDomain(wallet))
}

// GetEligibility derives withdrawal eligibility for a professional.
func (h *WalletHandler) GetEligibility(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "id")
	if professionalID == "" {
		writeError(w, http.StatusBadRequest, "missing professional ID", "")
		return
	}

	eligibility, err := h.walletUC.GetEligibility(r.Context(), professionalID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get eligibility", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EligibilityFromDomain(eligibility))
}

// ListEntries lists ledger entries for a professional.
func (h *WalletHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "id")
	if professionalID == "" {
		writeError(w, http.StatusBadRequest, "missing professional ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.walletUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		ProfessionalID: professionalID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list entries", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntriesFromDomain(entries))
}

// ListCounters lists daily counter history for a professional.
func (h *WalletHandler) ListCounters(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "id")
	if professionalID == "" {
		writeError(w, http.StatusBadRequest, "missing professional ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	counters, err := h.walletUC.ListCounters(r.Context(), usecase.ListEntriesInput{
		ProfessionalID: professionalID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list counters", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.CountersFromDomain(counters))
}

// Reconcile checks the wallet totals against the full ledger stream.
func (h *WalletHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	professionalID := chi.URLParam(r, "id")
	if professionalID == "" {
		writeError(w, http.StatusBadRequest, "missing professional ID", "")
		return
	}

	result, err := h.reconUC.ReconcileWallet(r.Context(), professionalID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reconcile wallet", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}
