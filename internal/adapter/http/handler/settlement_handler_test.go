package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/adapter/http/dto"
	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
)

type settlementServiceStub struct {
	onCompletedFn func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error)
	getFeeFn      func(ctx context.Context, orderID string) (*domain.FeeDecision, error)
}

func (s *settlementServiceStub) OnOrderCompleted(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
	return s.onCompletedFn(ctx, input)
}

func (s *settlementServiceStub) GetFeeDecision(ctx context.Context, orderID string) (*domain.FeeDecision, error) {
	return s.getFeeFn(ctx, orderID)
}

func sampleResult(replayed bool) *usecase.SettlementResult {
	decidedAt := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	return &usecase.SettlementResult{
		Decision: &domain.FeeDecision{
			OrderID:         "ord-1",
			ProfessionalID:  "pro-1",
			OrderValue:      decimal.NewFromInt(1000),
			Ordinal:         1,
			ProgressiveRate: decimal.NewFromInt(10),
			ProgressiveFee:  decimal.NewFromInt(100),
			SlabID:          "low",
			SlabFee:         decimal.NewFromInt(150),
			FeeCharged:      decimal.NewFromInt(100),
			Method:          domain.FeeMethodProgressive,
			DecidedAt:       decidedAt,
		},
		Wallet: &domain.WalletSnapshot{
			ProfessionalID:  "pro-1",
			TotalEarned:     decimal.NewFromInt(1000),
			TotalCommission: decimal.NewFromInt(100),
			TotalWithdrawn:  decimal.Zero,
			Version:         2,
			UpdatedAt:       decidedAt,
		},
		Replayed: replayed,
	}
}

func TestSettlementHandler_OrderCompleted_Success(t *testing.T) {
	var captured usecase.OrderCompletedInput
	handler := NewSettlementHandler(&settlementServiceStub{
		onCompletedFn: func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
			captured = input
			return sampleResult(false), nil
		},
		getFeeFn: func(ctx context.Context, orderID string) (*domain.FeeDecision, error) { return nil, nil },
	})

	body, _ := json.Marshal(dto.OrderCompletedRequest{
		OrderID:        "ord-1",
		ProfessionalID: "pro-1",
		OrderValue:     decimal.NewFromInt(1000),
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/completed", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.OrderCompleted(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.OrderID != "ord-1" || captured.ProfessionalID != "pro-1" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if !captured.OrderValue.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected order value 1000, got %s", captured.OrderValue)
	}

	var resp dto.SettlementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Decision.Method != "progressive" {
		t.Fatalf("expected method progressive, got %s", resp.Decision.Method)
	}
	if !resp.Wallet.CurrentBalance.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected balance 900, got %s", resp.Wallet.CurrentBalance)
	}
	if resp.Replayed {
		t.Fatal("expected a fresh settlement, got a replay")
	}
}

func TestSettlementHandler_OrderCompleted_Replay(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		onCompletedFn: func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
			return sampleResult(true), nil
		},
		getFeeFn: func(ctx context.Context, orderID string) (*domain.FeeDecision, error) { return nil, nil },
	})

	body, _ := json.Marshal(dto.OrderCompletedRequest{
		OrderID:        "ord-1",
		ProfessionalID: "pro-1",
		OrderValue:     decimal.NewFromInt(1000),
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/completed", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.OrderCompleted(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for replay, got %d", rec.Code)
	}
}

func TestSettlementHandler_OrderCompleted_InvalidJSON(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		onCompletedFn: func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
			t.Fatal("OnOrderCompleted should not be called for invalid payload")
			return nil, nil
		},
		getFeeFn: func(ctx context.Context, orderID string) (*domain.FeeDecision, error) { return nil, nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/completed", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.OrderCompleted(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettlementHandler_OrderCompleted_Conflict(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		onCompletedFn: func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
			return nil, domain.ErrLedgerConflict
		},
		getFeeFn: func(ctx context.Context, orderID string) (*domain.FeeDecision, error) { return nil, nil },
	})

	body, _ := json.Marshal(dto.OrderCompletedRequest{
		OrderID:        "ord-1",
		ProfessionalID: "pro-1",
		OrderValue:     decimal.NewFromInt(999),
	})

	req := httptest.NewRequest(http.MethodPost, "/orders/completed", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.OrderCompleted(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSettlementHandler_GetFee(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		getFeeFn: func(ctx context.Context, orderID string) (*domain.FeeDecision, error) {
			if orderID != "ord-1" {
				t.Fatalf("expected order id ord-1, got %s", orderID)
			}
			return sampleResult(false).Decision, nil
		},
		onCompletedFn: func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-1/fee", nil)
	req = setChiURLParam(req, "id", "ord-1")
	rec := httptest.NewRecorder()

	handler.GetFee(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.FeeDecisionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.FeeCharged.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected fee 100, got %s", resp.FeeCharged)
	}
}

func TestSettlementHandler_GetFee_NotFound(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		getFeeFn: func(ctx context.Context, orderID string) (*domain.FeeDecision, error) {
			return nil, domain.ErrFeeDecisionNotFound
		},
		onCompletedFn: func(ctx context.Context, input usecase.OrderCompletedInput) (*usecase.SettlementResult, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-9/fee", nil)
	req = setChiURLParam(req, "id", "ord-9")
	rec := httptest.NewRecorder()

	handler.GetFee(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
