package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeMethod records which of the two competing schedules produced the
// charged fee.
type FeeMethod string

const (
	FeeMethodProgressive FeeMethod = "progressive"
	FeeMethodSlab        FeeMethod = "slab"
)

// FeeDecision is the immutable audit record of one fee computation.
type FeeDecision struct {
	OrderID         string
	ProfessionalID  string
	OrderValue      decimal.Decimal
	Ordinal         int
	ProgressiveRate decimal.Decimal // percent applied, e.g. 10 for 10%
	ProgressiveFee  decimal.Decimal
	SlabID          string
	SlabFee         decimal.Decimal
	FeeCharged      decimal.Decimal
	Method          FeeMethod
	DecidedAt       time.Time
}

// ChooseFee applies the tie-break rule: the fee charged is the smaller
// of the progressive fee and the slab cap, with ties going to the slab.
func ChooseFee(progressiveFee, slabFee decimal.Decimal) (decimal.Decimal, FeeMethod) {
	if progressiveFee.LessThan(slabFee) {
		return progressiveFee, FeeMethodProgressive
	}
	return slabFee, FeeMethodSlab
}

// ProgressiveFee computes value * percent / 100, rounded to 2 places.
func ProgressiveFee(orderValue, percent decimal.Decimal) decimal.Decimal {
	return orderValue.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}

// Matches reports whether a retried settlement request describes the
// same order as this decision. A retry that matches is a no-op; one
// that does not is a conflict needing manual reconciliation.
func (d *FeeDecision) Matches(professionalID string, orderValue decimal.Decimal) bool {
	return d.ProfessionalID == professionalID && d.OrderValue.Equal(orderValue)
}
