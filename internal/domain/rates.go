package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateSchedule maps a professional's daily order ordinal (1-based) to a
// percentage commission rate. Rates decrease with volume; ordinals past
// the end of the table use the last configured rate.
type RateSchedule struct {
	percents []decimal.Decimal
}

// DefaultRatePercents is the stock progressive schedule: 10% for the
// first order of the day down to 5% for the sixth and beyond.
var DefaultRatePercents = []string{"10", "9", "8", "7", "6", "5"}

// NewRateSchedule validates and builds a rate schedule. Rates must be
// positive (a zero commission tier is not supported) and non-increasing.
func NewRateSchedule(percents []decimal.Decimal) (*RateSchedule, error) {
	if len(percents) == 0 {
		return nil, fmt.Errorf("%w: empty schedule", ErrInvalidRateTable)
	}

	for i, p := range percents {
		if p.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: rate %d is non-positive", ErrInvalidRateTable, i+1)
		}
		if i > 0 && p.GreaterThan(percents[i-1]) {
			return nil, fmt.Errorf("%w: rate %d increases over rate %d", ErrInvalidRateTable, i+1, i)
		}
	}

	copied := make([]decimal.Decimal, len(percents))
	copy(copied, percents)

	return &RateSchedule{percents: copied}, nil
}

// RateFor returns the percent rate for the given 1-based ordinal.
func (s *RateSchedule) RateFor(ordinal int) decimal.Decimal {
	if ordinal < 1 {
		ordinal = 1
	}
	if ordinal > len(s.percents) {
		ordinal = len(s.percents)
	}
	return s.percents[ordinal-1]
}

// Len returns the number of configured tiers.
func (s *RateSchedule) Len() int {
	return len(s.percents)
}
