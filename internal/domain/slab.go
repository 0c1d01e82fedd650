package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// CommissionSlab is one configured price bracket with a flat fee cap.
// The cap is a ceiling on the commission for any order whose value falls
// in the half-open range [MinPrice, MaxPrice), not a rate. The open-ended
// last bracket covers [MinPrice, ∞).
type CommissionSlab struct {
	ID            string
	MinPrice      decimal.Decimal
	MaxPrice      decimal.Decimal // exclusive; ignored when OpenEnded
	MaxCommission decimal.Decimal
	OpenEnded     bool
}

// Contains reports whether value falls within the slab's price range.
func (s *CommissionSlab) Contains(value decimal.Decimal) bool {
	if value.LessThan(s.MinPrice) {
		return false
	}
	if s.OpenEnded {
		return true
	}
	return value.LessThan(s.MaxPrice)
}

// SlabTable is the immutable, validated set of commission slabs.
// Built once from configuration; safe for concurrent lookups.
type SlabTable struct {
	slabs []CommissionSlab
}

// NewSlabTable validates and builds a slab table. Brackets must start
// at zero, be contiguous (each one begins exactly where the previous
// ends) and end with an open-ended bracket, so every non-negative value
// has exactly one covering slab.
func NewSlabTable(slabs []CommissionSlab) (*SlabTable, error) {
	if len(slabs) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidSlabTable)
	}

	sorted := make([]CommissionSlab, len(slabs))
	copy(sorted, slabs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinPrice.LessThan(sorted[j].MinPrice)
	})

	if !sorted[0].MinPrice.IsZero() {
		return nil, fmt.Errorf("%w: first slab must start at 0, got %s", ErrInvalidSlabTable, sorted[0].MinPrice)
	}

	for i, s := range sorted {
		if s.MaxCommission.IsNegative() || s.MaxCommission.IsZero() {
			return nil, fmt.Errorf("%w: slab %s has non-positive cap", ErrInvalidSlabTable, s.ID)
		}

		last := i == len(sorted)-1
		if last {
			if !s.OpenEnded {
				return nil, fmt.Errorf("%w: last slab must be open-ended", ErrInvalidSlabTable)
			}
			continue
		}

		if s.OpenEnded {
			return nil, fmt.Errorf("%w: slab %s is open-ended but not last", ErrInvalidSlabTable, s.ID)
		}
		if s.MaxPrice.LessThanOrEqual(s.MinPrice) {
			return nil, fmt.Errorf("%w: slab %s has max <= min", ErrInvalidSlabTable, s.ID)
		}
		// Next slab must pick up exactly where this one ends; anything
		// else is a gap or an overlap in the coverage.
		if !sorted[i+1].MinPrice.Equal(s.MaxPrice) {
			return nil, fmt.Errorf("%w: slabs %s and %s are not contiguous", ErrInvalidSlabTable, s.ID, sorted[i+1].ID)
		}
	}

	return &SlabTable{slabs: sorted}, nil
}

// Lookup returns the slab covering the given order value. A validated
// table covers [0, ∞), so only a negative value yields ErrNoMatchingSlab.
func (t *SlabTable) Lookup(orderValue decimal.Decimal) (*CommissionSlab, error) {
	if orderValue.IsNegative() {
		return nil, fmt.Errorf("%w: value %s", ErrNoMatchingSlab, orderValue)
	}

	for i := range t.slabs {
		if t.slabs[i].Contains(orderValue) {
			return &t.slabs[i], nil
		}
	}

	return nil, fmt.Errorf("%w: value %s", ErrNoMatchingSlab, orderValue)
}

// Slabs returns a copy of the configured slabs in ascending order.
func (t *SlabTable) Slabs() []CommissionSlab {
	out := make([]CommissionSlab, len(t.slabs))
	copy(out, t.slabs)
	return out
}
