package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidProfessionalID = errors.New("invalid professional id")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrAmountTooLarge        = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxIDLength   = 64
	MaxOrderValue = "1000000000" // 1 billion
	MaxWithdrawal = "1000000000"
)

// ValidateProfessionalID validates a professional identifier.
func ValidateProfessionalID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidProfessionalID)
	}

	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidProfessionalID, MaxIDLength)
	}

	return nil
}

// ValidateOrderID validates an order identifier.
func ValidateOrderID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidOrderID)
	}

	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidOrderID, MaxIDLength)
	}

	return nil
}

// ValidateOrderValue validates a finalized order value.
func ValidateOrderValue(value decimal.Decimal) error {
	if value.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidOrderValue
	}

	maxValue, _ := decimal.NewFromString(MaxOrderValue)
	if value.GreaterThan(maxValue) {
		return fmt.Errorf("%w: maximum order value is %s", ErrAmountTooLarge, MaxOrderValue)
	}

	return nil
}

// ValidateWithdrawalAmount validates a requested withdrawal amount.
func ValidateWithdrawalAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxWithdrawal)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum withdrawal is %s", ErrAmountTooLarge, MaxWithdrawal)
	}

	return nil
}

// ClampPagination normalizes pagination parameters to safe bounds.
func ClampPagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
