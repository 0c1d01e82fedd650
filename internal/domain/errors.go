package domain

import "errors"

var (
	// Configuration errors
	ErrNoMatchingSlab   = errors.New("no commission slab covers order value")
	ErrInvalidSlabTable = errors.New("commission slab table is malformed")
	ErrInvalidRateTable = errors.New("progressive rate table is malformed")

	// Settlement errors
	ErrInvalidOrderValue    = errors.New("order value must be positive")
	ErrDuplicateLedgerEntry = errors.New("ledger entry already exists for order")
	ErrLedgerConflict       = errors.New("conflicting ledger entry exists for order")
	ErrFeeDecisionNotFound  = errors.New("fee decision not found")

	// Wallet errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNotEligible         = errors.New("balance below minimum required for withdrawal")
	ErrInsufficientBalance = errors.New("withdrawal amount exceeds current balance")
)
