package service

import "errors"

// Failure taxonomy surfaced by the financial core. Handlers map these to HTTP
// statuses; nothing below this layer retries automatically beyond the small
// conditional-update budget in the repositories.
var (
	// ErrValidation — malformed or out-of-range input (amount ≤ 0, unknown
	// line item reference, non-positive quantity, unknown category).
	ErrValidation = errors.New("validation error")

	// ErrNotFound — the referenced entity is absent or owned by another salon.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientStock — a consuming movement would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConflict — optimistic-update retries exhausted; safe for the caller
	// to retry the whole request.
	ErrConflict = errors.New("concurrent update conflict")
)
