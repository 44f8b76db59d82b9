package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a request is missing or has malformed fields
	ErrValidation = errors.New("validation failed")

	// ErrUnserializableInput is returned when a record cannot be canonicalized
	ErrUnserializableInput = errors.New("unserializable input")

	// ErrInsufficientInventory is returned when a purchase exceeds the available quantity
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrInsufficientFunds is returned when a buyer balance does not cover the purchase total
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrLedgerUnavailable is returned when the external log could not accept a message.
	// Nothing local has been committed when this is returned.
	ErrLedgerUnavailable = errors.New("ledger unavailable")

	// ErrLedgerLocalMismatch is returned when the ledger accepted a message but the local commit failed
	ErrLedgerLocalMismatch = errors.New("ledger and local store mismatch")

	// ErrAlreadyReleased is returned when releasing an escrow that is no longer active
	ErrAlreadyReleased = errors.New("escrow already released")

	// ErrAlreadyCommitted is returned when a custody transition was already recorded for the subject
	ErrAlreadyCommitted = errors.New("custody event already committed")

	// ErrInvalidTransition is returned when the current state does not allow the requested transition
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrNotFound is returned when the referenced record does not exist
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller's role does not permit the operation
	ErrForbidden = errors.New("forbidden")

	// ErrStoreUnavailable is returned on transaction or connection failures
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError describes a single rejected field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// MismatchError carries the reconciliation item recorded for a ledger/local mismatch
type MismatchError struct {
	ReconciliationID string
	TransactionID    string
	Cause            error
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: ledger tx %s recorded as %s: %v", ErrLedgerLocalMismatch, e.TransactionID, e.ReconciliationID, e.Cause)
}

// Unwrap exposes both the mismatch kind and the local failure
func (e *MismatchError) Unwrap() []error {
	return []error{ErrLedgerLocalMismatch, e.Cause}
}
