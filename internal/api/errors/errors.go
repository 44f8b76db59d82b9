package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest            ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound              ErrorCode = "NOT_FOUND"
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnserializableInput   ErrorCode = "UNSERIALIZABLE_INPUT"
	ErrCodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden             ErrorCode = "FORBIDDEN"
	ErrCodeRateLimited           ErrorCode = "RATE_LIMITED"
	ErrCodeInsufficientInventory ErrorCode = "INSUFFICIENT_INVENTORY"
	ErrCodeInsufficientFunds     ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeAlreadyReleased       ErrorCode = "ALREADY_RELEASED"
	ErrCodeAlreadyCommitted      ErrorCode = "ALREADY_COMMITTED"
	ErrCodeInvalidTransition     ErrorCode = "INVALID_TRANSITION"

	// Server errors (5xx)
	ErrCodeInternalError       ErrorCode = "INTERNAL_ERROR"
	ErrCodeLedgerUnavailable   ErrorCode = "LEDGER_UNAVAILABLE"
	ErrCodeStoreUnavailable    ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeLedgerLocalMismatch ErrorCode = "LEDGER_LOCAL_MISMATCH"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Status           int       `json:"-"`
	Code             ErrorCode `json:"code"`
	Message          string    `json:"message"`
	Details          string    `json:"details,omitempty"`
	ReconciliationID string    `json:"reconciliationId,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Envelope is the body of every API response
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// Success wraps data in a successful envelope
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure wraps an API error in a failed envelope
func Failure(apiErr *APIError) Envelope {
	return Envelope{Success: false, Error: apiErr}
}

func newError(status int, code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return newError(http.StatusBadRequest, ErrCodeBadRequest, message, details...)
}

func NewNotFoundError(message string, details ...string) *APIError {
	return newError(http.StatusNotFound, ErrCodeNotFound, message, details...)
}

func NewValidationError(details ...string) *APIError {
	return newError(http.StatusUnprocessableEntity, ErrCodeValidationFailed, "Validation failed", details...)
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return newError(http.StatusUnauthorized, ErrCodeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *APIError {
	return newError(http.StatusForbidden, ErrCodeForbidden, message, details...)
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return newError(http.StatusTooManyRequests, ErrCodeRateLimited, message, details...)
}

func NewInternalError(message string, details ...string) *APIError {
	return newError(http.StatusInternalServerError, ErrCodeInternalError, message, details...)
}

// FromError maps a domain error onto its HTTP status and error code.
// Errors outside the domain taxonomy become a generic internal error without details.
func FromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	// Mismatch first: it also unwraps to the store error that caused it
	var mismatch *domain.MismatchError
	if stderrors.As(err, &mismatch) {
		e := newError(http.StatusInternalServerError, ErrCodeLedgerLocalMismatch,
			"Ledger commit succeeded but the local record could not be saved")
		e.ReconciliationID = mismatch.ReconciliationID
		return e
	}

	switch {
	case stderrors.Is(err, domain.ErrUnserializableInput):
		return newError(http.StatusUnprocessableEntity, ErrCodeUnserializableInput, "Input cannot be canonicalized", err.Error())
	case stderrors.Is(err, domain.ErrValidation):
		return NewValidationError(err.Error())
	case stderrors.Is(err, domain.ErrNotFound):
		return NewNotFoundError("Resource not found", err.Error())
	case stderrors.Is(err, domain.ErrForbidden):
		return NewForbiddenError("Forbidden", err.Error())
	case stderrors.Is(err, domain.ErrInsufficientInventory):
		return newError(http.StatusConflict, ErrCodeInsufficientInventory, "Insufficient inventory", err.Error())
	case stderrors.Is(err, domain.ErrInsufficientFunds):
		return newError(http.StatusConflict, ErrCodeInsufficientFunds, "Insufficient funds", err.Error())
	case stderrors.Is(err, domain.ErrAlreadyReleased):
		return newError(http.StatusConflict, ErrCodeAlreadyReleased, "Escrow already released", err.Error())
	case stderrors.Is(err, domain.ErrAlreadyCommitted):
		return newError(http.StatusConflict, ErrCodeAlreadyCommitted, "Custody transition already recorded", err.Error())
	case stderrors.Is(err, domain.ErrInvalidTransition):
		return newError(http.StatusConflict, ErrCodeInvalidTransition, "Invalid state transition", err.Error())
	case stderrors.Is(err, domain.ErrLedgerUnavailable):
		return newError(http.StatusServiceUnavailable, ErrCodeLedgerUnavailable, "Ledger unavailable")
	case stderrors.Is(err, domain.ErrStoreUnavailable):
		return newError(http.StatusServiceUnavailable, ErrCodeStoreUnavailable, "Store unavailable")
	default:
		return NewInternalError("Internal server error")
	}
}
