package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an error so callers can tell expected business outcomes
// apart from infrastructure faults.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindValidation          Kind = "validation"
	KindInsufficientFunds   Kind = "insufficient_funds"
	KindAuthorizationDenied Kind = "authorization_denied"
	KindCommitFailure       Kind = "commit_failure"
	KindReceiptWriteFailure Kind = "receipt_write_failure"
	KindConflict            Kind = "conflict"
	KindUnauthorized        Kind = "unauthorized"
	KindInternal            Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Err     error        `json:"-"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid username or password"}
	ErrEmptyCart          = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindValidation, Message: "Please add items to the cart before proceeding to payment"}
	ErrCheckoutInProgress = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "A checkout is already in progress for this register"}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, fieldErrors ...FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewInsufficientFundsError reports a tendered amount below the total due.
func NewInsufficientFundsError() *AppError {
	return &AppError{
		Code:    http.StatusPaymentRequired,
		Kind:    KindInsufficientFunds,
		Message: "Amount received is less than the total",
	}
}

// NewAuthorizationDeniedError reports a rejected admin credential.
func NewAuthorizationDeniedError() *AppError {
	return &AppError{
		Code:    http.StatusForbidden,
		Kind:    KindAuthorizationDenied,
		Message: "Invalid admin code or insufficient permissions",
	}
}

// NewCommitFailure wraps a persistence error raised while saving a sale.
func NewCommitFailure(err error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindCommitFailure,
		Message: "Failed to create transaction. Please try again",
		Err:     err,
	}
}

// NewReceiptWriteFailure wraps a receipt file error. The sale itself is saved.
func NewReceiptWriteFailure(err error) *AppError {
	return &AppError{
		Code:    http.StatusOK,
		Kind:    KindReceiptWriteFailure,
		Message: "Transaction saved, but receipt failed",
		Err:     err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal server error",
		Err:     err,
	}
}
