// Package errors provides the typed failures surfaced by the budget tracker.
// Services return *AppError values only; handlers translate them into JSON
// responses without leaking the wrapped internal error.
package errors

import (
	"errors"
	"net/http"
)

// Kind groups error codes into the failure classes callers branch on.
type Kind string

const (
	KindNotFound      Kind = "NotFound"
	KindAlreadyExists Kind = "AlreadyExists"
	KindNullArgument  Kind = "NullArgument"
	KindInvalidInput  Kind = "InvalidInput"
	KindPersistence   Kind = "PersistenceFailure"
	KindUnauthorized  Kind = "Unauthorized"
	KindInternal      Kind = "Internal"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Kind       Kind   `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Kind:       sentinel.Kind,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Kind:       sentinel.Kind,
		Internal:   sentinel.Internal,
	}
}

// KindOf reports the failure class of err. Errors that are not an *AppError
// are classified as internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized, Kind: KindUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized, Kind: KindUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest, Kind: KindInvalidInput}
	ErrNullArgument   = &AppError{Code: "NULL_ARGUMENT", Message: "Required argument is missing", StatusCode: http.StatusBadRequest, Kind: KindNullArgument}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
	ErrPersistence    = &AppError{Code: "PERSISTENCE_FAILURE", Message: "A storage error occurred", StatusCode: http.StatusInternalServerError, Kind: KindPersistence}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError, Kind: KindInternal}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict, Kind: KindAlreadyExists}
)

// Wallet errors.
var (
	ErrWalletNotFound      = &AppError{Code: "WALLET_NOT_FOUND", Message: "Wallet not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
	ErrUnsupportedCurrency = &AppError{Code: "UNSUPPORTED_CURRENCY", Message: "Currency must be one of EUR, CZK, USD", StatusCode: http.StatusBadRequest, Kind: KindInvalidInput}
	ErrGoalNotFound        = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "A category with this name already exists", StatusCode: http.StatusConflict, Kind: KindAlreadyExists}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
	ErrEmptyDescription    = &AppError{Code: "EMPTY_DESCRIPTION", Message: "Transaction description must not be empty", StatusCode: http.StatusBadRequest, Kind: KindInvalidInput}
	ErrExportFailed        = &AppError{Code: "EXPORT_FAILED", Message: "Failed to export transactions", StatusCode: http.StatusInternalServerError, Kind: KindInternal}
)

// Statistics errors.
var (
	ErrInvalidInterval = &AppError{Code: "INVALID_INTERVAL", Message: "Interval must be one of WEEKLY, MONTHLY, YEARLY", StatusCode: http.StatusBadRequest, Kind: KindInvalidInput}
)
