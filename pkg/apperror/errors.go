package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Invalid amount", http.StatusBadRequest)
}

func ErrAmountBelowMinimum(min float64) *AppError {
	return New("VAL_002", fmt.Sprintf("Amount below channel minimum of %.2f", min), http.StatusBadRequest)
}

func ErrDuplicateOrderID(id string) *AppError {
	return New("VAL_003", fmt.Sprintf("Order id %s already in use", id), http.StatusConflict)
}

func ErrMissingField(field string) *AppError {
	return New("VAL_004", fmt.Sprintf("Missing required field: %s", field), http.StatusBadRequest)
}

// Validation returns a generic VAL_004-style validation error.
func Validation(message string) *AppError {
	return New("VAL_004", message, http.StatusBadRequest)
}

// ---- Orders & Settlement (PAY) ----

func ErrNotFound(entity string) *AppError {
	return New("PAY_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInsufficientFunds() *AppError {
	return New("PAY_002", "Insufficient merchant balance", http.StatusPaymentRequired)
}

func ErrAlreadyTerminal() *AppError {
	return New("PAY_003", "Order already in a terminal state", http.StatusConflict)
}

func ErrUnknownChannel(code string) *AppError {
	return New("PAY_004", fmt.Sprintf("Unknown channel: %s", code), http.StatusBadRequest)
}

func ErrMerchantInactive() *AppError {
	return New("PAY_005", "Merchant account is not active", http.StatusForbidden)
}

// ---- Authentication (AUTH) ----

func ErrInvalidAccessKey() *AppError {
	return New("AUTH_001", "Invalid or missing access key", http.StatusUnauthorized)
}

func ErrAdminForbidden() *AppError {
	return New("AUTH_002", "Admin access denied", http.StatusForbidden)
}

// ---- Upstream channel APIs (UPS) ----

func ErrUpstreamCreate(err error) *AppError {
	return Wrap("UPS_001", "Upstream order creation failed", http.StatusBadGateway, err)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
