package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_002", "Insufficient merchant balance", http.StatusPaymentRequired),
			expected: "[PAY_002] Insufficient merchant balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("VAL_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidAmount", ErrInvalidAmount(), "VAL_001", 400},
		{"AmountBelowMinimum", ErrAmountBelowMinimum(100), "VAL_002", 400},
		{"DuplicateOrderID", ErrDuplicateOrderID("ORD-1"), "VAL_003", 409},
		{"MissingField", ErrMissingField("sign"), "VAL_004", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestOrderErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"NotFound", ErrNotFound("Order"), "PAY_001", 404},
		{"InsufficientFunds", ErrInsufficientFunds(), "PAY_002", 402},
		{"AlreadyTerminal", ErrAlreadyTerminal(), "PAY_003", 409},
		{"UnknownChannel", ErrUnknownChannel("nopay"), "PAY_004", 400},
		{"MerchantInactive", ErrMerchantInactive(), "PAY_005", 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestUpstreamError(t *testing.T) {
	inner := fmt.Errorf("dial tcp: timeout")
	err := ErrUpstreamCreate(inner)
	assert.Equal(t, "UPS_001", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.True(t, errors.Is(err, inner))
}

func TestAmountBelowMinimum_MessageIncludesMin(t *testing.T) {
	err := ErrAmountBelowMinimum(250)
	assert.Contains(t, err.Message, "250.00")
}

func TestDuplicateOrderID_MessageIncludesID(t *testing.T) {
	err := ErrDuplicateOrderID("EXT-42")
	assert.Contains(t, err.Message, "EXT-42")
}
