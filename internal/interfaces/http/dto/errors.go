package dto

import (
	"net/http"
	"strings"
)

// General error codes used by the HTTP layer itself
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation-style codes are handled by prefix in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Resource errors
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_CODE":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"ALREADY_ASSIGNED":     http.StatusConflict,
	"ALREADY_CANCELLED":    http.StatusConflict,
	"ALREADY_ACTIVE":       http.StatusConflict,
	"ALREADY_INACTIVE":     http.StatusConflict,

	// State machine violations -> 422 Unprocessable Entity
	"INVALID_TRANSITION":  http.StatusUnprocessableEntity,
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"ORDER_NOT_ACCEPTED":  http.StatusUnprocessableEntity,
	"ORDER_NOT_VALIDATED": http.StatusUnprocessableEntity,
	"SALE_CANCELLED":      http.StatusUnprocessableEntity,
	"PURCHASE_CANCELLED":  http.StatusUnprocessableEntity,

	// Business rule violations -> 422 Unprocessable Entity
	"NOT_A_CUSTOMER":         http.StatusUnprocessableEntity,
	"NOT_A_SUPPLIER":         http.StatusUnprocessableEntity,
	"INACTIVE_CUSTOMER":      http.StatusUnprocessableEntity,
	"INACTIVE_SUPPLIER":      http.StatusUnprocessableEntity,
	"CUSTOMER_MISMATCH":      http.StatusUnprocessableEntity,
	"SUPPLIER_MISMATCH":      http.StatusUnprocessableEntity,
	"COUNTERPARTY_MISMATCH":  http.StatusUnprocessableEntity,
	"KIND_MISMATCH":          http.StatusUnprocessableEntity,
	"INSUFFICIENT_BALANCE":   http.StatusUnprocessableEntity,
	"AMOUNT_EXCEEDS_PENDING": http.StatusUnprocessableEntity,
	"AMOUNT_EXCEEDED":        http.StatusUnprocessableEntity,
	"UNAPPLIED_NOTE":         http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Input validation codes (INVALID_*, EMPTY_*) map to 400; anything
// unrecognized is treated as a business rule violation.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") || strings.HasPrefix(code, "EMPTY_") {
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
