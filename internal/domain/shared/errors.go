package shared

import (
	"fmt"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewInvalidTransitionError creates a domain error describing a rejected state
// transition, naming the current state, the requested state, and the states
// that would have been allowed.
func NewInvalidTransitionError(current, requested string, allowed []string) *DomainError {
	allowedDesc := "none (terminal state)"
	if len(allowed) > 0 {
		allowedDesc = strings.Join(allowed, ", ")
	}
	return NewDomainError(
		"INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition from %q to %q; allowed: %s", current, requested, allowedDesc),
	)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientBalance = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient balance available")
)
