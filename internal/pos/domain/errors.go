package domain

import (
	"errors"
	"fmt"
)

// Business errors. Every operation that returns one of these has left stored state untouched.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrOutOfStock         = errors.New("item is out of stock")
	ErrStockLimitExceeded = errors.New("cannot add more, stock limit reached")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrConflict           = errors.New("concurrent update, please retry")
)

// ValidationError describes bad input on a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsBusinessRule reports whether err is a stock rule rejection
func IsBusinessRule(err error) bool {
	return errors.Is(err, ErrOutOfStock) ||
		errors.Is(err, ErrStockLimitExceeded) ||
		errors.Is(err, ErrInsufficientStock)
}
