package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("admin role required")
	ErrInvalidPIN        = errors.New("invalid pin")
	ErrNotAuthenticated  = errors.New("no user logged in")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidService    = errors.New("invalid service definition")
	ErrUnknownCategory   = errors.New("unknown service category")
	ErrMissingOperator   = errors.New("operator is required")
)

// InsufficientStockError reports the stock that was actually available.
type InsufficientStockError struct {
	ProductID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
