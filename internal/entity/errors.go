package entity

import (
	"errors"
	"fmt"
)

// Error kinds used across usecases. Handlers map these to HTTP status
// codes; everything else is wrapped and propagated as a server error.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// OrderExistsError is returned when a buyer already has an order for an
// artwork. It carries the existing order id so the client can resume the
// payment flow instead of creating a duplicate.
type OrderExistsError struct {
	OrderID string
}

func (e *OrderExistsError) Error() string {
	return fmt.Sprintf("order already exists: %s", e.OrderID)
}

func (e *OrderExistsError) Is(target error) bool {
	return target == ErrConflict
}
