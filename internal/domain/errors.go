package domain

import "errors"

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrInternalError   = errors.New("internal error")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name exceeds maximum length")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidStatus   = errors.New("invalid order status")
)

// Validation constants
const (
	MaxProductNameLength = 255
)
