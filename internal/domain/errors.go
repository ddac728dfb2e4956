package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInternalError       = errors.New("internal error")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNameRequired        = errors.New("name is required")
	ErrNameTooLong         = errors.New("name exceeds maximum length")
	ErrPayeeRequired       = errors.New("payee is required")
	ErrPayeeTooLong        = errors.New("payee exceeds maximum length")
	ErrNotesTooLong        = errors.New("notes exceed maximum length")
)

// Validation constants
const (
	MaxNameLength  = 255
	MaxPayeeLength = 255
	MaxNotesLength = 1000
)
