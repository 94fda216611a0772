// Package apperr holds the sentinel errors shared by storage, services and handlers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrInvalidAmount is a validation failure on a monetary amount.
	ErrInvalidAmount = fmt.Errorf("%w: amount", ErrInvalidInput)
	// ErrInvalidState is returned when a transaction is not in the status an operation requires.
	ErrInvalidState = errors.New("invalid transaction state")
	// ErrInvalidKind is returned when an operation is applied to the wrong transaction kind.
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrOrphanTransaction means a transaction references an account that does not exist.
	ErrOrphanTransaction = errors.New("orphan transaction")
	ErrItemUnavailable   = errors.New("item unavailable")
)
