package contracts

import "errors"

// Common errors for domain contracts
var (
	// ErrNotFound occurs when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrScopeLocked occurs when audit scope is mutated after it has been locked.
	ErrScopeLocked = errors.New("audit scope is locked")
)
