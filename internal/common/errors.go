// Package common defines shared constants and error types used across the
// client layers. Callers should use errors.Is / errors.As to match them.
package common

import "errors"

var (
	// ErrUnauthorized marks requests rejected for a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable marks failures to reach the backend at all.
	ErrUnavailable = errors.New("server unavailable")
)

// DomainError carries the human-readable message a mutation payload reports
// when it answers success=false. The request itself succeeded; the operation
// was refused by application rules (invalid credentials, listing not found,
// negative price, ...). No local state may change when one is returned.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
