package graphql

import (
	"fmt"
	"strings"
)

// CodeUnauthenticated is the extension code the backend attaches to errors
// caused by a missing or expired session.
const CodeUnauthenticated = "UNAUTHENTICATED"

// Error is the set of application errors reported in the response envelope.
// The request reached the server; the server refused it.
type Error struct {
	Messages []string
	Codes    []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// HasCode reports whether any of the reported errors carries the given
// extension code.
func (e *Error) HasCode(code string) bool {
	for _, c := range e.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// TransportError wraps failures below the GraphQL layer: unreachable host,
// broken connection, a body that is not valid JSON. The server never saw or
// never answered the operation in a well-formed way.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
