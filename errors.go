package xweb

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned when an operation needs a session token
	// but none was configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthRejected is returned when the server rejected the request
	// identity and re-derivation produced no usable cookies.
	ErrAuthRejected = errors.New("authentication rejected")

	// ErrRateLimited is returned once the bounded 429 retry budget is
	// exhausted.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound is returned when an identifier resolves to no user.
	ErrNotFound = errors.New("not found")
)

// ParseError reports a malformed JSON body on an otherwise successful
// response. It is never retried.
type ParseError struct {
	Operation string
	Snippet   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed response body: %s", e.Operation, e.Snippet)
}

func truncateBytes(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
