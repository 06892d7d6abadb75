package api

import (
	"errors"
	"fmt"
)

// ResultsError reports a server response whose stated counts are
// inconsistent with the returned payload: a page shorter than its declared
// count, or a paged fetch that overflowed or fell short of the declared
// total.
type ResultsError struct {
	Endpoint string
	Message  string
}

// Error implements the error interface.
func (e *ResultsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

func newResultsError(endpoint, format string, args ...any) *ResultsError {
	return &ResultsError{Endpoint: endpoint, Message: fmt.Sprintf(format, args...)}
}

// IsResultsError returns true if the error is an API-results consistency
// error. Uses errors.As to handle wrapped errors.
func IsResultsError(err error) bool {
	var re *ResultsError
	return errors.As(err, &re)
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
