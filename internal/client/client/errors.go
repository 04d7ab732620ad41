package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable wraps transport failures: the service could not be
	// reached or the connection broke before a response was read.
	ErrUnavailable = errors.New("server unavailable")

	// ErrRemote matches every non-success envelope and every response that
	// could not be decoded. Not-found and server errors are not told apart.
	ErrRemote = errors.New("remote request failed")
)

// APIError is a non-success envelope returned by the notes service.
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote request failed: status %q (http %d)", e.Status, e.HTTPStatus)
	}
	return e.Message
}

// Is makes errors.Is(err, ErrRemote) true for any APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrRemote
}

// Message returns the service-provided message of err, or "" when err is
// not an APIError. Pages prefer it over their generic failure text.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
