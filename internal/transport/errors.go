package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned by every Client operation that fails on the network or
// with a non-2xx status. StatusCode is 0 when no response was received.
type Error struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	// Message is the server's error message when the body carried one.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.Path, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.Path, e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err (or any error in its chain) is an *Error.
func IsTransportError(err error) bool {
	var te *Error
	return errors.As(err, &te)
}

// IsAuthError reports whether the server rejected the credential.
func IsAuthError(err error) bool {
	var te *Error
	if !errors.As(err, &te) {
		return false
	}
	return te.StatusCode == http.StatusUnauthorized || te.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether the server answered 404.
func IsNotFound(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.StatusCode == http.StatusNotFound
}
