package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError wraps a failure to reach the server or read its response.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be decoded as JSON. The
// quote server answers with HTML for 404/403 pages, which lands here.
type DecodeError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("apiclient: %s %s: decode response (status %d): %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusError is returned by page fetches that do not answer 2xx.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apiclient: GET %s: unexpected status %d %s", e.Path, e.Code, http.StatusText(e.Code))
}

// StatusCode reports the HTTP status carried by the error.
func (e *StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// IsTransport reports whether err is a network or decoding failure rather than
// a logical failure reported by the server.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var (
		transportErr *TransportError
		decodeErr    *DecodeError
		statusErr    *StatusError
	)
	return errors.As(err, &transportErr) || errors.As(err, &decodeErr) || errors.As(err, &statusErr)
}
