package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrUnauthorized       = errors.New("client unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrPreconditionFailed = errors.New("collection modified since last read")
	ErrPayloadTooLarge    = errors.New("request too large")
	ErrServerError        = errors.New("server error")
	ErrTransport          = errors.New("transport failure")
	ErrBadResponse        = errors.New("malformed server response")
)

// RemoteError is returned for every failed call to the storage service.
type RemoteError struct {
	// Route is the request, e.g. "POST /storage/passwords".
	Route      string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Route, e.Err)
	}
	return fmt.Sprintf("%s: http %d: %v", e.Route, e.StatusCode, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same request later may succeed.
// A 412 is not retryable as-is: the caller must re-read the collection.
func (e *RemoteError) Retryable() bool {
	switch {
	case errors.Is(e.Err, ErrTransport):
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

// IsRetryable reports whether err is a retryable [*RemoteError].
func IsRetryable(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Retryable()
}

func transportError(route string, err error) *RemoteError {
	return &RemoteError{Route: route, Err: fmt.Errorf("%w: %v", ErrTransport, err)}
}

func decodeError(route string, status int, err error) *RemoteError {
	return &RemoteError{Route: route, StatusCode: status, Err: fmt.Errorf("%w: %v", ErrBadResponse, err)}
}
