package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrStatus marks a non-success response from the provider API.
	ErrStatus = errors.New("catalog: unexpected response status")
	// ErrUnauthorized marks a 401/403, typically an expired session token.
	ErrUnauthorized = errors.New("catalog: access token rejected")
	// ErrDecode marks a response body that is not the expected JSON shape.
	ErrDecode = errors.New("catalog: malformed response")
	// ErrRequest marks a failure before any response was received.
	ErrRequest = errors.New("catalog: request failed")
)

// TransportError describes a failed remote call. It matches one of the
// sentinels above with errors.Is and the underlying cause with errors.As.
type TransportError struct {
	Kind error
	Op   string
	URL  string
	Err  error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Op)
	if e.URL != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.URL)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransportError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
