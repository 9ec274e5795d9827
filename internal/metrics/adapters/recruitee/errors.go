package recruitee

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// errRateLimited is returned when the shared token bucket cannot admit a request within MaxWait.
var errRateLimited = errors.New("rate limit wait exceeded")

// TransientError is an upstream failure that may succeed on retry.
type TransientError struct {
	err error
}

func (e *TransientError) Error() string { return e.err.Error() }

func (e *TransientError) Unwrap() error { return e.err }

// FatalError is an upstream failure that is not retried.
type FatalError struct {
	err error
}

func (e *FatalError) Error() string { return e.err.Error() }

func (e *FatalError) Unwrap() error { return e.err }

func IsTransient(err error) bool {
	var transient *TransientError
	return errors.As(err, &transient)
}

func IsFatal(err error) bool {
	var fatal *FatalError
	return errors.As(err, &fatal)
}

// StatusError carries a non-200 response from the recruitment API.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recruitee %s: status %d: %s", e.Endpoint, e.Code, e.Body)
}

func isNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// classifyStatus maps a response status onto a retry decision. 429 and 5xx are transient.
func classifyStatus(endpoint string, code int, body []byte) error {
	text := string(body)
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	err := &StatusError{Endpoint: endpoint, Code: code, Body: text}

	switch {
	case code == http.StatusTooManyRequests:
		return &TransientError{err: err}
	case code >= 500:
		return &TransientError{err: err}
	default:
		return &FatalError{err: err}
	}
}
