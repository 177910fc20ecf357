package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error kinds. Match them with errors.Is.
var (
	ErrRateLimited     = errors.New("rate limited")
	ErrUnavailable     = errors.New("provider unavailable")
	ErrRejected        = errors.New("request rejected")
	ErrInvalidResponse = errors.New("invalid response")
	ErrTruncated       = errors.New("response truncated at max tokens")
)

// Error is returned by providers. Kind is one of the Err* values above.
type Error struct {
	Kind       error
	Provider   string
	RetryAfter time.Duration   // set for ErrRateLimited when known
	Content    json.RawMessage // raw output for ErrInvalidResponse and ErrTruncated
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// statusError maps an HTTP status returned by a provider API to an Error.
func statusError(provider string, status int, err error) *Error {
	kind := ErrUnavailable
	switch {
	case status == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case status >= 400 && status < 500:
		kind = ErrRejected
	}
	return &Error{Kind: kind, Provider: provider, Err: err}
}

func invalidResponse(provider string, content json.RawMessage, format string, args ...any) *Error {
	return &Error{
		Kind:     ErrInvalidResponse,
		Provider: provider,
		Content:  content,
		Err:      fmt.Errorf(format, args...),
	}
}
