// Package errors defines the normalized error taxonomy shared by the HTTP
// client, tool dispatcher, and transports. Every failure the gateway emits
// to a caller is collapsed into one of these kinds before it leaves the
// process.
package errors

import "fmt"

// Kind is a normalized error category.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindAuthentication      Kind = "AUTHENTICATION_ERROR"
	KindRateLimited         Kind = "RATE_LIMITED"
	KindTimeout             Kind = "TIMEOUT"
	KindServiceUnavailable  Kind = "SERVICE_UNAVAILABLE"
	KindCircuitOpen         Kind = "CIRCUIT_OPEN"
	KindInvalidInput        Kind = "INVALID_INPUT"
	KindInternal            Kind = "INTERNAL_ERROR"
	KindUnknown             Kind = "UNKNOWN_ERROR"
)

// HTTPStatus returns the status code this kind maps to, per the error
// taxonomy table.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindInvalidInput:
		return 400
	case KindAuthentication:
		return 401
	case KindRateLimited:
		return 429
	case KindTimeout:
		return 504
	case KindServiceUnavailable, KindCircuitOpen:
		return 503
	case KindInternal, KindUnknown:
		return 500
	default:
		return 500
	}
}

// Retryable reports whether the HTTP client may retry a call that failed
// with this kind. The dispatcher itself never retries regardless of this
// flag; only the HTTP client's retry loop consults it.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimited, KindTimeout, KindServiceUnavailable, KindCircuitOpen:
		return true
	default:
		return false
	}
}

// FieldError names one offending field in a VALIDATION_ERROR's details list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the normalized error type that flows from the HTTP client and
// upstream adapters up through the dispatcher to a tool call response.
type Error struct {
	Kind       Kind         `json:"code"`
	Message    string       `json:"message"`
	RequestID  string       `json:"requestId,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
	RetryAfter int          `json:"retryAfterSeconds,omitempty"`
	NextAttempt int64       `json:"nextAttemptUnixMs,omitempty"`
	Cause      error        `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether the error's kind permits a retry.
func (e *Error) Retryable() bool { return e.Kind.Retryable() }

// New builds a normalized error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a normalized error of the given kind, preserving the
// underlying cause for logging and %w-style unwrapping.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// Validation builds a VALIDATION_ERROR carrying per-field details.
func Validation(message string, details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// AsError extracts a normalized *Error from err, wrapping it as
// INTERNAL_ERROR if it isn't already one.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if as(err, &e) {
		return e
	}
	return Wrap(KindInternal, "unclassified server fault", err)
}

func as(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
