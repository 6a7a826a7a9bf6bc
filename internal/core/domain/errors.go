package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoSession         = errors.New("no active session")
	ErrEmptyToken        = errors.New("session token is empty")
	ErrInvalidTransition = errors.New("invalid page state transition")
	ErrUnknownField      = errors.New("unknown field")
	ErrMissingToken      = errors.New("response did not include a token")
)

// ValidationError is raised on the client side before any request is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// RequestError reports a non-2xx answer from the backend API.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, msg)
}

// NetworkError reports a request that never completed.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body could not be parsed.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage renders err the way a page shows it inline.
func UserMessage(err error) string {
	var (
		ve *ValidationError
		re *RequestError
		ne *NetworkError
		de *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &re):
		if re.Message != "" {
			return re.Message
		}
		return http.StatusText(re.Status)
	case errors.As(err, &ne):
		return "Could not reach the server. Please try again."
	case errors.As(err, &de):
		return "The server sent an unexpected response. Please try again."
	case errors.Is(err, ErrNoSession):
		return "Your session has ended. Please log in again."
	default:
		return "Something went wrong. Please try again."
	}
}
