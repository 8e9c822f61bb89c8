package errdef

import (
	"errors"
	"fmt"
)

func NewBadRequest(format string, a ...any) error {
	return badRequest{fmt.Errorf(format, a...)}
}

type badRequest struct{ error }

func IsBadRequest(err error) bool {
	var e badRequest
	return errors.As(err, &e)
}

func NewUnsupportedMediaType(format string, a ...any) error {
	return unsupportedMediaType{fmt.Errorf(format, a...)}
}

type unsupportedMediaType struct{ error }

func IsUnsupportedMediaType(err error) bool {
	var e unsupportedMediaType
	return errors.As(err, &e)
}

// NewNotFound creates an error representing a resource that could not be found.
func NewNotFound(format string, a ...any) error {
	return notFound{fmt.Errorf(format, a...)}
}

type notFound struct{ error }

// IsNotFound returns true if err is an error representing a resource that could not be found and false otherwise.
func IsNotFound(err error) bool {
	var e notFound
	return errors.As(err, &e)
}

// NewConflict creates an error representing a conflicting state.
func NewConflict(format string, a ...any) error {
	return conflict{fmt.Errorf(format, a...)}
}

type conflict struct{ error }

// IsConflict returns true if err is an error representing a conflict and false otherwise.
func IsConflict(err error) bool {
	var e conflict
	return errors.As(err, &e)
}

// NewNetwork creates an error representing a request that never reached the backend.
func NewNetwork(format string, a ...any) error {
	return network{fmt.Errorf(format, a...)}
}

type network struct{ error }

// IsNetwork returns true if err is an error representing a failed round trip to the backend.
func IsNetwork(err error) bool {
	var e network
	return errors.As(err, &e)
}

// NewRequestFailed creates an error representing a non-2xx response from the backend.
func NewRequestFailed(status int, format string, a ...any) error {
	return requestFailed{error: fmt.Errorf(format, a...), status: status}
}

type requestFailed struct {
	error
	status int
}

// IsRequestFailed returns true if err is an error representing a non-2xx response and false otherwise.
func IsRequestFailed(err error) bool {
	var e requestFailed
	return errors.As(err, &e)
}

// StatusCode returns the HTTP status carried by a request failed error.
func StatusCode(err error) (int, bool) {
	var e requestFailed
	if !errors.As(err, &e) {
		return 0, false
	}
	return e.status, true
}
