// Package apperr defines the error taxonomy shared by every API operation:
// Conflict, NotFound, Unauthorized, Checksum and Internal. Handlers map these
// to HTTP statuses; anything unclassified is Internal and its cause is never
// echoed back to the client.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Conflict
	NotFound
	Unauthorized
	Checksum
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap keeps the cause for logs while the client only ever sees message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Conflict:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Checksum:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage redacts Internal errors so storage details never leak.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "internal server error"
}
