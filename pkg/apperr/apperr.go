package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies request-scoped failures. Every error in this API maps to a
// 4xx response; nothing here is fatal to the process.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindPermissionDenied
	KindUnauthenticated
)

// Error is the structured error surfaced to handlers. Fields carries
// per-field messages for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

// Validation builds a field-tagged validation error.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// ValidationField is shorthand for a single-field validation error.
func ValidationField(field, message string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: map[string]string{field: message}}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func PermissionDenied(reason string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: reason}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// As unwraps err into *Error when possible.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound reports whether err is a NotFound taxonomy error.
func IsNotFound(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindNotFound
}

// HTTPStatus maps an error to its response status. Unknown errors fall back
// to 500 so bugs are not masked as client faults.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
