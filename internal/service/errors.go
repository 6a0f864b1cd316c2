// Package service implements the resource services of the rental API:
// request validation, the cross-entity delete guards, and the read-side
// projections, on top of the database layer. Handlers stay pure glue.
package service

import (
	"errors"
	"net/http"
)

// Error is a failure tagged with the HTTP status the transport should
// answer with. Messages are human-readable and travel to the client as-is.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation reports missing or invalid required fields.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Conflict reports a business-rule guard rejecting the operation.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFound reports that no row matched the requested identity.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Store wraps a driver or query failure.
func Store(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: err.Error()}
}

// StatusOf extracts the status code of a service error, defaulting to 500
// for anything untagged.
func StatusOf(err error) int {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	return http.StatusInternalServerError
}

// Ack is the acknowledgement payload of delete operations.
type Ack struct {
	Message string `json:"message"`
}
