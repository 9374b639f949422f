package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

var (
	// requested board, or filtered collection, is empty
	ErrNotFound = &ErrorWithStatusCode{Message: "Not found", StatusCode: http.StatusNotFound}
	// name blank or missing on create/update
	ErrValidationFailed = &ErrorWithStatusCode{Message: "Validation failed", StatusCode: http.StatusUnprocessableEntity}
	// update/delete referencing a nonexistent id
	ErrTargetMissing = &ErrorWithStatusCode{Message: "Target board does not exist", StatusCode: http.StatusUnprocessableEntity}
	// body is not json
	ErrBadRequest = &ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
)

// StatusCode extracts the status carried by err, 500 if there is none.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
