package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Controllers map these onto status codes and never
// leak store internals to clients.

// ValidationError marks missing or malformed input. The message is safe to
// return to the client verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError wraps a client-facing validation message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// MissingFieldError names the first required field a payload lacks.
func MissingFieldError(field string) *ValidationError {
	return &ValidationError{Message: "Missing " + field}
}

// AuthError marks failed authentication. Unknown account and wrong password
// intentionally share one message so responses cannot be used to enumerate
// accounts.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	errInvalidLogin = &AuthError{Message: "Invalid login"}
	errMissingToken = &AuthError{Message: "Missing token"}
	errInvalidToken = &AuthError{Message: "Invalid token"}
)

// ErrNotFound reports that a referenced id does not exist.
var ErrNotFound = errors.New("not found")

// ErrRateLimited reports that a client exceeded the login attempt budget.
var ErrRateLimited = errors.New("too many attempts, try again later")

// StoreError wraps an underlying storage failure. The wrapped cause is logged
// server-side only.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
