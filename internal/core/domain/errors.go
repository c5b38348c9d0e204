package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrNoFields           = errors.New("no valid fields provided for update")
)

// Credential failures. Each one is a distinct kind so callers can branch on errors.Is.
var (
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrTokenMalformed  = errors.New("token malformed")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenSignature  = errors.New("token signature invalid")
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Fields: msgs}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// ConflictError is an ErrConflict whose message is safe to show to clients.
type ConflictError struct {
	Msg string
}

func NewConflictError(msg string) *ConflictError {
	return &ConflictError{Msg: msg}
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
