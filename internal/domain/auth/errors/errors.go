package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("already exists")
	ErrUnauthorized  = errors.New("invalid credentials")
	ErrNotFound      = errors.New("not found")
	ErrInvalidToken  = errors.New("invalid token")
	ErrConfiguration = errors.New("configuration error")
	ErrStorage       = errors.New("storage error")
	ErrInternal      = errors.New("internal error")
)

// FieldError is one entry of a validation failure, keyed by the request
// field it refers to.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries the full field-error list for a rejected request.
// It unwraps to ErrValidation so errors.Is keeps working.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidation(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}

// AsValidation returns the field list of a validation error, if err is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func NewConflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

func WrapConfiguration(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrConfiguration, context, err)
}

func WrapStorage(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, context, err)
}

func WrapInternal(err error, context string) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, context, err)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidToken(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
