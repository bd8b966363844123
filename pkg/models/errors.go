package models

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

var ErrValidation = errors.New("validation failed")

var ErrStructural = errors.New("invalid document structure")

// ValidationError is returned when a typed value's payload or configuration
// violates a construction invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field string, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StructuralError is returned when a document tree walk encounters a shape
// that cannot be encoded or decoded: cycles, reused typed values, unknown
// wire discriminators, or missing wire fields.
type StructuralError struct {
	Path    string
	Message string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("document error: %s", e.Message)
	}
	return fmt.Sprintf("document error at %q: %s", e.Path, e.Message)
}

func (e *StructuralError) Unwrap() error {
	return ErrStructural
}

func NewStructuralError(path string, message string) error {
	return &StructuralError{Path: path, Message: message}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}
