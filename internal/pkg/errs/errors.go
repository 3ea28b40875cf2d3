// internal/pkg/errs/errors.go
package errs

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a requested entity does not exist
type NotFoundError struct {
	Resource string
	Field    string
	Value    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

// NotFound creates a NotFoundError for the given resource and lookup field
func NotFound(resource, field string, value interface{}) error {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// DomainError indicates a business-rule violation
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Domain creates a DomainError with a formatted message
func Domain(format string, args ...interface{}) error {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsDomain reports whether err is (or wraps) a DomainError
func IsDomain(err error) bool {
	var target *DomainError
	return errors.As(err, &target)
}
