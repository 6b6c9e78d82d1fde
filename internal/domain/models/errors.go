package models

import (
	"errors"
	"fmt"
)

// ErrInvalidPayload indicates caller-supplied data violates a precondition.
// It is always returned before any store mutation.
var ErrInvalidPayload = errors.New("invalid payload")

// ErrNotFound indicates a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrUndefinedMetric indicates a derived metric has no finite value, such as a
// profit margin over zero revenue.
var ErrUndefinedMetric = errors.New("metric undefined")

// InvalidPayload wraps ErrInvalidPayload with a reason.
func InvalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound with the missing entity description.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
