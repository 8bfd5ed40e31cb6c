package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors matched with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrRuleViolation = errors.New("rule violation")
	ErrNotFound      = errors.New("not found")
)

// ValidationError reports rejected input, keyed by field name.
type ValidationError struct {
	Entity EntityType
	Fields map[string]string
}

// NewValidationError builds a single-field validation error.
func NewValidationError(entity EntityType, field, msg string) *ValidationError {
	return &ValidationError{Entity: entity, Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError is returned when an update references a missing record.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Is matches ErrNotFound.
func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
