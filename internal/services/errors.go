package services

import (
	"errors"
	"fmt"
)

const (
	EntityUser = "user"
	EntityFood = "food"
	EntityMeal = "meal"
)

// Sentinels for errors.Is. Handlers translate them to 404, 400 and 409.
// Any other error returned by a service is a storage failure.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a delete blocked by dependent rows.
type ConflictError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d cannot be deleted: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
