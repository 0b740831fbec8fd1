package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error returned by the services matches exactly one of
// these through errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports bad input. Nothing has been written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an unknown identifier
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a duplicate unique key or a delete blocked by dependants
type ConflictError struct {
	Entity  string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StorageError wraps a failure of the underlying store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func notFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func conflict(entity, message string) error {
	return &ConflictError{Entity: entity, Message: message}
}

// storageErr classifies a gorm error. Already classified errors pass through
// untouched so that errors returned from inside a transaction keep their kind.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConflict), errors.Is(err, ErrStorage):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Entity: op, Message: "already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConflictError{Entity: op, Message: "referenced by other records"}
	}
	return &StorageError{Op: op, Err: err}
}

// findErr maps a lookup failure, turning a missing row into NotFoundError
func findErr(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return storageErr("get "+entity, err)
}
