package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// NotFoundError identifies the missing entity and matches ErrNotFound.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity string, id fmt.Stringer) error {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
