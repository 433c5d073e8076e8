package usecase

import (
	"errors"
	"fmt"
)

// ErrUserNotFound matches every NotFoundError via errors.Is.
var ErrUserNotFound = errors.New("user not found")

// NotFoundError reports that the use case Op found no user with DNI.
type NotFoundError struct {
	Op  string
	DNI string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s user: no user with DNI %s", e.Op, e.DNI)
}

func (e *NotFoundError) Unwrap() error {
	return ErrUserNotFound
}
