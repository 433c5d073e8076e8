package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidUser matches every ValidationError via errors.Is.
var ErrInvalidUser = errors.New("invalid user")

// Field names reported by ValidationError.
const (
	FieldUsername = "username"
	FieldLastName = "lastname"
	FieldDNI      = "dni"
)

// ValidationError identifies the field that prevented a User from being built.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidUser
}

// User is a registered person keyed by DNI. Values are only built through
// NewUser, so a User always carries non-empty names and a valid DNI.
type User struct {
	username string
	lastName string
	dni      string
}

// NewUser validates the raw fields and returns the resulting User.
func NewUser(username, lastName, dni string) (User, error) {
	if username == "" {
		return User{}, &ValidationError{Field: FieldUsername, Reason: "must be a non-empty string"}
	}
	if lastName == "" {
		return User{}, &ValidationError{Field: FieldLastName, Reason: "must be a non-empty string"}
	}
	if dni == "" {
		return User{}, &ValidationError{Field: FieldDNI, Reason: "must be a non-empty string"}
	}
	if !ValidDNI(dni) {
		return User{}, &ValidationError{Field: FieldDNI, Reason: fmt.Sprintf("%q is not a valid DNI", dni)}
	}

	return User{
		username: username,
		lastName: lastName,
		dni:      dni,
	}, nil
}

// WithNames returns a new User with the same DNI and the given names.
func (u User) WithNames(username, lastName string) (User, error) {
	return NewUser(username, lastName, u.dni)
}

func (u User) Username() string { return u.username }

func (u User) LastName() string { return u.lastName }

func (u User) DNI() string { return u.dni }

// Validate reports why u could not have come from NewUser. The zero User
// fails with a username ValidationError.
func (u User) Validate() error {
	_, err := NewUser(u.username, u.lastName, u.dni)
	return err
}

// IsZero reports whether u is the zero value rather than a constructed User.
func (u User) IsZero() bool {
	return u == User{}
}

func (u User) String() string {
	return fmt.Sprintf("%s %s - DNI: %s", u.username, u.lastName, u.dni)
}
