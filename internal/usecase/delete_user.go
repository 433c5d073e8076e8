package usecase

import (
	"context"

	"dni-registry/internal/repository"
)

// DeleteUser removes an existing user. Unlike UserRepository.Delete it fails
// when the DNI is unknown.
type DeleteUser struct {
	users repository.UserRepository
}

func NewDeleteUser(users repository.UserRepository) *DeleteUser {
	return &DeleteUser{users: users}
}

func (uc *DeleteUser) Execute(ctx context.Context, dni string) error {
	_, ok, err := uc.users.Get(ctx, dni)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Op: "delete", DNI: dni}
	}
	return uc.users.Delete(ctx, dni)
}
