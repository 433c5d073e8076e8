package usecase

import (
	"context"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

// UpdateUser replaces both names of an existing user. The DNI never changes.
type UpdateUser struct {
	users repository.UserRepository
}

func NewUpdateUser(users repository.UserRepository) *UpdateUser {
	return &UpdateUser{users: users}
}

func (uc *UpdateUser) Execute(ctx context.Context, dni, username, lastName string) (domain.User, error) {
	user, ok, err := uc.users.Update(ctx, dni, username, lastName)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, &NotFoundError{Op: "update", DNI: dni}
	}
	return user, nil
}
