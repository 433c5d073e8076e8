package usecase

import (
	"context"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

// CreateUser validates raw input into a User and stores it.
type CreateUser struct {
	users repository.UserRepository
}

func NewCreateUser(users repository.UserRepository) *CreateUser {
	return &CreateUser{users: users}
}

// Execute returns a *domain.ValidationError when the input does not form a valid User.
// An existing user with the same DNI is overwritten.
func (uc *CreateUser) Execute(ctx context.Context, username, lastName, dni string) (domain.User, error) {
	user, err := domain.NewUser(username, lastName, dni)
	if err != nil {
		return domain.User{}, err
	}
	return uc.users.Save(ctx, user)
}
