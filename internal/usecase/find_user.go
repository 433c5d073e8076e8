package usecase

import (
	"context"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

type FindUser struct {
	users repository.UserRepository
}

func NewFindUser(users repository.UserRepository) *FindUser {
	return &FindUser{users: users}
}

func (uc *FindUser) Execute(ctx context.Context, dni string) (domain.User, error) {
	user, ok, err := uc.users.Get(ctx, dni)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, &NotFoundError{Op: "find", DNI: dni}
	}
	return user, nil
}
