package usecase

import (
	"context"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

type ListUsers struct {
	users repository.UserRepository
}

func NewListUsers(users repository.UserRepository) *ListUsers {
	return &ListUsers{users: users}
}

// Execute returns every stored user in no particular order.
func (uc *ListUsers) Execute(ctx context.Context) ([]domain.User, error) {
	return uc.users.List(ctx)
}
