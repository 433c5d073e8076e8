package repository

import (
	"context"

	"dni-registry/internal/domain"
)

//go:generate mockgen -source=user.go -destination=mocks/user_repository.go -package=mocks UserRepository

// UserRepository defines persistence operations for User entities keyed by DNI.
// Absence is reported through the found flag, never as an error; errors are
// reserved for the backing medium.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	Get(ctx context.Context, dni string) (domain.User, bool, error)
	Delete(ctx context.Context, dni string) error
	Update(ctx context.Context, dni, username, lastName string) (domain.User, bool, error)
	List(ctx context.Context) ([]domain.User, error)
	Close() error
}
