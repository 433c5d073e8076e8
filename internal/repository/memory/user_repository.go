package memory

import (
	"context"
	"sync"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

// UserRepository keeps users in a process-local map. Nothing survives Close.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Save(_ context.Context, user domain.User) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.DNI()] = user
	return user, nil
}

func (r *UserRepository) Get(_ context.Context, dni string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[dni]
	return user, ok, nil
}

func (r *UserRepository) Delete(_ context.Context, dni string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, dni)
	return nil
}

func (r *UserRepository) Update(_ context.Context, dni, username, lastName string) (domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[dni]
	if !ok {
		return domain.User{}, false, nil
	}
	updated, err := current.WithNames(username, lastName)
	if err != nil {
		return domain.User{}, true, err
	}
	r.users[dni] = updated
	return updated, true, nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) Close() error { return nil }

var _ repository.UserRepository = (*UserRepository)(nil)
