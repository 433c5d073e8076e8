package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	dni TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	lastname TEXT NOT NULL
);
`

// UserRepository stores users in a sqlite table. It owns db and closes it on Close.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (dni, username, lastname)
VALUES (?, ?, ?)
ON CONFLICT(dni) DO UPDATE SET username = excluded.username, lastname = excluded.lastname`,
		user.DNI(),
		user.Username(),
		user.LastName(),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Get(ctx context.Context, dni string) (domain.User, bool, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT username, lastname, dni
FROM users
WHERE dni = ?`,
		dni,
	)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return user, true, nil
}

func (r *UserRepository) Delete(ctx context.Context, dni string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE dni = ?`, dni); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, dni, username, lastName string) (domain.User, bool, error) {
	if _, ok, err := r.Get(ctx, dni); err != nil || !ok {
		return domain.User{}, false, err
	}
	updated, err := domain.NewUser(username, lastName, dni)
	if err != nil {
		return domain.User{}, true, err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET username = ?, lastname = ?
WHERE dni = ?`,
		updated.Username(),
		updated.LastName(),
		dni,
	)
	if err != nil {
		return domain.User{}, true, fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.User{}, true, fmt.Errorf("update user rows affected: %w", err)
	}
	if n == 0 {
		return domain.User{}, false, nil
	}
	return updated, true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, lastname, dni FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Close() error {
	return r.db.Close()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (domain.User, error) {
	var username, lastName, dni string
	if err := row.Scan(&username, &lastName, &dni); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	user, err := domain.NewUser(username, lastName, dni)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored user %s: %w", dni, err)
	}
	return user, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
