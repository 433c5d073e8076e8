package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	dni TEXT PRIMARY KEY,
	username TEXT NOT NULL,
	lastname TEXT NOT NULL
);
`

// Connect opens a pool for url and checks the server is reachable.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("postgres url is required")
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// UserRepository stores users in PostgreSQL. It owns the pool and closes it on Close.
type UserRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) *UserRepository { return &UserRepository{pool: pool} }

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Save(ctx context.Context, u domain.User) (domain.User, error) {
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (dni, username, lastname) VALUES ($1, $2, $3)
		ON CONFLICT (dni) DO UPDATE SET username = EXCLUDED.username, lastname = EXCLUDED.lastname
	`, u.DNI(), u.Username(), u.LastName())
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Get(ctx context.Context, dni string) (domain.User, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT username, lastname, dni FROM users WHERE dni = $1`, dni)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (r *UserRepository) Delete(ctx context.Context, dni string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE dni = $1`, dni); err != nil {
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

	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET username = $2, lastname = $3 WHERE dni = $1
	`, dni, updated.Username(), updated.LastName())
	if err != nil {
		return domain.User{}, true, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, false, nil
	}
	return updated, true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT username, lastname, dni FROM users`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Close() error {
	r.pool.Close()
	return nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var username, lastName, dni string
	if err := row.Scan(&username, &lastName, &dni); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}
	u, err := domain.NewUser(username, lastName, dni)
	if err != nil {
		return domain.User{}, fmt.Errorf("stored user %s: %w", dni, err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
