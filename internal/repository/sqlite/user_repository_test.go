package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dni-registry/internal/repository"
	"dni-registry/internal/repository/repositorytest"
)

func openTestRepository(t *testing.T, path string) *UserRepository {
	t.Helper()
	db, err := Open(path)
	require.NoError(t, err)
	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestUserRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.UserRepository {
		return openTestRepository(t, filepath.Join(t.TempDir(), "users.db"))
	})
}

func TestUserRepository_Durability(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "users.db")

	repo := openTestRepository(t, path)
	_, err := repo.Save(ctx, repositorytest.MustUser(t, "Carlos", "Ruiz", "87654321X"))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened := openTestRepository(t, path)
	defer reopened.Close()

	found, ok, err := reopened.Get(ctx, "87654321X")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Carlos", found.Username())
	assert.Equal(t, "Ruiz", found.LastName())
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "users.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.FileExists(t, path)
}
