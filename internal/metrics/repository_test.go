package metrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dni-registry/internal/repository"
	"dni-registry/internal/repository/memory"
	"dni-registry/internal/repository/repositorytest"
)

func TestRepositoryContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.UserRepository {
		repo, err := NewRepository(memory.NewUserRepository(), prometheus.NewRegistry())
		require.NoError(t, err)
		return repo
	})
}

func TestRepository_CountsOperations(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	repo, err := NewRepository(memory.NewUserRepository(), reg)
	require.NoError(t, err)

	_, err = repo.Save(ctx, repositorytest.MustUser(t, "Alice", "Smith", "12345678Z"))
	require.NoError(t, err)
	_, _, err = repo.Get(ctx, "12345678Z")
	require.NoError(t, err)
	_, _, err = repo.Get(ctx, "99999999R")
	require.NoError(t, err)
	_, _, err = repo.Update(ctx, "12345678Z", "", "Smith")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("save", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("get", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("get", ResultNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(repo.operations.WithLabelValues("update", ResultError)))

	_, err = NewRepository(memory.NewUserRepository(), reg)
	assert.Error(t, err, "registering twice on one registry fails")
}

func TestWriteTextfile(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	repo, err := NewRepository(memory.NewUserRepository(), reg)
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "metrics", "users.prom")
	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dni_registry_repository_operations_total{op="list",result="ok"} 1`)
}
