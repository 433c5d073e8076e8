package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"dni-registry/internal/config"
	"dni-registry/internal/metrics"
	"dni-registry/internal/repository/memory"
	"dni-registry/internal/repository/mocks"
	"dni-registry/internal/usecase"
)

// run executes the root command against the JSON file at path and returns stdout.
func run(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var out bytes.Buffer
	cmd := NewRoot(logger)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--backend", "file", "--path", path}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestUsersCommands(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "users.json")

	out, err := run(t, path, "seed")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "created:"))

	out, err = run(t, path, "list")
	require.NoError(t, err)
	assert.Equal(t, "María López Fernández (12345678Z)\n"+
		"Agustín Estévez Domínguez (76826889N)\n"+
		"Juan Pérez Gómez (87654321X)\n", out)

	out, err = run(t, path, "find", "76826889N")
	require.NoError(t, err)
	assert.Equal(t, "Agustín Estévez Domínguez - DNI: 76826889N\n", out)

	out, err = run(t, path, "update", "76826889N", "Agustin", "Estevez D.")
	require.NoError(t, err)
	assert.Equal(t, "updated: Agustin Estevez D. - DNI: 76826889N\n", out)

	out, err = run(t, path, "delete", "76826889N")
	require.NoError(t, err)
	assert.Equal(t, "deleted: 76826889N\n", out)

	_, err = run(t, path, "find", "76826889N")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = run(t, path, "delete", "76826889N")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = run(t, path, "create", "Alice", "Smith", "12345678A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid DNI")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "María")
	assert.NotContains(t, string(raw), "76826889N")
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "unused.json", "check", "76826889n")
	require.NoError(t, err)
	assert.Equal(t, "76826889n: valid\n", out)

	_, err = run(t, "unused.json", "check", "76826889A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected letter N")

	_, err = run(t, "unused.json", "check", "abc")
	assert.Error(t, err)
}

func TestMetricsTextfile(t *testing.T) {
	chdir(t, t.TempDir())
	metricsPath := filepath.Join(t.TempDir(), "users.prom")
	t.Setenv("USERS_METRICS_TEXTFILE", metricsPath)

	_, err := run(t, filepath.Join(t.TempDir(), "users.json"), "list")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dni_registry_repository_operations_total{op="list",result="ok"} 1`)
}

func TestOpenRepository(t *testing.T) {
	ctx := context.Background()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var cfg config.Config
	cfg.Store.Backend = config.BackendSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "data", "users.db")
	repo, err := openRepository(ctx, cfg, logger)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	cfg.Store.Backend = config.BackendMemory
	repo, err = openRepository(ctx, cfg, logger)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	cfg.Store.Backend = config.BackendS3
	_, err = openRepository(ctx, cfg, logger)
	assert.ErrorContains(t, err, "bucket is required")

	cfg.Store.Backend = config.BackendRedis
	_, err = openRepository(ctx, cfg, logger)
	assert.ErrorContains(t, err, "redis url is required")

	cfg.Store.Backend = config.BackendPostgres
	_, err = openRepository(ctx, cfg, logger)
	assert.ErrorContains(t, err, "postgres url is required")

	cfg.Store.Backend = "etcd"
	_, err = openRepository(ctx, cfg, logger)
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestInstrumentClosesStoreOnRegisterFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewRepository(memory.NewUserRepository(), reg)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	store := mocks.NewMockUserRepository(ctrl)
	store.EXPECT().Close().Return(errors.New("disk gone"))

	logger, hook := test.NewNullLogger()
	_, err = instrument(store, reg, logger)
	require.ErrorContains(t, err, "register repository metrics")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "close store", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "disk gone")
}
