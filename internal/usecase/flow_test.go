package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dni-registry/internal/repository/memory"
)

func TestUsers_LifecycleOverMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()
	users := New(repo)

	created, err := users.Create.Execute(ctx, "Agustín", "Estévez Domínguez", "76826889N")
	require.NoError(t, err)
	assert.Equal(t, "76826889N", created.DNI())

	found, err := users.Find.Execute(ctx, "76826889N")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	updated, err := users.Update.Execute(ctx, "76826889N", "Agustin", "Estevez D.")
	require.NoError(t, err)
	assert.Equal(t, "Agustin", updated.Username())
	assert.Equal(t, "76826889N", updated.DNI())

	all, err := users.List.Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, users.Delete.Execute(ctx, "76826889N"))

	_, ok, err := repo.Get(ctx, "76826889N")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, users.Delete.Execute(ctx, "76826889N"), ErrUserNotFound)
	_, err = users.Find.Execute(ctx, "76826889N")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = users.Update.Execute(ctx, "76826889N", "A", "B")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
