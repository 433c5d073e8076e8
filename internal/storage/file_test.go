package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMedium(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is ErrNotExist", func(t *testing.T) {
		m := NewFileMedium(filepath.Join(t.TempDir(), "users.json"))
		_, err := m.Read(ctx)
		assert.ErrorIs(t, err, ErrNotExist)
	})

	t.Run("write then read", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "users.json")
		m := NewFileMedium(path)

		require.NoError(t, m.Write(ctx, []byte(`{"a":1}`)))
		require.NoError(t, m.Write(ctx, []byte(`{"b":2}`)))

		data, err := m.Read(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, `{"b":2}`, string(data))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		m := NewFileMedium(filepath.Join(dir, "users.json"))
		require.NoError(t, m.Write(ctx, []byte(`{}`)))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "users.json", entries[0].Name())
	})

	t.Run("defaults the file name", func(t *testing.T) {
		m := NewFileMedium("")
		assert.Equal(t, DefaultFileName, m.Path())
		assert.Equal(t, "file://users.json", m.String())
	})
}
