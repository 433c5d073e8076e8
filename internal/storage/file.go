package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileMedium stores the document in a local file.
type FileMedium struct {
	path string
}

// NewFileMedium returns a medium backed by path, or DefaultFileName when empty.
func NewFileMedium(path string) *FileMedium {
	if path == "" {
		path = DefaultFileName
	}
	return &FileMedium{path: path}
}

func (m *FileMedium) Path() string { return m.path }

func (m *FileMedium) String() string { return "file://" + m.path }

func (m *FileMedium) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read %s: %w", m.path, err)
	}
	return data, nil
}

// Write stages data in a sibling temp file and renames it over the target.
func (m *FileMedium) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(m.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", m.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", m.path, err)
	}
	return nil
}

var _ Medium = (*FileMedium)(nil)
