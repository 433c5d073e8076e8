package storage

import (
	"context"
	"errors"
)

// DefaultFileName is the document used when no path is configured.
const DefaultFileName = "users.json"

// ErrNotExist is returned by Medium.Read when nothing has been written yet.
var ErrNotExist = errors.New("storage object does not exist")

// Medium is a durable slot holding a single document. Write replaces the
// whole document; readers never observe a partially written one.
type Medium interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	String() string
}
