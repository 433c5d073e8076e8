// Package document persists users as one JSON object keyed by DNI. The whole
// object is loaded on open and rewritten after every mutation.
package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/sirupsen/logrus"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
	"dni-registry/internal/storage"
)

type record struct {
	Username string `json:"username"`
	LastName string `json:"lastname"`
	DNI      string `json:"dni"`
}

func toRecord(user domain.User) record {
	return record{
		Username: user.Username(),
		LastName: user.LastName(),
		DNI:      user.DNI(),
	}
}

func (r record) user() (domain.User, error) {
	return domain.NewUser(r.Username, r.LastName, r.DNI)
}

// UserRepository mirrors the stored document in memory. Reads never touch
// the medium; writes replace the whole document before the mirror changes.
type UserRepository struct {
	mu      sync.RWMutex
	medium  storage.Medium
	records map[string]record
	logger  logrus.FieldLogger
}

type Option func(*UserRepository)

// WithLogger sets the logger used to report recovered load failures.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *UserRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Open loads the document held by medium. A missing or unparseable document
// yields an empty repository; other read failures are returned.
func Open(ctx context.Context, medium storage.Medium, opts ...Option) (*UserRepository, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	r := &UserRepository{
		medium:  medium,
		records: make(map[string]record),
		logger:  discard,
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := r.load(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// OpenFile opens a repository backed by the JSON file at path
// (storage.DefaultFileName when empty).
func OpenFile(ctx context.Context, path string, opts ...Option) (*UserRepository, error) {
	return Open(ctx, storage.NewFileMedium(path), opts...)
}

func (r *UserRepository) load(ctx context.Context) error {
	log := r.logger.WithField("medium", r.medium.String())

	data, err := r.medium.Read(ctx)
	if errors.Is(err, storage.ErrNotExist) {
		log.Debug("no stored users, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		log.Debug("stored users document is empty")
		return nil
	}

	var stored map[string]*record
	if err := json.Unmarshal(data, &stored); err != nil {
		log.WithError(err).Warn("stored users document is unreadable, starting empty")
		return nil
	}
	// null entries hold no user
	for dni, rec := range stored {
		if rec != nil {
			r.records[dni] = *rec
		}
	}
	log.WithField("users", len(r.records)).Debug("loaded users")
	return nil
}

func (r *UserRepository) persist(ctx context.Context, records map[string]record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.medium.Write(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}

// commit persists next and, on success, makes it the current record set.
// Callers hold r.mu.
func (r *UserRepository) commit(ctx context.Context, next map[string]record) error {
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.records = next
	return nil
}

func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := maps.Clone(r.records)
	next[user.DNI()] = toRecord(user)
	if err := r.commit(ctx, next); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *UserRepository) Get(_ context.Context, dni string) (domain.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[dni]
	if !ok {
		return domain.User{}, false, nil
	}
	user, err := rec.user()
	if err != nil {
		return domain.User{}, false, fmt.Errorf("stored user %s: %w", dni, err)
	}
	return user, true, nil
}

func (r *UserRepository) Delete(ctx context.Context, dni string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[dni]; !ok {
		return nil
	}
	next := maps.Clone(r.records)
	delete(next, dni)
	return r.commit(ctx, next)
}

func (r *UserRepository) Update(ctx context.Context, dni, username, lastName string) (domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[dni]; !ok {
		return domain.User{}, false, nil
	}
	updated, err := domain.NewUser(username, lastName, dni)
	if err != nil {
		return domain.User{}, true, err
	}

	next := maps.Clone(r.records)
	next[dni] = toRecord(updated)
	if err := r.commit(ctx, next); err != nil {
		return domain.User{}, true, err
	}
	return updated, true, nil
}

func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.records))
	for dni, rec := range r.records {
		user, err := rec.user()
		if err != nil {
			return nil, fmt.Errorf("stored user %s: %w", dni, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *UserRepository) Close() error { return nil }

var _ repository.UserRepository = (*UserRepository)(nil)
