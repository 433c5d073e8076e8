package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dni-registry/internal/domain"
	"dni-registry/internal/repository"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Repository wraps a UserRepository and records per-operation counts and latency.
type Repository struct {
	next       repository.UserRepository
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewRepository registers the repository metrics on reg and returns the decorator.
func NewRepository(next repository.UserRepository, reg prometheus.Registerer) (*Repository, error) {
	r := &Repository{
		next: next,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dni_registry_repository_operations_total",
			Help: "Repository operations by operation and result",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dni_registry_repository_operation_duration_seconds",
			Help:    "Latency of repository operations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{r.operations, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register repository metrics: %w", err)
		}
	}
	return r, nil
}

func (r *Repository) observe(op string, start time.Time, found bool, err error) {
	r.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	switch {
	case err != nil:
		r.operations.WithLabelValues(op, ResultError).Inc()
	case !found:
		r.operations.WithLabelValues(op, ResultNotFound).Inc()
	default:
		r.operations.WithLabelValues(op, ResultOK).Inc()
	}
}

func (r *Repository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()
	saved, err := r.next.Save(ctx, user)
	r.observe("save", start, true, err)
	return saved, err
}

func (r *Repository) Get(ctx context.Context, dni string) (domain.User, bool, error) {
	start := time.Now()
	user, ok, err := r.next.Get(ctx, dni)
	r.observe("get", start, ok, err)
	return user, ok, err
}

func (r *Repository) Delete(ctx context.Context, dni string) error {
	start := time.Now()
	err := r.next.Delete(ctx, dni)
	r.observe("delete", start, true, err)
	return err
}

func (r *Repository) Update(ctx context.Context, dni, username, lastName string) (domain.User, bool, error) {
	start := time.Now()
	user, ok, err := r.next.Update(ctx, dni, username, lastName)
	r.observe("update", start, ok, err)
	return user, ok, err
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	start := time.Now()
	users, err := r.next.List(ctx)
	r.observe("list", start, true, err)
	return users, err
}

func (r *Repository) Close() error {
	return r.next.Close()
}

var _ repository.UserRepository = (*Repository)(nil)
