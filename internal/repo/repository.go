package repo

import (
	"context"
	"errors"
	"log/slog"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
	"github.com/rmalloy/gantry/internal/events"
	"github.com/rmalloy/gantry/internal/lock"
	"github.com/rmalloy/gantry/internal/store"
	"github.com/rmalloy/gantry/internal/task"
)

// collectionLock is the lock name guarding collection mutations.
const collectionLock = "tasks"

// Repository is the task graph repository. All operations load the whole
// collection from the store, apply the relevant domain logic, and (for
// mutations) write the whole collection back under the collection lock.
type Repository struct {
	store  store.Store
	locker lock.Locker
	events *events.PublishHelper
	logger *slog.Logger
	cache  *collectionCache
}

// Option configures a Repository.
type Option func(*Repository)

// WithLocker sets the mutation locker. Defaults to NoOpLocker.
func WithLocker(l lock.Locker) Option {
	return func(r *Repository) { r.locker = l }
}

// WithPublisher sets the event publisher notified after successful
// mutations. Defaults to a no-op.
func WithPublisher(p events.Publisher) Option {
	return func(r *Repository) { r.events = events.NewPublishHelper(p) }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// New creates a Repository over the given store.
func New(s store.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  s,
		locker: lock.NewNoOpLocker(),
		events: events.NewPublishHelper(nil),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = newCollectionCache(r.load)
	return r
}

// load reads the collection from the store. A store that has never been
// written yields an empty collection, not an error.
func (r *Repository) load(ctx context.Context) (*Collection, error) {
	var c Collection
	if err := r.store.ReadJSON(ctx, TasksDocument, &c); err != nil {
		if errors.Is(err, store.ErrNotExist) {
			return newCollection(), nil
		}
		return nil, gantryerrors.ErrPersistence("read task collection", err)
	}
	if c.Tasks == nil {
		c.Tasks = []*task.Task{}
	}
	return &c, nil
}

// persist writes the collection back and invalidates the read cache.
func (r *Repository) persist(ctx context.Context, c *Collection) error {
	if err := r.store.WriteJSON(ctx, TasksDocument, c); err != nil {
		return gantryerrors.ErrPersistence("write task collection", err)
	}
	r.cache.Invalidate()
	return nil
}

// mutate runs fn over a freshly loaded collection while holding the
// collection lock, persisting only when fn reports a change. This is the
// single gatekeeper for the read-modify-write cycle.
func (r *Repository) mutate(ctx context.Context, fn func(c *Collection) (changed bool, err error)) error {
	if err := r.locker.Acquire(collectionLock); err != nil {
		var lockErr *lock.LockError
		if errors.As(err, &lockErr) {
			return gantryerrors.ErrLocked(lockErr.Owner)
		}
		return gantryerrors.ErrPersistence("acquire collection lock", err)
	}
	defer func() {
		if err := r.locker.Release(collectionLock); err != nil {
			r.logger.Warn("failed to release collection lock", "error", err)
		}
	}()

	c, err := r.load(ctx)
	if err != nil {
		return err
	}

	changed, err := fn(c)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return r.persist(ctx, c)
}
