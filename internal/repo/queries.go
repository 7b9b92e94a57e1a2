package repo

import (
	"context"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
	"github.com/rmalloy/gantry/internal/graph"
	"github.com/rmalloy/gantry/internal/task"
)

// Get returns the task with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (*task.Task, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	t := c.find(id)
	if t == nil {
		return nil, gantryerrors.ErrTaskNotFound(id)
	}
	return t, nil
}

// List returns all tasks in collection order.
func (r *Repository) List(ctx context.Context) ([]*task.Task, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return c.Tasks, nil
}

// filter returns the tasks matching pred. A predicate nothing matches
// yields an empty slice, never an error.
func (r *Repository) filter(ctx context.Context, pred func(*task.Task) bool) ([]*task.Task, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	matched := []*task.Task{}
	for _, t := range c.Tasks {
		if pred(t) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

// GetByStatus returns all tasks with the given status.
func (r *Repository) GetByStatus(ctx context.Context, s task.Status) ([]*task.Task, error) {
	return r.filter(ctx, func(t *task.Task) bool { return t.Status == s })
}

// GetByProgressState returns all tasks in the given progress state.
func (r *Repository) GetByProgressState(ctx context.Context, s task.ProgressState) ([]*task.Task, error) {
	return r.filter(ctx, func(t *task.Task) bool { return t.ProgressState == s })
}

// GetByPriority returns all tasks with the given priority.
func (r *Repository) GetByPriority(ctx context.Context, priority int) ([]*task.Task, error) {
	return r.filter(ctx, func(t *task.Task) bool { return t.Priority == priority })
}

// GetByDependency returns all tasks that depend on the given task ID, with
// either edge type.
func (r *Repository) GetByDependency(ctx context.Context, depID string) ([]*task.Task, error) {
	return r.filter(ctx, func(t *task.Task) bool { return t.DependsOn(depID) })
}

// NextID returns the next free task ID.
func (r *Repository) NextID(ctx context.Context) (string, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return "", err
	}
	return task.NextID(c.Tasks), nil
}

// CheckDependencies runs cycle detection and strong-dependency gating for
// the given task over the full collection. The result reports findings;
// it is the caller's decision whether to block on them.
func (r *Repository) CheckDependencies(ctx context.Context, id string) (graph.Result, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return graph.Result{}, err
	}
	index := graph.Index(c.Tasks)
	if _, ok := index[id]; !ok {
		return graph.Result{}, gantryerrors.ErrTaskNotFound(id)
	}
	return graph.Check(id, index), nil
}
