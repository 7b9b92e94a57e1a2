package repo

import (
	"context"
	"reflect"
	"time"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
	"github.com/rmalloy/gantry/internal/task"
)

// TrySave validates and persists a task, inserting or replacing it in the
// collection. This is the one soft-fail mutation: a task that fails
// validation is reported as (false, errors, nil) and nothing is written.
// The returned error covers storage failures only.
func (r *Repository) TrySave(ctx context.Context, t *task.Task) (bool, task.ValidationErrors, error) {
	if errs := task.Validate(t); errs.HasErrors() {
		r.logger.Warn("task failed validation, not saved",
			"id", t.ID, "errors", errs.Error())
		return false, errs, nil
	}

	var created bool
	var fields []string
	err := r.mutate(ctx, func(c *Collection) (bool, error) {
		existing := c.find(t.ID)
		t.UpdatedAt = time.Now()
		if existing == nil {
			created = true
			if t.CreatedAt.IsZero() {
				t.CreatedAt = t.UpdatedAt
			}
			c.Tasks = append(c.Tasks, t)
			return true, nil
		}

		fields = changedFields(existing, t)
		if t.CreatedAt.IsZero() {
			t.CreatedAt = existing.CreatedAt
		}
		*existing = *t
		return true, nil
	})
	if err != nil {
		return false, nil, err
	}

	if created {
		r.events.TaskCreated(t.ID)
	} else {
		r.events.TaskSaved(t.ID, fields)
	}
	return true, nil, nil
}

// UpdateProgress moves a task through the progress state machine and
// persists the result. Fails with a not-found, invalid-state, or
// invalid-transition error; on success the updated task is returned.
func (r *Repository) UpdateProgress(ctx context.Context, id string, newState task.ProgressState, customPercentage *int) (*task.Task, error) {
	var updated *task.Task
	var fromState task.ProgressState
	err := r.mutate(ctx, func(c *Collection) (bool, error) {
		t := c.find(id)
		if t == nil {
			return false, gantryerrors.ErrTaskNotFound(id)
		}
		fromState = t.ProgressState
		if err := task.Transition(t, newState, customPercentage); err != nil {
			return false, err
		}
		updated = t
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	r.events.ProgressUpdated(id, string(fromState), string(updated.ProgressState),
		updated.ProgressPercentage, string(updated.Status))
	return updated, nil
}

// AssociateCommit appends a commit hash to a task's commit list. Idempotent:
// a hash already present leaves the collection untouched (no write, no
// event) and returns the task as-is.
func (r *Repository) AssociateCommit(ctx context.Context, id, hash string) (*task.Task, error) {
	var updated *task.Task
	var already bool
	err := r.mutate(ctx, func(c *Collection) (bool, error) {
		t := c.find(id)
		if t == nil {
			return false, gantryerrors.ErrTaskNotFound(id)
		}
		updated = t
		if t.HasCommit(hash) {
			already = true
			return false, nil
		}
		t.GitCommits = append(t.GitCommits, hash)
		t.UpdatedAt = time.Now()
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if !already {
		r.events.CommitAssociated(id, hash)
	}
	return updated, nil
}

// Delete removes a task from the collection, strips it from any story's
// task list, and clears the current focus if it pointed at the task.
// Dependency edges in other tasks are deliberately left alone: dangling
// strong dependencies surface as findings on the next dependency check
// rather than cascading deletes.
func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.mutate(ctx, func(c *Collection) (bool, error) {
		if !c.remove(id) {
			return false, gantryerrors.ErrTaskNotFound(id)
		}
		c.TaskHierarchy.RemoveTask(id)
		if c.CurrentFocus == id {
			c.CurrentFocus = ""
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	r.events.TaskDeleted(id)
	return nil
}

// changedFields names the top-level task fields that differ between old and
// new, for event payloads.
func changedFields(old, new *task.Task) []string {
	var fields []string
	if old.Title != new.Title {
		fields = append(fields, "title")
	}
	if old.Description != new.Description {
		fields = append(fields, "description")
	}
	if old.Status != new.Status {
		fields = append(fields, "status")
	}
	if old.Priority != new.Priority {
		fields = append(fields, "priority")
	}
	if old.EstimatedHours != new.EstimatedHours {
		fields = append(fields, "estimated_hours")
	}
	if old.ProgressPercentage != new.ProgressPercentage {
		fields = append(fields, "progress_percentage")
	}
	if old.ProgressState != new.ProgressState {
		fields = append(fields, "progress_state")
	}
	if !reflect.DeepEqual(old.Dependencies, new.Dependencies) {
		fields = append(fields, "dependencies")
	}
	if !reflect.DeepEqual(old.GitCommits, new.GitCommits) {
		fields = append(fields, "git_commits")
	}
	return fields
}
