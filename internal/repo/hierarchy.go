package repo

import (
	"context"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
	"github.com/rmalloy/gantry/internal/hierarchy"
)

// GetHierarchy returns the epic/story hierarchy.
func (r *Repository) GetHierarchy(ctx context.Context) (hierarchy.Hierarchy, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return hierarchy.Hierarchy{}, err
	}
	return c.TaskHierarchy, nil
}

// UpdateHierarchy replaces the hierarchy wholesale (no partial merge).
// Referential integrity is enforced: every epic.stories entry must resolve
// to a story and every story.tasks entry to an existing task.
func (r *Repository) UpdateHierarchy(ctx context.Context, h hierarchy.Hierarchy) error {
	err := r.mutate(ctx, func(c *Collection) (bool, error) {
		if problems := h.Validate(c.taskIDs()); len(problems) > 0 {
			return false, gantryerrors.ErrHierarchyInvalid(problems)
		}
		c.TaskHierarchy = h
		return true, nil
	})
	if err != nil {
		return err
	}

	r.events.HierarchyUpdated(len(h.Epics), len(h.Stories))
	return nil
}

// GetCurrentFocus returns the current focus task ID, or empty string when
// no focus is set.
func (r *Repository) GetCurrentFocus(ctx context.Context) (string, error) {
	c, err := r.cache.Get(ctx)
	if err != nil {
		return "", err
	}
	return c.CurrentFocus, nil
}

// SetCurrentFocus points the current focus at an existing task, or clears
// it when id is empty. A missing task yields a not-found error and leaves
// the stored focus unchanged.
func (r *Repository) SetCurrentFocus(ctx context.Context, id string) error {
	var previous string
	err := r.mutate(ctx, func(c *Collection) (bool, error) {
		if id != "" && c.find(id) == nil {
			return false, gantryerrors.ErrTaskNotFound(id)
		}
		previous = c.CurrentFocus
		c.CurrentFocus = id
		return true, nil
	})
	if err != nil {
		return err
	}

	r.events.FocusChanged(previous, id)
	return nil
}
