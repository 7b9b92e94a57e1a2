// Package repo provides the task graph repository: the aggregate composing
// validation, dependency checks, the progress state machine, and hierarchy
// bookkeeping over a persisted task collection. Every mutation is a whole
// read-modify-write of the collection document; no in-memory state survives
// a call beyond the invalidated read cache.
package repo

import (
	"github.com/rmalloy/gantry/internal/hierarchy"
	"github.com/rmalloy/gantry/internal/task"
)

// TasksDocument is the store document holding the full collection.
const TasksDocument = "tasks.json"

// Collection is the persisted aggregate: all tasks, the epic/story
// hierarchy, and the current focus. An empty CurrentFocus means no focus.
type Collection struct {
	Tasks         []*task.Task        `json:"tasks"`
	TaskHierarchy hierarchy.Hierarchy `json:"task_hierarchy"`
	CurrentFocus  string              `json:"current_focus,omitempty"`
}

func newCollection() *Collection {
	return &Collection{Tasks: []*task.Task{}}
}

// find returns the task with the given ID, or nil.
func (c *Collection) find(id string) *task.Task {
	for _, t := range c.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// taskIDs returns the set of task IDs in the collection.
func (c *Collection) taskIDs() map[string]bool {
	ids := make(map[string]bool, len(c.Tasks))
	for _, t := range c.Tasks {
		ids[t.ID] = true
	}
	return ids
}

// remove deletes the task with the given ID. Returns true if it was present.
func (c *Collection) remove(id string) bool {
	for i, t := range c.Tasks {
		if t.ID == id {
			c.Tasks = append(c.Tasks[:i], c.Tasks[i+1:]...)
			return true
		}
	}
	return false
}
