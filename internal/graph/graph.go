// Package graph implements dependency-graph checks over a task collection:
// cycle detection and strong-dependency completion gating.
package graph

import (
	"fmt"

	"github.com/rmalloy/gantry/internal/task"
)

// mark is the traversal state of a node. Nodes currently marked inProgress
// form the active DFS path, so reaching one again means a directed cycle.
type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

// Result is the outcome of a dependency check. The check reports, it never
// fails hard; callers decide whether to block a mutation on Valid.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Check runs the dependency checks for taskID over the full collection:
//
//   - Cycle detection: depth-first traversal from taskID following every
//     dependency edge, strong and weak alike. Hitting a node on the current
//     path is a cycle (a self-dependency is the one-node case). A missing
//     edge target is reported as not found and is not traversed, and is not
//     itself a cycle.
//   - Completion gating: each strong dependency of taskID (only the start
//     task, not transitive ones) whose target is not completed produces a
//     gating error. Weak dependencies never gate.
//
// The queried task must exist in tasks; repositories check that before
// delegating here.
func Check(taskID string, tasks map[string]*task.Task) Result {
	var errs []string
	marks := make(map[string]mark, len(tasks))

	var visit func(id string)
	visit = func(id string) {
		marks[id] = inProgress
		for _, dep := range tasks[id].Dependencies {
			switch marks[dep.TaskID] {
			case inProgress:
				errs = append(errs, fmt.Sprintf(
					"circular dependency detected: %s -> %s", id, dep.TaskID))
			case done:
				// Already fully explored via another path.
			default:
				if _, ok := tasks[dep.TaskID]; !ok {
					errs = append(errs, fmt.Sprintf(
						"dependency %s not found (referenced by %s)", dep.TaskID, id))
					continue
				}
				visit(dep.TaskID)
			}
		}
		marks[id] = done
	}
	visit(taskID)

	for _, dep := range tasks[taskID].Dependencies {
		if dep.Kind() != task.DepStrong {
			continue
		}
		target, ok := tasks[dep.TaskID]
		if !ok {
			// Already reported as not found during traversal.
			continue
		}
		if target.Status != task.StatusCompleted {
			errs = append(errs, fmt.Sprintf(
				"strong dependency %s not yet completed (status: %s)", target.ID, target.Status))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Index builds the ID lookup map Check operates on.
func Index(tasks []*task.Task) map[string]*task.Task {
	m := make(map[string]*task.Task, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}
