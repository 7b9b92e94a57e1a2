// Package task provides the task model for gantry.
package task

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// idPattern matches valid task IDs: the letter T followed by exactly three
// digits (T001). This format is a stable external contract shared with the
// commit-message scanner and hierarchy references.
var idPattern = regexp.MustCompile(`^T[0-9]{3}$`)

// IsValidID returns true if id matches the task-ID format.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// Status represents the coarse lifecycle state of a task.
// It is derived from ProgressState once progress tracking is in use.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted, StatusBlocked}
}

// IsValidStatus returns true if the status is a valid status value.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	default:
		return false
	}
}

// DependencyType classifies a dependency edge.
type DependencyType string

const (
	// DepStrong gates progression: the dependent task is blocked until the
	// target task is completed.
	DepStrong DependencyType = "strong"
	// DepWeak is informational only and never blocks.
	DepWeak DependencyType = "weak"
)

// IsValidDependencyType returns true if the type is a valid dependency type.
func IsValidDependencyType(d DependencyType) bool {
	switch d {
	case DepStrong, DepWeak:
		return true
	default:
		return false
	}
}

// Dependency is a directed edge from the owning task to TaskID.
type Dependency struct {
	TaskID string         `json:"task_id"`
	Type   DependencyType `json:"type,omitempty"`
}

// Kind returns the dependency type, defaulting to strong when unset.
// Callers that omit the type on the wire get the gating behavior.
func (d Dependency) Kind() DependencyType {
	if d.Type == "" {
		return DepStrong
	}
	return d.Type
}

// Task represents a unit of work in the task graph.
type Task struct {
	// ID is the unique identifier (e.g., T001). Immutable once assigned.
	ID string `json:"id"`

	// Title is a short description of the task (at most 200 characters).
	Title string `json:"title"`

	// Description is the full task description.
	Description string `json:"description"`

	// Status is the coarse lifecycle state, derived from ProgressState.
	Status Status `json:"status"`

	// Priority ranks the task from 1 (highest) to 5 (lowest). Zero means unset.
	Priority int `json:"priority,omitempty"`

	// EstimatedHours is the effort estimate. Must not be negative.
	EstimatedHours float64 `json:"estimated_hours,omitempty"`

	// ProgressPercentage tracks completion from 0 to 100. It is set from the
	// progress-state table on every transition unless a custom value is given.
	ProgressPercentage int `json:"progress_percentage"`

	// ProgressState is the fine-grained lifecycle stage.
	ProgressState ProgressState `json:"progress_state,omitempty"`

	// Dependencies lists the tasks this task depends on, in declaration order.
	Dependencies []Dependency `json:"dependencies"`

	// GitCommits lists commit hashes associated with this task via
	// commit-message scanning. Append-only and de-duplicated.
	GitCommits []string `json:"git_commits,omitempty"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a task with the given ID and title and default initial state.
func New(id, title string) *Task {
	now := time.Now()
	return &Task{
		ID:            id,
		Title:         title,
		Status:        StatusPending,
		ProgressState: StateNotStarted,
		Dependencies:  []Dependency{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasCommit returns true if the commit hash is already associated.
func (t *Task) HasCommit(hash string) bool {
	for _, h := range t.GitCommits {
		if h == hash {
			return true
		}
	}
	return false
}

// DependsOn returns true if the task has a dependency edge to id of any type.
func (t *Task) DependsOn(id string) bool {
	for _, d := range t.Dependencies {
		if d.TaskID == id {
			return true
		}
	}
	return false
}

// numericIDPattern extracts the numeric part of a task ID.
var numericIDPattern = regexp.MustCompile(`^T([0-9]{3})$`)

// NextID generates the next free task ID (T001, T002, ...) from the
// existing collection.
func NextID(tasks []*Task) string {
	maxNum := 0
	for _, t := range tasks {
		matches := numericIDPattern.FindStringSubmatch(t.ID)
		if len(matches) == 2 {
			num, _ := strconv.Atoi(matches[1])
			if num > maxNum {
				maxNum = num
			}
		}
	}
	return fmt.Sprintf("T%03d", maxNum+1)
}
