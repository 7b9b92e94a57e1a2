// Package events provides event types and publishing infrastructure for
// gantry. Delivery is fire-and-forget: ordering and durability beyond the
// in-process fan-out belong to the consumer.
package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType defines the type of event.
type EventType string

const (
	// EventTaskCreated indicates a new task was saved for the first time.
	EventTaskCreated EventType = "task_created"
	// EventTaskSaved indicates an existing task was saved.
	EventTaskSaved EventType = "task_saved"
	// EventTaskDeleted indicates a task was removed from the collection.
	EventTaskDeleted EventType = "task_deleted"
	// EventProgressUpdated indicates a progress-state transition.
	EventProgressUpdated EventType = "progress_updated"
	// EventCommitAssociated indicates a commit hash was linked to a task.
	EventCommitAssociated EventType = "commit_associated"
	// EventFocusChanged indicates the current focus moved.
	EventFocusChanged EventType = "focus_changed"
	// EventHierarchyUpdated indicates the epic/story hierarchy was replaced.
	EventHierarchyUpdated EventType = "hierarchy_updated"
)

// Event represents a published event.
type Event struct {
	ID     string    `json:"id"`
	Type   EventType `json:"type"`
	TaskID string    `json:"task_id,omitempty"`
	Data   any       `json:"data"`
	Time   time.Time `json:"time"`
}

// NewEvent creates a new event with a fresh ID and the current timestamp.
func NewEvent(eventType EventType, taskID string, data any) Event {
	return Event{
		ID:     uuid.New().String(),
		Type:   eventType,
		TaskID: taskID,
		Data:   data,
		Time:   time.Now(),
	}
}

// SaveData carries the fields changed by a task save.
type SaveData struct {
	Fields []string `json:"fields,omitempty"`
}

// ProgressData carries a progress-state transition.
type ProgressData struct {
	FromState  string `json:"from_state"`
	ToState    string `json:"to_state"`
	Percentage int    `json:"percentage"`
	Status     string `json:"status"`
}

// CommitData carries a newly associated commit hash.
type CommitData struct {
	Hash string `json:"hash"`
}

// FocusData carries a focus change.
type FocusData struct {
	Previous string `json:"previous,omitempty"`
	Current  string `json:"current,omitempty"`
}

// HierarchyData summarizes a hierarchy replacement.
type HierarchyData struct {
	Epics   int `json:"epics"`
	Stories int `json:"stories"`
}
