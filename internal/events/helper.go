package events

// PublishHelper wraps event publishing with nil-safety and convenience
// methods. All methods are safe to call even when the underlying publisher
// is nil, so callers without an event consumer pay nothing.
//
// Thread-safe: all methods can be called concurrently.
type PublishHelper struct {
	publisher Publisher
}

// NewPublishHelper creates a new PublishHelper wrapping the given publisher.
// If p is nil, all publish operations become no-ops.
func NewPublishHelper(p Publisher) *PublishHelper {
	return &PublishHelper{publisher: p}
}

// Publish sends an event to the underlying publisher.
// Safe to call with nil publisher (no-op).
func (ep *PublishHelper) Publish(ev Event) {
	if ep == nil || ep.publisher == nil {
		return
	}
	ep.publisher.Publish(ev)
}

// TaskCreated publishes a task-created event.
func (ep *PublishHelper) TaskCreated(taskID string) {
	ep.Publish(NewEvent(EventTaskCreated, taskID, SaveData{}))
}

// TaskSaved publishes a task-saved event with the changed fields.
func (ep *PublishHelper) TaskSaved(taskID string, fields []string) {
	ep.Publish(NewEvent(EventTaskSaved, taskID, SaveData{Fields: fields}))
}

// TaskDeleted publishes a task-deleted event.
func (ep *PublishHelper) TaskDeleted(taskID string) {
	ep.Publish(NewEvent(EventTaskDeleted, taskID, nil))
}

// ProgressUpdated publishes a progress-transition event.
func (ep *PublishHelper) ProgressUpdated(taskID, from, to string, percentage int, status string) {
	ep.Publish(NewEvent(EventProgressUpdated, taskID, ProgressData{
		FromState:  from,
		ToState:    to,
		Percentage: percentage,
		Status:     status,
	}))
}

// CommitAssociated publishes a commit-associated event.
func (ep *PublishHelper) CommitAssociated(taskID, hash string) {
	ep.Publish(NewEvent(EventCommitAssociated, taskID, CommitData{Hash: hash}))
}

// FocusChanged publishes a focus-changed event.
func (ep *PublishHelper) FocusChanged(previous, current string) {
	ep.Publish(NewEvent(EventFocusChanged, current, FocusData{
		Previous: previous,
		Current:  current,
	}))
}

// HierarchyUpdated publishes a hierarchy-replaced event.
func (ep *PublishHelper) HierarchyUpdated(epics, stories int) {
	ep.Publish(NewEvent(EventHierarchyUpdated, "", HierarchyData{
		Epics:   epics,
		Stories: stories,
	}))
}
