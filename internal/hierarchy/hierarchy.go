// Package hierarchy provides the epic/story/task containment records.
// Membership is by ID reference only; no back-pointers are stored.
package hierarchy

import "fmt"

// Epic groups stories under a single initiative-level heading.
type Epic struct {
	EpicID  string   `json:"epic_id"`
	Title   string   `json:"title"`
	Stories []string `json:"stories"`
}

// Story groups tasks under an epic.
type Story struct {
	StoryID string   `json:"story_id"`
	Title   string   `json:"title"`
	Tasks   []string `json:"tasks"`
}

// Hierarchy is the full epic -> story -> task containment structure.
type Hierarchy struct {
	Epics   []Epic  `json:"epics"`
	Stories []Story `json:"stories"`
}

// StoryIDs returns the set of story IDs present in the hierarchy.
func (h *Hierarchy) StoryIDs() map[string]bool {
	ids := make(map[string]bool, len(h.Stories))
	for _, s := range h.Stories {
		ids[s.StoryID] = true
	}
	return ids
}

// Validate checks referential integrity: every epic.stories entry must name
// a story in the hierarchy, and every story.tasks entry must name an
// existing task. Returns one message per dangling reference.
func (h *Hierarchy) Validate(taskIDs map[string]bool) []string {
	var problems []string
	storyIDs := h.StoryIDs()

	for _, e := range h.Epics {
		for _, sid := range e.Stories {
			if !storyIDs[sid] {
				problems = append(problems, fmt.Sprintf(
					"epic %s references unknown story %s", e.EpicID, sid))
			}
		}
	}
	for _, s := range h.Stories {
		for _, tid := range s.Tasks {
			if !taskIDs[tid] {
				problems = append(problems, fmt.Sprintf(
					"story %s references unknown task %s", s.StoryID, tid))
			}
		}
	}
	return problems
}

// RemoveTask strips a task ID from every story's task list. Returns true if
// anything changed.
func (h *Hierarchy) RemoveTask(id string) bool {
	changed := false
	for i := range h.Stories {
		tasks := h.Stories[i].Tasks
		kept := tasks[:0]
		for _, tid := range tasks {
			if tid == id {
				changed = true
				continue
			}
			kept = append(kept, tid)
		}
		h.Stories[i].Tasks = kept
	}
	return changed
}

// StoryFor returns the ID of the story containing the task, scanning the
// referencing collection. Empty string if the task is not in any story.
func (h *Hierarchy) StoryFor(taskID string) string {
	for _, s := range h.Stories {
		for _, tid := range s.Tasks {
			if tid == taskID {
				return s.StoryID
			}
		}
	}
	return ""
}
