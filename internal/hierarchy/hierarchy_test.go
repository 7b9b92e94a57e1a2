package hierarchy

import "testing"

func sample() Hierarchy {
	return Hierarchy{
		Epics: []Epic{
			{EpicID: "E001", Title: "Auth overhaul", Stories: []string{"S001", "S002"}},
		},
		Stories: []Story{
			{StoryID: "S001", Title: "Login flow", Tasks: []string{"T001", "T002"}},
			{StoryID: "S002", Title: "Session handling", Tasks: []string{"T003"}},
		},
	}
}

func TestValidateOK(t *testing.T) {
	h := sample()
	taskIDs := map[string]bool{"T001": true, "T002": true, "T003": true}

	if problems := h.Validate(taskIDs); len(problems) != 0 {
		t.Errorf("expected no problems, got: %v", problems)
	}
}

func TestValidateDanglingStory(t *testing.T) {
	h := sample()
	h.Epics[0].Stories = append(h.Epics[0].Stories, "S099")
	taskIDs := map[string]bool{"T001": true, "T002": true, "T003": true}

	problems := h.Validate(taskIDs)
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1: %v", len(problems), problems)
	}
	if problems[0] != "epic E001 references unknown story S099" {
		t.Errorf("unexpected message: %s", problems[0])
	}
}

func TestValidateDanglingTask(t *testing.T) {
	h := sample()
	taskIDs := map[string]bool{"T001": true, "T002": true}

	problems := h.Validate(taskIDs)
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1: %v", len(problems), problems)
	}
	if problems[0] != "story S002 references unknown task T003" {
		t.Errorf("unexpected message: %s", problems[0])
	}
}

func TestValidateEmpty(t *testing.T) {
	var h Hierarchy
	if problems := h.Validate(nil); len(problems) != 0 {
		t.Errorf("empty hierarchy should validate, got: %v", problems)
	}
}

func TestRemoveTask(t *testing.T) {
	h := sample()

	if !h.RemoveTask("T002") {
		t.Error("expected RemoveTask(T002) to report a change")
	}
	if got := len(h.Stories[0].Tasks); got != 1 {
		t.Errorf("S001 has %d tasks, want 1", got)
	}
	if h.Stories[0].Tasks[0] != "T001" {
		t.Errorf("remaining task = %s, want T001", h.Stories[0].Tasks[0])
	}

	if h.RemoveTask("T099") {
		t.Error("expected RemoveTask(T099) to report no change")
	}
}

func TestStoryFor(t *testing.T) {
	h := sample()

	if got := h.StoryFor("T003"); got != "S002" {
		t.Errorf("StoryFor(T003) = %s, want S002", got)
	}
	if got := h.StoryFor("T099"); got != "" {
		t.Errorf("StoryFor(T099) = %s, want empty", got)
	}
}
