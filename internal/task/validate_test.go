package task

import (
	"strings"
	"testing"
)

func validTask() *Task {
	t := New("T001", "Test task")
	t.Description = "A task used in validation tests."
	return t
}

func TestValidateOK(t *testing.T) {
	errs := Validate(validTask())
	if errs.HasErrors() {
		t.Errorf("expected no errors, got: %s", errs.Error())
	}
}

func TestValidateAccumulatesAll(t *testing.T) {
	// Every field wrong at once; all violations must be reported.
	tk := &Task{
		ID:                 "bad",
		Title:              strings.Repeat("x", MaxTitleLength+1),
		Status:             "done",
		Priority:           9,
		EstimatedHours:     -1,
		ProgressPercentage: 150,
		ProgressState:      "shipping",
		Dependencies: []Dependency{
			{TaskID: "nope", Type: "maybe"},
		},
	}

	errs := Validate(tk)
	wantFields := []string{
		"id", "title", "description", "status", "priority",
		"estimated_hours", "progress_percentage", "progress_state",
		"dependencies[0].task_id", "dependencies[0].type",
	}
	if len(errs) != len(wantFields) {
		t.Fatalf("got %d errors, want %d: %s", len(errs), len(wantFields), errs.Error())
	}
	for i, field := range wantFields {
		if errs[i].Field != field {
			t.Errorf("errs[%d].Field = %s, want %s", i, errs[i].Field, field)
		}
	}
}

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Task)
		field  string
	}{
		{"missing id", func(tk *Task) { tk.ID = "" }, "id"},
		{"bad id format", func(tk *Task) { tk.ID = "TASK-1" }, "id"},
		{"missing title", func(tk *Task) { tk.Title = "" }, "title"},
		{"title too long", func(tk *Task) { tk.Title = strings.Repeat("a", 201) }, "title"},
		{"missing description", func(tk *Task) { tk.Description = "" }, "description"},
		{"missing status", func(tk *Task) { tk.Status = "" }, "status"},
		{"bad status", func(tk *Task) { tk.Status = "paused" }, "status"},
		{"nil dependencies", func(tk *Task) { tk.Dependencies = nil }, "dependencies"},
		{"priority too high", func(tk *Task) { tk.Priority = 6 }, "priority"},
		{"priority negative", func(tk *Task) { tk.Priority = -1 }, "priority"},
		{"negative hours", func(tk *Task) { tk.EstimatedHours = -0.5 }, "estimated_hours"},
		{"percentage over 100", func(tk *Task) { tk.ProgressPercentage = 101 }, "progress_percentage"},
		{"percentage negative", func(tk *Task) { tk.ProgressPercentage = -1 }, "progress_percentage"},
		{"bad progress state", func(tk *Task) { tk.ProgressState = "review" }, "progress_state"},
		{"dep missing id", func(tk *Task) {
			tk.Dependencies = []Dependency{{Type: DepStrong}}
		}, "dependencies[0].task_id"},
		{"dep bad type", func(tk *Task) {
			tk.Dependencies = []Dependency{{TaskID: "T002", Type: "optional"}}
		}, "dependencies[0].type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := validTask()
			tt.mutate(tk)
			errs := Validate(tk)
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %s", len(errs), errs.Error())
			}
			if errs[0].Field != tt.field {
				t.Errorf("Field = %s, want %s", errs[0].Field, tt.field)
			}
		})
	}
}

func TestValidateOptionalFieldsUnset(t *testing.T) {
	tk := validTask()
	tk.Priority = 0
	tk.EstimatedHours = 0
	tk.ProgressState = ""

	if errs := Validate(tk); errs.HasErrors() {
		t.Errorf("unset optional fields should be valid, got: %s", errs.Error())
	}
}

func TestValidateTitleAtLimit(t *testing.T) {
	tk := validTask()
	tk.Title = strings.Repeat("a", MaxTitleLength)

	if errs := Validate(tk); errs.HasErrors() {
		t.Errorf("title of exactly %d characters should be valid, got: %s", MaxTitleLength, errs.Error())
	}
}

func TestValidateDepTypeOmitted(t *testing.T) {
	tk := validTask()
	tk.Dependencies = []Dependency{{TaskID: "T002"}}

	if errs := Validate(tk); errs.HasErrors() {
		t.Errorf("omitted dependency type should be valid, got: %s", errs.Error())
	}
}
