package task

import (
	"fmt"
	"strings"
)

// MaxTitleLength is the longest allowed task title.
const MaxTitleLength = 200

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error returns a combined error message.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Strings returns the individual error messages.
func (e ValidationErrors) Strings() []string {
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return msgs
}

// Validate checks all field constraints on a task. It is a pure function of
// its input: every violation is accumulated, nothing short-circuits, and no
// error is ever raised for data problems.
func Validate(t *Task) ValidationErrors {
	var errs ValidationErrors

	if t.ID == "" {
		errs = append(errs, ValidationError{Field: "id", Message: "required"})
	} else if !IsValidID(t.ID) {
		errs = append(errs, ValidationError{
			Field:   "id",
			Value:   t.ID,
			Message: "must match T followed by three digits",
		})
	}

	if t.Title == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "required"})
	} else if len(t.Title) > MaxTitleLength {
		errs = append(errs, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must be at most %d characters", MaxTitleLength),
		})
	}

	if t.Description == "" {
		errs = append(errs, ValidationError{Field: "description", Message: "required"})
	}

	if t.Status == "" {
		errs = append(errs, ValidationError{Field: "status", Message: "required"})
	} else if !IsValidStatus(t.Status) {
		errs = append(errs, ValidationError{
			Field:   "status",
			Value:   string(t.Status),
			Message: "invalid status",
		})
	}

	if t.Dependencies == nil {
		errs = append(errs, ValidationError{Field: "dependencies", Message: "required"})
	}

	// Priority is optional; zero means unset.
	if t.Priority != 0 && (t.Priority < 1 || t.Priority > 5) {
		errs = append(errs, ValidationError{
			Field:   "priority",
			Value:   fmt.Sprintf("%d", t.Priority),
			Message: "must be between 1 and 5",
		})
	}

	if t.EstimatedHours < 0 {
		errs = append(errs, ValidationError{
			Field:   "estimated_hours",
			Value:   fmt.Sprintf("%g", t.EstimatedHours),
			Message: "must not be negative",
		})
	}

	if t.ProgressPercentage < 0 || t.ProgressPercentage > 100 {
		errs = append(errs, ValidationError{
			Field:   "progress_percentage",
			Value:   fmt.Sprintf("%d", t.ProgressPercentage),
			Message: "must be between 0 and 100",
		})
	}

	if t.ProgressState != "" && !IsValidState(t.ProgressState) {
		errs = append(errs, ValidationError{
			Field:   "progress_state",
			Value:   string(t.ProgressState),
			Message: "invalid progress state",
		})
	}

	for i, dep := range t.Dependencies {
		field := fmt.Sprintf("dependencies[%d]", i)
		if dep.TaskID == "" {
			errs = append(errs, ValidationError{Field: field + ".task_id", Message: "required"})
		} else if !IsValidID(dep.TaskID) {
			errs = append(errs, ValidationError{
				Field:   field + ".task_id",
				Value:   dep.TaskID,
				Message: "must match T followed by three digits",
			})
		}
		if dep.Type != "" && !IsValidDependencyType(dep.Type) {
			errs = append(errs, ValidationError{
				Field:   field + ".type",
				Value:   string(dep.Type),
				Message: "must be strong or weak",
			})
		}
	}

	return errs
}
