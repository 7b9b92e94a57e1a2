package task

import (
	"time"

	gantryerrors "github.com/rmalloy/gantry/internal/errors"
)

// ProgressState is the fine-grained lifecycle stage of a task, distinct from
// the coarse Status field which is derived from it.
type ProgressState string

const (
	StateNotStarted             ProgressState = "not_started"
	StatePlanning               ProgressState = "planning"
	StateInDevelopment          ProgressState = "in_development"
	StateImplementationComplete ProgressState = "implementation_complete"
	StateInReview               ProgressState = "in_review"
	StateReviewComplete         ProgressState = "review_complete"
	StateInTesting              ProgressState = "in_testing"
	StateCompleted              ProgressState = "completed"
)

// ValidStates returns all progress states in pipeline order.
func ValidStates() []ProgressState {
	return []ProgressState{
		StateNotStarted, StatePlanning, StateInDevelopment,
		StateImplementationComplete, StateInReview, StateReviewComplete,
		StateInTesting, StateCompleted,
	}
}

// IsValidState returns true if s is a recognized progress state.
func IsValidState(s ProgressState) bool {
	_, ok := defaultPercentages[s]
	return ok
}

// defaultPercentages is the percentage applied on entering a state when no
// explicit percentage is supplied.
var defaultPercentages = map[ProgressState]int{
	StateNotStarted:             0,
	StatePlanning:               10,
	StateInDevelopment:          30,
	StateImplementationComplete: 60,
	StateInReview:               70,
	StateReviewComplete:         80,
	StateInTesting:              90,
	StateCompleted:              100,
}

// DefaultPercentage returns the entry percentage for a state.
func DefaultPercentage(s ProgressState) int {
	return defaultPercentages[s]
}

// allowedTransitions is the directed adjacency of the progress state machine.
// in_review and in_testing can send work back to in_development; completed is
// terminal.
var allowedTransitions = map[ProgressState][]ProgressState{
	StateNotStarted:             {StatePlanning, StateInDevelopment},
	StatePlanning:               {StateInDevelopment},
	StateInDevelopment:          {StateImplementationComplete, StateInReview},
	StateImplementationComplete: {StateInReview},
	StateInReview:               {StateReviewComplete, StateInDevelopment},
	StateReviewComplete:         {StateInTesting},
	StateInTesting:              {StateCompleted, StateInDevelopment},
	StateCompleted:              {},
}

// CanTransition returns true if from can move to to. Re-entering the current
// state is always permitted (used to adjust the percentage in place).
func CanTransition(from, to ProgressState) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeriveStatus maps a progress state to the coarse task status. The mapping
// is unconditional: callers cannot set Status independently once progress
// tracking is in use.
func DeriveStatus(s ProgressState) Status {
	switch s {
	case StateCompleted:
		return StatusCompleted
	case StateNotStarted:
		return StatusPending
	default:
		return StatusInProgress
	}
}

// Transition moves the task to newState, applying the state's default
// percentage unless customPercentage is non-nil, and re-deriving Status.
// Returns an invalid-state error for unrecognized states and an
// invalid-transition error when newState is unreachable from the current
// state.
func Transition(t *Task, newState ProgressState, customPercentage *int) error {
	if !IsValidState(newState) {
		return gantryerrors.ErrInvalidState(t.ID, string(newState))
	}

	current := t.ProgressState
	if current == "" {
		current = StateNotStarted
	}

	if !CanTransition(current, newState) {
		return gantryerrors.ErrInvalidTransition(t.ID, string(current), string(newState))
	}

	t.ProgressState = newState
	if customPercentage != nil {
		t.ProgressPercentage = *customPercentage
	} else {
		t.ProgressPercentage = defaultPercentages[newState]
	}
	t.Status = DeriveStatus(newState)
	t.UpdatedAt = time.Now()
	return nil
}
