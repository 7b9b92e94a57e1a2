package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := &GantryError{
		Code: CodeTaskNotFound,
		What: "task T001 not found",
		Why:  "no such task",
	}

	got := err.Error()
	if got != "task T001 not found: no such task" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := ErrPersistence("write tasks.json", cause)

	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() should include cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}

func TestUserMessage(t *testing.T) {
	msg := ErrTaskNotFound("T042").UserMessage()

	for _, want := range []string{"Error:", "task T042 not found", "Why:", "Fix:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("UserMessage() missing %q:\n%s", want, msg)
		}
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := ErrTaskNotFound("T001")
	b := ErrTaskNotFound("T002")

	if !stderrors.Is(a, b) {
		t.Error("errors with the same code should match")
	}
	if stderrors.Is(a, ErrNotInitialized()) {
		t.Error("errors with different codes should not match")
	}
}

func TestHasCode(t *testing.T) {
	err := ErrInvalidTransition("T001", "planning", "completed")

	if !HasCode(err, CodeInvalidTransition) {
		t.Error("expected HasCode to match the code")
	}
	if HasCode(err, CodeInvalidState) {
		t.Error("expected HasCode to reject a different code")
	}

	wrapped := fmt.Errorf("update progress: %w", err)
	if !HasCode(wrapped, CodeInvalidTransition) {
		t.Error("expected HasCode to unwrap")
	}

	if HasCode(stderrors.New("plain"), CodeInvalidTransition) {
		t.Error("expected HasCode to reject a plain error")
	}
	if HasCode(nil, CodeInvalidTransition) {
		t.Error("expected HasCode to reject nil")
	}
}

func TestAsGantryError(t *testing.T) {
	err := ErrLocked("alice@host")
	wrapped := fmt.Errorf("mutate: %w", err)

	ge := AsGantryError(wrapped)
	if ge == nil {
		t.Fatal("expected to recover the GantryError")
	}
	if ge.Code != CodeLocked {
		t.Errorf("Code = %s, want %s", ge.Code, CodeLocked)
	}

	if AsGantryError(stderrors.New("plain")) != nil {
		t.Error("expected nil for a non-gantry error")
	}
}

func TestWithCause(t *testing.T) {
	base := ErrConfigInvalid("storage.backend", "unknown backend")
	cause := stderrors.New("parse failure")

	withCause := base.WithCause(cause)
	if withCause.Cause != cause {
		t.Error("expected cause to be attached")
	}
	if base.Cause != nil {
		t.Error("WithCause must not mutate the original")
	}
	if withCause.Code != base.Code || withCause.What != base.What {
		t.Error("WithCause must preserve code and message")
	}
}

func TestErrHierarchyInvalidJoinsProblems(t *testing.T) {
	err := ErrHierarchyInvalid([]string{
		"epic E001 references unknown story S099",
		"story S001 references unknown task T099",
	})

	if !strings.Contains(err.Why, "S099") || !strings.Contains(err.Why, "T099") {
		t.Errorf("Why should list every problem, got %q", err.Why)
	}
}
