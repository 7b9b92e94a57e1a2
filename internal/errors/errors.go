// Package errors provides structured error types for gantry.
package errors

import (
	"fmt"
	"strings"
)

// Code represents a unique error code.
type Code string

// Error codes for gantry.
const (
	// Initialization errors
	CodeNotInitialized     Code = "GANTRY_NOT_INITIALIZED"
	CodeAlreadyInitialized Code = "GANTRY_ALREADY_INITIALIZED"

	// Task errors
	CodeTaskNotFound      Code = "TASK_NOT_FOUND"
	CodeInvalidState      Code = "INVALID_STATE"
	CodeInvalidTransition Code = "INVALID_TRANSITION"

	// Hierarchy errors
	CodeHierarchyInvalid Code = "HIERARCHY_INVALID"

	// Storage errors
	CodePersistence Code = "PERSISTENCE_FAILED"
	CodeLocked      Code = "COLLECTION_LOCKED"

	// Config errors
	CodeConfigInvalid Code = "CONFIG_INVALID"
)

// GantryError is the structured error type for gantry. Every error carries
// enough context (task ID, attempted state, offending field) to be rendered
// directly without further lookups.
type GantryError struct {
	Code  Code   `json:"code"`
	What  string `json:"what"`
	Why   string `json:"why,omitempty"`
	Fix   string `json:"fix,omitempty"`
	Cause error  `json:"-"`
}

// Error implements the error interface.
func (e *GantryError) Error() string {
	var b strings.Builder
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString(": ")
		b.WriteString(e.Why)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *GantryError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly message for CLI output.
func (e *GantryError) UserMessage() string {
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(e.What)
	if e.Why != "" {
		b.WriteString("\n\nWhy: ")
		b.WriteString(e.Why)
	}
	if e.Fix != "" {
		b.WriteString("\n\nFix: ")
		b.WriteString(e.Fix)
	}
	return b.String()
}

// Is reports whether target is a GantryError with the same code.
func (e *GantryError) Is(target error) bool {
	t, ok := target.(*GantryError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *GantryError) WithCause(err error) *GantryError {
	return &GantryError{
		Code:  e.Code,
		What:  e.What,
		Why:   e.Why,
		Fix:   e.Fix,
		Cause: err,
	}
}

// --- Error constructors ---

// ErrNotInitialized returns an error for an uninitialized gantry directory.
func ErrNotInitialized() *GantryError {
	return &GantryError{
		Code: CodeNotInitialized,
		What: "gantry is not initialized in this directory",
		Why:  "No .gantry/ directory found in the current path",
		Fix:  "Run 'gantry init' to initialize gantry in this directory",
	}
}

// ErrAlreadyInitialized returns an error when gantry is already initialized.
func ErrAlreadyInitialized(path string) *GantryError {
	return &GantryError{
		Code: CodeAlreadyInitialized,
		What: "gantry is already initialized",
		Why:  fmt.Sprintf("Found existing .gantry/ directory at %s", path),
		Fix:  "Use 'gantry init --force' to reinitialize, or remove .gantry/ manually",
	}
}

// ErrTaskNotFound returns an error when a task doesn't exist.
func ErrTaskNotFound(id string) *GantryError {
	return &GantryError{
		Code: CodeTaskNotFound,
		What: fmt.Sprintf("task %s not found", id),
		Why:  "No task with this ID exists in the collection",
		Fix:  "Run 'gantry list' to see available tasks, or create one with 'gantry new'",
	}
}

// ErrInvalidState returns an error for an unrecognized progress state.
func ErrInvalidState(id, state string) *GantryError {
	return &GantryError{
		Code: CodeInvalidState,
		What: fmt.Sprintf("unknown progress state '%s' for task %s", state, id),
		Why:  "The requested state is not part of the progress pipeline",
		Fix:  "Run 'gantry progress --states' to see the valid states",
	}
}

// ErrInvalidTransition returns an error when a progress-state transition is
// not allowed from the current state.
func ErrInvalidTransition(id, from, to string) *GantryError {
	return &GantryError{
		Code: CodeInvalidTransition,
		What: fmt.Sprintf("task %s cannot move from '%s' to '%s'", id, from, to),
		Why:  "The progress pipeline only allows specific state transitions; there is no jump transition",
		Fix:  fmt.Sprintf("Advance through the intermediate states, or check 'gantry show %s' for the current state", id),
	}
}

// ErrHierarchyInvalid returns an error when a hierarchy update references
// tasks or stories that do not exist.
func ErrHierarchyInvalid(problems []string) *GantryError {
	return &GantryError{
		Code: CodeHierarchyInvalid,
		What: "hierarchy references unresolved IDs",
		Why:  strings.Join(problems, "; "),
		Fix:  "Create the referenced tasks/stories first, or remove the dangling references",
	}
}

// ErrPersistence wraps a storage failure. Storage failures always propagate
// to the caller; gantry never retries I/O itself.
func ErrPersistence(op string, cause error) *GantryError {
	return &GantryError{
		Code:  CodePersistence,
		What:  fmt.Sprintf("storage operation failed: %s", op),
		Why:   "The task collection could not be read or written",
		Fix:   "Check that .gantry/ is readable and writable, then retry",
		Cause: cause,
	}
}

// ErrLocked returns an error when the collection lock is held elsewhere.
func ErrLocked(owner string) *GantryError {
	return &GantryError{
		Code: CodeLocked,
		What: "task collection is locked",
		Why:  fmt.Sprintf("Another gantry process (%s) holds the collection lock", owner),
		Fix:  "Wait for the other operation to finish, or remove a stale .gantry/*.lock.yaml",
	}
}

// ErrConfigInvalid returns an error for invalid configuration.
func ErrConfigInvalid(field, reason string) *GantryError {
	return &GantryError{
		Code: CodeConfigInvalid,
		What: fmt.Sprintf("invalid configuration: %s", field),
		Why:  reason,
		Fix:  "Check .gantry/config.yaml and fix the invalid field",
	}
}

// AsGantryError attempts to convert an error to a GantryError.
// Returns nil if the error is not a GantryError.
func AsGantryError(err error) *GantryError {
	for err != nil {
		if ge, ok := err.(*GantryError); ok {
			return ge
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = unwrapper.Unwrap()
	}
	return nil
}

// HasCode reports whether err is (or wraps) a GantryError with the code.
func HasCode(err error, code Code) bool {
	ge := AsGantryError(err)
	return ge != nil && ge.Code == code
}

// Wrap wraps a generic error into a GantryError with unknown code.
func Wrap(err error, what string) *GantryError {
	return &GantryError{
		Code:  Code("UNKNOWN"),
		What:  what,
		Cause: err,
	}
}
