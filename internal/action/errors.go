package action

import (
	"fmt"
	"strings"
)

// ValidationError reports unmet preconditions. It is an expected control-flow
// outcome: callers show the missing list to the player and move on.
type ValidationError struct {
	ActionID string
	Reason   string
	Missing  []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("action %s: %s", e.ActionID, e.Reason)
	}
	return fmt.Sprintf("action %s: %s: %s", e.ActionID, e.Reason, strings.Join(e.Missing, ", "))
}

// ConsumeError reports a hard-required resource that could not be debited at
// execution time. The executor guarantees no state was mutated when this is
// returned.
type ConsumeError struct {
	ActionID string
	Resource string
	Detail   string
}

func (e *ConsumeError) Error() string {
	return fmt.Sprintf("action %s: required resource %s unavailable: %s", e.ActionID, e.Resource, e.Detail)
}

// IntegrityError means the content and the code have drifted apart: a
// computed tier has no outcome entry, or a parameter declares a type the
// validator does not know. These are author/programmer defects, caught
// statically by content.CheckIntegrity, and they fail loudly if they ever
// reach runtime.
type IntegrityError struct {
	ActionID string
	Detail   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("content integrity fault in action %s: %s", e.ActionID, e.Detail)
}
