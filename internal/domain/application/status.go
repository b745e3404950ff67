package application

import (
	"errors"
	"fmt"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusInterview Status = "interview"
	StatusOffered   Status = "offered"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown application status")
)

// validTransitions is the authoritative lifecycle table. Rejected and
// withdrawn are terminal; an offer can only be rescinded or declined.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusReviewing, StatusRejected, StatusWithdrawn},
	StatusReviewing: {StatusInterview, StatusRejected, StatusWithdrawn},
	StatusInterview: {StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:   {StatusRejected},
	StatusRejected:  {},
	StatusWithdrawn: {},
}

// forwardOrder drives the Next advance helper.
var forwardOrder = []Status{StatusReviewing, StatusInterview, StatusOffered}

func Parse(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := validTransitions[s]
	return ok
}

func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0 && s.Valid()
}

// Transitions returns a copy of the allowed targets from s.
func (s Status) Transitions() []Status {
	out := make([]Status, len(validTransitions[s]))
	copy(out, validTransitions[s])
	return out
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Next returns the forward status an application advances to: the first of
// reviewing, interview, offered reachable from s. Terminal statuses and
// offered have no forward step.
func (s Status) Next() (Status, bool) {
	for _, t := range forwardOrder {
		if s.CanTransitionTo(t) {
			return t, true
		}
	}
	return "", false
}

// ValidateTransition checks the lifecycle table. A transition to the current
// status is invalid by construction (no status lists itself as a target).
func ValidateTransition(from, to Status) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(from))
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(to))
	}
	if !from.CanTransitionTo(to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// InvalidTransitionError names the actual current status so callers can show
// an actionable message instead of a bare rejection.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: application is %q, cannot move to %q", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
