package application

import (
	"errors"
	"testing"
)

var allStatuses = []Status{
	StatusPending, StatusReviewing, StatusInterview,
	StatusOffered, StatusRejected, StatusWithdrawn,
}

func TestValidateTransition_Exhaustive(t *testing.T) {
	allowed := map[Status]map[Status]bool{
		StatusPending:   {StatusReviewing: true, StatusRejected: true, StatusWithdrawn: true},
		StatusReviewing: {StatusInterview: true, StatusRejected: true, StatusWithdrawn: true},
		StatusInterview: {StatusOffered: true, StatusRejected: true, StatusWithdrawn: true},
		StatusOffered:   {StatusRejected: true},
		StatusRejected:  {},
		StatusWithdrawn: {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := ValidateTransition(from, to)
			if allowed[from][to] {
				if err != nil {
					t.Fatalf("%s -> %s: unexpected error %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransition_SelfIsInvalid(t *testing.T) {
	for _, s := range allStatuses {
		if err := ValidateTransition(s, s); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", s, s, err)
		}
	}
}

func TestValidateTransition_UnknownStatus(t *testing.T) {
	if err := ValidateTransition(Status("archived"), StatusPending); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
	if err := ValidateTransition(StatusPending, Status("archived")); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := ValidateTransition(StatusInterview, StatusPending)

	var invalid *InvalidTransitionError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidTransitionError, got %T", err)
	}
	if invalid.From != StatusInterview || invalid.To != StatusPending {
		t.Fatalf("unexpected transition detail: %+v", invalid)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range allStatuses {
		want := s == StatusRejected || s == StatusWithdrawn
		if got := s.Terminal(); got != want {
			t.Fatalf("Terminal(%s) = %v, want %v", s, got, want)
		}
	}
	if Status("archived").Terminal() {
		t.Fatalf("unknown status must not report terminal")
	}
}

func TestNext(t *testing.T) {
	cases := []struct {
		from Status
		want Status
		ok   bool
	}{
		{StatusPending, StatusReviewing, true},
		{StatusReviewing, StatusInterview, true},
		{StatusInterview, StatusOffered, true},
		{StatusOffered, "", false},
		{StatusRejected, "", false},
		{StatusWithdrawn, "", false},
	}
	for _, c := range cases {
		got, ok := c.from.Next()
		if ok != c.ok || got != c.want {
			t.Fatalf("Next(%s) = (%s, %v), want (%s, %v)", c.from, got, ok, c.want, c.ok)
		}
	}
}

func TestParse(t *testing.T) {
	for _, s := range allStatuses {
		got, err := Parse(string(s))
		if err != nil || got != s {
			t.Fatalf("Parse(%q) = (%s, %v)", s, got, err)
		}
	}
	if _, err := Parse("PENDING"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("parse is case sensitive, expected ErrUnknownStatus")
	}
	if _, err := Parse(""); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus for empty input")
	}
}

func TestTransitionsReturnsCopy(t *testing.T) {
	first := StatusPending.Transitions()
	if len(first) != 3 {
		t.Fatalf("pending has %d targets, want 3", len(first))
	}
	first[0] = StatusOffered

	if StatusPending.Transitions()[0] != StatusReviewing {
		t.Fatalf("mutating the returned slice leaked into the table")
	}
}
