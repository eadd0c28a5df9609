package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},

		// regressions are never legal
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},

		// skipping a step is not legal
		{StatusPending, StatusCompleted, false},

		// terminal states have no way out
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%s) = false", s)
		}
	}
	if ValidStatus("SHIPPED") {
		t.Error("ValidStatus accepted an unknown status")
	}
	if ValidStatus("") {
		t.Error("ValidStatus accepted an empty status")
	}
}

func TestTerminalStatus(t *testing.T) {
	if !TerminalStatus(StatusCompleted) || !TerminalStatus(StatusCancelled) {
		t.Error("COMPLETED and CANCELLED must be terminal")
	}
	if TerminalStatus(StatusPending) || TerminalStatus(StatusConfirmed) {
		t.Error("PENDING and CONFIRMED must not be terminal")
	}
}

func TestTransitionSourcesCopies(t *testing.T) {
	srcs := TransitionSources(StatusCancelled)
	if len(srcs) != 2 {
		t.Fatalf("expected 2 sources for CANCELLED, got %d", len(srcs))
	}
	srcs[0] = "MUTATED"
	if again := TransitionSources(StatusCancelled); again[0] == "MUTATED" {
		t.Error("TransitionSources leaked its internal slice")
	}
	if len(TransitionSources(StatusPending)) != 0 {
		t.Error("PENDING must not be reachable by transition")
	}
}
