package models

// Booking/Order lifecycle states. PENDING is the only legal creation state;
// COMPLETED and CANCELLED are terminal.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// transitions maps a target status to the source states it may be reached from.
// CANCELLED is reachable from both PENDING and CONFIRMED (an admin may cancel
// an already-accepted booking).
var transitions = map[string][]string{
	StatusConfirmed: {StatusPending},
	StatusCompleted: {StatusConfirmed},
	StatusCancelled: {StatusPending, StatusConfirmed},
}

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether no transition leaves s.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether a record may move from one status to the next.
func CanTransition(from, to string) bool {
	for _, src := range transitions[to] {
		if src == from {
			return true
		}
	}
	return false
}

// TransitionSources returns every status a record may legally hold immediately
// before moving to the given one. Used as a write guard so a concurrent update
// cannot regress a record or re-apply a transition.
func TransitionSources(to string) []string {
	srcs := transitions[to]
	out := make([]string, len(srcs))
	copy(out, srcs)
	return out
}
