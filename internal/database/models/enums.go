package models

// MatchState is the closed set of states a Match can be in. No transition rules exist;
// any state may be replaced by any other through a regular update.
type MatchState string

const (
	MatchStatePending  MatchState = "pending"
	MatchStateAccepted MatchState = "accepted"
	MatchStateRejected MatchState = "rejected"
)

// MatchStates lists every valid MatchState
var MatchStates = []MatchState{MatchStatePending, MatchStateAccepted, MatchStateRejected}

// IsValid checks if the MatchState is valid
func (s MatchState) IsValid() bool {
	switch s {
	case MatchStatePending, MatchStateAccepted, MatchStateRejected:
		return true
	}
	return false
}

// ParseMatchState converts user input into a MatchState
func ParseMatchState(s string) (MatchState, bool) {
	state := MatchState(s)
	return state, state.IsValid()
}
