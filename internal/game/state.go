package game

import "fmt"

// State is the lifecycle state of a Session.
type State int

const (
	// StateIdle means no game has been started.
	StateIdle State = iota
	// StatePlaying accepts card selections.
	StatePlaying
	// StateResolving shows a mismatched pair; selections are ignored.
	StateResolving
	// StateComplete means every pair was matched and the score recorded.
	StateComplete
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateResolving:
		return "resolving"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SelectResult reports what a call to SelectCard did.
type SelectResult int

const (
	// ResultIgnored means the selection was not accepted and nothing changed.
	ResultIgnored SelectResult = iota
	// ResultSelected means the card was turned face up as the first of a pair.
	ResultSelected
	// ResultMatched means the card completed a matching pair.
	ResultMatched
	// ResultMismatched means the card completed a non-matching pair.
	ResultMismatched
	// ResultCompleted means the card completed the last pair of the game.
	ResultCompleted
)

// String returns the lowercase name of the result.
func (r SelectResult) String() string {
	switch r {
	case ResultIgnored:
		return "ignored"
	case ResultSelected:
		return "selected"
	case ResultMatched:
		return "matched"
	case ResultMismatched:
		return "mismatched"
	case ResultCompleted:
		return "completed"
	default:
		return fmt.Sprintf("SelectResult(%d)", int(r))
	}
}

// MarshalText encodes the result by name.
func (r SelectResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
