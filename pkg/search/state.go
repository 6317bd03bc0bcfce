package search

import (
	"fmt"

	"nearby-places/pkg/places"
)

// State is the lifecycle of one search.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateRendered
	StateDenied
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequesting:
		return "requesting"
	case StateRendered:
		return "rendered"
	case StateDenied:
		return "denied"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateIdle, StateRequesting, StateRendered, StateDenied, StateFailed} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown search state %q", text)
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateRendered || s == StateDenied || s == StateFailed
}

// Outcome summarizes a finished search.
type Outcome struct {
	State   State              `json:"state"`
	Status  string             `json:"status,omitempty"`
	Markers int                `json:"markers"`
	Failure places.FailureKind `json:"-"`
	Message string             `json:"message,omitempty"`
}
