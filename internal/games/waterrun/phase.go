package waterrun

import (
	"errors"
	"fmt"
)

// ErrInvalidPhase is returned for a phase transition the machine does not allow.
var ErrInvalidPhase = errors.New("invalid phase transition")

// Phase gates which subsystems run and which inputs are accepted.
type Phase int

const (
	PhaseStart Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game-over"
	}
	return "unknown"
}

// transition moves from one phase to the next legal one.
func transition(from, to Phase) (Phase, error) {
	switch {
	case from == PhaseStart && to == PhaseRunning,
		from == PhaseRunning && to == PhaseGameOver:
		return to, nil
	}
	return from, fmt.Errorf("%w: %s -> %s", ErrInvalidPhase, from, to)
}
