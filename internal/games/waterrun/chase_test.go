package waterrun

import (
	"testing"

	"github.com/vovakirdan/waterrun/internal/config"
)

func TestChaseAdvanceClampsToTrailGap(t *testing.T) {
	cfg := config.Default().Chase
	c := Chase{X: 80, Pursuing: true}

	c.advance(cfg, 120)
	if c.X != 84.8 {
		t.Errorf("X = %v, expected 84.8", c.X)
	}
	for i := 0; i < 5; i++ {
		c.advance(cfg, 120)
	}
	if c.X != 90 {
		t.Errorf("X = %v, expected clamp at 90", c.X)
	}

	idle := Chase{X: 0}
	idle.advance(cfg, 120)
	if idle.X != 0 {
		t.Error("a chase that is not pursuing must not move")
	}
}

func TestChaseCatches(t *testing.T) {
	cfg := config.Default().Chase
	tests := []struct {
		chase   Chase
		playerX float64
		want    bool
	}{
		{Chase{X: 50, Pursuing: true}, 120, true},
		{Chase{X: 49, Pursuing: true}, 120, false},
		{Chase{X: 100, Pursuing: false}, 120, false},
	}
	for _, tc := range tests {
		if got := tc.chase.catches(cfg, tc.playerX); got != tc.want {
			t.Errorf("catches(%+v, %v) = %v, expected %v", tc.chase, tc.playerX, got, tc.want)
		}
	}
}

func TestChaseStateDerivation(t *testing.T) {
	tests := []struct {
		lives int
		chase Chase
		want  ChaseState
	}{
		{2, Chase{}, ChaseSafe},
		{1, Chase{}, ChaseWounded},
		{0, Chase{Pursuing: true}, ChasePursued},
		{0, Chase{Pursuing: true, Caught: true}, ChaseCaught},
	}
	for _, tc := range tests {
		if got := chaseState(tc.lives, 2, tc.chase); got != tc.want {
			t.Errorf("chaseState(%d, %+v) = %v, expected %v", tc.lives, tc.chase, got, tc.want)
		}
	}
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		ok       bool
	}{
		{PhaseStart, PhaseRunning, true},
		{PhaseRunning, PhaseGameOver, true},
		{PhaseStart, PhaseGameOver, false},
		{PhaseGameOver, PhaseRunning, false},
		{PhaseRunning, PhaseStart, false},
	}
	for _, tc := range tests {
		got, err := transition(tc.from, tc.to)
		if tc.ok && (err != nil || got != tc.to) {
			t.Errorf("%s -> %s = %s, %v; expected success", tc.from, tc.to, got, err)
		}
		if !tc.ok && (err == nil || got != tc.from) {
			t.Errorf("%s -> %s = %s, %v; expected ErrInvalidPhase", tc.from, tc.to, got, err)
		}
	}
}
