package waterrun

import (
	"testing"

	"github.com/vovakirdan/waterrun/internal/config"
)

func TestAutopilotClearsHydrant(t *testing.T) {
	for _, d := range config.Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			s := newRunning(t, quietConfig(), d)
			pilot := NewAutopilot(s.cfg, s.tier)
			placeObstacle(s, 400)

			jumps := 0
			for i := 0; i < 150; i++ {
				jumps += countOf[JumpStarted](s.Step(pilot.Next(s.Frame())))
			}
			if jumps != 1 {
				t.Errorf("autopilot jumped %d times, expected 1", jumps)
			}
			if s.Player().Lives != s.cfg.Player.MaxLives {
				t.Errorf("Lives = %d, expected no strike", s.Player().Lives)
			}
		})
	}
}

func TestAutopilotDelivers(t *testing.T) {
	s := newRunning(t, quietConfig(), config.DifficultyNormal)
	pilot := NewAutopilot(s.cfg, s.tier)
	placeTarget(s, 400)

	for i := 0; i < 100; i++ {
		s.Step(pilot.Next(s.Frame()))
	}
	if s.Stats().Deliveries != 1 {
		t.Errorf("Deliveries = %d, expected 1", s.Stats().Deliveries)
	}
}

func TestAutopilotIdleOutsideRunning(t *testing.T) {
	s, err := NewSimulation(quietConfig(), config.DifficultyNormal, 1)
	if err != nil {
		t.Fatal(err)
	}
	in := NewAutopilot(s.cfg, s.tier).Next(s.Frame())
	if !in.Empty() {
		t.Errorf("autopilot input before start = %v, expected empty", in.Actions)
	}
}
