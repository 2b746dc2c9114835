package main

import (
	"testing"

	"github.com/vovakirdan/waterrun/internal/config"
)

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := config.Default()

	for _, autopilot := range []bool{false, true} {
		a, err := simulate(cfg, config.DifficultyNormal, 99, 3000, autopilot)
		if err != nil {
			t.Fatalf("simulate() failed: %v", err)
		}
		b, err := simulate(cfg, config.DifficultyNormal, 99, 3000, autopilot)
		if err != nil {
			t.Fatalf("simulate() failed: %v", err)
		}
		if a != b {
			t.Errorf("autopilot=%v: runs differ: %+v vs %+v", autopilot, a, b)
		}
		if a.Ticks == 0 || a.Ticks > 3000 {
			t.Errorf("autopilot=%v: Ticks = %d, expected within (0, 3000]", autopilot, a.Ticks)
		}
	}
}

func TestSimulateRejectsMissingDifficulty(t *testing.T) {
	if _, err := simulate(config.Default(), config.DifficultyNone, 1, 10, false); err == nil {
		t.Error("simulate() without a difficulty should fail")
	}
}

func TestAutopilotOutlastsIdleRunner(t *testing.T) {
	cfg := config.Default()
	idle, _ := simulate(cfg, config.DifficultyEasy, 5, 4000, false)
	pilot, _ := simulate(cfg, config.DifficultyEasy, 5, 4000, true)

	if pilot.Distance < idle.Distance {
		t.Errorf("autopilot distance %d < idle distance %d", pilot.Distance, idle.Distance)
	}
	if pilot.Deliveries == 0 {
		t.Error("autopilot should deliver at least once")
	}
}

func TestSimulateCountsSkippedSpawns(t *testing.T) {
	cfg := config.Default()
	cfg.Obstacles.Chance = 1
	cfg.Obstacles.MinToObstacle = 1e6

	sum, err := simulate(cfg, config.DifficultyNormal, 3, 3000, true)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if sum.Skipped == 0 {
		t.Error("a hydrant on screen should block every other placement")
	}
}
