package waterrun

import (
	"testing"

	"github.com/vovakirdan/waterrun/internal/config"
)

func TestAirtimeExact(t *testing.T) {
	// v0 = 4, g = 1: heights 3, 5, 6, 6, 5, 3, then landing
	ticks, peak := Airtime(4, 1)
	if ticks != 7 || peak != 6 {
		t.Errorf("Airtime(4, 1) = %d, %v; expected 7, 6", ticks, peak)
	}

	if ticks, peak := Airtime(0, 1); ticks != 0 || peak != 0 {
		t.Errorf("Airtime(0, 1) = %d, %v; expected 0, 0", ticks, peak)
	}
}

func TestAirtimeByTier(t *testing.T) {
	cfg := config.Default()
	prev := 0
	// Hard to easy: lighter gravity floats longer
	for _, d := range []config.Difficulty{config.DifficultyHard, config.DifficultyNormal, config.DifficultyEasy} {
		tier, _ := cfg.Tier(d)
		ticks, _ := Airtime(cfg.Player.JumpImpulse, tier.Gravity)
		if ticks <= prev {
			t.Errorf("%s airtime %d should exceed %d", d, ticks, prev)
		}
		prev = ticks
	}
}

func TestCanJumpNeedsExactGround(t *testing.T) {
	tests := []struct {
		name   string
		player Player
		want   bool
	}{
		{"grounded", Player{Y: 48}, true},
		{"airborne", Player{Y: 60, Airborne: true}, false},
		{"above ground but not airborne", Player{Y: 48.0001}, false},
	}

	for _, tc := range tests {
		if got := tc.player.canJump(48); got != tc.want {
			t.Errorf("%s: canJump = %v, expected %v", tc.name, got, tc.want)
		}
	}
}

func TestIntegrateLandsOnGround(t *testing.T) {
	p := Player{Y: 50, VY: -1, Airborne: true}
	if !p.integrate(5, 48) {
		t.Fatal("expected a landing")
	}
	if p.Y != 48 || p.VY != 0 || p.Airborne {
		t.Errorf("after landing player = %+v, expected {48 0 false}", p)
	}
	if p.integrate(5, 48) {
		t.Error("grounded player should not land again")
	}
}
