package waterrun

import (
	"math"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
)

// Autopilot plays headless runs: it jumps when a hydrant is about to reach
// the runner and delivers whenever a door is active.
type Autopilot struct {
	lookAhead float64
	hitWidth  float64
}

// NewAutopilot sizes the jump trigger so the runner is at the middle of its
// arc while crossing the hit box.
func NewAutopilot(cfg config.Config, tier config.Tier) *Autopilot {
	ticks, _ := Airtime(cfg.Player.JumpImpulse, tier.Gravity)
	travel := float64(ticks) * tier.ScrollSpeed
	crossing := cfg.Player.Width + cfg.Obstacles.HitWidth
	return &Autopilot{
		lookAhead: math.Max(tier.ScrollSpeed, (travel-crossing)/2),
		hitWidth:  cfg.Obstacles.HitWidth,
	}
}

// Next returns the input for the step after f.
func (a *Autopilot) Next(f Frame) core.InputFrame {
	in := core.NewInputFrame()
	if f.Phase != PhaseRunning {
		return in
	}
	if f.Active != 0 {
		in.Set(core.ActionDeliver)
	}
	if f.Player.Airborne {
		return in
	}
	front := f.Player.X + f.Player.Width
	for _, e := range f.Entities {
		if e.Kind != KindObstacle || e.Struck {
			continue
		}
		hit := core.SpanAt(e.X, e.Width).Centered(a.hitWidth)
		if d := hit.Min - front; d > 0 && d <= a.lookAhead {
			in.Set(core.ActionJump)
			break
		}
	}
	return in
}
