package waterrun

import "github.com/vovakirdan/waterrun/internal/config"

// ChaseState summarizes the lives and pursuit state.
type ChaseState int

const (
	ChaseSafe ChaseState = iota
	ChaseWounded
	ChasePursued
	ChaseCaught
)

func (s ChaseState) String() string {
	switch s {
	case ChaseSafe:
		return "safe"
	case ChaseWounded:
		return "wounded"
	case ChasePursued:
		return "pursued"
	case ChaseCaught:
		return "caught"
	}
	return "unknown"
}

// Chase is the antagonist. X only moves toward the player.
type Chase struct {
	X        float64
	Pursuing bool
	Caught   bool
}

// advance closes on the player without passing the minimum trailing gap.
func (c *Chase) advance(cfg config.ChaseConfig, playerX float64) {
	if !c.Pursuing {
		return
	}
	limit := playerX - cfg.MinTrailGap
	if c.X >= limit {
		return
	}
	c.X += cfg.Speed
	if c.X > limit {
		c.X = limit
	}
}

// catches reports whether the pursuing antagonist is within the catch gap.
func (c *Chase) catches(cfg config.ChaseConfig, playerX float64) bool {
	return c.Pursuing && playerX-c.X <= cfg.CatchGap
}

// chaseState derives the summary from lives and pursuit.
func chaseState(lives, maxLives int, c Chase) ChaseState {
	switch {
	case c.Caught:
		return ChaseCaught
	case c.Pursuing || lives <= 0:
		return ChasePursued
	case lives < maxLives:
		return ChaseWounded
	}
	return ChaseSafe
}
