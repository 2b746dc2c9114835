// Package config provides YAML-based configuration loading, difficulty tiers,
// and validation for Water Run.
package config

import (
	"math"
	"time"
)

// Config contains every tunable value of the simulation. It is loaded once
// and treated as immutable while a run is live.
type Config struct {
	World        WorldConfig         `yaml:"world"`
	Player       PlayerConfig        `yaml:"player"`
	Targets      TargetConfig        `yaml:"targets"`
	Obstacles    ObstacleConfig      `yaml:"obstacles"`
	Collision    CollisionConfig     `yaml:"collision"`
	Chase        ChaseConfig         `yaml:"chase"`
	Timing       TimingConfig        `yaml:"timing"`
	Milestones   MilestoneConfig     `yaml:"milestones"`
	Difficulties map[Difficulty]Tier `yaml:"difficulties"`
}

// WorldConfig defines the playfield in pixels.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Ground      float64 `yaml:"ground"`
	CycleWidth  float64 `yaml:"cycle_width"`
	RetireBound float64 `yaml:"retire_bound"`
}

// PlayerConfig defines the runner.
type PlayerConfig struct {
	X           float64   `yaml:"x"`
	Width       float64   `yaml:"width"`
	Height      float64   `yaml:"height"`
	JumpImpulse float64   `yaml:"jump_impulse"`
	MaxLives    int       `yaml:"max_lives"`
	PushBack    []float64 `yaml:"push_back"`
}

// TargetCategories is the number of target footprints: small, two medium
// variants, large, in that order.
const TargetCategories = 4

// CategoryConfig is one target footprint.
type CategoryConfig struct {
	Name     string  `yaml:"name"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Variants int     `yaml:"variants"`
}

// TargetConfig defines delivery target spawning.
type TargetConfig struct {
	PerCycle    int              `yaml:"per_cycle"`
	FirstAt     float64          `yaml:"first_at"`
	SpawnOffset float64          `yaml:"spawn_offset"`
	Categories  []CategoryConfig `yaml:"categories"`
}

// ObstacleConfig defines obstacle spawning and footprint.
type ObstacleConfig struct {
	Chance        float64 `yaml:"chance"`
	Retries       int     `yaml:"retries"`
	FirstAt       float64 `yaml:"first_at"`
	IntervalMin   float64 `yaml:"interval_min"`
	IntervalMax   float64 `yaml:"interval_max"`
	OffsetMin     float64 `yaml:"offset_min"`
	OffsetMax     float64 `yaml:"offset_max"`
	Width         float64 `yaml:"width"`
	HitWidth      float64 `yaml:"hit_width"`
	Height        float64 `yaml:"height"`
	MinToTarget   float64 `yaml:"min_to_target"`
	MinToObstacle float64 `yaml:"min_to_obstacle"`
}

// CollisionConfig defines the target eligibility margins.
type CollisionConfig struct {
	MarginLeftFloor     float64 `yaml:"margin_left_floor"`
	MarginLeftFraction  float64 `yaml:"margin_left_fraction"`
	MarginRightFloor    float64 `yaml:"margin_right_floor"`
	MarginRightFraction float64 `yaml:"margin_right_fraction"`
}

// ChaseConfig defines the antagonist.
type ChaseConfig struct {
	StartX      float64 `yaml:"start_x"`
	Width       float64 `yaml:"width"`
	Speed       float64 `yaml:"speed"`
	MinTrailGap float64 `yaml:"min_trail_gap"`
	CatchGap    float64 `yaml:"catch_gap"`
}

// TimingConfig holds wall-clock durations.
type TimingConfig struct {
	TickInterval    time.Duration `yaml:"tick_interval"`
	Invulnerability time.Duration `yaml:"invulnerability"`
	Notice          time.Duration `yaml:"notice"`
	Highlight       time.Duration `yaml:"highlight"`
	Banner          time.Duration `yaml:"banner"`
}

// MilestoneConfig lists announcement thresholds in ascending order.
type MilestoneConfig struct {
	Distance   []int `yaml:"distance"`
	Deliveries []int `yaml:"deliveries"`
}

// Tier is the per-difficulty physics selection.
type Tier struct {
	ScrollSpeed float64 `yaml:"scroll_speed"`
	Gravity     float64 `yaml:"gravity"`
}

// TargetInterval returns the scroll distance between two target spawns.
func (c Config) TargetInterval() float64 {
	if c.Targets.PerCycle <= 0 {
		return c.World.CycleWidth
	}
	return c.World.CycleWidth / float64(c.Targets.PerCycle)
}

// InvulnerabilityTicks converts the invulnerability window into whole ticks.
func (c Config) InvulnerabilityTicks() int {
	if c.Timing.TickInterval <= 0 {
		return 0
	}
	return int(math.Ceil(float64(c.Timing.Invulnerability) / float64(c.Timing.TickInterval)))
}
