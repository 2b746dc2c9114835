package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/waterrun.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded configuration. It mirrors defaults/waterrun.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:       900,
			Height:      520,
			Ground:      48,
			CycleWidth:  1520,
			RetireBound: -120,
		},
		Player: PlayerConfig{
			X:           170,
			Width:       50,
			Height:      120,
			JumpImpulse: 15,
			MaxLives:    2,
			PushBack:    []float64{0, 25, 50},
		},
		Targets: TargetConfig{
			PerCycle:    4,
			FirstAt:     200,
			SpawnOffset: 35,
			Categories: []CategoryConfig{
				{Name: "small", Width: 48, Height: 86, Variants: 2},
				{Name: "medium-a", Width: 56, Height: 100, Variants: 3},
				{Name: "medium-b", Width: 64, Height: 100, Variants: 2},
				{Name: "large", Width: 84, Height: 120, Variants: 2},
			},
		},
		Obstacles: ObstacleConfig{
			Chance:        0.3,
			Retries:       20,
			FirstAt:       320,
			IntervalMin:   230,
			IntervalMax:   410,
			OffsetMin:     80,
			OffsetMax:     170,
			Width:         30,
			HitWidth:      18,
			Height:        36,
			MinToTarget:   90,
			MinToObstacle: 160,
		},
		Collision: CollisionConfig{
			MarginLeftFloor:     3,
			MarginLeftFraction:  0.10,
			MarginRightFloor:    5,
			MarginRightFraction: 0.15,
		},
		Chase: ChaseConfig{
			StartX:      -40,
			Width:       100,
			Speed:       4.8,
			MinTrailGap: 30,
			CatchGap:    70,
		},
		Timing: TimingConfig{
			TickInterval:    18 * time.Millisecond,
			Invulnerability: 350 * time.Millisecond,
			Notice:          1200 * time.Millisecond,
			Highlight:       600 * time.Millisecond,
			Banner:          1500 * time.Millisecond,
		},
		Milestones: MilestoneConfig{
			Distance:   []int{250, 500, 1000, 2000, 5000, 10000},
			Deliveries: []int{1, 5, 10, 25, 50},
		},
		Difficulties: map[Difficulty]Tier{
			DifficultyEasy:   {ScrollSpeed: 5.0, Gravity: 0.9},
			DifficultyNormal: {ScrollSpeed: 5.8, Gravity: 1.09},
			DifficultyHard:   {ScrollSpeed: 7.0, Gravity: 1.3},
		},
	}
}
