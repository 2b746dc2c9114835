package waterrun

import "github.com/vovakirdan/waterrun/internal/config"

// PlayerView is the runner as the view needs it.
type PlayerView struct {
	X, Y          float64
	Width, Height float64
	Airborne      bool
	Lives         int
	MaxLives      int
	Flashing      bool // inside the post-hit window
}

// DogView is the antagonist as the view needs it.
type DogView struct {
	X, Width float64
	Pursuing bool
}

// EntityView is one live entity as the view needs it.
type EntityView struct {
	ID          EntityID
	Kind        Kind
	Category    Category
	Variant     int
	X           float64
	Width       float64
	Height      float64
	Delivered   bool
	Highlighted bool
	Struck      bool
}

// Frame is an immutable snapshot taken between steps.
type Frame struct {
	Tick       int
	Phase      Phase
	Difficulty config.Difficulty
	Scroll     float64
	World      config.WorldConfig
	Player     PlayerView
	Dog        DogView
	Chase      ChaseState
	Stats      RunStats
	Active     EntityID
	Entities   []EntityView
}

// Frame copies the current state into a snapshot safe to hand to other goroutines.
func (s *Simulation) Frame() Frame {
	f := Frame{
		Tick:       s.tick,
		Phase:      s.phase,
		Difficulty: s.difficulty,
		Scroll:     s.scroll,
		World:      s.cfg.World,
		Player: PlayerView{
			X:        s.PlayerX(),
			Y:        s.player.Y,
			Width:    s.cfg.Player.Width,
			Height:   s.cfg.Player.Height,
			Airborne: s.player.Airborne,
			Lives:    s.player.Lives,
			MaxLives: s.cfg.Player.MaxLives,
			Flashing: s.invulnerable(),
		},
		Dog: DogView{
			X:        s.chase.X,
			Width:    s.cfg.Chase.Width,
			Pursuing: s.chase.Pursuing,
		},
		Chase:    s.ChaseState(),
		Stats:    s.stats,
		Active:   s.active,
		Entities: make([]EntityView, 0, s.entities.Len()),
	}
	for _, e := range s.entities.All() {
		f.Entities = append(f.Entities, EntityView{
			ID:          e.ID,
			Kind:        e.Kind,
			Category:    e.Category,
			Variant:     e.Variant,
			X:           e.X,
			Width:       e.Width,
			Height:      e.Height,
			Delivered:   e.Delivered,
			Highlighted: e.Highlighted,
			Struck:      e.Struck,
		})
	}
	return f
}
