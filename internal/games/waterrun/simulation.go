// Package waterrun implements the Water Run simulation: a side-scrolling runner
// who jumps over obstacles and delivers water to doors while a dog gives chase.
//
// The simulation is pure. Step advances one fixed tick and returns the events
// it produced; timers, audio, and drawing belong to the caller.
package waterrun

import (
	"fmt"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
)

// RunStats are the counters shown to the player. Both only grow during a run.
type RunStats struct {
	Distance   int
	Deliveries int
}

// Simulation is the whole state of one run.
type Simulation struct {
	cfg         config.Config
	difficulty  config.Difficulty
	tier        config.Tier
	seed        int64
	invulnTicks int

	phase      Phase
	tick       int
	scroll     float64
	player     Player
	chase      Chase
	stats      RunStats
	milestones MilestoneTracker
	entities   *Registry
	spawner    *Spawner

	active      EntityID
	jumpPending bool
	lastHit     int // tick of the last life loss, -1 before the first
}

// NewSimulation creates a run in the Start phase. The difficulty must name a
// tier of cfg; the tier is copied and never changes for this run.
func NewSimulation(cfg config.Config, difficulty config.Difficulty, seed int64) (*Simulation, error) {
	tier, err := cfg.Tier(difficulty)
	if err != nil {
		return nil, err
	}
	if n := len(cfg.Targets.Categories); n != config.TargetCategories {
		return nil, fmt.Errorf("waterrun: %d target categories, expected %d", n, config.TargetCategories)
	}

	s := &Simulation{
		cfg:         cfg,
		difficulty:  difficulty,
		tier:        tier,
		seed:        seed,
		invulnTicks: cfg.InvulnerabilityTicks(),
		entities:    NewRegistry(),
	}
	s.spawner = NewSpawner(&s.cfg, seed)
	s.reset()
	return s, nil
}

func (s *Simulation) reset() {
	s.phase = PhaseStart
	s.tick = 0
	s.scroll = 0
	s.player = Player{Y: s.cfg.World.Ground, Lives: s.cfg.Player.MaxLives}
	s.chase = Chase{X: s.cfg.Chase.StartX}
	s.stats = RunStats{}
	s.milestones = NewMilestoneTracker(s.cfg.Milestones.Distance, s.cfg.Milestones.Deliveries)
	s.entities.Reset()
	s.spawner.Reset(s.seed)
	s.active = 0
	s.jumpPending = false
	s.lastHit = -1
}

// Start enters the Running phase.
func (s *Simulation) Start() ([]Event, error) {
	next, err := transition(s.phase, PhaseRunning)
	if err != nil {
		return nil, err
	}
	s.phase = next
	return []Event{RunStarted{}}, nil
}

// RequestJump buffers a jump for the next step. Only the latest request
// counts, and it is checked against the grounded rule when consumed.
func (s *Simulation) RequestJump() {
	if s.phase == PhaseRunning {
		s.jumpPending = true
	}
}

// Deliver completes the active target, if any. It is applied immediately,
// against the highlight state of the last step.
func (s *Simulation) Deliver() []Event {
	if s.phase != PhaseRunning || s.active == 0 {
		return nil
	}
	e := s.entities.Get(s.active)
	s.active = 0
	if e == nil || e.Delivered {
		return nil
	}
	e.Delivered = true
	e.Highlighted = false
	s.stats.Deliveries++
	return []Event{DeliverySucceeded{ID: e.ID, Total: s.stats.Deliveries}}
}

// Step advances one tick. Inputs in the frame are applied first: deliver
// immediately, jump through the buffer. Outside Running it does nothing.
func (s *Simulation) Step(in core.InputFrame) []Event {
	if s.phase != PhaseRunning {
		return nil
	}

	var events []Event
	if in.Has(core.ActionDeliver) {
		events = append(events, s.Deliver()...)
	}
	if in.Has(core.ActionJump) {
		s.RequestJump()
	}

	s.tick++
	speed := s.tier.ScrollSpeed
	ground := s.cfg.World.Ground

	// 1. Scroll
	s.scroll += speed

	// 2. Move entities and retire what left the screen
	s.entities.Advance(speed)
	for _, id := range s.entities.Retire(s.cfg.World.RetireBound) {
		if id == s.active {
			s.active = 0
		}
		events = append(events, EntityRetired{ID: id})
	}

	// 3. Player physics, pending jump first
	if s.jumpPending {
		s.jumpPending = false
		if s.player.canJump(ground) {
			s.player.jump(s.cfg.Player.JumpImpulse)
			events = append(events, JumpStarted{})
		}
	}
	if s.player.integrate(s.tier.Gravity, ground) {
		events = append(events, Landed{})
	}

	// 4. Distance and milestones
	s.stats.Distance++
	events = append(events, s.milestones.Observe(s.stats.Distance, s.stats.Deliveries)...)

	// 5. Antagonist
	s.chase.advance(s.cfg.Chase, s.PlayerX())

	// 6. Spawning
	skipped := s.spawner.Skipped()
	for _, e := range s.spawner.Spawn(s.scroll, speed, s.entities) {
		events = append(events, EntitySpawned{ID: e.ID, Kind: e.Kind})
	}
	if n := s.spawner.Skipped(); n > skipped {
		events = append(events, SpawnSkipped{Total: n})
	}

	// 7. Collisions
	events = append(events, s.resolve()...)

	// 8. Caught
	if s.chase.catches(s.cfg.Chase, s.PlayerX()) {
		events = append(events, s.end())
	}

	return events
}

// resolve runs the strike test, then refreshes delivery eligibility at the
// player's possibly pushed-back position.
func (s *Simulation) resolve() []Event {
	var events []Event
	if s.player.Lives > 0 && !s.invulnerable() {
		height := s.player.Y - s.cfg.World.Ground
		if ob := findStrike(s.entities, s.playerSpan(), height, s.cfg.Obstacles); ob != nil {
			events = s.loseLife(ob)
		}
	}
	s.active = resolveTargets(s.entities, s.playerSpan(), s.cfg.Collision)
	return events
}

func (s *Simulation) loseLife(ob *Entity) []Event {
	ob.Struck = true
	s.player.Lives--
	s.lastHit = s.tick
	events := []Event{ObstacleHit{ID: ob.ID, LivesLeft: s.player.Lives}}
	if s.player.Lives == 0 {
		s.chase.Pursuing = true
		events = append(events, ChaseStarted{})
	}
	return events
}

func (s *Simulation) end() Event {
	s.phase, _ = transition(s.phase, PhaseGameOver)
	s.chase.Caught = true
	s.jumpPending = false
	s.active = 0
	return RunEnded{
		Distance:   s.stats.Distance,
		Deliveries: s.stats.Deliveries,
		Ticks:      s.tick,
		Skipped:    s.spawner.Skipped(),
	}
}

// invulnerable reports whether the post-hit window is still open.
func (s *Simulation) invulnerable() bool {
	return s.lastHit >= 0 && s.tick-s.lastHit <= s.invulnTicks
}

// PlayerX returns the player's left edge after push-back.
func (s *Simulation) PlayerX() float64 {
	lost := core.Clamp(s.cfg.Player.MaxLives-s.player.Lives, 0, len(s.cfg.Player.PushBack)-1)
	return s.cfg.Player.X - s.cfg.Player.PushBack[lost]
}

func (s *Simulation) playerSpan() core.Span {
	return core.SpanAt(s.PlayerX(), s.cfg.Player.Width)
}

// Phase returns the current phase.
func (s *Simulation) Phase() Phase { return s.phase }

// Tick returns the number of steps taken while Running.
func (s *Simulation) Tick() int { return s.tick }

// Stats returns the run counters.
func (s *Simulation) Stats() RunStats { return s.stats }

// Player returns a copy of the player state.
func (s *Simulation) Player() Player { return s.player }

// Chase returns a copy of the antagonist state.
func (s *Simulation) Chase() Chase { return s.chase }

// ChaseState returns the derived lives/pursuit state.
func (s *Simulation) ChaseState() ChaseState {
	return chaseState(s.player.Lives, s.cfg.Player.MaxLives, s.chase)
}

// Active returns the target a delivery would complete, or 0.
func (s *Simulation) Active() EntityID { return s.active }

// Difficulty returns the tier this run was started with.
func (s *Simulation) Difficulty() config.Difficulty { return s.difficulty }

// Seed returns the spawner seed.
func (s *Simulation) Seed() int64 { return s.seed }

// Milestones returns the last announced thresholds.
func (s *Simulation) Milestones() (distance, deliveries int) {
	return s.milestones.LastDistance(), s.milestones.LastDeliveries()
}

// SkippedObstacles returns how many obstacle spawns found no room.
func (s *Simulation) SkippedObstacles() int { return s.spawner.Skipped() }
