package waterrun

// Event is something a step produced that the application layer may present.
type Event interface {
	isEvent()
}

// RunStarted is emitted when the phase enters Running.
type RunStarted struct{}

// JumpStarted is emitted when a jump request is accepted.
type JumpStarted struct{}

// Landed is emitted on the tick the player touches the ground.
type Landed struct{}

// EntitySpawned is emitted when the spawner adds an entity.
type EntitySpawned struct {
	ID   EntityID
	Kind Kind
}

// SpawnSkipped is emitted when an obstacle placement failed every retry.
// Total counts the skips of the run so far.
type SpawnSkipped struct {
	Total int
}

// EntityRetired is emitted when an entity leaves the world.
type EntityRetired struct {
	ID EntityID
}

// ObstacleHit is emitted when a strike costs a life.
type ObstacleHit struct {
	ID        EntityID
	LivesLeft int
}

// ChaseStarted is emitted once, when the last life is lost.
type ChaseStarted struct{}

// MilestoneReached is emitted once per threshold per run.
type MilestoneReached struct {
	Kind  MilestoneKind
	Value int
}

// DeliverySucceeded is emitted when a target is delivered.
type DeliverySucceeded struct {
	ID    EntityID
	Total int
}

// RunEnded is emitted once, on the transition to GameOver.
type RunEnded struct {
	Distance   int
	Deliveries int
	Ticks      int
	Skipped    int
}

func (RunStarted) isEvent() {}
func (JumpStarted) isEvent() {}
func (Landed) isEvent() {}
func (EntitySpawned) isEvent() {}
func (SpawnSkipped) isEvent() {}
func (EntityRetired) isEvent() {}
func (ObstacleHit) isEvent() {}
func (ChaseStarted) isEvent() {}
func (MilestoneReached) isEvent() {}
func (DeliverySucceeded) isEvent() {}
func (RunEnded) isEvent() {}
