package waterrun

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/waterrun/internal/config"
)

// Spawner decides when and where targets and obstacles enter the world.
// Thresholds are measured in scroll distance.
type Spawner struct {
	cfg      *config.Config
	rng      *rand.Rand
	interval float64 // scroll distance between targets

	nextTargetAt   float64
	nextObstacleAt float64

	skipped int // obstacle attempts that found no room
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(cfg *config.Config, seed int64) *Spawner {
	sp := &Spawner{cfg: cfg}
	sp.Reset(seed)
	return sp
}

// Reset rewinds the thresholds and reseeds the RNG.
func (sp *Spawner) Reset(seed int64) {
	sp.rng = rand.New(rand.NewSource(seed))
	sp.interval = sp.cfg.TargetInterval()
	sp.nextTargetAt = sp.cfg.Targets.FirstAt
	sp.nextObstacleAt = sp.cfg.Obstacles.FirstAt
	sp.skipped = 0
}

// Skipped returns how many obstacle placements failed every retry.
func (sp *Spawner) Skipped() int {
	return sp.skipped
}

// targetSpawnX is where every target appears.
func (sp *Spawner) targetSpawnX() float64 {
	return sp.cfg.World.Width + sp.cfg.Targets.SpawnOffset
}

// Spawn runs the target spawner, then the obstacle spawner, for the given
// scroll offset. It returns the entities it added.
func (sp *Spawner) Spawn(scroll, speed float64, reg *Registry) []*Entity {
	var added []*Entity
	if e := sp.spawnTarget(scroll, reg); e != nil {
		added = append(added, e)
	}
	if e := sp.spawnObstacle(scroll, speed, reg); e != nil {
		added = append(added, e)
	}
	return added
}

// spawnTarget always succeeds once the threshold is crossed.
func (sp *Spawner) spawnTarget(scroll float64, reg *Registry) *Entity {
	if scroll < sp.nextTargetAt {
		return nil
	}
	sp.nextTargetAt += sp.interval

	cats := sp.cfg.Targets.Categories
	idx := sp.rng.Intn(len(cats))
	cat := cats[idx]
	return reg.Add(Entity{
		Kind:     KindTarget,
		Category: Category(idx),
		Variant:  sp.rng.Intn(cat.Variants),
		X:        sp.targetSpawnX(),
		Width:    cat.Width,
		Height:   cat.Height,
	})
}

// spawnObstacle gates on chance, then tries a bounded number of positions.
// The next threshold is re-drawn whatever the outcome.
func (sp *Spawner) spawnObstacle(scroll, speed float64, reg *Registry) *Entity {
	if scroll < sp.nextObstacleAt {
		return nil
	}
	o := sp.cfg.Obstacles
	defer func() {
		sp.nextObstacleAt += uniform(sp.rng, o.IntervalMin, o.IntervalMax)
	}()

	if sp.rng.Float64() >= o.Chance {
		return nil
	}

	for i := 0; i < o.Retries; i++ {
		x := sp.cfg.World.Width + uniform(sp.rng, o.OffsetMin, o.OffsetMax)
		if sp.placeable(x, scroll, speed, reg) {
			return reg.Add(Entity{
				Kind:   KindObstacle,
				X:      x,
				Width:  o.Width,
				Height: o.Height,
			})
		}
	}
	sp.skipped++
	return nil
}

// placeable checks x against live entities and against the targets that will
// spawn while the obstacle is still near the target spawn point. Entities all
// scroll at the same speed, so distances fixed at spawn never change.
func (sp *Spawner) placeable(x, scroll, speed float64, reg *Registry) bool {
	o := sp.cfg.Obstacles
	for _, e := range reg.All() {
		gap := o.MinToObstacle
		if e.Kind == KindTarget {
			gap = o.MinToTarget
		}
		if math.Abs(x-e.X) < gap {
			return false
		}
	}

	// Replay the scroll with the same float operations the step uses
	spawnX := sp.targetSpawnX()
	s, next := scroll, sp.nextTargetAt
	for x > spawnX-o.MinToTarget {
		s += speed
		x -= speed
		if s >= next {
			if math.Abs(x-spawnX) < o.MinToTarget {
				return false
			}
			next += sp.interval
		}
	}
	return true
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
