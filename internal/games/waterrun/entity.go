package waterrun

import "github.com/vovakirdan/waterrun/internal/core"

// EntityID identifies a spawned entity within one run. Zero means none.
type EntityID int

// Kind separates delivery targets from obstacles.
type Kind int

const (
	KindTarget Kind = iota
	KindObstacle
)

func (k Kind) String() string {
	if k == KindObstacle {
		return "obstacle"
	}
	return "target"
}

// Category is a target footprint class.
type Category int

const (
	CategorySmall Category = iota
	CategoryMediumA
	CategoryMediumB
	CategoryLarge
)

func (c Category) String() string {
	switch c {
	case CategorySmall:
		return "small"
	case CategoryMediumA:
		return "medium-a"
	case CategoryMediumB:
		return "medium-b"
	case CategoryLarge:
		return "large"
	}
	return "unknown"
}

// Entity is one spawned world object. X is the left edge in playfield pixels
// and only ever decreases after spawn.
type Entity struct {
	ID       EntityID
	Kind     Kind
	Category Category // targets only
	Variant  int      // visual variant within the category
	X        float64
	Width    float64
	Height   float64

	Delivered   bool // targets: one-way
	Highlighted bool // targets: in range this tick
	Struck      bool // obstacles: already cost a life
}

// Span returns the horizontal extent of the entity.
func (e *Entity) Span() core.Span {
	return core.SpanAt(e.X, e.Width)
}

// Registry holds live entities in spawn order.
type Registry struct {
	entities []*Entity
	nextID   EntityID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make([]*Entity, 0, 16),
		nextID:   1,
	}
}

// Reset drops every entity and restarts id assignment.
func (r *Registry) Reset() {
	r.entities = r.entities[:0]
	r.nextID = 1
}

// Add assigns an id to e and appends it.
func (r *Registry) Add(e Entity) *Entity {
	e.ID = r.nextID
	r.nextID++
	stored := &e
	r.entities = append(r.entities, stored)
	return stored
}

// Advance moves every entity left by dx.
func (r *Registry) Advance(dx float64) {
	for _, e := range r.entities {
		e.X -= dx
	}
}

// Retire removes entities whose right edge has passed bound and returns
// their ids in spawn order.
func (r *Registry) Retire(bound float64) []EntityID {
	var retired []EntityID
	live := r.entities[:0]
	for _, e := range r.entities {
		if e.X+e.Width < bound {
			retired = append(retired, e.ID)
			continue
		}
		live = append(live, e)
	}
	// Drop references held past the new length
	for i := len(live); i < len(r.entities); i++ {
		r.entities[i] = nil
	}
	r.entities = live
	return retired
}

// Get returns the entity with the given id, or nil.
func (r *Registry) Get(id EntityID) *Entity {
	for _, e := range r.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// All returns the live entities in spawn order. Callers must not retain the slice.
func (r *Registry) All() []*Entity {
	return r.entities
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Targets returns live targets in spawn order.
func (r *Registry) Targets() []*Entity {
	return r.ofKind(KindTarget)
}

// Obstacles returns live obstacles in spawn order.
func (r *Registry) Obstacles() []*Entity {
	return r.ofKind(KindObstacle)
}

func (r *Registry) ofKind(k Kind) []*Entity {
	var out []*Entity
	for _, e := range r.entities {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
