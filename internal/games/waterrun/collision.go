package waterrun

import (
	"math"

	"github.com/vovakirdan/waterrun/internal/config"
	"github.com/vovakirdan/waterrun/internal/core"
)

// targetRange is the part of a target the player must overlap for delivery.
// Margins scale with width but never drop below their floors.
func targetRange(e *Entity, c config.CollisionConfig) core.Span {
	left := math.Max(c.MarginLeftFloor, c.MarginLeftFraction*e.Width)
	right := math.Max(c.MarginRightFloor, c.MarginRightFraction*e.Width)
	return e.Span().Shrink(left, right)
}

// hitBox is the narrow strike box centered in the obstacle's visual width.
func hitBox(e *Entity, o config.ObstacleConfig) core.Span {
	return e.Span().Centered(o.HitWidth)
}

// resolveTargets refreshes highlight flags and returns the active target:
// the last in-range, undelivered target in spawn order.
func resolveTargets(reg *Registry, player core.Span, c config.CollisionConfig) EntityID {
	var active EntityID
	for _, e := range reg.All() {
		if e.Kind != KindTarget {
			continue
		}
		e.Highlighted = !e.Delivered && player.Overlaps(targetRange(e, c))
		if e.Highlighted {
			active = e.ID
		}
	}
	return active
}

// findStrike returns the first unstruck obstacle the player is running into.
// The player must be lower than the obstacle top for a strike to count.
func findStrike(reg *Registry, player core.Span, height float64, o config.ObstacleConfig) *Entity {
	if height >= o.Height {
		return nil
	}
	for _, e := range reg.All() {
		if e.Kind != KindObstacle || e.Struck {
			continue
		}
		if player.Overlaps(hitBox(e, o)) {
			return e
		}
	}
	return nil
}
