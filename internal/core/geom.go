// Package core provides fundamental types shared by the simulation and the platform:
// geometry, the character screen buffer, and semantic input.
// It has no external dependencies so game logic stays pure and testable.
package core

import "math"

// Rect is an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Span is a half-open interval [Min, Max) on one world axis.
// Collision in the runner is decided one axis at a time.
type Span struct {
	Min, Max float64
}

// SpanAt returns the span starting at pos with the given length.
func SpanAt(pos, length float64) Span {
	return Span{Min: pos, Max: pos + length}
}

// Len returns the length of the span.
func (s Span) Len() float64 {
	return s.Max - s.Min
}

// Overlaps reports whether two spans share any interior point.
// Touching edges do not overlap.
func (s Span) Overlaps(o Span) bool {
	return s.Max > o.Min && s.Min < o.Max
}

// Shrink returns the span with left and right trimmed inward.
// A span shrunk past empty collapses to its midpoint.
func (s Span) Shrink(left, right float64) Span {
	out := Span{Min: s.Min + left, Max: s.Max - right}
	if out.Max < out.Min {
		mid := (s.Min + s.Max) / 2
		return Span{Min: mid, Max: mid}
	}
	return out
}

// Centered returns a span of the given length centered inside s.
func (s Span) Centered(length float64) Span {
	inset := (s.Len() - length) / 2
	return Span{Min: s.Min + inset, Max: s.Min + inset + length}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
