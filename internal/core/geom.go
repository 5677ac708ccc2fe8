// Package core provides fundamental types and utilities for the arcade engine.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect is an axis-aligned box in world pixels.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a rectangle. Negative sizes are clamped to zero.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: math.Max(w, 0), H: math.Max(h, 0)}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vector {
	return Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Intersects reports whether the two rectangles overlap.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Intersection returns the overlapping region. The result has a non-positive
// width or height when the rectangles do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: math.Min(r.Right(), other.Right()) - x,
		H: math.Min(r.Bottom(), other.Bottom()) - y,
	}
}
