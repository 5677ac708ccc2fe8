// Package collision implements the two-tier hit tests shared by the games:
// box overlap with side detection for the block breaker, and pixel-perfect
// sprite overlap for the runner.
package collision

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/core"
)

// Side names the face of a block that the ball struck.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Vertical reports whether the hit reflects the vertical velocity.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// Intersects is the axis-aligned box test.
func Intersects(a, b core.Rect) bool {
	return a.Intersects(b)
}

// HitSide picks the block face with the smallest penetration depth.
// Ties resolve in the order top, bottom, left, right.
func HitSide(ball, block core.Rect) (Side, float64) {
	depths := [...]float64{
		SideTop:    math.Abs(ball.Bottom() - block.Y),
		SideBottom: math.Abs(ball.Y - block.Bottom()),
		SideLeft:   math.Abs(ball.Right() - block.X),
		SideRight:  math.Abs(ball.X - block.Right()),
	}

	side := SideTop
	for s := SideBottom; s <= SideRight; s++ {
		if depths[s] < depths[side] {
			side = s
		}
	}
	return side, depths[side]
}
