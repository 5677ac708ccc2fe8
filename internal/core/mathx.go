package core

import (
	"cmp"
	"math"
)

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Distance returns the distance between two points.
func Distance(a, b Vector) float64 {
	return b.Sub(a).Length()
}

// Smoothstep eases t from 0 to 1 between edge0 and edge1.
func Smoothstep(edge0, edge1, t float64) float64 {
	if edge1 == edge0 {
		if t < edge0 {
			return 0
		}
		return 1
	}
	x := Clamp((t-edge0)/(edge1-edge0), 0, 1)
	return x * x * (3 - 2*x)
}

// Oscillate maps time onto a sine wave running cps cycles per second
// between lo and hi.
func Oscillate(t, cps, lo, hi float64) float64 {
	return lo + (math.Sin(2*math.Pi*cps*t)+1)/2*(hi-lo)
}

// Abs returns the absolute value of x.
func Abs[T ~int | ~int64 | ~float64](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
