package math

import "math"

// Angles in this package are measured in revolutions: 1.0 is a full turn.
// Screen space has Y growing downward, so the sine is negated to keep
// positive angles turning counter-clockwise on screen.

// Revolution is one full turn in radians.
const Revolution = 2 * math.Pi

// Sint returns the screen-space sine of an angle given in revolutions.
func Sint(ang float64) float64 {
	return -math.Sin(Revolution * ang)
}

// Cost returns the cosine of an angle given in revolutions.
func Cost(ang float64) float64 {
	return math.Cos(Revolution * ang)
}

// Atan2t returns the angle in revolutions, within [0, 1), of the vector (x, y)
// as produced by Cost and Sint. Atan2t(Cost(a), Sint(a)) == WrapRevolution(a).
func Atan2t(x, y float64) float64 {
	ang := -math.Atan2(y, x) / Revolution
	if ang < 0 {
		ang += 1
	}
	// -0 and values rounding up to a full turn both belong at 0.
	if ang >= 1 {
		ang = 0
	}
	return ang
}

// WrapRevolution maps any angle onto [0, 1).
func WrapRevolution(ang float64) float64 {
	ang -= math.Floor(ang)
	if ang >= 1 {
		ang = 0
	}
	return ang
}

// Floor rounds toward negative infinity and returns an int.
// Unlike int(v) it does not truncate toward zero, so Floor(-0.5) == -1.
func Floor(v float64) int {
	return int(math.Floor(v))
}

// Frac returns the fractional part of v in [0, 1), also for negative v.
func Frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
