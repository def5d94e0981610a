package mathutil

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// Wrap360 wraps an angle in degrees to [0, 360).
func Wrap360(d float64) float64 {
	x := math.Mod(d, 360)
	if x < 0 {
		x += 360
	}
	if x >= 360 {
		x = 0
	}
	return x
}

// WrapTau wraps an angle in radians to [0, 2π).
func WrapTau(r float64) float64 {
	x := math.Mod(r, Tau)
	if x < 0 {
		x += Tau
	}
	if x >= Tau {
		x = 0
	}
	return x
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

// Clamp bounds x into [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
