package kinematics

import (
	"gonum.org/v1/gonum/floats"

	"cardan-sim/internal/mathutil"
)

// Sweep samples one revolution of the driving shaft at a fixed β.
type Sweep struct {
	Beta   float64
	Theta1 []float64 // radians, [0, 2π)
	Theta2 []float64 // driven shaft angle (ShaftAngle), radians
	Ratio  []float64
}

// SweepRevolution samples n evenly spaced driving angles over [0, 2π).
func SweepRevolution(beta float64, n int) Sweep {
	if n < 2 {
		n = 2
	}
	// Span includes both ends; drop 2π so the samples are a half-open revolution.
	theta := floats.Span(make([]float64, n+1), 0, mathutil.Tau)[:n]
	sw := Sweep{
		Beta:   beta,
		Theta1: theta,
		Theta2: make([]float64, n),
		Ratio:  make([]float64, n),
	}
	for i, t := range theta {
		g := Compute(t, beta)
		sw.Theta2[i] = g.ShaftAngle()
		sw.Ratio[i] = g.Ratio
	}
	return sw
}

// Extremes returns the minimum and maximum ratio over the sweep and the driving
// angles (radians) where they first occur.
func (sw Sweep) Extremes() (minRatio, minAt, maxRatio, maxAt float64) {
	if len(sw.Ratio) == 0 {
		return 0, 0, 0, 0
	}
	lo, hi := floats.MinIdx(sw.Ratio), floats.MaxIdx(sw.Ratio)
	return sw.Ratio[lo], sw.Theta1[lo], sw.Ratio[hi], sw.Theta1[hi]
}

// Fluctuation is (max − min) / mean ratio, the speed non-uniformity over a turn.
func (sw Sweep) Fluctuation() float64 {
	if len(sw.Ratio) == 0 {
		return 0
	}
	mean := floats.Sum(sw.Ratio) / float64(len(sw.Ratio))
	return (floats.Max(sw.Ratio) - floats.Min(sw.Ratio)) / mean
}

// Lag returns θ2 − θ1 per sample in degrees, in (−180, 180].
func (sw Sweep) Lag() []float64 {
	lag := make([]float64, len(sw.Theta1))
	for i := range lag {
		d := mathutil.Rad2Deg(sw.Theta2[i] - sw.Theta1[i])
		if d = mathutil.Wrap360(d); d > 180 {
			d -= 360
		}
		lag[i] = d
	}
	return lag
}

// MaxDeviation is the largest angular distance in degrees between the driven
// and the driving shaft over the sweep.
func (sw Sweep) MaxDeviation() float64 {
	dev := 0.0
	for i := range sw.Theta1 {
		d := mathutil.AngleDist(mathutil.Rad2Deg(sw.Theta2[i]), mathutil.Rad2Deg(sw.Theta1[i]))
		dev = max(dev, d)
	}
	return dev
}
