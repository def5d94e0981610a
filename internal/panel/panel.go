// Package panel projects pins onto planes orthogonal to their own shaft axes,
// independent of the 3D camera. Panel coordinates are pixels with Y down.
package panel

import (
	"math"

	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
)

const (
	// MarkerOffset rotates the driving marker so θ1 = 0 points straight down the panel.
	MarkerOffset = math.Pi / 2
	// ZeroDirection is the panel angle of the dashed zero reference (straight up).
	ZeroDirection = -math.Pi / 2

	// PathSamples is the number of segments of the driven path.
	PathSamples = 220
)

// ReferenceDir is the fixed world direction whose projection defines the
// driven panel's in-plane frame.
var ReferenceDir = mathutil.Vec3{0, 0, -1}

// PlaneBasis returns an orthonormal (u, v) spanning the plane orthogonal to axis.
// u is ref with its axial component removed; if ref is nearly parallel to axis
// the basis falls back to mathutil.BasisFromNormal. v = axis × u.
func PlaneBasis(axis, ref mathutil.Vec3) (u, v mathutil.Vec3) {
	n := axis.Normalize()
	cand := ref.Sub(n.Scale(n.Dot(ref)))
	if cand.Len() > 1e-6 {
		u = cand.Normalize()
	} else {
		u, _ = mathutil.BasisFromNormal(n)
	}
	v = n.Cross(u).Normalize()
	return u, v
}

// Layout places the two panel circles inside a W×H surface.
type Layout struct {
	Width, Height float64
	Top           mathutil.Vec2 // driving circle centre
	Bottom        mathutil.Vec2 // driven circle centre
	Radius        float64       // common circle radius, pixels
}

// NewLayout centres the driving circle at 30% and the driven circle at 70% of
// the height, with a radius that fits both without overlapping their labels.
func NewLayout(w, h float64) Layout {
	topY, botY := h*0.30, h*0.70
	sep := botY - topY
	r := math.Min(w*0.18, math.Min(sep*0.5-28, h*0.22))
	return Layout{
		Width:  w,
		Height: h,
		Top:    mathutil.Vec2{w * 0.5, topY},
		Bottom: mathutil.Vec2{w * 0.5, botY},
		Radius: math.Max(10, r),
	}
}

// ArcRadius is the radius of the θ1 indicator arc.
func (l Layout) ArcRadius() float64 {
	return math.Max(12, l.Radius*0.45)
}

func polar(c mathutil.Vec2, r, a float64) mathutil.Vec2 {
	s, co := math.Sincos(a)
	return mathutil.Vec2{c[0] + r*co, c[1] + r*s}
}

// DrivingAngle is the panel angle of the driving marker.
func DrivingAngle(theta1 float64) float64 {
	return theta1 + MarkerOffset
}

// DrivingMarker is the driving pin seen along the driving axis in its own
// rotating frame: always on the circle, at DrivingAngle(θ1).
func (l Layout) DrivingMarker(theta1 float64) mathutil.Vec2 {
	return polar(l.Top, l.Radius, DrivingAngle(theta1))
}

// DrivingSweep returns the clockwise sweep in [0, 2π) from ZeroDirection to
// the driving marker.
func DrivingSweep(theta1 float64) float64 {
	return mathutil.WrapTau(DrivingAngle(theta1) - ZeroDirection)
}

// ZeroTick is the end of the dashed zero reference on the driving circle.
func (l Layout) ZeroTick() mathutil.Vec2 {
	return polar(l.Top, l.Radius, ZeroDirection)
}

// Fixed projects world points onto the plane orthogonal to the driven axis,
// viewed along that axis from a fixed direction.
type Fixed struct {
	Axis mathutil.Vec3
	// U, V are the panel x and y directions in world space.
	U, V mathutil.Vec3
	// Frame is the driving shaft's in-plane basis whose circle is projected.
	E1, E2 mathutil.Vec3
	Radius float64 // world radius mapped to the panel circle radius
}

// NewFixed builds the driven-plane projector for g. The panel axes are the
// plane basis turned a quarter turn: x along v2, y along −u2.
func NewFixed(g kinematics.Geometry) Fixed {
	u2, v2 := PlaneBasis(g.AxisDriven, ReferenceDir)
	return Fixed{
		Axis:   g.AxisDriven,
		U:      v2,
		V:      u2.Scale(-1),
		E1:     g.DrivingE1,
		E2:     g.DrivingE2,
		Radius: g.Radius,
	}
}

// Local returns the plane coordinates of p in world units.
func (f Fixed) Local(p mathutil.Vec3) mathutil.Vec2 {
	proj := p.Sub(f.Axis.Scale(f.Axis.Dot(p)))
	return mathutil.Vec2{proj.Dot(f.U), proj.Dot(f.V)}
}

// DrivingCirclePoint is the point at angle t on the driving coupling circle.
func (f Fixed) DrivingCirclePoint(t float64) mathutil.Vec3 {
	s, c := math.Sincos(t)
	return f.E1.Scale(c * f.Radius).Add(f.E2.Scale(s * f.Radius))
}

func (f Fixed) toPanel(l Layout, local mathutil.Vec2) mathutil.Vec2 {
	return l.Bottom.Add(local.Scale(l.Radius / f.Radius))
}

// Path traces one revolution of the driving coupling circle projected onto the
// driven plane: samples+1 panel points, closed. For β = 0 it is the panel circle;
// otherwise an ellipse squashed by cos β across the tilt.
func (f Fixed) Path(l Layout, samples int) []mathutil.Vec2 {
	if samples < 3 {
		samples = 3
	}
	pts := make([]mathutil.Vec2, samples+1)
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples) * mathutil.Tau
		pts[i] = f.toPanel(l, f.Local(f.DrivingCirclePoint(t)))
	}
	return pts
}

// Marker is the leading pin of the cross at driving angle theta1, on the
// opposite arm from Path's point at theta1.
func (f Fixed) Marker(l Layout, theta1 float64) mathutil.Vec2 {
	return f.toPanel(l, f.Local(f.DrivingCirclePoint(theta1)).Scale(-1))
}
