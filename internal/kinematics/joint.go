// Package kinematics computes the pure kinematics of a single ideal Cardan joint.
//
// The driving shaft lies along +Z. The driven shaft is +Z tilted by the
// misalignment angle β about world Y, so both axes meet at the origin and
// differ by exactly β.
package kinematics

import (
	"math"

	"cardan-sim/internal/mathutil"
)

// DefaultPinRadius is the radius of the coupling circles in world units.
const DefaultPinRadius = 1.4

var (
	// DrivingAxis is the fixed reference direction of the driving shaft.
	DrivingAxis = mathutil.UnitZ
	// TiltAxis is the axis about which the driven shaft is tilted by β.
	TiltAxis = mathutil.UnitY
	// drivingRef is the zero-angle direction of the driving pin.
	drivingRef = mathutil.UnitX
)

// Geometry is everything derived from (θ1, β) for one frame. It holds no state
// beyond its inputs; Compute is idempotent.
type Geometry struct {
	DrivingAngle float64 // θ1, radians
	Beta         float64 // β, radians

	AxisDriving mathutil.Vec3
	AxisDriven  mathutil.Vec3

	// Driving-side frame orthogonal to AxisDriving (θ1 = 0 along DrivingE1).
	DrivingE1, DrivingE2 mathutil.Vec3
	// Driven-side frame orthogonal to AxisDriven.
	DrivenE1, DrivenE2 mathutil.Vec3

	// PinDirDriving (Y1) and PinDirDriven (Y2) are the unit directions of the
	// two cross arms. Y2 is perpendicular to both Y1 and AxisDriven.
	PinDirDriving mathutil.Vec3
	PinDirDriven  mathutil.Vec3

	// DrivenAngle is θ2: the signed angle of Y2 in the driven frame, in (-π, π].
	DrivenAngle float64
	// Ratio is the instantaneous ω2/ω1.
	Ratio float64

	Radius     float64
	PinDriving mathutil.Vec3
	PinDriven  mathutil.Vec3
}

// Compute derives the joint geometry for driving angle theta1 and misalignment beta
// (both radians) using DefaultPinRadius.
func Compute(theta1, beta float64) Geometry {
	return ComputeRadius(theta1, beta, DefaultPinRadius)
}

// ComputeRadius is Compute with an explicit coupling circle radius.
func ComputeRadius(theta1, beta, radius float64) Geometry {
	g := Geometry{
		DrivingAngle: theta1,
		Beta:         beta,
		Radius:       radius,
	}

	g.AxisDriving = DrivingAxis
	g.AxisDriven = mathutil.RotateAxis(DrivingAxis, TiltAxis, beta)

	g.DrivingE1 = drivingRef
	g.DrivingE2 = g.AxisDriving.Cross(drivingRef)
	g.PinDirDriving = mathutil.RotateAxis(g.DrivingE1, g.AxisDriving, theta1)

	// The cross is rigid: the driven arm is normal to the driven axis and the driving arm.
	g.PinDirDriven = g.AxisDriven.Cross(g.PinDirDriving).Normalize()

	g.DrivenE1, g.DrivenE2 = mathutil.BasisFromNormal(g.AxisDriven)
	g.DrivenAngle = math.Atan2(g.PinDirDriven.Dot(g.DrivenE2), g.PinDirDriven.Dot(g.DrivenE1))

	g.Ratio = Ratio(theta1, beta)

	g.PinDriving = g.PinDirDriving.Scale(radius)
	g.PinDriven = g.PinDirDriven.Scale(radius)
	return g
}

// Ratio returns the instantaneous transmission ratio ω2/ω1 of an ideal Cardan joint:
//
//	cos β / (1 − sin²β · sin²θ1)
//
// At β = 0 the denominator is exactly 1. The value is unbounded as β → 90°.
func Ratio(theta1, beta float64) float64 {
	sb, cb := math.Sincos(beta)
	st := math.Sin(theta1)
	return cb / (1 - sb*sb*st*st)
}

// SecantRatio is 1/cos²β, the informational ratio derived from β alone.
func SecantRatio(beta float64) float64 {
	c := math.Cos(beta)
	return 1 / math.Max(1e-9, c*c)
}

// ShaftAngle returns the driven shaft's rotation in [0, 2π): θ2 minus the
// quarter turn between the two arms of the cross. It equals θ1 when β = 0 and
// satisfies tan(ShaftAngle) = tan θ1 / cos β.
func (g Geometry) ShaftAngle() float64 {
	return mathutil.WrapTau(g.DrivenAngle - math.Pi/2)
}

// DrivenSpeed returns ω2 for a driving speed ω1 (any angular unit).
func (g Geometry) DrivenSpeed(omega1 float64) float64 {
	return omega1 * g.Ratio
}

// AxisAngle returns the angle between the two shaft axes. It equals Beta.
func (g Geometry) AxisAngle() float64 {
	return g.AxisDriving.Angle(g.AxisDriven)
}
