package kinematics

import (
	"fmt"

	"cardan-sim/internal/mathutil"
)

// DisplayOffsets are the presentation offsets, in degrees, added to θ1 and θ2
// before wrapping to [0, 360). They pick which pose reads as zero and carry no
// physical meaning.
type DisplayOffsets struct {
	Driving float64
	Driven  float64
}

// DefaultDisplayOffsets reads zero on both shafts in the reference pose.
var DefaultDisplayOffsets = DisplayOffsets{Driving: -180, Driven: 90}

// Readout is the per-frame set of displayed values.
type Readout struct {
	DrivingDeg  float64 // wrapped driving angle, degrees
	DrivenDeg   float64 // wrapped driven angle, degrees
	Ratio       float64 // ω2/ω1
	SecantRatio float64 // 1/cos²β
	DrivenSpeed float64 // ω2, deg/s
}

// Readout converts g into displayed values. omega1Deg is the driving speed in deg/s.
func (o DisplayOffsets) Readout(g Geometry, omega1Deg float64) Readout {
	return Readout{
		DrivingDeg:  mathutil.Wrap360(mathutil.Rad2Deg(g.DrivingAngle) + o.Driving),
		DrivenDeg:   mathutil.Wrap360(mathutil.Rad2Deg(g.DrivenAngle) + o.Driven),
		Ratio:       g.Ratio,
		SecantRatio: SecantRatio(g.Beta),
		DrivenSpeed: g.DrivenSpeed(omega1Deg),
	}
}

// Fields formats the readout the way the control panel shows it:
// angles with one decimal, ratios with three.
func (r Readout) Fields() (theta1, theta2, ratio, secant string) {
	return fmt.Sprintf("%.1f", r.DrivingDeg),
		fmt.Sprintf("%.1f", r.DrivenDeg),
		fmt.Sprintf("%.3f", r.Ratio),
		fmt.Sprintf("%.3f", r.SecantRatio)
}

func (r Readout) String() string {
	t1, t2, ratio, sec := r.Fields()
	return fmt.Sprintf("θ1=%s° θ2=%s° ω2/ω1=%s 1/cos²β=%s", t1, t2, ratio, sec)
}
