package kinematics

import (
	"time"

	"cardan-sim/internal/mathutil"
)

// MaxStep bounds the elapsed time consumed by one Advance call, so a stalled
// host (backgrounded window, debugger) does not make the joint jump.
const MaxStep = 50 * time.Millisecond

// DriveState is the only mutable kinematic state: the driving angle θ1 in [0, 2π).
type DriveState struct {
	Theta1 float64
}

// Advance accumulates omega1 (rad/s) over dt, clamped to [0, MaxStep], and wraps θ1.
// It returns the dt actually applied.
func (s *DriveState) Advance(omega1 float64, dt time.Duration) time.Duration {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxStep {
		dt = MaxStep
	}
	s.Theta1 = mathutil.WrapTau(s.Theta1 + omega1*dt.Seconds())
	return dt
}

// Reset puts θ1 back to zero.
func (s *DriveState) Reset() {
	s.Theta1 = 0
}
