package kinematics

import (
	"math"
	"testing"
	"time"

	"cardan-sim/internal/mathutil"
)

const tol = 1e-9

func deg(d float64) float64 { return mathutil.Deg2Rad(d) }

func TestAxesUnitAndSeparatedByBeta(t *testing.T) {
	for b := 0.0; b <= 60; b += 2.5 {
		for th := 0.0; th < 360; th += 7.5 {
			g := Compute(deg(th), deg(b))
			if math.Abs(g.AxisDriving.Len()-1) > tol || math.Abs(g.AxisDriven.Len()-1) > tol {
				t.Fatalf("β=%g θ1=%g: axes not unit: %v %v", b, th, g.AxisDriving, g.AxisDriven)
			}
			if got := g.AxisAngle(); math.Abs(got-deg(b)) > 1e-7 {
				t.Fatalf("β=%g θ1=%g: axis angle = %g°", b, th, mathutil.Rad2Deg(got))
			}
		}
	}
}

func TestCrossPinPerpendicular(t *testing.T) {
	for b := 0.0; b <= 60; b += 5 {
		for th := 0.0; th < 360; th += 10 {
			g := Compute(deg(th), deg(b))
			y1, y2 := g.PinDirDriving, g.PinDirDriven
			if math.Abs(y1.Dot(y2)) > tol {
				t.Errorf("β=%g θ1=%g: Y1·Y2 = %g", b, th, y1.Dot(y2))
			}
			if math.Abs(y1.Dot(g.AxisDriving)) > tol || math.Abs(y2.Dot(g.AxisDriven)) > tol {
				t.Errorf("β=%g θ1=%g: pin not orthogonal to its shaft", b, th)
			}
			if math.Abs(g.PinDriving.Len()-DefaultPinRadius) > tol || math.Abs(g.PinDriven.Len()-DefaultPinRadius) > tol {
				t.Errorf("β=%g θ1=%g: pins off their coupling circles", b, th)
			}
		}
	}
}

func TestAlignedShaftsTurnTogether(t *testing.T) {
	for th := 0.0; th < 360; th += 3 {
		g := Compute(deg(th), 0)
		if g.Ratio != 1 {
			t.Fatalf("θ1=%g: ratio = %v, want exactly 1", th, g.Ratio)
		}
		if d := mathutil.AngleDist(mathutil.Rad2Deg(g.ShaftAngle()), th); d > 1e-7 {
			t.Errorf("θ1=%g: shaft angle = %g°", th, mathutil.Rad2Deg(g.ShaftAngle()))
		}
	}
}

func TestShaftAngleTangentRelation(t *testing.T) {
	for _, b := range []float64{10, 30, 45, 60} {
		for th := 5.0; th < 360; th += 10 {
			g := Compute(deg(th), deg(b))
			want := math.Atan2(math.Sin(deg(th)), math.Cos(deg(th))*math.Cos(deg(b)))
			if d := mathutil.AngleDist(mathutil.Rad2Deg(g.ShaftAngle()), mathutil.Rad2Deg(want)); d > 1e-7 {
				t.Errorf("β=%g θ1=%g: shaft angle %g°, want %g°", b, th, mathutil.Rad2Deg(g.ShaftAngle()), mathutil.Rad2Deg(want))
			}
		}
	}
}

func TestRatioPeriodicityAndSymmetry(t *testing.T) {
	for b := 0.0; b <= 60; b += 5 {
		for th := 0.0; th < 360; th += 5 {
			r := Ratio(deg(th), deg(b))
			if p := Ratio(deg(th+180), deg(b)); math.Abs(r-p) > tol {
				t.Errorf("β=%g θ1=%g: ratio %g != ratio(θ1+180) %g", b, th, r, p)
			}
			if s := Ratio(deg(180-th), deg(b)); math.Abs(r-s) > tol {
				t.Errorf("β=%g θ1=%g: ratio %g != ratio(180−θ1) %g", b, th, r, s)
			}
			if r <= 0 || math.IsInf(r, 0) {
				t.Errorf("β=%g θ1=%g: ratio %g not finite positive", b, th, r)
			}
		}
	}
}

func TestRatioRange(t *testing.T) {
	for _, b := range []float64{5, 20, 30, 45, 60} {
		sw := SweepRevolution(deg(b), 360)
		lo, loAt, hi, hiAt := sw.Extremes()
		cb := math.Cos(deg(b))
		if math.Abs(lo-cb) > tol || math.Abs(hi-1/cb) > tol {
			t.Errorf("β=%g: range [%g, %g], want [%g, %g]", b, lo, hi, cb, 1/cb)
		}
		if d := mathutil.AngleDist(mathutil.Rad2Deg(loAt), 0); d > 1e-9 && math.Abs(d-180) > 1e-9 {
			t.Errorf("β=%g: minimum at %g°, want 0° or 180°", b, mathutil.Rad2Deg(loAt))
		}
		if d := mathutil.AngleDist(mathutil.Rad2Deg(hiAt), 90); d > 1e-9 && math.Abs(d-180) > 1e-9 {
			t.Errorf("β=%g: maximum at %g°, want 90° or 270°", b, mathutil.Rad2Deg(hiAt))
		}
		if got := Ratio(deg(180), deg(b)); math.Abs(got-cb) > tol {
			t.Errorf("β=%g: ratio(180°) = %g, want minimum %g", b, got, cb)
		}
		if got := Ratio(deg(270), deg(b)); math.Abs(got-1/cb) > tol {
			t.Errorf("β=%g: ratio(270°) = %g, want maximum %g", b, got, 1/cb)
		}
		for _, r := range sw.Ratio {
			if r < cb-tol || r > 1/cb+tol {
				t.Fatalf("β=%g: ratio %g outside [cosβ, 1/cosβ]", b, r)
			}
		}
	}
}

func TestRatioScenarios(t *testing.T) {
	cases := []struct {
		beta, theta1 float64
		want         string
	}{
		{30, 90, "1.155"},
		{45, 0, "0.707"},
		{0, 123, "1.000"},
		{60, 270, "2.000"},
	}
	for _, c := range cases {
		g := Compute(deg(c.theta1), deg(c.beta))
		_, _, ratio, _ := DefaultDisplayOffsets.Readout(g, 30).Fields()
		if ratio != c.want {
			t.Errorf("β=%g θ1=%g: ratio %s, want %s", c.beta, c.theta1, ratio, c.want)
		}
	}
	if got := Ratio(deg(90), deg(30)); math.Abs(got-1.1547005383792517) > 1e-12 {
		t.Errorf("ratio(90°, 30°) = %.10f", got)
	}
}

func TestComputeIdempotent(t *testing.T) {
	a := Compute(1.234, 0.4)
	b := Compute(1.234, 0.4)
	if a != b {
		t.Errorf("Compute not reproducible:\n%+v\n%+v", a, b)
	}
}

func TestReadout(t *testing.T) {
	g := Compute(0, 0)
	r := DefaultDisplayOffsets.Readout(g, 40)
	t1, t2, ratio, sec := r.Fields()
	if t1 != "180.0" || t2 != "180.0" || ratio != "1.000" || sec != "1.000" {
		t.Errorf("readout at rest = %s %s %s %s", t1, t2, ratio, sec)
	}
	if r.DrivenSpeed != 40 {
		t.Errorf("driven speed = %g, want 40", r.DrivenSpeed)
	}

	// Aligned shafts always read the same angle on both sides.
	for th := 0.0; th < 360; th += 11 {
		r := DefaultDisplayOffsets.Readout(Compute(deg(th), 0), 0)
		if mathutil.AngleDist(r.DrivingDeg, r.DrivenDeg) > 1e-7 {
			t.Errorf("θ1=%g: displayed %g vs %g", th, r.DrivingDeg, r.DrivenDeg)
		}
		if r.DrivingDeg < 0 || r.DrivingDeg >= 360 || r.DrivenDeg < 0 || r.DrivenDeg >= 360 {
			t.Errorf("θ1=%g: displayed angle outside [0, 360)", th)
		}
	}

	custom := DisplayOffsets{}.Readout(Compute(deg(30), 0), 0)
	if math.Abs(custom.DrivingDeg-30) > 1e-9 {
		t.Errorf("zero offsets: driving %g, want 30", custom.DrivingDeg)
	}
	if _, _, _, sec := DefaultDisplayOffsets.Readout(Compute(0, deg(45)), 0).Fields(); sec != "2.000" {
		t.Errorf("1/cos²45° = %s, want 2.000", sec)
	}
}

func TestAdvance(t *testing.T) {
	var s DriveState
	omega := deg(90)
	applied := s.Advance(omega, 10*time.Millisecond)
	if applied != 10*time.Millisecond || math.Abs(s.Theta1-omega*0.01) > tol {
		t.Errorf("after 10ms: θ1=%g applied=%v", s.Theta1, applied)
	}

	s.Reset()
	applied = s.Advance(omega, 3*time.Second)
	if applied != MaxStep {
		t.Errorf("stall not clamped: applied %v", applied)
	}
	if math.Abs(s.Theta1-omega*MaxStep.Seconds()) > tol {
		t.Errorf("θ1 after stall = %g", s.Theta1)
	}

	s.Reset()
	if s.Advance(omega, -time.Second); s.Theta1 != 0 {
		t.Errorf("negative dt moved θ1 to %g", s.Theta1)
	}

	s.Theta1 = mathutil.Tau - 0.001
	s.Advance(1, 50*time.Millisecond)
	if s.Theta1 < 0 || s.Theta1 >= mathutil.Tau || math.Abs(s.Theta1-0.049) > 1e-9 {
		t.Errorf("wrap: θ1 = %g, want 0.049", s.Theta1)
	}
}

func TestSweep(t *testing.T) {
	sw := SweepRevolution(deg(30), 8)
	if len(sw.Theta1) != 8 || sw.Theta1[0] != 0 || math.Abs(sw.Theta1[2]-math.Pi/2) > tol {
		t.Fatalf("unexpected samples %v", sw.Theta1)
	}
	if f := sw.Fluctuation(); f <= 0 {
		t.Errorf("fluctuation %g, want > 0", f)
	}
	if f := SweepRevolution(0, 16).Fluctuation(); f != 0 {
		t.Errorf("aligned fluctuation %g, want 0", f)
	}
}

func TestSweepMaxDeviation(t *testing.T) {
	for _, b := range []float64{10, 30, 45} {
		c := math.Cos(deg(b))
		want := mathutil.Rad2Deg(math.Atan((1 - c) / (2 * math.Sqrt(c))))
		sw := SweepRevolution(deg(b), 3600)
		if got := sw.MaxDeviation(); math.Abs(got-want) > 1e-3 {
			t.Errorf("β=%g: max deviation %.5f°, want %.5f°", b, got, want)
		}
		for i, l := range sw.Lag() {
			if math.Abs(l) > want+1e-6 {
				t.Fatalf("β=%g θ1=%.1f: lag %g exceeds %g", b, mathutil.Rad2Deg(sw.Theta1[i]), l, want)
			}
		}
	}
	if d := SweepRevolution(0, 90).MaxDeviation(); d > 1e-9 {
		t.Errorf("aligned deviation %g, want 0", d)
	}
}
