package main

import (
	"flag"
	"fmt"
	"os"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/panel"
)

func main() {
	theta := flag.Float64("theta", 0, "Driving angle θ1 in degrees")
	beta := flag.Float64("beta", 30, "Misalignment angle β in degrees")
	speed := flag.Float64("speed", 60, "Driving speed in deg/s")
	samples := flag.Int("samples", 3600, "Samples per revolution for the sweep summary")
	view := flag.String("view", "", "Camera preset for the projected pins (default: initial camera)")
	flag.Parse()

	cam := camera.Default()
	if *view != "" {
		p, err := camera.ParsePreset(*view)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cam.ApplyPreset(p)
	}

	b := mathutil.Deg2Rad(*beta)
	g := kinematics.Compute(mathutil.Deg2Rad(*theta), b)
	r := kinematics.DefaultDisplayOffsets.Readout(g, *speed)

	fmt.Printf("θ1 = %.3f°, β = %.3f°, ω1 = %.1f°/s\n", *theta, *beta, *speed)
	fmt.Printf("  Driving axis: %s\n", vec(g.AxisDriving))
	fmt.Printf("  Driven axis:  %s  (angle %.6f°)\n", vec(g.AxisDriven), mathutil.Rad2Deg(g.AxisAngle()))
	fmt.Printf("  Pin driving:  %s\n", vec(g.PinDriving))
	fmt.Printf("  Pin driven:   %s  (pins ⟂: %.2e)\n", vec(g.PinDriven), g.PinDirDriving.Dot(g.PinDirDriven))
	fmt.Printf("  θ2 (pin arm) = %.4f°, shaft angle = %.4f°\n",
		mathutil.Rad2Deg(g.DrivenAngle), mathutil.Rad2Deg(g.ShaftAngle()))
	fmt.Printf("  Readout: %s, ω2 = %.2f°/s\n", r, r.DrivenSpeed)

	sw := kinematics.SweepRevolution(b, *samples)
	lo, loAt, hi, hiAt := sw.Extremes()
	fmt.Printf("Revolution (%d samples):\n", len(sw.Theta1))
	fmt.Printf("  ratio min %.5f at %.1f°, max %.5f at %.1f°\n", lo, mathutil.Rad2Deg(loAt), hi, mathutil.Rad2Deg(hiAt))
	fmt.Printf("  fluctuation %.4f, max shaft deviation %.3f°\n", sw.Fluctuation(), sw.MaxDeviation())

	proj := camera.NewProjector(cam, camera.Viewport{Width: 800, Height: 600})
	fmt.Printf("Camera az=%.1f° el=%.1f° dist=%.1f (800x600):\n",
		mathutil.Rad2Deg(cam.Azimuth), mathutil.Rad2Deg(cam.Elevation), cam.Distance)
	for _, p := range []struct {
		name string
		pos  mathutil.Vec3
	}{
		{"pin driving", g.PinDriving},
		{"pin driven", g.PinDriven},
	} {
		sp := proj.Project(p.pos)
		ndc := proj.ToNDC(p.pos)
		fmt.Printf("  %-12s screen (%.1f, %.1f) depth %.3f ndc (%.3f, %.3f)\n", p.name, sp.X, sp.Y, sp.Depth, ndc[0], ndc[1])
	}

	l := panel.NewLayout(360, 600)
	f := panel.NewFixed(g)
	top := l.DrivingMarker(g.DrivingAngle)
	bottom := f.Marker(l, g.DrivingAngle)
	fmt.Printf("Panel (360x600, R=%.1f):\n", l.Radius)
	fmt.Printf("  driving marker (%.1f, %.1f), driven marker (%.1f, %.1f)\n", top[0], top[1], bottom[0], bottom[1])
}

func vec(v mathutil.Vec3) string {
	return fmt.Sprintf("(%+.4f, %+.4f, %+.4f)", v[0], v[1], v[2])
}
