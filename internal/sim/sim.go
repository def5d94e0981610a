// Package sim runs the per-frame loop: it owns the drive state, the camera
// and the user parameters, and turns them into draw lists and readouts.
package sim

import (
	"fmt"
	"time"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/panel"
	"cardan-sim/internal/scene"
)

// Options configures a Simulator.
type Options struct {
	Speed   float64 // driving speed, deg/s
	Beta    float64 // misalignment, degrees
	Offsets kinematics.DisplayOffsets
	Style   scene.Style

	ViewWidth, ViewHeight   int
	PanelWidth, PanelHeight int

	// Caption adds the readout lines to the 3D view.
	Caption bool
}

// Frame is everything one tick produces.
type Frame struct {
	Geometry kinematics.Geometry
	Readout  kinematics.Readout
	View     *scene.List
	Panel    *scene.List
}

// Simulator holds the mutable state between frames. It is not safe for
// concurrent mutation; At may be called concurrently while nothing mutates.
type Simulator struct {
	drive   kinematics.DriveState
	cam     camera.State
	speed   float64
	beta    float64
	offsets kinematics.DisplayOffsets
	style   scene.Style
	view    camera.Viewport
	layout  panel.Layout
	caption bool
}

// New creates a simulator at θ1 = 0 with the default camera.
func New(o Options) *Simulator {
	s := &Simulator{
		cam:     camera.Default(),
		offsets: o.Offsets,
		style:   o.Style,
		caption: o.Caption,
	}
	s.SetSpeed(o.Speed)
	s.SetBeta(o.Beta)
	s.Resize(o.ViewWidth, o.ViewHeight, o.PanelWidth, o.PanelHeight)
	return s
}

// SetSpeed sets the driving speed in deg/s; negative values are treated as zero.
func (s *Simulator) SetSpeed(deg float64) {
	s.speed = max(0, deg)
}

// SetBeta sets the misalignment in degrees.
func (s *Simulator) SetBeta(deg float64) {
	s.beta = deg
}

// SetTheta1 places the driving shaft at an angle in radians.
func (s *Simulator) SetTheta1(rad float64) {
	s.drive.Theta1 = mathutil.WrapTau(rad)
}

// Resize sets the surface sizes in pixels.
func (s *Simulator) Resize(viewW, viewH, panelW, panelH int) {
	s.view = camera.Viewport{Width: float64(viewW), Height: float64(viewH)}
	s.layout = panel.NewLayout(float64(panelW), float64(panelH))
}

func (s *Simulator) Speed() float64 { return s.speed }
func (s *Simulator) Beta() float64 { return s.beta }
func (s *Simulator) Theta1() float64 { return s.drive.Theta1 }

// Camera returns a copy of the camera state.
func (s *Simulator) Camera() camera.State { return s.cam }

// Orbit forwards a pointer drag to the camera.
func (s *Simulator) Orbit(dx, dy float64) { s.cam.Orbit(dx, dy) }

// Dolly forwards a zoom factor to the camera.
func (s *Simulator) Dolly(factor float64) { s.cam.Dolly(factor) }

// ApplyPreset moves the camera to a preset pose.
func (s *Simulator) ApplyPreset(p camera.Preset) { s.cam.ApplyPreset(p) }

// Reset returns the drive to θ1 = 0 and the camera to its default pose.
func (s *Simulator) Reset() {
	s.drive.Reset()
	s.cam = camera.Default()
}

// Tick advances θ1 by speed·dt, with dt clamped to [0, kinematics.MaxStep],
// and returns the resulting frame.
func (s *Simulator) Tick(dt time.Duration) Frame {
	s.drive.Advance(mathutil.Deg2Rad(s.speed), dt)
	return s.At(s.drive.Theta1)
}

// Current returns the frame for the current state without advancing.
func (s *Simulator) Current() Frame {
	return s.At(s.drive.Theta1)
}

// At builds the frame for an arbitrary driving angle without touching the
// drive state.
func (s *Simulator) At(theta1 float64) Frame {
	g := kinematics.Compute(mathutil.WrapTau(theta1), mathutil.Deg2Rad(s.beta))
	r := s.offsets.Readout(g, s.speed)

	view := scene.Build3D(g, camera.NewProjector(s.cam, s.view), s.style)
	if s.caption {
		scene.AddCaption(view, CaptionLines(r, s.speed, s.beta), s.style)
	}
	return Frame{
		Geometry: g,
		Readout:  r,
		View:     view,
		Panel:    scene.BuildPanel(g, s.layout, s.style),
	}
}

// CaptionLines formats a readout for display next to the joint.
func CaptionLines(r kinematics.Readout, speed, beta float64) []string {
	t1, t2, ratio, sec := r.Fields()
	return []string{
		fmt.Sprintf("ω1 = %.0f°/s   β = %.1f°", speed, beta),
		fmt.Sprintf("θ1 = %s°   θ2 = %s°", t1, t2),
		fmt.Sprintf("ω2/ω1 = %s   ω2 = %.1f°/s", ratio, r.DrivenSpeed),
		fmt.Sprintf("1/cos²β = %s", sec),
	}
}
