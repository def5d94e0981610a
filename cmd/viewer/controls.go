package main

import (
	"fmt"
	"math"
	"time"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/config"
	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/sim"
)

// Keyboard steps.
const (
	betaStep  = 1.0  // degrees
	speedStep = 10.0 // deg/s
	zoomStep  = 0.9
)

type action int

const (
	actNone action = iota
	actBetaUp
	actBetaDown
	actSpeedUp
	actSpeedDown
	actZoomIn
	actZoomOut
	actPause
	actReset
	actPreset
)

// controls maps window input onto the simulator.
type controls struct {
	sim      *sim.Simulator
	paused   bool
	dragging bool
	lastX    float64
	lastY    float64
}

func (c *controls) apply(a action, p camera.Preset) {
	s := c.sim
	switch a {
	case actBetaUp:
		s.SetBeta(mathutil.Clamp(s.Beta()+betaStep, 0, config.MaxBeta))
	case actBetaDown:
		s.SetBeta(mathutil.Clamp(s.Beta()-betaStep, 0, config.MaxBeta))
	case actSpeedUp:
		s.SetSpeed(mathutil.Clamp(s.Speed()+speedStep, 0, config.MaxSpeed))
	case actSpeedDown:
		s.SetSpeed(mathutil.Clamp(s.Speed()-speedStep, 0, config.MaxSpeed))
	case actZoomIn:
		s.Dolly(zoomStep)
	case actZoomOut:
		s.Dolly(1 / zoomStep)
	case actPause:
		c.paused = !c.paused
	case actReset:
		s.Reset()
	case actPreset:
		s.ApplyPreset(p)
	}
}

// press starts a drag at (x, y) when it lands inside the 3D view.
func (c *controls) press(x, y, viewWidth float64) {
	if x < 0 || x >= viewWidth || y < 0 {
		return
	}
	c.dragging = true
	c.lastX, c.lastY = x, y
}

func (c *controls) release() {
	c.dragging = false
}

func (c *controls) move(x, y float64) {
	if !c.dragging {
		return
	}
	c.sim.Orbit(x-c.lastX, y-c.lastY)
	c.lastX, c.lastY = x, y
}

func (c *controls) scroll(dy float64) {
	if dy == 0 {
		return
	}
	c.sim.Dolly(math.Pow(zoomStep, dy))
}

// step advances the simulation unless paused.
func (c *controls) step(dt time.Duration) sim.Frame {
	if c.paused {
		return c.sim.Current()
	}
	return c.sim.Tick(dt)
}

func (c *controls) title(base string, f sim.Frame) string {
	t1, t2, ratio, sec := f.Readout.Fields()
	state := ""
	if c.paused {
		state = " | paused"
	}
	return fmt.Sprintf("%s | β %.0f° ω1 %.0f°/s | θ1 %s° θ2 %s° | ω2/ω1 %s | 1/cos²β %s%s",
		base, c.sim.Beta(), c.sim.Speed(), t1, t2, ratio, sec, state)
}
