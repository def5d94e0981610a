// Package camera implements the orbit camera and its pinhole projection.
package camera

import (
	"fmt"
	"math"

	"cardan-sim/internal/mathutil"
)

const (
	// OrbitSensitivity converts pointer drag pixels to radians.
	OrbitSensitivity = 0.005
	// PoleInset keeps elevation off the exact poles.
	PoleInset = 1e-3
	// ElevationLimit is the largest |elevation| the camera accepts.
	ElevationLimit = math.Pi/2 - PoleInset

	MinDistance = 2.0
	MaxDistance = 30.0

	DefaultDistance = 7.0
)

// DefaultFOV is the vertical field of view, 55°.
var DefaultFOV = mathutil.Deg2Rad(55)

var (
	// WorldUp is the axis azimuth rotates about.
	WorldUp = mathutil.Vec3{-1, 0, 0}
	// Forward0 is the look direction at zero azimuth and elevation.
	Forward0 = mathutil.Vec3{0, 1, 0}
	// Target is the look-at point.
	Target = mathutil.Vec3{}
)

// State is the orbit camera. Angles are radians.
// Mutate it through Orbit, SetElevation, Dolly, SetRoll and ApplyPreset so the
// elevation and distance invariants hold.
type State struct {
	Azimuth   float64
	Elevation float64 // strictly inside ±π/2
	Roll      float64
	Distance  float64 // > 0
	FOV       float64 // vertical
}

// Default returns the start-up camera.
func Default() State {
	return State{
		Azimuth:  math.Pi,
		Distance: DefaultDistance,
		FOV:      DefaultFOV,
	}
}

func clampElevation(el float64) float64 {
	return mathutil.Clamp(el, -ElevationLimit, ElevationLimit)
}

// Orbit applies a pointer drag of (dx, dy) pixels.
func (s *State) Orbit(dx, dy float64) {
	s.Azimuth -= dx * OrbitSensitivity
	s.Elevation = clampElevation(s.Elevation + dy*OrbitSensitivity)
}

// SetElevation sets the elevation, clamped inside the open interval.
func (s *State) SetElevation(el float64) {
	s.Elevation = clampElevation(el)
}

// SetRoll sets the roll about the look direction.
func (s *State) SetRoll(r float64) {
	s.Roll = r
}

// Dolly scales the distance to the target by factor, within [MinDistance, MaxDistance].
// Non-positive factors are ignored.
func (s *State) Dolly(factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	s.Distance = mathutil.Clamp(s.Distance*factor, MinDistance, MaxDistance)
}

// Preset names a fixed camera pose.
type Preset string

const (
	PresetPosX Preset = "+X"
	PresetNegX Preset = "-X"
	PresetPosY Preset = "+Y"
	PresetNegY Preset = "-Y"
	PresetPosZ Preset = "+Z"
	PresetNegZ Preset = "-Z"
	PresetISO  Preset = "ISO"
)

// Presets lists the presets in button order.
var Presets = []Preset{PresetPosX, PresetNegX, PresetPosY, PresetNegY, PresetPosZ, PresetNegZ, PresetISO}

// ParsePreset validates a preset name.
func ParsePreset(name string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("camera: unknown preset %q", name)
}

// ApplyPreset moves the camera to p. The ±Z poles keep the current azimuth
// and stop PoleInset short of the pole.
func (s *State) ApplyPreset(p Preset) {
	switch p {
	case PresetPosX:
		s.Azimuth, s.Elevation = 0, 0
	case PresetNegX:
		s.Azimuth, s.Elevation = math.Pi, 0
	case PresetPosY:
		s.Azimuth, s.Elevation = math.Pi/2, 0
	case PresetNegY:
		s.Azimuth, s.Elevation = -math.Pi/2, 0
	case PresetPosZ:
		s.Elevation = math.Pi/2 - PoleInset
	case PresetNegZ:
		s.Elevation = -math.Pi/2 + PoleInset
	case PresetISO:
		s.Azimuth, s.Elevation = math.Pi/4, math.Pi/6
	}
}

// Basis is the camera frame for one frame, roll already applied.
type Basis struct {
	Position mathutil.Vec3
	Forward  mathutil.Vec3
	Right    mathutil.Vec3
	Up       mathutil.Vec3
}

// Basis builds the camera frame: forward is Forward0 turned by azimuth about
// WorldUp, then by elevation about the right vector; the camera sits Distance
// behind the target along forward.
func (s State) Basis() Basis {
	fYaw := mathutil.RotateAxis(Forward0, WorldUp, s.Azimuth).Normalize()
	r := fYaw.Cross(WorldUp)
	if r.Len() < 1e-6 {
		r = mathutil.UnitY
	}
	r = r.Normalize()
	f := mathutil.RotateAxis(fYaw, r, clampElevation(s.Elevation)).Normalize()
	u := r.Cross(f)

	sr, cr := math.Sincos(s.Roll)
	r2 := r.Scale(cr).Add(u.Scale(sr))
	u2 := r.Scale(-sr).Add(u.Scale(cr))

	return Basis{
		Position: Target.Sub(f.Scale(s.Distance)),
		Forward:  f,
		Right:    r2,
		Up:       u2,
	}
}
