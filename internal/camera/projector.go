package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"cardan-sim/internal/mathutil"
)

// depthEpsilon replaces a near-zero camera-space depth before the perspective divide.
const depthEpsilon = 1e-6

// NearDepth is the smallest depth a caller should treat as in front of the camera.
const NearDepth = 1e-3

// Viewport is the output surface size in logical pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// ScreenPoint is a projected point: screen pixels (Y down) plus camera-space depth.
type ScreenPoint struct {
	X, Y  float64
	Depth float64
}

// Vec2 returns the screen position.
func (p ScreenPoint) Vec2() mathutil.Vec2 { return mathutil.Vec2{p.X, p.Y} }

// Projector maps world points to the screen for one camera state and viewport.
// Build one per frame; it is immutable afterwards.
type Projector struct {
	basis Basis
	view  mgl64.Mat3 // rows: right, up, forward
	scale float64
	vp    Viewport
}

// NewProjector captures the camera basis and the pinhole scale
// 0.5·height / tan(fov/2).
func NewProjector(s State, vp Viewport) *Projector {
	b := s.Basis()
	return &Projector{
		basis: b,
		view:  mgl64.Mat3FromRows(mgl64.Vec3(b.Right), mgl64.Vec3(b.Up), mgl64.Vec3(b.Forward)),
		scale: 0.5 * vp.Height / math.Tan(s.FOV/2),
		vp:    vp,
	}
}

// Basis returns the camera frame used by the projector.
func (p *Projector) Basis() Basis { return p.basis }

// Viewport returns the output size.
func (p *Projector) Viewport() Viewport { return p.vp }

// ToCamera transforms a world point into camera space:
// x right, y up, z depth along forward.
func (p *Projector) ToCamera(w mathutil.Vec3) mathutil.Vec3 {
	v := w.Sub(p.basis.Position)
	return mathutil.Vec3(p.view.Mul3x1(mgl64.Vec3(v)))
}

// Project maps a world point to screen pixels. Depth is returned unguarded;
// the divide uses depthEpsilon when |depth| is near zero.
func (p *Projector) Project(w mathutil.Vec3) ScreenPoint {
	c := p.ToCamera(w)
	z := c[2]
	if math.Abs(z) < depthEpsilon {
		z = depthEpsilon
	}
	return ScreenPoint{
		X:     p.vp.Width/2 + p.scale*c[0]/z,
		Y:     p.vp.Height/2 - p.scale*c[1]/z,
		Depth: c[2],
	}
}

// ToNDC maps a world point to coordinates relative to the viewport centre and
// half-extents, roughly [-1, 1] on screen. Y grows downward like screen pixels.
func (p *Projector) ToNDC(w mathutil.Vec3) mathutil.Vec2 {
	s := p.Project(w)
	hw, hh := p.vp.Width/2, p.vp.Height/2
	return mathutil.Vec2{(s.X - hw) / hw, (s.Y - hh) / hh}
}

// Visible reports whether a projected point is in front of the camera.
func (s ScreenPoint) Visible() bool {
	return s.Depth > NearDepth
}
