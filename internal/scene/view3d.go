package scene

import (
	"image/color"
	"math"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/mathutil"
)

// View3D emits world-space primitives into a List through a camera projector.
// Geometry behind the camera is dropped.
type View3D struct {
	proj *camera.Projector
	list *List
}

// NewView3D starts a draw list for the projector's viewport.
func NewView3D(proj *camera.Projector, bg color.NRGBA) *View3D {
	vp := proj.Viewport()
	return &View3D{
		proj: proj,
		list: &List{Width: vp.Width, Height: vp.Height, Background: bg},
	}
}

// List returns the accumulated draw list.
func (v *View3D) List() *List { return v.list }

// Path strokes a world-space path, breaking it where points fall behind the camera.
func (v *View3D) Path(pts []mathutil.Vec3, c color.NRGBA, width float64) {
	var run []mathutil.Vec2
	flush := func() {
		if len(run) >= 2 {
			v.list.Add(Polyline{Points: run, Color: c, Width: width})
		}
		run = nil
	}
	for _, p := range pts {
		sp := v.proj.Project(p)
		if !sp.Visible() {
			flush()
			continue
		}
		run = append(run, sp.Vec2())
	}
	flush()
}

// Line strokes the segment a–b.
func (v *View3D) Line(a, b mathutil.Vec3, c color.NRGBA, width float64) {
	v.Path([]mathutil.Vec3{a, b}, c, width)
}

// Ring strokes a circle of radius about the origin, orthogonal to normal.
func (v *View3D) Ring(normal mathutil.Vec3, radius float64, segments int, c color.NRGBA, width float64) {
	v.Path(mathutil.Circle(normal, radius, segments), c, width)
}

// Dot fills a screen-size marker at p.
func (v *View3D) Dot(p mathutil.Vec3, radius float64, c color.NRGBA) {
	sp := v.proj.Project(p)
	if !sp.Visible() {
		return
	}
	v.list.Add(Disc{Center: sp.Vec2(), Radius: radius, Color: c, Depth: sp.Depth})
}

// Label writes text just right of p.
func (v *View3D) Label(p mathutil.Vec3, text string, c color.NRGBA, size float64) {
	sp := v.proj.Project(p)
	if !sp.Visible() {
		return
	}
	v.list.Add(Text{Pos: mathutil.Vec2{sp.X + 4, sp.Y}, Text: text, Color: c, Size: size, Align: AlignLeft})
}

// Arc describes the angle marker between two axes.
type Arc struct {
	Origin       mathutil.Vec3
	AxisA, AxisB mathutil.Vec3
	Radius       float64
	Steps        int
	Color        color.NRGBA
	Width        float64
	Label        string // optional; drawn at Radius+LabelOffset on the bisector
	LabelOffset  float64
	LabelColor   color.NRGBA
	LabelSize    float64
}

// AngleArc draws the acute angle between AxisA and AxisB (AxisB is flipped
// when the axes point apart). It reports false and draws nothing when either
// axis is degenerate or the two are parallel.
func (v *View3D) AngleArc(a Arc) bool {
	if a.AxisA.Len() < 1e-6 || a.AxisB.Len() < 1e-6 {
		return false
	}
	ua := a.AxisA.Normalize()
	ub := a.AxisB.Normalize()
	if ua.Dot(ub) < 0 {
		ub = ub.Scale(-1)
	}
	angle := math.Acos(mathutil.Clamp(ua.Dot(ub), -1, 1))
	if math.IsNaN(angle) || math.IsInf(angle, 0) || angle < 1e-3 {
		return false
	}
	axis := ua.Cross(ub)
	if axis.Len() < 1e-6 {
		return false
	}
	axis = axis.Normalize()

	steps := a.Steps
	if steps < 2 {
		steps = 2
	}
	pts := make([]mathutil.Vec3, steps+1)
	for i := 0; i <= steps; i++ {
		d := mathutil.RotateAxis(ua, axis, angle*float64(i)/float64(steps))
		pts[i] = a.Origin.Add(d.Scale(a.Radius))
	}
	v.Path(pts, a.Color, a.Width)

	if a.Label != "" {
		mid := mathutil.RotateAxis(ua, axis, angle/2)
		sp := v.proj.Project(a.Origin.Add(mid.Scale(a.Radius + a.LabelOffset)))
		if sp.Visible() {
			v.list.Add(Text{Pos: sp.Vec2(), Text: a.Label, Color: a.LabelColor, Size: a.LabelSize, Align: AlignCenter})
		}
	}
	return true
}
