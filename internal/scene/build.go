package scene

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/panel"
)

// World directions of the labelled axes.
var (
	AxisX = mathutil.Vec3{0, 0, -1}
	AxisY = mathutil.Vec3{0, 1, 0}
	AxisZ = mathutil.Vec3{-1, 0, 0}
)

// Build3D draws the perspective view: world axes, both shafts, their coupling
// rings, the cross, the β arc and the two pins.
func Build3D(g kinematics.Geometry, proj *camera.Projector, st Style) *List {
	v := NewView3D(proj, st.Background)
	drawAxes(v, st)

	half := st.ShaftLength * 0.5
	v.Line(g.AxisDriving.Scale(-half), g.AxisDriving.Scale(half), st.ShaftDriving, 3)
	v.Line(g.AxisDriven.Scale(-half), g.AxisDriven.Scale(half), st.ShaftDriven, 3)

	v.Ring(g.AxisDriving, g.Radius, st.RingSegments, st.RingDriving, 1.5)
	v.Ring(g.AxisDriven, g.Radius, st.RingSegments, st.RingDriven, 1.5)

	v.Line(g.PinDriving.Scale(-1), g.PinDriving, st.Cross, 2)
	v.Line(g.PinDriven.Scale(-1), g.PinDriven, st.Cross, 2)

	v.AngleArc(Arc{
		AxisA:       AxisX,
		AxisB:       g.AxisDriven,
		Radius:      g.Radius * 0.7,
		Steps:       st.ArcSteps,
		Color:       st.Arc,
		Width:       2,
		Label:       fmt.Sprintf(st.BetaLabelFmt, mathutil.Rad2Deg(g.Beta)),
		LabelOffset: 0.18,
		LabelColor:  st.ArcLabel,
		LabelSize:   st.ArcLabelSize,
	})
	v.Label(g.AxisDriven.Scale(-(g.Radius + 0.4)), st.DrivenName, st.NameLabel, st.LabelSize)

	// Far pin first so the near one paints over it.
	n := len(v.List().Items)
	v.Dot(g.PinDriving, st.PinRadius, st.PinDriving)
	v.Dot(g.PinDriven, st.PinRadius, st.PinDriven)
	pins := v.List().Items[n:]
	sort.SliceStable(pins, func(i, j int) bool {
		return pins[i].(Disc).Depth > pins[j].(Disc).Depth
	})
	return v.List()
}

func drawAxes(v *View3D, st Style) {
	l := st.AxisLength
	o := mathutil.Vec3{}
	for _, ax := range []struct {
		dir   mathutil.Vec3
		name  string
		color color.NRGBA
	}{
		{AxisX, "X", st.AxisLabelX},
		{AxisY, "Y", st.AxisLabelY},
		{AxisZ, "Z", st.AxisLabelZ},
	} {
		v.Line(o, ax.dir.Scale(l), st.AxisPositive, 2)
		v.Line(o, ax.dir.Scale(-l), st.AxisNegative, 1.5)
		v.Label(ax.dir.Scale(l), ax.name, ax.color, st.LabelSize)
	}
	v.Label(AxisX.Scale(l+0.25), st.DrivingName, st.NameLabel, st.LabelSize)
}

// BuildPanel draws the fixed-axis panel: the driving circle with its marker and
// θ1 arc on top, the driven plane with the projected path and marker below.
func BuildPanel(g kinematics.Geometry, l panel.Layout, st Style) *List {
	list := &List{Width: l.Width, Height: l.Height, Background: st.Background}

	list.Add(Polyline{Points: circle2D(l.Top, l.Radius, 128, 0, mathutil.Tau), Color: st.PanelDriving, Width: 2})
	top := l.DrivingMarker(g.DrivingAngle)

	list.Add(Polyline{Points: []mathutil.Vec2{l.Top, l.ZeroTick()}, Color: st.PanelZero, Width: 1.2, Dash: []float64{5, 5}})
	list.Add(Polyline{Points: []mathutil.Vec2{l.Top, top}, Color: st.PanelDriving, Width: 2})

	sweep := panel.DrivingSweep(g.DrivingAngle)
	if sweep > 1e-6 {
		ra := l.ArcRadius()
		list.Add(Polyline{Points: circle2D(l.Top, ra, 96, panel.ZeroDirection, sweep), Color: st.PanelArc, Width: 2.5})
		mid := panel.ZeroDirection + sweep*0.5
		list.Add(Text{
			Pos:   polar2D(l.Top, ra+14, mid),
			Text:  st.ThetaLabel,
			Color: st.PanelArc,
			Size:  st.PanelLabelSz,
			Align: AlignCenter,
			Bold:  true,
			Halo:  st.PanelHalo,
		})
	}
	list.Add(Disc{Center: top, Radius: st.PanelMarkerSz, Color: st.PanelMarker})

	list.Add(Polyline{Points: circle2D(l.Bottom, l.Radius, 128, 0, mathutil.Tau), Color: st.PanelDriven, Width: 2})
	f := panel.NewFixed(g)
	list.Add(Polyline{Points: f.Path(l, panel.PathSamples), Color: st.PanelPath, Width: 2})
	bottom := f.Marker(l, g.DrivingAngle)
	list.Add(Disc{Center: bottom, Radius: st.PanelMarkerSz, Color: st.PanelMarker})

	list.Add(Polyline{Points: []mathutil.Vec2{top, bottom}, Color: st.PanelLink, Width: 1.5, Dash: []float64{5, 6}})
	return list
}

func polar2D(c mathutil.Vec2, r, a float64) mathutil.Vec2 {
	s, co := math.Sincos(a)
	return c.Add(mathutil.Vec2{r * co, r * s})
}

// circle2D samples an arc from start sweeping by sweep radians (clockwise on screen).
func circle2D(c mathutil.Vec2, r float64, segments int, start, sweep float64) []mathutil.Vec2 {
	pts := make([]mathutil.Vec2, segments+1)
	for i := 0; i <= segments; i++ {
		pts[i] = polar2D(c, r, start+sweep*float64(i)/float64(segments))
	}
	return pts
}

// AddCaption stacks lines of text in the top-left corner of l.
func AddCaption(l *List, lines []string, st Style) {
	lh := st.CaptionSize * 1.4
	for i, line := range lines {
		l.Add(Text{
			Pos:   mathutil.Vec2{12, 12 + lh*(float64(i)+0.5)},
			Text:  line,
			Color: st.Caption,
			Size:  st.CaptionSize,
			Align: AlignLeft,
		})
	}
}
