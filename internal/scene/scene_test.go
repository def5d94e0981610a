package scene

import (
	"math"
	"testing"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/panel"
)

var vp = camera.Viewport{Width: 640, Height: 480}

func newView() *View3D {
	return NewView3D(camera.NewProjector(camera.Default(), vp), DefaultStyle().Background)
}

func texts(l *List) []Text {
	var out []Text
	for _, it := range l.Items {
		if t, ok := it.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func TestAngleArcDegenerate(t *testing.T) {
	cases := []struct {
		name string
		a, b mathutil.Vec3
	}{
		{"parallel", mathutil.UnitX, mathutil.UnitX.Scale(2)},
		{"antiparallel", mathutil.UnitX, mathutil.UnitX.Scale(-1)},
		{"zero", mathutil.Vec3{}, mathutil.UnitY},
		{"tiny angle", mathutil.UnitZ, mathutil.Vec3{1e-5, 0, 1}},
	}
	for _, c := range cases {
		v := newView()
		if v.AngleArc(Arc{AxisA: c.a, AxisB: c.b, Radius: 1, Steps: 48, Label: "x"}) {
			t.Errorf("%s: arc drawn", c.name)
		}
		if n := len(v.List().Items); n != 0 {
			t.Errorf("%s: %d items emitted", c.name, n)
		}
	}
}

func TestAngleArc(t *testing.T) {
	v := newView()
	beta := mathutil.Deg2Rad(30)
	b := mathutil.Vec3{math.Sin(beta), 0, math.Cos(beta)}
	if !v.AngleArc(Arc{AxisA: AxisX, AxisB: b, Radius: 1, Steps: 48, Width: 2, Label: "β"}) {
		t.Fatal("arc not drawn")
	}
	items := v.List().Items
	if len(items) != 2 {
		t.Fatalf("items = %d, want arc + label", len(items))
	}
	pl, ok := items[0].(Polyline)
	if !ok || len(pl.Points) != 49 {
		t.Fatalf("arc = %#v", items[0])
	}
	for _, p := range pl.Points {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
			t.Fatalf("NaN in arc %v", pl.Points)
		}
	}
	if txt := items[1].(Text); txt.Text != "β" || txt.Align != AlignCenter {
		t.Errorf("label = %+v", txt)
	}
}

func TestPathBehindCameraIsSplit(t *testing.T) {
	v := newView()
	b := camera.Default().Basis()
	behind := b.Position.Sub(b.Forward)
	v.Path([]mathutil.Vec3{{0, 0, 0}, {0, 0, 1}, behind, {0, 0, -1}, {1, 0, -1}}, DefaultStyle().Arc, 1)
	items := v.List().Items
	if len(items) != 2 {
		t.Fatalf("got %d runs, want 2", len(items))
	}
	v = newView()
	v.Dot(behind, 3, DefaultStyle().PinDriven)
	v.Label(behind, "hidden", DefaultStyle().NameLabel, 12)
	if len(v.List().Items) != 0 {
		t.Errorf("items behind the camera were emitted")
	}
}

func TestBuild3D(t *testing.T) {
	st := DefaultStyle()
	proj := camera.NewProjector(camera.Default(), vp)

	l := Build3D(kinematics.Compute(0.7, mathutil.Deg2Rad(30)), proj, st)
	_, discs, nt := l.Count()
	if discs != 2 || nt != 6 {
		t.Errorf("discs=%d texts=%d, want 2 and 6", discs, nt)
	}
	found := false
	for _, txt := range texts(l) {
		if txt.Text == "β = 30.0°" {
			found = true
		}
	}
	if !found {
		t.Errorf("β label missing from %+v", texts(l))
	}
	last := l.Items[len(l.Items)-2:]
	if last[0].(Disc).Depth < last[1].(Disc).Depth {
		t.Errorf("near pin drawn first: %+v", last)
	}

	// Aligned shafts have no arc to draw.
	l = Build3D(kinematics.Compute(0.7, 0), proj, st)
	if _, _, nt := l.Count(); nt != 5 {
		t.Errorf("β=0 texts = %d, want 5", nt)
	}
	if l.Width != vp.Width || l.Height != vp.Height {
		t.Errorf("list size %gx%g", l.Width, l.Height)
	}
}

func TestBuildPanel(t *testing.T) {
	st := DefaultStyle()
	lay := panel.NewLayout(360, 640)
	l := BuildPanel(kinematics.Compute(0, mathutil.Deg2Rad(20)), lay, st)
	_, discs, nt := l.Count()
	if discs != 2 || nt != 1 {
		t.Errorf("discs=%d texts=%d, want 2 and 1", discs, nt)
	}
	var dashed int
	for _, it := range l.Items {
		if pl, ok := it.(Polyline); ok && len(pl.Dash) > 0 {
			dashed++
		}
		if pl, ok := it.(Polyline); ok && len(pl.Points) == panel.PathSamples+1 {
			for _, p := range pl.Points {
				if p[1] < lay.Bottom[1]-lay.Radius-1e-9 || p[1] > lay.Bottom[1]+lay.Radius+1e-9 {
					t.Fatalf("path point %v outside the driven circle", p)
				}
			}
		}
	}
	if dashed != 2 {
		t.Errorf("dashed lines = %d, want zero reference and connector", dashed)
	}
	if txt := texts(l)[0]; txt.Text != "θ1" || !txt.Bold || txt.Halo.A == 0 {
		t.Errorf("θ1 label = %+v", txt)
	}
}

func TestCircle2D(t *testing.T) {
	c := mathutil.Vec2{10, 20}
	pts := circle2D(c, 5, 4, 0, mathutil.Tau)
	if len(pts) != 5 {
		t.Fatalf("len %d", len(pts))
	}
	if pts[1].Sub(mathutil.Vec2{10, 25}).Len() > 1e-9 {
		t.Errorf("quarter turn lands at %v, want below the centre (clockwise on screen)", pts[1])
	}
}

func TestAddCaption(t *testing.T) {
	l := &List{Width: 100, Height: 100}
	st := DefaultStyle()
	AddCaption(l, []string{"a", "b"}, st)
	ts := texts(l)
	if len(ts) != 2 || ts[0].Text != "a" || ts[1].Pos[1] <= ts[0].Pos[1] {
		t.Fatalf("caption texts = %+v", ts)
	}
	if ts[0].Pos[0] != 12 || ts[0].Align != AlignLeft {
		t.Errorf("caption not anchored top-left: %+v", ts[0])
	}
}
