package raster

import (
	"image"
	"image/color"
	"testing"

	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/scene"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestDashRunsStraight(t *testing.T) {
	pts := []mathutil.Vec2{{0, 0}, {20, 0}}
	runs := DashRuns(pts, []float64{5, 5})
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2: %v", len(runs), runs)
	}
	want := [][2]float64{{0, 5}, {10, 15}}
	for i, r := range runs {
		if len(r) != 2 {
			t.Fatalf("run %d has %d points", i, len(r))
		}
		if r[0][0] != want[i][0] || r[1][0] != want[i][1] {
			t.Errorf("run %d = %v, want x %v", i, r, want[i])
		}
	}
}

func TestDashRunsKeepsCorner(t *testing.T) {
	pts := []mathutil.Vec2{{0, 0}, {3, 0}, {3, 4}}
	runs := DashRuns(pts, []float64{5, 2})
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %v", len(runs), runs)
	}
	r := runs[0]
	if len(r) != 3 || r[1] != (mathutil.Vec2{3, 0}) || r[2] != (mathutil.Vec2{3, 2}) {
		t.Errorf("run = %v", r)
	}
}

func TestDashRunsInvalidPattern(t *testing.T) {
	pts := []mathutil.Vec2{{0, 0}, {10, 0}}
	for _, p := range [][]float64{{0, 0}, {-1, 2}} {
		runs := DashRuns(pts, p)
		if len(runs) != 1 || len(runs[0]) != 2 {
			t.Errorf("pattern %v: got %v, want the input unchanged", p, runs)
		}
	}
}

func lineList(pts ...mathutil.Vec2) *scene.List {
	l := &scene.List{Width: 40, Height: 20, Background: black}
	l.Add(scene.Polyline{Points: pts, Color: white, Width: 2})
	return l
}

func TestRenderLine(t *testing.T) {
	for _, ss := range []int{1, 3} {
		img := Render(lineList(mathutil.Vec2{5, 10}, mathutil.Vec2{35, 10}), nil, ss)
		if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
			t.Fatalf("ss=%d: bounds %v", ss, b)
		}
		if got := img.NRGBAAt(20, 10).R; got < 200 {
			t.Errorf("ss=%d: on-line pixel R = %d, want bright", ss, got)
		}
		if got := img.NRGBAAt(20, 2).R; got > 10 {
			t.Errorf("ss=%d: off-line pixel R = %d, want dark", ss, got)
		}
		if got := img.NRGBAAt(20, 2).A; got != 255 {
			t.Errorf("ss=%d: background alpha = %d", ss, got)
		}
	}
}

func TestRenderFoldedLineDoesNotCancel(t *testing.T) {
	img := Render(lineList(mathutil.Vec2{5, 10}, mathutil.Vec2{35, 10}, mathutil.Vec2{5, 10}), nil, 1)
	if got := img.NRGBAAt(20, 10).R; got < 200 {
		t.Errorf("overlapping segments cancelled: R = %d", got)
	}
}

func TestRenderJoinDoesNotCancel(t *testing.T) {
	// Sharp corner: the join disc overlaps both segment quads.
	img := Render(lineList(mathutil.Vec2{5, 5}, mathutil.Vec2{20, 10}, mathutil.Vec2{35, 5}), nil, 1)
	if got := img.NRGBAAt(20, 10).R; got < 150 {
		t.Errorf("corner pixel R = %d, want bright", got)
	}
}

func TestRenderDashedLine(t *testing.T) {
	l := &scene.List{Width: 40, Height: 20, Background: black}
	l.Add(scene.Polyline{
		Points: []mathutil.Vec2{{0, 10}, {40, 10}},
		Color:  white, Width: 2, Dash: []float64{10, 10},
	})
	img := Render(l, nil, 1)
	if got := img.NRGBAAt(5, 10).R; got < 200 {
		t.Errorf("dash pixel R = %d, want bright", got)
	}
	if got := img.NRGBAAt(15, 10).R; got > 10 {
		t.Errorf("gap pixel R = %d, want dark", got)
	}
}

func TestRenderDisc(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	l := &scene.List{Width: 30, Height: 30, Background: black}
	l.Add(scene.Disc{Center: mathutil.Vec2{15, 15}, Radius: 6, Color: red})
	img := Render(l, nil, 2)
	if c := img.NRGBAAt(15, 15); c.R < 240 || c.G > 10 {
		t.Errorf("centre = %v, want red", c)
	}
	if c := img.NRGBAAt(2, 2); c.R > 10 {
		t.Errorf("corner = %v, want background", c)
	}
}

func TestRenderFarPointsIgnored(t *testing.T) {
	img := Render(lineList(mathutil.Vec2{5, 10}, mathutil.Vec2{1e12, 10}), nil, 1)
	if got := img.NRGBAAt(20, 10).R; got != 0 {
		t.Errorf("segment to far point drawn: R = %d", got)
	}
}

func TestRenderText(t *testing.T) {
	fonts, err := LoadFonts()
	if err != nil {
		t.Fatal(err)
	}
	l := &scene.List{Width: 60, Height: 40, Background: black}
	l.Add(scene.Text{Pos: mathutil.Vec2{30, 20}, Text: "XY", Color: white, Size: 20, Align: scene.AlignCenter, Bold: true})
	img := Render(l, fonts, 2)

	lit := 0
	minX, maxX := 60, 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			if img.NRGBAAt(x, y).R > 128 {
				lit++
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	if lit == 0 {
		t.Fatal("no glyph pixels drawn")
	}
	if mid := (minX + maxX) / 2; mid < 26 || mid > 34 {
		t.Errorf("centred text spans x %d..%d", minX, maxX)
	}
}

func TestRenderTextWithoutFontsIsNoop(t *testing.T) {
	l := &scene.List{Width: 20, Height: 20, Background: black}
	l.Add(scene.Text{Pos: mathutil.Vec2{10, 10}, Text: "X", Color: white, Size: 12})
	img := Render(l, nil, 1)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			t.Fatal("text drawn without fonts")
		}
	}
}

func TestDownsampleUnpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		// 50% white, premultiplied
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 128, 128, 128, 128
	}
	out := Downsample(src, 2, 2)
	c := out.NRGBAAt(1, 1)
	if c.A < 126 || c.A > 130 || c.R < 250 {
		t.Errorf("got %v, want ~{255 255 255 128}", c)
	}
}

func TestSideBySide(t *testing.T) {
	a := image.NewNRGBA(image.Rect(0, 0, 10, 8))
	b := image.NewNRGBA(image.Rect(0, 0, 6, 12))
	b.SetNRGBA(0, 11, white)
	out := SideBySide(a, b)
	if got := out.Bounds(); got.Dx() != 16 || got.Dy() != 12 {
		t.Fatalf("bounds = %v", got)
	}
	if out.NRGBAAt(10, 11) != white {
		t.Errorf("second image not placed at x=10")
	}
}
