package raster

import (
	"github.com/chewxy/math32"

	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/scene"
)

// farLimit bounds coordinates handed to the rasterizer, in multiples of the
// canvas extent. Points projected just in front of the camera land far
// outside the canvas; segments touching them are dropped.
const farLimit = 16

// polyline strokes pl with round joins. Every segment quad and every join disc
// is wound the same way so overlaps saturate instead of cancelling.
func (c *Canvas) polyline(pl scene.Polyline) {
	if len(pl.Points) < 2 || pl.Width <= 0 || pl.Color.A == 0 {
		return
	}
	runs := [][]mathutil.Vec2{pl.Points}
	if len(pl.Dash) > 0 {
		runs = DashRuns(pl.Points, pl.Dash)
	}

	c.reset()
	hw := float32(pl.Width*c.Scale) / 2
	drawn := false
	for _, run := range runs {
		if c.strokeRun(run, hw) {
			drawn = true
		}
	}
	if drawn {
		c.fill(pl.Color)
	}
}

func (c *Canvas) strokeRun(run []mathutil.Vec2, hw float32) bool {
	drawn := false
	for i := 0; i+1 < len(run); i++ {
		x0, y0 := c.px(run[i])
		x1, y1 := c.px(run[i+1])
		if !c.near(x0, y0) || !c.near(x1, y1) {
			continue
		}
		dx, dy := x1-x0, y1-y0
		l := math32.Hypot(dx, dy)
		if l < 1e-6 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw
		c.ras.MoveTo(x0+nx, y0+ny)
		c.ras.LineTo(x1+nx, y1+ny)
		c.ras.LineTo(x1-nx, y1-ny)
		c.ras.LineTo(x0-nx, y0-ny)
		c.ras.ClosePath()
		if i > 0 {
			c.circle(x0, y0, hw, -1)
		}
		drawn = true
	}
	if drawn && hw > 0.75 {
		x0, y0 := c.px(run[0])
		x1, y1 := c.px(run[len(run)-1])
		c.circle(x0, y0, hw, -1)
		c.circle(x1, y1, hw, -1)
	}
	return drawn
}

func (c *Canvas) disc(d scene.Disc) {
	if d.Radius <= 0 || d.Color.A == 0 {
		return
	}
	x, y := c.px(d.Center)
	if !c.near(x, y) {
		return
	}
	c.reset()
	c.circle(x, y, float32(d.Radius*c.Scale), 1)
	c.fill(d.Color)
}

// circle appends a closed polygon approximating a circle. dir is +1 for
// increasing angle and -1 for decreasing; stroke quads pair with -1.
func (c *Canvas) circle(cx, cy, r, dir float32) {
	n := int(math32.Ceil(r * 1.5))
	if n < 12 {
		n = 12
	}
	if n > 96 {
		n = 96
	}
	step := dir * 2 * math32.Pi / float32(n)
	c.ras.MoveTo(cx+r, cy)
	for i := 1; i < n; i++ {
		s, co := math32.Sincos(step * float32(i))
		c.ras.LineTo(cx+r*co, cy+r*s)
	}
	c.ras.ClosePath()
}

func (c *Canvas) px(p mathutil.Vec2) (float32, float32) {
	return float32(p[0] * c.Scale), float32(p[1] * c.Scale)
}

func (c *Canvas) near(x, y float32) bool {
	b := c.Img.Bounds()
	lim := float32(farLimit * (b.Dx() + b.Dy()))
	return !math32.IsNaN(x) && !math32.IsNaN(y) && math32.Abs(x) < lim && math32.Abs(y) < lim
}

// DashRuns splits a polyline into its visible dash pieces. pattern alternates
// on and off lengths; the pattern restarts at the first point.
func DashRuns(pts []mathutil.Vec2, pattern []float64) [][]mathutil.Vec2 {
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return [][]mathutil.Vec2{pts}
		}
		total += d
	}
	if total <= 0 || len(pts) < 2 {
		return [][]mathutil.Vec2{pts}
	}

	var runs [][]mathutil.Vec2
	cur := []mathutil.Vec2{pts[0]}
	idx, left := 0, pattern[0]
	on := true
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		seg := b.Sub(a)
		segLen := seg.Len()
		pos := 0.0
		for segLen-pos > left {
			pos += left
			p := a.Add(seg.Scale(pos / segLen))
			if on {
				cur = append(cur, p)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []mathutil.Vec2{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= segLen - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}
