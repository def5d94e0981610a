package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/vector"

	"cardan-sim/internal/scene"
)

// Canvas is the supersampled render target for one draw list. Draw-list
// coordinates are multiplied by Scale to get pixel coordinates.
//
// A Canvas caches font faces and is not safe for concurrent use; give each
// goroutine its own.
type Canvas struct {
	Img   *image.RGBA
	Scale float64

	ras   *vector.Rasterizer
	fonts *Fonts
	faces map[faceKey]font.Face
}

// NewCanvas allocates a w×h list-unit canvas at the given supersample factor.
func NewCanvas(w, h, scale int, fonts *Fonts) *Canvas {
	if scale < 1 {
		scale = 1
	}
	pw, ph := w*scale, h*scale
	return &Canvas{
		Img:   image.NewRGBA(image.Rect(0, 0, pw, ph)),
		Scale: float64(scale),
		ras:   vector.NewRasterizer(pw, ph),
		fonts: fonts,
		faces: make(map[faceKey]font.Face),
	}
}

// Clear fills the whole canvas with c.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Draw paints the background and every item of l in order.
func (c *Canvas) Draw(l *scene.List) {
	c.Clear(l.Background)
	for _, it := range l.Items {
		switch v := it.(type) {
		case scene.Polyline:
			c.polyline(v)
		case scene.Disc:
			c.disc(v)
		case scene.Text:
			c.text(v)
		}
	}
}

// fill rasterizes the pending path with a uniform color.
func (c *Canvas) fill(col color.NRGBA) {
	c.ras.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) reset() {
	b := c.Img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
}
