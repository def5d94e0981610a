package raster

import (
	"image"
	"image/draw"

	"cardan-sim/internal/scene"
)

// Render rasterizes l at supersample factor ss and filters it down to the
// list's own size.
func Render(l *scene.List, fonts *Fonts, ss int) *image.NRGBA {
	w, h := int(l.Width), int(l.Height)
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	c := NewCanvas(w, h, ss, fonts)
	c.Draw(l)
	return Downsample(c.Img, w, h)
}

// SideBySide places the images left to right, top aligned, on a canvas as
// tall as the tallest one. Uncovered pixels are transparent.
func SideBySide(imgs ...image.Image) *image.NRGBA {
	w, h := 0, 0
	for _, im := range imgs {
		b := im.Bounds()
		w += b.Dx()
		if b.Dy() > h {
			h = b.Dy()
		}
	}
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	x := 0
	for _, im := range imgs {
		b := im.Bounds()
		r := image.Rect(x, 0, x+b.Dx(), b.Dy())
		draw.Draw(out, r, im, b.Min, draw.Src)
		x += b.Dx()
	}
	return out
}
