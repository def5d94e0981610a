package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"cardan-sim/internal/scene"
)

// Fonts holds the parsed label typefaces. Parsed fonts are read-only and may
// be shared between canvases.
type Fonts struct {
	Regular *truetype.Font
	Bold    *truetype.Font
}

// LoadFonts parses the embedded Go fonts.
func LoadFonts() (*Fonts, error) {
	reg, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse bold font: %w", err)
	}
	return &Fonts{Regular: reg, Bold: bold}, nil
}

type faceKey struct {
	size float64
	bold bool
}

// haloOffsets are the unit directions the halo copy is stamped at.
var haloOffsets = [8][2]float64{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (c *Canvas) face(size float64, bold bool) font.Face {
	k := faceKey{size: size, bold: bold}
	if f, ok := c.faces[k]; ok {
		return f
	}
	ttf := c.fonts.Regular
	if bold {
		ttf = c.fonts.Bold
	}
	f := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	c.faces[k] = f
	return f
}

func (c *Canvas) text(t scene.Text) {
	if c.fonts == nil || t.Text == "" || t.Color.A == 0 {
		return
	}
	size := t.Size
	if size <= 0 {
		size = 12
	}
	face := c.face(size*c.Scale, t.Bold)

	x, y := t.Pos[0]*c.Scale, t.Pos[1]*c.Scale
	if t.Align == scene.AlignCenter {
		x -= fix2f(font.MeasureString(face, t.Text)) / 2
	}
	m := face.Metrics()
	y += fix2f(m.Ascent-m.Descent) / 2

	if t.Halo.A > 0 {
		r := 1.5 * c.Scale
		halo := &font.Drawer{Dst: c.Img, Src: image.NewUniform(t.Halo), Face: face}
		for _, o := range haloOffsets {
			halo.Dot = f2fix(x+o[0]*r, y+o[1]*r)
			halo.DrawString(t.Text)
		}
	}
	d := &font.Drawer{Dst: c.Img, Src: image.NewUniform(t.Color), Face: face, Dot: f2fix(x, y)}
	d.DrawString(t.Text)
}

func fix2f(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func f2fix(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}
