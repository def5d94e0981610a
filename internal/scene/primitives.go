// Package scene turns joint geometry into screen-space draw lists for the 3D
// view and the fixed-axis panel. It computes geometry only; a backend such as
// internal/raster does the drawing.
package scene

import (
	"image/color"

	"cardan-sim/internal/mathutil"
)

// Item is one screen-space drawing instruction.
type Item interface {
	item()
}

// Polyline strokes connected segments. Dash, when non-empty, alternates
// on/off lengths in pixels.
type Polyline struct {
	Points []mathutil.Vec2
	Color  color.NRGBA
	Width  float64
	Dash   []float64
}

// Disc fills a circle.
type Disc struct {
	Center mathutil.Vec2
	Radius float64
	Color  color.NRGBA
	Depth  float64 // camera depth for 3D markers, 0 on the panel
}

// Align is the horizontal anchor of a Text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Text is a label whose vertical middle sits at Pos.
type Text struct {
	Pos   mathutil.Vec2
	Text  string
	Color color.NRGBA
	Size  float64 // pixels
	Align Align
	Bold  bool
	Halo  color.NRGBA // drawn behind the glyphs when alpha > 0
}

func (Polyline) item() {}
func (Disc) item()     {}
func (Text) item()     {}

// List is an ordered draw list for one surface; later items paint over earlier ones.
type List struct {
	Width, Height float64
	Background    color.NRGBA
	Items         []Item
}

// Add appends items.
func (l *List) Add(items ...Item) {
	l.Items = append(l.Items, items...)
}

// Count returns the number of items of each kind, for diagnostics.
func (l *List) Count() (polylines, discs, texts int) {
	for _, it := range l.Items {
		switch it.(type) {
		case Polyline:
			polylines++
		case Disc:
			discs++
		case Text:
			texts++
		}
	}
	return polylines, discs, texts
}
