package scene

import "image/color"

func rgb(hex uint32) color.NRGBA {
	return color.NRGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// Style holds the palette, stroke widths and world dimensions of the scene.
type Style struct {
	Background color.NRGBA

	AxisLength   float64
	AxisPositive color.NRGBA
	AxisNegative color.NRGBA
	AxisLabelX   color.NRGBA
	AxisLabelY   color.NRGBA
	AxisLabelZ   color.NRGBA
	NameLabel    color.NRGBA

	ShaftLength   float64
	ShaftDriving  color.NRGBA
	ShaftDriven   color.NRGBA
	RingDriving   color.NRGBA
	RingDriven    color.NRGBA
	RingSegments  int
	Cross         color.NRGBA
	PinDriving    color.NRGBA
	PinDriven     color.NRGBA
	PinRadius     float64
	Arc           color.NRGBA
	ArcLabel      color.NRGBA
	ArcSteps      int
	LabelSize     float64
	ArcLabelSize  float64
	DrivingName   string
	DrivenName    string
	BetaLabelFmt  string
	ThetaLabel    string
	PanelDriving  color.NRGBA
	PanelDriven   color.NRGBA
	PanelPath     color.NRGBA
	PanelMarker   color.NRGBA
	PanelZero     color.NRGBA
	PanelArc      color.NRGBA
	PanelLink     color.NRGBA
	PanelHalo     color.NRGBA
	PanelLabelSz  float64
	PanelMarkerSz float64
	Caption       color.NRGBA
	CaptionSize   float64
}

// DefaultStyle returns the standard dark palette.
func DefaultStyle() Style {
	return Style{
		Background: rgb(0x0f141a),

		AxisLength:   2.2,
		AxisPositive: rgb(0x606873),
		AxisNegative: rgb(0x30363f),
		AxisLabelX:   rgb(0xff6b6b),
		AxisLabelY:   rgb(0x4d8d4c),
		AxisLabelZ:   rgb(0x5ea7ff),
		NameLabel:    rgb(0xffd166),

		ShaftLength:   2.8,
		ShaftDriving:  rgb(0x4f5b6b),
		ShaftDriven:   rgb(0x6a7790),
		RingDriving:   rgb(0x4ea1ff),
		RingDriven:    rgb(0xff6464),
		RingSegments:  128,
		Cross:         rgb(0xc9d1d9),
		PinDriving:    rgb(0x4ea1ff),
		PinDriven:     rgb(0x21d1b8),
		PinRadius:     4,
		Arc:           rgb(0xff6464),
		ArcLabel:      rgb(0xffd166),
		ArcSteps:      48,
		LabelSize:     12,
		ArcLabelSize:  13,
		DrivingName:   "driving shaft",
		DrivenName:    "driven shaft",
		BetaLabelFmt:  "β = %.1f°",
		ThetaLabel:    "θ1",
		PanelDriving:  rgb(0xff6464),
		PanelDriven:   rgb(0x4ea1ff),
		PanelPath:     rgb(0xff6464),
		PanelMarker:   rgb(0xffd166),
		PanelZero:     rgba(160, 170, 190, 0.95),
		PanelArc:      rgb(0xd75757),
		PanelLink:     rgba(200, 220, 255, 0.65),
		PanelHalo:     rgba(255, 255, 255, 0.92),
		PanelLabelSz:  14,
		PanelMarkerSz: 5,
		Caption:       rgb(0xc9d1d9),
		CaptionSize:   13,
	}
}
