// Package chart plots the transmission ratio and the driven-shaft lag over one
// revolution, for one or more joint angles, and exports the samples as CSV.
package chart

import (
	"bufio"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
)

// Size and resolution of saved charts.
const (
	WidthIn  = 8.0
	HeightIn = 5.0
	DPI      = 150
)

var palette = []color.Color{
	color.NRGBA{R: 0x4e, G: 0xa1, B: 0xff, A: 255},
	color.NRGBA{R: 0xff, G: 0x64, B: 0x64, A: 255},
	color.NRGBA{R: 0x21, G: 0xd1, B: 0xb8, A: 255},
	color.NRGBA{R: 0xff, G: 0xd1, B: 0x66, A: 255},
	color.NRGBA{R: 0xb3, G: 0x7d, B: 0xff, A: 255},
	color.NRGBA{R: 0x60, G: 0x68, B: 0x73, A: 255},
}

// SaveRatioChart plots ω2/ω1 against the driving angle in degrees, one line
// per sweep.
func SaveRatioChart(path string, sweeps []kinematics.Sweep) error {
	return saveSweepChart(path, "Transmission ratio over one revolution", "ω2 / ω1", "%.3f", sweeps,
		func(sw kinematics.Sweep) []float64 { return sw.Ratio })
}

// SaveAngleChart plots the driven-shaft lag θ2 − θ1 in degrees against the
// driving angle.
func SaveAngleChart(path string, sweeps []kinematics.Sweep) error {
	return saveSweepChart(path, "Driven shaft lag over one revolution", "θ2 − θ1 (deg)", "%.1f", sweeps,
		func(sw kinematics.Sweep) []float64 { return sw.Lag() })
}

func saveSweepChart(path, title, ylabel, yfmt string, sweeps []kinematics.Sweep, ys func(kinematics.Sweep) []float64) error {
	if len(sweeps) == 0 {
		return fmt.Errorf("chart: %s: no sweeps", path)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "θ1 (deg)"
	p.Y.Label.Text = ylabel
	stylePlot(p)
	p.X.Min, p.X.Max = 0, 360
	p.X.Tick.Marker = limitedTicker(9, "%.0f")
	p.Y.Tick.Marker = limitedTicker(7, yfmt)
	p.Legend.Top = true

	for i, sw := range sweeps {
		vals := ys(sw)
		if len(vals) != len(sw.Theta1) || len(vals) == 0 {
			return fmt.Errorf("chart: sweep β=%.1f°: %d samples for %d angles", mathutil.Rad2Deg(sw.Beta), len(vals), len(sw.Theta1))
		}
		pts := make(plotter.XYs, len(vals))
		for j := range vals {
			pts[j].X = mathutil.Rad2Deg(sw.Theta1[j])
			pts[j].Y = vals[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chart: line: %w", err)
		}
		line.LineStyle.Width = vg.Points(2.0)
		line.LineStyle.Color = palette[i%len(palette)]
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("β = %.1f°", mathutil.Rad2Deg(sw.Beta)), line)
	}
	return savePlotPNG(p, WidthIn, HeightIn, path)
}

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(10)

	p.X.Label.TextStyle.Font.Size = vg.Points(13)
	p.Y.Label.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)

	p.X.LineStyle.Width = vg.Points(1.5)
	p.Y.LineStyle.Width = vg.Points(1.5)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)

	p.X.Tick.Length = vg.Points(6)
	p.Y.Tick.Length = vg.Points(6)
	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Y.Tick.Label.Font.Size = vg.Points(11)

	p.Add(plotter.NewGrid())
}

func savePlotPNG(p *plot.Plot, widthIn, heightIn float64, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("chart: mkdir %s: %w", filepath.Dir(filename), err)
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(DPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("chart: create %s: %w", filename, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("chart: write %s: %w", filename, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("chart: write %s: %w", filename, err)
	}
	return nil
}
