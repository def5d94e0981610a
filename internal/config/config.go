package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"cardan-sim/internal/camera"
	"cardan-sim/internal/encode"
	"cardan-sim/internal/kinematics"
)

// Input limits enforced by Validate. β stays clear of the 90° singularity.
const (
	MaxBeta  = 60.0  // degrees
	MaxSpeed = 720.0 // degrees per second
)

// Config holds the simulation inputs and render settings.
type Config struct {
	// Simulation
	Speed         float64 `json:"speed_deg_s"`
	Beta          float64 `json:"beta_deg"`
	DrivingOffset float64 `json:"driving_offset_deg"`
	DrivenOffset  float64 `json:"driven_offset_deg"`
	Preset        string  `json:"preset,omitempty"`

	// Render settings
	ViewWidth   int    `json:"view_width"`
	ViewHeight  int    `json:"view_height"`
	PanelWidth  int    `json:"panel_width"`
	PanelHeight int    `json:"panel_height"`
	Supersample int    `json:"supersample"`
	Frames      int    `json:"frames"`
	Workers     int    `json:"workers"`
	OutputDir   string `json:"output_dir"`
	Format      string `json:"format"`
	Animate     bool   `json:"animate"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Speed:         60,
		Beta:          30,
		DrivingOffset: kinematics.DefaultDisplayOffsets.Driving,
		DrivenOffset:  kinematics.DefaultDisplayOffsets.Driven,
		ViewWidth:     800,
		ViewHeight:    600,
		PanelWidth:    360,
		PanelHeight:   600,
		Supersample:   2,
		Frames:        72,
		Workers:       runtime.NumCPU(),
		OutputDir:     "renders",
		Format:        string(encode.WebP),
	}
}

// Flags holds CLI flag values that override the defaults. Zero values and nil
// pointers leave the corresponding field alone; pointers are used where zero
// is a meaningful setting.
type Flags struct {
	Speed         *float64
	Beta          *float64
	DrivingOffset *float64
	DrivenOffset  *float64
	Preset        string

	ViewWidth   int
	ViewHeight  int
	PanelWidth  int
	PanelHeight int
	Supersample int
	Frames      int
	Workers     int
	OutputDir   string
	Format      string
	Animate     bool
}

// Resolve applies flag overrides, then fills any unset size or count with
// its default.
func (c *Config) Resolve(flags Flags) {
	if flags.Speed != nil {
		c.Speed = *flags.Speed
	}
	if flags.Beta != nil {
		c.Beta = *flags.Beta
	}
	if flags.DrivingOffset != nil {
		c.DrivingOffset = *flags.DrivingOffset
	}
	if flags.DrivenOffset != nil {
		c.DrivenOffset = *flags.DrivenOffset
	}
	if flags.Preset != "" {
		c.Preset = flags.Preset
	}
	if flags.ViewWidth > 0 {
		c.ViewWidth = flags.ViewWidth
	}
	if flags.ViewHeight > 0 {
		c.ViewHeight = flags.ViewHeight
	}
	if flags.PanelWidth > 0 {
		c.PanelWidth = flags.PanelWidth
	}
	if flags.PanelHeight > 0 {
		c.PanelHeight = flags.PanelHeight
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Animate {
		c.Animate = true
	}

	def := Default()
	if c.ViewWidth <= 0 {
		c.ViewWidth = def.ViewWidth
	}
	if c.ViewHeight <= 0 {
		c.ViewHeight = def.ViewHeight
	}
	if c.PanelWidth <= 0 {
		c.PanelWidth = def.PanelWidth
	}
	if c.PanelHeight <= 0 {
		c.PanelHeight = def.PanelHeight
	}
	if c.Supersample <= 0 {
		c.Supersample = def.Supersample
	}
	if c.Frames <= 0 {
		c.Frames = def.Frames
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []string
	if c.Beta < 0 || c.Beta > MaxBeta {
		errs = append(errs, fmt.Sprintf("beta %g outside [0, %g]", c.Beta, MaxBeta))
	}
	if c.Speed < 0 || c.Speed > MaxSpeed {
		errs = append(errs, fmt.Sprintf("speed %g outside [0, %g]", c.Speed, MaxSpeed))
	}
	if c.Animate && c.Speed == 0 {
		errs = append(errs, "animation needs a non-zero speed")
	}
	if c.ViewWidth <= 0 || c.ViewHeight <= 0 {
		errs = append(errs, fmt.Sprintf("view size %dx%d not positive", c.ViewWidth, c.ViewHeight))
	}
	if c.PanelWidth <= 0 || c.PanelHeight <= 0 {
		errs = append(errs, fmt.Sprintf("panel size %dx%d not positive", c.PanelWidth, c.PanelHeight))
	}
	if c.Supersample < 1 || c.Supersample > 8 {
		errs = append(errs, fmt.Sprintf("supersample %d outside [1, 8]", c.Supersample))
	}
	if c.Frames <= 0 {
		errs = append(errs, fmt.Sprintf("frames %d not positive", c.Frames))
	}
	if _, err := encode.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Sprintf("format %q unknown", c.Format))
	}
	if c.Preset != "" {
		if _, err := camera.ParsePreset(c.Preset); err != nil {
			errs = append(errs, fmt.Sprintf("preset %q unknown", c.Preset))
		}
	}
	if len(errs) > 0 {
		return errors.New("config: " + strings.Join(errs, "; "))
	}
	return nil
}

// Offsets returns the display offsets.
func (c Config) Offsets() kinematics.DisplayOffsets {
	return kinematics.DisplayOffsets{Driving: c.DrivingOffset, Driven: c.DrivenOffset}
}

// FrameDelay is the time between consecutive frames when the revolution
// plays at Speed. It is zero when Speed is zero.
func (c Config) FrameDelay() time.Duration {
	if c.Speed <= 0 || c.Frames <= 0 {
		return 0
	}
	sec := 360 / c.Speed / float64(c.Frames)
	return time.Duration(sec * float64(time.Second))
}
