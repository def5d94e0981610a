package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
)

// Manifest describes one rendered revolution.
type Manifest struct {
	Beta        float64         `json:"beta_deg"`
	Speed       float64         `json:"speed_deg_s"`
	SecantRatio float64         `json:"secant_ratio"`
	MinRatio    float64         `json:"min_ratio"`
	MaxRatio    float64         `json:"max_ratio"`
	Animation   string          `json:"animation,omitempty"`
	Frames      []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame       int     `json:"frame"`
	Theta1      float64 `json:"theta1_deg"`
	DrivingDeg  float64 `json:"driving_display_deg"`
	DrivenDeg   float64 `json:"driven_display_deg"`
	Ratio       float64 `json:"ratio"`
	DrivenSpeed float64 `json:"driven_speed_deg_s"`
	Image       string  `json:"image,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// NewManifest summarises results for a run at the given β and speed in degrees.
// Failed frames keep their readout but carry no image.
func NewManifest(beta, speed float64, results []Result) Manifest {
	m := Manifest{
		Beta:        beta,
		Speed:       speed,
		SecantRatio: kinematics.SecantRatio(mathutil.Deg2Rad(beta)),
		Frames:      make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{
			Frame:       r.Frame,
			Theta1:      mathutil.Rad2Deg(r.Theta1),
			DrivingDeg:  r.Readout.DrivingDeg,
			DrivenDeg:   r.Readout.DrivenDeg,
			Ratio:       r.Readout.Ratio,
			DrivenSpeed: r.Readout.DrivenSpeed,
			Error:       r.Error,
		}
		if r.Success {
			e.Image = r.Image
		}
		m.Frames[i] = e
		if i == 0 || r.Readout.Ratio < m.MinRatio {
			m.MinRatio = r.Readout.Ratio
		}
		if i == 0 || r.Readout.Ratio > m.MaxRatio {
			m.MaxRatio = r.Readout.Ratio
		}
	}
	return m
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: manifest: %w", err)
	}
	return nil
}
