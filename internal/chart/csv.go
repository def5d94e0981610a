package chart

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
)

// WriteCSV writes the sweeps side by side: the driving angle in degrees, then
// ratio, driven angle and lag columns for each β. All sweeps must share the
// same driving-angle samples.
func WriteCSV(path string, sweeps []kinematics.Sweep) error {
	if len(sweeps) == 0 {
		return errors.New("chart: csv: no sweeps")
	}
	n := len(sweeps[0].Theta1)
	header := []string{"theta1_deg"}
	cols := [][]float64{degrees(sweeps[0].Theta1)}
	for _, sw := range sweeps {
		if len(sw.Theta1) != n || len(sw.Ratio) != n || len(sw.Theta2) != n {
			return errors.New("chart: csv: sweep size mismatch")
		}
		b := mathutil.Rad2Deg(sw.Beta)
		header = append(header,
			fmt.Sprintf("ratio_b%.1f", b),
			fmt.Sprintf("theta2_deg_b%.1f", b),
			fmt.Sprintf("lag_deg_b%.1f", b),
		)
		cols = append(cols, sw.Ratio, degrees(sw.Theta2), sw.Lag())
	}
	return writeCSV(path, header, cols)
}

func degrees(rad []float64) []float64 {
	out := make([]float64, len(rad))
	for i, r := range rad {
		out[i] = mathutil.Rad2Deg(r)
	}
	return out
}

func writeCSV(filename string, header []string, cols [][]float64) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("chart: csv: mkdir: %w", err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("chart: csv: create %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("chart: csv: header: %w", err)
	}
	n := len(cols[0])
	row := make([]string, len(cols))
	for r := 0; r < n; r++ {
		for c := range cols {
			row[c] = fmt.Sprintf("%.15g", cols[c][r])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("chart: csv: row %d: %w", r, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("chart: csv: flush: %w", err)
	}
	return nil
}
