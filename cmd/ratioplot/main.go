package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cardan-sim/internal/chart"
	"cardan-sim/internal/config"
	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
)

func main() {
	betas := flag.String("betas", "0,15,30,45,60", "Comma-separated misalignment angles in degrees")
	samples := flag.Int("samples", 720, "Samples per revolution")
	outputDir := flag.String("output", "charts", "Output directory")
	flag.Parse()

	list, err := parseBetas(*betas)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -betas: %v\n", err)
		os.Exit(1)
	}
	if *samples < 4 {
		fmt.Fprintln(os.Stderr, "Error: -samples must be at least 4")
		os.Exit(1)
	}

	sweeps := make([]kinematics.Sweep, len(list))
	for i, b := range list {
		sweeps[i] = kinematics.SweepRevolution(mathutil.Deg2Rad(b), *samples)
		lo, loAt, hi, hiAt := sweeps[i].Extremes()
		fmt.Printf("β = %5.1f°: ratio %.4f (%.1f°) .. %.4f (%.1f°), 1/cos²β = %.4f, max deviation %.3f°\n",
			b, lo, mathutil.Rad2Deg(loAt), hi, mathutil.Rad2Deg(hiAt),
			kinematics.SecantRatio(mathutil.Deg2Rad(b)), sweeps[i].MaxDeviation())
	}

	outputs := []struct {
		name  string
		write func(string, []kinematics.Sweep) error
	}{
		{"ratio.png", chart.SaveRatioChart},
		{"lag.png", chart.SaveAngleChart},
		{"sweep.csv", chart.WriteCSV},
	}
	failed := false
	for _, o := range outputs {
		path := filepath.Join(*outputDir, o.name)
		if err := o.write(path, sweeps); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("Wrote %s\n", path)
	}
	if failed {
		os.Exit(1)
	}
}

func parseBetas(s string) ([]float64, error) {
	var out []float64
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		if v < 0 || v > config.MaxBeta {
			return nil, fmt.Errorf("%g outside [0, %g]", v, config.MaxBeta)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no angles in %q", s)
	}
	return out, nil
}
