package chart

import (
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
)

func sweeps() []kinematics.Sweep {
	return []kinematics.Sweep{
		kinematics.SweepRevolution(0, 72),
		kinematics.SweepRevolution(mathutil.Deg2Rad(30), 72),
	}
}

func TestSaveCharts(t *testing.T) {
	dir := t.TempDir()
	for name, save := range map[string]func(string, []kinematics.Sweep) error{
		"ratio.png": SaveRatioChart,
		"lag.png":   SaveAngleChart,
	} {
		path := filepath.Join(dir, "out", name)
		if err := save(path, sweeps()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if b := img.Bounds(); b.Dx() != int(WidthIn*DPI) || b.Dy() != int(HeightIn*DPI) {
			t.Errorf("%s: size %v", name, b.Size())
		}
	}
}

func TestSaveChartRejectsEmpty(t *testing.T) {
	if err := SaveRatioChart(filepath.Join(t.TempDir(), "x.png"), nil); err == nil {
		t.Error("empty sweep list accepted")
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.csv")
	if err := WriteCSV(path, sweeps()); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 73 {
		t.Fatalf("rows = %d, want header + 72", len(rows))
	}
	wantHeader := []string{"theta1_deg", "ratio_b0.0", "theta2_deg_b0.0", "lag_deg_b0.0", "ratio_b30.0", "theta2_deg_b30.0", "lag_deg_b30.0"}
	for i, h := range wantHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	// θ1 = 90° is row 19 (5° steps).
	r := rows[19]
	if r[0] != "90" {
		t.Fatalf("row 19 θ1 = %s", r[0])
	}
	ratio, _ := strconv.ParseFloat(r[4], 64)
	if want := kinematics.Ratio(mathutil.Deg2Rad(90), mathutil.Deg2Rad(30)); ratio-want > 1e-12 || want-ratio > 1e-12 {
		t.Errorf("ratio at 90° = %v, want %v", ratio, want)
	}
	if r[1] != "1" {
		t.Errorf("aligned ratio = %s, want 1", r[1])
	}
}

func TestWriteCSVMismatch(t *testing.T) {
	sw := []kinematics.Sweep{kinematics.SweepRevolution(0, 10), kinematics.SweepRevolution(0, 12)}
	if err := WriteCSV(filepath.Join(t.TempDir(), "x.csv"), sw); err == nil {
		t.Error("mismatched sweeps accepted")
	}
}
