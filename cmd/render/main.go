package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cardan-sim/internal/batch"
	"cardan-sim/internal/camera"
	"cardan-sim/internal/config"
	"cardan-sim/internal/encode"
	"cardan-sim/internal/raster"
	"cardan-sim/internal/scene"
	"cardan-sim/internal/sim"
)

func main() {
	// CLI flags
	speed := flag.Float64("speed", 0, "Driving speed in deg/s (default: 60)")
	beta := flag.Float64("beta", 0, "Misalignment angle in degrees, 0-60 (default: 30)")
	drivingOffset := flag.Float64("driving-offset", 0, "Display offset for the driving angle (default: -180)")
	drivenOffset := flag.Float64("driven-offset", 0, "Display offset for the driven angle (default: 90)")
	preset := flag.String("view", "", "Camera preset: +X, -X, +Y, -Y, +Z, -Z, ISO")
	frames := flag.Int("frames", 0, "Frames per revolution (default: 72)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Frame format: webp, png, tga (default: webp)")
	supersample := flag.Int("ss", 0, "Supersample factor 1-8 (default: 2)")
	size := flag.String("size", "", "3D view size WxH (default: 800x600)")
	panelSize := flag.String("panel", "", "Panel size WxH (default: 360x600)")
	animate := flag.Bool("animate", false, "Also write revolution.webp, an animated WebP of all frames")
	caption := flag.Bool("caption", true, "Draw the readout in the 3D view")

	flag.Parse()

	flags := config.Flags{
		Preset:      *preset,
		Frames:      *frames,
		Workers:     *workers,
		OutputDir:   *outputDir,
		Format:      *format,
		Supersample: *supersample,
		Animate:     *animate,
	}
	// Zero is a meaningful angle, so only explicitly given values override.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "speed":
			flags.Speed = speed
		case "beta":
			flags.Beta = beta
		case "driving-offset":
			flags.DrivingOffset = drivingOffset
		case "driven-offset":
			flags.DrivenOffset = drivenOffset
		}
	})
	var err error
	if flags.ViewWidth, flags.ViewHeight, err = parseSize(*size); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -size: %v\n", err)
		os.Exit(1)
	}
	if flags.PanelWidth, flags.PanelHeight, err = parseSize(*panelSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error: -panel: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmtOut, _ := encode.ParseFormat(cfg.Format)

	fonts, err := raster.LoadFonts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	s := sim.New(sim.Options{
		Speed:       cfg.Speed,
		Beta:        cfg.Beta,
		Offsets:     cfg.Offsets(),
		Style:       scene.DefaultStyle(),
		ViewWidth:   cfg.ViewWidth,
		ViewHeight:  cfg.ViewHeight,
		PanelWidth:  cfg.PanelWidth,
		PanelHeight: cfg.PanelHeight,
		Caption:     *caption,
	})
	if cfg.Preset != "" {
		p, _ := camera.ParsePreset(cfg.Preset)
		s.ApplyPreset(p)
	}

	// Print summary
	fmt.Printf("Cardan joint → %s (β = %.1f°, ω1 = %.0f°/s)\n", fmtOut, cfg.Beta, cfg.Speed)
	fmt.Printf("Frames: %d, Workers: %d, Size: %dx%d + %dx%d, SS: %d\n",
		cfg.Frames, cfg.Workers, cfg.ViewWidth, cfg.ViewHeight, cfg.PanelWidth, cfg.PanelHeight, cfg.Supersample)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	results, images := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Format:      fmtOut,
		Frames:      cfg.Frames,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Fonts:       fonts,
		KeepImages:  cfg.Animate,
		Progress:    os.Stdout,
	}, s)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(results))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	manifest := batch.NewManifest(cfg.Beta, cfg.Speed, results)

	if cfg.Animate && failed == 0 {
		animPath := filepath.Join(cfg.OutputDir, "revolution.webp")
		if err := encode.WriteAnimation(animPath, images, cfg.FrameDelay()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: animation write failed: %v\n", err)
		} else {
			manifest.Animation = "revolution.webp"
			fmt.Printf("Animation: %s\n", animPath)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
