package batch

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"cardan-sim/internal/encode"
	"cardan-sim/internal/kinematics"
	"cardan-sim/internal/mathutil"
	"cardan-sim/internal/raster"
	"cardan-sim/internal/sim"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Format      encode.Format
	Frames      int
	Supersample int
	Workers     int
	Fonts       *raster.Fonts

	// KeepImages retains every composed frame in memory, in order, for
	// building an animation afterwards.
	KeepImages bool

	// Progress receives periodic "[n/total] x frames/sec" lines; nil is silent.
	Progress io.Writer
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Theta1  float64 // radians
	Image   string  // path relative to OutputDir
	Readout kinematics.Readout
	Success bool
	Error   string
}

// FrameAngle is the driving angle of frame i out of n evenly spaced over one
// revolution.
func FrameAngle(i, n int) float64 {
	return mathutil.Tau * float64(i) / float64(n)
}

// FrameName is the file name of frame i.
func FrameName(i int, f encode.Format) string {
	return fmt.Sprintf("frame_%04d%s", i, f.Ext())
}

// Run renders cfg.Frames frames of one revolution using a worker pool. s is
// only read while the pool runs. When cfg.KeepImages is set the composed
// frames are returned in order; failed frames are nil.
func Run(cfg Config, s *sim.Simulator) ([]Result, []image.Image) {
	total := cfg.Frames
	if total <= 0 {
		return nil, nil
	}
	workers := max(1, cfg.Workers)
	results := make([]Result, total)
	var images []image.Image
	if cfg.KeepImages {
		images = make([]image.Image, total)
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f frames/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				var img image.Image
				results[idx], img = processFrame(cfg, s, idx)
				if images != nil {
					images[idx] = img
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	return results, images
}

// RenderFrame composes the 3D view and the fixed panel of f side by side.
func RenderFrame(f sim.Frame, fonts *raster.Fonts, supersample int) *image.NRGBA {
	view := raster.Render(f.View, fonts, supersample)
	pnl := raster.Render(f.Panel, fonts, supersample)
	return raster.SideBySide(view, pnl)
}

func processFrame(cfg Config, s *sim.Simulator, idx int) (Result, image.Image) {
	theta := FrameAngle(idx, cfg.Frames)
	f := s.At(theta)
	res := Result{
		Frame:   idx,
		Theta1:  theta,
		Image:   FrameName(idx, cfg.Format),
		Readout: f.Readout,
	}

	img := RenderFrame(f, cfg.Fonts, cfg.Supersample)
	if img.Bounds().Empty() {
		res.Error = "empty frame"
		return res, nil
	}

	if cfg.OutputDir != "" {
		if err := encode.WriteFile(filepath.Join(cfg.OutputDir, res.Image), img, cfg.Format); err != nil {
			res.Error = err.Error()
			return res, nil
		}
	}

	res.Success = true
	return res, img
}
