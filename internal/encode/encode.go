// Package encode writes rendered frames to disk.
package encode

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an output image format.
type Format string

const (
	WebP Format = "webp"
	PNG  Format = "png"
	TGA  Format = "tga"
)

// Formats lists the supported formats.
var Formats = []Format{WebP, PNG, TGA}

// ParseFormat accepts a format name, case-insensitively, with or without a
// leading dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, k := range Formats {
		if f == k {
			return f, nil
		}
	}
	return "", fmt.Errorf("encode: unknown format %q (want webp, png or tga)", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Write encodes img to w.
func Write(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case PNG:
		err = png.Encode(w, img)
	case TGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("encode: unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode: %s: %w", f, err)
	}
	return nil
}

// WriteFile encodes img to path, creating parent directories.
func WriteFile(path string, img image.Image, f Format) error {
	return writeFile(path, func(w io.Writer) error {
		return Write(w, img, f)
	})
}

// WriteAnimation writes frames as a looping animated WebP with a fixed delay
// per frame.
func WriteAnimation(path string, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode: animation %s: no frames", path)
	}
	ms := uint(delay / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	anim := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
		LoopCount: 0,
	}
	for i := range anim.Durations {
		anim.Durations[i] = ms
	}
	return writeFile(path, func(w io.Writer) error {
		if err := nativewebp.EncodeAll(w, anim, nil); err != nil {
			return fmt.Errorf("encode: animated webp: %w", err)
		}
		return nil
	})
}

func writeFile(path string, enc func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("encode: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("encode: create %s: %w", path, err)
	}
	if err := enc(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("encode: close %s: %w", path, err)
	}
	return nil
}
