package renderer

import (
	"errors"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// Configuration errors returned before any rendering starts
var (
	ErrInvalidHeight  = errors.New("renderer: image height must be positive")
	ErrInvalidSamples = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidThreads = errors.New("renderer: thread count must not be negative")
	ErrInvalidDepth   = errors.New("renderer: max depth must be positive")
	ErrInvalidAspect  = errors.New("renderer: aspect ratio must be positive")
	ErrNoScene        = errors.New("renderer: no scene")
	ErrNoCamera       = errors.New("renderer: scene has no camera")
)

// Config contains the render settings
type Config struct {
	ImageHeight               int     // Output height in pixels
	SamplesPerPixel           int     // Number of camera rays averaged per pixel
	AspectRatio               float64 // Width / height
	ThreadCount               int     // Worker count, 0 = all logical cores
	MaxDepth                  int     // Maximum bounces per path
	Seed                      int64   // Base seed for the per-row random streams
	RussianRouletteMinBounces int     // 0 disables Russian roulette
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		ImageHeight:     225,
		SamplesPerPixel: 50,
		AspectRatio:     16.0 / 9.0,
		MaxDepth:        12,
		Seed:            42,
	}
}

// Validate rejects configurations that cannot produce an image
func (c Config) Validate() error {
	switch {
	case c.ImageHeight <= 0:
		return ErrInvalidHeight
	case c.SamplesPerPixel <= 0:
		return ErrInvalidSamples
	case c.ThreadCount < 0:
		return ErrInvalidThreads
	case c.MaxDepth <= 0:
		return ErrInvalidDepth
	case !(c.AspectRatio > 0):
		return ErrInvalidAspect
	}
	return nil
}

// Width returns the image width derived from height and aspect ratio
func (c Config) Width() int {
	return max(1, int(float64(c.ImageHeight)*c.AspectRatio))
}

// Workers returns the number of render goroutines to start
func (c Config) Workers() int {
	if c.ThreadCount > 0 {
		return c.ThreadCount
	}
	return LogicalCores()
}

// LogicalCores reports the host's logical CPU count
func LogicalCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
