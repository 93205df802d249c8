package renderer

import (
	"context"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Renderer turns a preprocessed scene into a framebuffer
type Renderer struct {
	scene      *scene.Scene
	config     Config
	width      int
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRenderer validates config and prepares a renderer for sc. The scene's
// BVH is built here if Preprocess has not been called yet.
func NewRenderer(sc *scene.Scene, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrNoScene
	}
	if sc.Camera == nil {
		return nil, ErrNoCamera
	}
	if sc.BVH == nil {
		if err := sc.Preprocess(); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:  sc,
		config: config,
		width:  config.Width(),
		integrator: integrator.NewPathTracingIntegrator(integrator.Config{
			MaxDepth:                  config.MaxDepth,
			RussianRouletteMinBounces: config.RussianRouletteMinBounces,
		}),
		logger: logger,
	}, nil
}

// Config returns the render configuration
func (r *Renderer) Config() Config {
	return r.config
}

// Render traces the full frame. On cancellation the partially filled
// framebuffer is discarded and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	framebuf := NewFramebuffer(r.width, r.config.ImageHeight)
	pool := NewWorkerPool(r, framebuf, r.config.Workers())

	r.logger.Printf("rendering %q at %dx%d, %d spp, max depth %d, %d workers",
		r.scene.Name, r.width, r.config.ImageHeight, r.config.SamplesPerPixel, r.config.MaxDepth, pool.GetNumWorkers())

	start := time.Now()
	if err := pool.Run(ctx); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		Width:           r.width,
		Height:          r.config.ImageHeight,
		SamplesPerPixel: r.config.SamplesPerPixel,
		RenderTime:      time.Since(start),
		Workers:         pool.Stats(),
	}
	for _, w := range stats.Workers {
		stats.TotalSamples += w.Samples
		stats.DroppedSamples += w.DroppedSamples
	}
	return framebuf, stats, nil
}

// renderRow fills image row y and returns the accepted and dropped sample counts
func (r *Renderer) renderRow(y int, framebuf *Framebuffer, sampler core.Sampler) (int, int) {
	camera := r.scene.Camera
	width := float64(framebuf.Width)
	height := float64(framebuf.Height)
	// Camera t runs bottom to top while framebuffer rows run top to bottom
	j := float64(framebuf.Height - 1 - y)

	samples, dropped := 0, 0
	for x := 0; x < framebuf.Width; x++ {
		var ps PixelStats
		for s := 0; s < r.config.SamplesPerPixel; s++ {
			jitter := sampler.Get2D()
			u := (float64(x) + jitter.X) / width
			v := (j + jitter.Y) / height
			ray := camera.GetRay(u, v, sampler)
			ps.AddSample(r.integrator.Radiance(ray, r.scene, sampler))
		}
		framebuf.Set(x, y, ps.GetColor())
		samples += ps.SampleCount
		dropped += ps.DroppedCount
	}
	return samples, dropped
}
