package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "height",
		Value: renderer.DefaultConfig().ImageHeight,
		Usage: "frame height in pixels",
	},
	cli.IntFlag{
		Name:  "spp",
		Value: renderer.DefaultConfig().SamplesPerPixel,
		Usage: "samples per pixel",
	},
	cli.Float64Flag{
		Name:  "aspect",
		Usage: "aspect ratio (width / height); defaults to 16/9 or the glTF camera's ratio",
	},
	cli.IntFlag{
		Name:  "threads, t",
		Usage: "number of render threads (0 = all logical cores)",
	},
	cli.IntFlag{
		Name:  "depth",
		Value: renderer.DefaultConfig().MaxDepth,
		Usage: "maximum number of bounces per path",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: renderer.DefaultConfig().Seed,
		Usage: "random seed; the same seed gives the same image for any thread count",
	},
	cli.IntFlag{
		Name:  "rr-bounces",
		Usage: "bounces before Russian roulette path termination (0 = disabled)",
	},
	cli.StringFlag{
		Name:  "scene, s",
		Value: "default",
		Usage: "built-in scene name (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "gltf, g",
		Usage: "load the scene from a glTF file instead of a built-in scene",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "output/render.png",
		Usage: "image filename (.png, .jpg, .bmp or .tif)",
	},
}

// RenderFrame renders a single frame and writes it to disk.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	outFile := ctx.String("out")
	if !output.Supported(outFile) {
		return cli.NewExitError(fmt.Sprintf("unsupported output format: %s", outFile), 1)
	}

	sc, aspect, err := loadScene(ctx.String("scene"), ctx.String("gltf"), ctx.Float64("aspect"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	config := renderer.Config{
		ImageHeight:               ctx.Int("height"),
		SamplesPerPixel:           ctx.Int("spp"),
		AspectRatio:               aspect,
		ThreadCount:               ctx.Int("threads"),
		MaxDepth:                  ctx.Int("depth"),
		Seed:                      ctx.Int64("seed"),
		RussianRouletteMinBounces: ctx.Int("rr-bounces"),
	}
	if config.RussianRouletteMinBounces >= config.MaxDepth {
		logger.Noticef("rr-bounces %d is not below depth %d; Russian roulette disabled", config.RussianRouletteMinBounces, config.MaxDepth)
		config.RussianRouletteMinBounces = 0
	}

	r, err := renderer.NewRenderer(sc, config, log.Printer{Logger: logger})
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	logger.Noticef("scene %q: %d primitives", sc.Name, sc.PrimitiveCount())
	logger.Infof("bvh: %d nodes over %d shapes, depth %d", sc.BVH.NodeCount(), sc.BVH.ShapeCount(), sc.BVH.Depth())
	framebuf, stats, err := r.Render(context.Background())
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if err := output.Write(outFile, framebuf.ToImage()); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	displayFrameStats(stats)
	if stats.DroppedSamples > 0 {
		logger.Warningf("dropped %d non-finite samples", stats.DroppedSamples)
	}
	logger.Noticef("wrote %s", outFile)
	return nil
}

// loadScene returns the requested scene and the aspect ratio to render it at.
// A glTF path takes precedence over the built-in scene name.
func loadScene(name, gltfPath string, aspect float64) (*scene.Scene, float64, error) {
	if gltfPath != "" {
		sc, err := loaders.LoadGLTF(gltfPath, aspect)
		if err != nil {
			return nil, 0, err
		}
		return sc, sc.Camera.Config().AspectRatio, nil
	}

	if aspect == 0 {
		aspect = renderer.DefaultConfig().AspectRatio
	}
	sc, err := scene.Build(name, aspect)
	if err != nil {
		return nil, 0, err
	}
	return sc, aspect, nil
}

func displayFrameStats(stats renderer.RenderStats) {
	logger.Noticef("frame statistics (%dx%d, %d spp)\n%s", stats.Width, stats.Height, stats.SamplesPerPixel, stats.Table())
}
