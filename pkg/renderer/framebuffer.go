package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds the per-pixel sample means in linear RGB, unclamped.
// Gamma 2 encoding and the clamp to [0, 1] happen only in DisplayColor,
// which ToImage and AverageLuminance read.
// Row 0 is the top of the image. Each row is written by exactly one worker.
type Framebuffer struct {
	Width  int
	Height int
	pixels []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the linear color of pixel (x, y)
func (f *Framebuffer) Set(x, y int, c core.Vec3) {
	f.pixels[y*f.Width+x] = c
}

// At returns the linear color of pixel (x, y)
func (f *Framebuffer) At(x, y int) core.Vec3 {
	return f.pixels[y*f.Width+x]
}

// DisplayColor returns the gamma corrected color of pixel (x, y) clamped to [0, 1]
func (f *Framebuffer) DisplayColor(x, y int) core.Vec3 {
	return f.At(x, y).GammaCorrect(2.0).Clamp(0.0, 1.0)
}

// ToImage converts the framebuffer to an 8-bit image
func (f *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.DisplayColor(x, y)))
		}
	}
	return img
}

// AverageLuminance returns the mean luminance of the display colors
func (f *Framebuffer) AverageLuminance() float64 {
	if len(f.pixels) == 0 {
		return 0
	}
	total := 0.0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			total += f.DisplayColor(x, y).Luminance()
		}
	}
	return total / float64(len(f.pixels))
}

func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(255.999 * c.X),
		G: uint8(255.999 * c.Y),
		B: uint8(255.999 * c.Z),
		A: 255,
	}
}
