package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image of linear RGB texels
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// Evaluate samples the nearest texel. UV wraps; v = 0 is the bottom row.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		// Cyan marks a missing texture
		return core.NewVec3(0, 1, 1)
	}

	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1-v)*float64(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+max(x, 0)]
}
