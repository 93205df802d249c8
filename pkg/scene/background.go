package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Background supplies radiance for rays that leave the scene
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// ConstantBackground returns the same color in every direction
type ConstantBackground struct {
	Emission core.Vec3
}

// NewConstantBackground creates a uniform background
func NewConstantBackground(emission core.Vec3) *ConstantBackground {
	return &ConstantBackground{Emission: emission}
}

// Color implements Background
func (b *ConstantBackground) Color(ray core.Ray) core.Vec3 {
	return b.Emission
}

// GradientBackground blends from Bottom (looking down) to Top (looking up)
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a vertical sky gradient
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// Color implements Background
func (b *GradientBackground) Color(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
