package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use with distinct samplers.
type Integrator interface {
	// Radiance estimates the light arriving along ray
	Radiance(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3
}
