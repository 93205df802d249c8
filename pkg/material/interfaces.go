package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material decides how light leaves a surface point. Implementations are
// shared read-only between render workers.
type Material interface {
	// Scatter returns the continuation ray and its color attenuation, or
	// false when the path is absorbed.
	Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns radiance emitted from the hit point, black for
	// non-emitting materials.
	Emitted(hit *HitRecord) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The continuation ray
	Attenuation core.Vec3 // Color attenuation applied to the radiance it carries
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	UV        core.Vec2 // Surface texture coordinates
	FrontFace bool      // Whether ray hit the outward side
	Material  Material  // Material of the hit object
}

// SetFaceNormal orients the normal against the ray and records which side was hit.
// outwardNormal is expected to be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// nonEmitting supplies the default black Emitted
type nonEmitting struct{}

// Emitted returns black
func (nonEmitting) Emitted(*HitRecord) core.Vec3 {
	return core.Vec3{}
}
