package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Emissive represents a light-emitting material. It emits from both sides
// and never scatters.
type Emissive struct {
	Emission ColorSource // Emitted radiance
}

// NewEmissive creates an emissive material with constant emission
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emission: NewSolidColor(emission)}
}

// NewTexturedEmissive creates an emissive material driven by a texture
func NewTexturedEmissive(emission ColorSource) *Emissive {
	return &Emissive{Emission: emission}
}

// Scatter always absorbs; the path ends at a light
func (e *Emissive) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emission at the hit point
func (e *Emissive) Emitted(hit *HitRecord) core.Vec3 {
	return e.Emission.Evaluate(hit.UV, hit.Point)
}
