package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: light is
// scattered uniformly over the whole sphere of directions.
type Isotropic struct {
	nonEmitting
	Albedo ColorSource
}

// NewIsotropic creates an isotropic phase function with a solid albedo
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function whose albedo
// varies with the scattering point
func NewTexturedIsotropic(albedo ColorSource) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a uniformly random direction; the surface normal is ignored
func (i *Isotropic) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, core.SampleOnUnitSphere(sampler.Get2D())),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}
