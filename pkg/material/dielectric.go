package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Dielectric represents a clear material like glass that both reflects and refracts
type Dielectric struct {
	nonEmitting
	RefractiveIndex float64 // Index of refraction relative to the enclosing medium
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter chooses reflection with probability equal to the Fresnel
// reflectance and refraction otherwise. Total internal reflection always reflects.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		// Entering from outside
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(-unitDirection.Dot(hit.Normal), 1.0)

	var direction core.Vec3
	refracted, ok := core.Refract(unitDirection, hit.Normal, refractionRatio)
	if !ok || Reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = core.Reflect(unitDirection, hit.Normal)
	} else {
		direction = refracted
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: core.NewVec3(1.0, 1.0, 1.0),
	}, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// Matched indices have no interface and reflect nothing.
func Reflectance(cosine, refractionRatio float64) float64 {
	if refractionRatio == 1 {
		return 0
	}
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
