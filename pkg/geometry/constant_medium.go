package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitEpsilon separates the entry and exit intersections of the boundary
const mediumExitEpsilon = 1e-4

// ConstantMedium is a homogeneous volume such as smoke or fog filling a
// closed, convex boundary shape. A ray travelling through it scatters after
// an exponentially distributed free path of mean 1/density.
type ConstantMedium struct {
	Boundary      Shape
	PhaseFunction material.Material
	Density       float64
}

// NewConstantMedium creates a medium with an isotropic phase function of the given albedo
func NewConstantMedium(boundary Shape, density float64, albedo core.Vec3) *ConstantMedium {
	return &ConstantMedium{Boundary: boundary, PhaseFunction: material.NewIsotropic(albedo), Density: density}
}

// NewTexturedConstantMedium creates a medium whose albedo comes from a texture
func NewTexturedConstantMedium(boundary Shape, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{Boundary: boundary, PhaseFunction: material.NewTexturedIsotropic(albedo), Density: density}
}

// Hit returns the scattering event inside [tMin, tMax], if any. The free
// path is derived from the ray itself, so the same ray always scatters at
// the same point however often the BVH asks.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if !(m.Density > 0) {
		return material.HitRecord{}, false
	}

	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return material.HitRecord{}, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitEpsilon, math.Inf(1))
	if !ok {
		return material.HitRecord{}, false
	}

	t0 := math.Max(math.Max(entry.T, tMin), 0)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return material.HitRecord{}, false
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t1 - t0) * rayLength
	hitDistance := -math.Log(freePathSample(ray)) / m.Density
	if hitDistance > distanceInside {
		return material.HitRecord{}, false
	}

	t := t0 + hitDistance/rayLength
	return material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the bounds of the boundary shape
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}

// freePathSample hashes the ray into a uniform number in (0, 1)
func freePathSample(ray core.Ray) float64 {
	h := uint64(0x9e3779b97f4a7c15)
	for _, f := range [6]float64{
		ray.Origin.X, ray.Origin.Y, ray.Origin.Z,
		ray.Direction.X, ray.Direction.Y, ray.Direction.Z,
	} {
		h = splitmix64(h ^ math.Float64bits(f))
	}
	return (float64(h>>11) + 0.5) / (1 << 53)
}

func splitmix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
