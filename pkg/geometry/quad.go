package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3         // One corner of the quad
	U        core.Vec3         // First edge vector
	V        core.Vec3         // Second edge vector
	Material material.Material // Material of the quad

	normal core.Vec3 // Unit normal along U × V
	d      float64   // Plane constant: normal · p = d
	w      core.Vec3 // Cached (U × V) / |U × V|² for planar coordinates
	bbox   core.AABB
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Material: mat,
		normal:   normal,
		d:        normal.Dot(corner),
	}
	if lenSq := cross.LengthSquared(); lenSq > 0 {
		q.w = cross.Multiply(1.0 / lenSq)
	}
	q.bbox = core.NewAABBFromPoints(corner, corner.Add(u), corner.Add(v), corner.Add(u).Add(v)).Pad(1e-4)
	return q
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Zero-area quads have no normal
	if q.w == (core.Vec3{}) {
		return material.HitRecord{}, false
	}

	// Parallel to the plane
	denominator := ray.Direction.Dot(q.normal)
	if math.Abs(denominator) < 1e-8 {
		return material.HitRecord{}, false
	}

	t := (q.d - ray.Origin.Dot(q.normal)) / denominator
	if t < tMin || t > tMax {
		return material.HitRecord{}, false
	}

	// Planar coordinates of the hit relative to the corner
	point := ray.At(t)
	offset := point.Subtract(q.Corner)
	alpha := q.w.Dot(offset.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(offset))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return material.HitRecord{}, false
	}

	hit := material.HitRecord{
		T:        t,
		Point:    point,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	hit.SetFaceNormal(ray, q.normal)
	return hit, true
}

// BoundingBox returns the padded bounding box of the quad
func (q *Quad) BoundingBox() core.AABB {
	return q.bbox
}
