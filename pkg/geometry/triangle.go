package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices.
// Per-vertex normals and UVs are optional; when set they are interpolated
// across the face.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   material.Material

	normals *[3]core.Vec3 // Optional shading normals
	uvs     *[3]core.Vec2 // Optional texture coordinates
	normal  core.Vec3     // Geometric normal
	bbox    core.AABB
}

// NewTriangle creates a flat triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2).Pad(1e-6)
	return t
}

// WithNormals sets per-vertex shading normals
func (t *Triangle) WithNormals(n0, n1, n2 core.Vec3) *Triangle {
	t.normals = &[3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	return t
}

// WithUVs sets per-vertex texture coordinates
func (t *Triangle) WithUVs(uv0, uv1, uv2 core.Vec2) *Triangle {
	t.uvs = &[3]core.Vec2{uv0, uv1, uv2}
	return t
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// Both sides are hittable.
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	// Near-zero determinant: ray parallel to the plane or zero-area triangle
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return material.HitRecord{}, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return material.HitRecord{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return material.HitRecord{}, false
	}

	dist := f * edge2.Dot(q)
	if dist < tMin || dist > tMax {
		return material.HitRecord{}, false
	}

	w := 1 - u - v
	hit := material.HitRecord{
		T:        dist,
		Point:    ray.At(dist),
		Material: t.Material,
		UV:       core.NewVec2(u, v),
	}

	normal := t.normal
	if t.normals != nil {
		interpolated := t.normals[0].Multiply(w).Add(t.normals[1].Multiply(u)).Add(t.normals[2].Multiply(v))
		if !interpolated.NearZero() {
			normal = interpolated.Normalize()
		}
	}
	hit.SetFaceNormal(ray, normal)

	if t.uvs != nil {
		hit.UV = core.NewVec2(
			w*t.uvs[0].X+u*t.uvs[1].X+v*t.uvs[2].X,
			w*t.uvs[0].Y+u*t.uvs[1].Y+v*t.uvs[2].Y,
		)
	}
	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}
