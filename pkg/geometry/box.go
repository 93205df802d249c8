package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Box represents a cuboid made up of 6 quads with optional rotation
type Box struct {
	Center   core.Vec3         // Center point of the box
	Size     core.Vec3         // Half-extents along each local axis
	Rotation core.Vec3         // Rotation angles in radians (X, Y, Z)
	Material material.Material // Material for all faces
	faces    [6]*Quad
	bbox     core.AABB
}

// NewBox creates an oriented box. Size holds half-extents, so a size of
// (1,1,1) creates a 2x2x2 box. Rotation is applied around X, Y then Z.
func NewBox(center, size, rotation core.Vec3, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Material: mat,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a box spanning the corners min and max
func NewAxisAlignedBox(min, max core.Vec3, mat material.Material) *Box {
	return NewBox(min.Add(max).Multiply(0.5), max.Subtract(min).Multiply(0.5), core.Vec3{}, mat)
}

// generateFaces builds outward-facing quads from the 8 transformed corners
func (b *Box) generateFaces() {
	var corners [8]core.Vec3
	for i := range corners {
		// Bit i selects the sign on each axis: bit 0 for X, bit 1 for Y, bit 2 for Z
		local := core.NewVec3(
			b.Size.X*float64((i&1)*2-1),
			b.Size.Y*float64((i>>1&1)*2-1),
			b.Size.Z*float64((i>>2&1)*2-1),
		)
		corners[i] = local.Rotate(b.Rotation).Add(b.Center)
	}

	// corner, then two edges ordered so U × V points outward
	faces := [6][3]int{
		{4, 5, 6}, // +Z
		{1, 0, 3}, // -Z
		{5, 1, 7}, // +X
		{0, 4, 2}, // -X
		{6, 7, 2}, // +Y
		{0, 1, 4}, // -Y
	}
	for i, f := range faces {
		origin := corners[f[0]]
		b.faces[i] = NewQuad(origin, corners[f[1]].Subtract(origin), corners[f[2]].Subtract(origin), b.Material)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...).Pad(1e-4)
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestT := tMax

	for _, face := range b.faces {
		if hit, ok := face.Hit(ray, tMin, closestT); ok {
			closestT = hit.T
			closest = hit
			hitAnything = true
		}
	}
	return closest, hitAnything
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}
