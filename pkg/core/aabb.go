package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB returns an inverted box that acts as the identity for Union
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{Min: NewVec3(inf, inf, inf), Max: NewVec3(-inf, -inf, -inf)}
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Extend(p)
	}
	return box
}

// Extend grows the box to include point p
func (aabb AABB) Extend(p Vec3) AABB {
	return AABB{Min: aabb.Min.Min(p), Max: aabb.Max.Max(p)}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Hit tests the ray against the box using the slab method and returns the
// entry distance clipped to [tMin, tMax].
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) (float64, bool) {
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)
		lo, hi := aabb.Min.Axis(axis), aabb.Max.Axis(axis)

		// Parallel to the slab: either always inside or never
		if direction == 0 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		inv := 1.0 / direction
		t0 := (lo - origin) * inv
		t1 := (hi - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB, zero for an empty box
func (aabb AABB) SurfaceArea() float64 {
	if !aabb.IsValid() {
		return 0
	}
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if min <= max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Pad returns a copy where any axis thinner than delta is widened to delta.
// Flat primitives such as quads need this for the slab test to be stable.
func (aabb AABB) Pad(delta float64) AABB {
	out := aabb
	half := delta / 2
	if out.Max.X-out.Min.X < delta {
		out.Min.X -= half
		out.Max.X += half
	}
	if out.Max.Y-out.Min.Y < delta {
		out.Min.Y -= half
		out.Max.Y += half
	}
	if out.Max.Z-out.Min.Z < delta {
		out.Min.Z -= half
		out.Max.Z += half
	}
	return out
}
