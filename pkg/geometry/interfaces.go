package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the nearest intersection with t in [tMin, tMax].
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
	BoundingBox() core.AABB
}
