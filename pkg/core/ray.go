package core

import "math"

// Ray represents the parametric line Origin + t*Direction restricted to the
// interval [TMin, TMax]. Direction is not required to be unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray valid over [0, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: 0, TMax: math.Inf(1)}
}

// NewRayInterval creates a ray valid over [tMin, tMax]
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Degenerate reports whether the ray direction is zero or not finite
func (r Ray) Degenerate() bool {
	return r.Direction.LengthSquared() == 0 || !r.Direction.IsFinite() || !r.Origin.IsFinite()
}
