package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	Center        core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Up direction, need not be perpendicular to the view
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Viewport width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole
	FocusDistance float64   // Distance to the plane in focus, 0 for |Center - LookAt|
}

// Camera generates primary rays. It is immutable after construction.
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis, w points backwards
	lensRadius      float64
}

// NewCamera derives the camera basis and viewport from config
func NewCamera(config CameraConfig) *Camera {
	if config.AspectRatio <= 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		config.VFov = 40
	}
	if config.Up.NearZero() {
		config.Up = core.NewVec3(0, 1, 0)
	}

	view := config.Center.Subtract(config.LookAt)
	if view.NearZero() {
		view = core.NewVec3(0, 0, 1)
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = view.Length()
	}

	w := view.Normalize()
	// Looking straight along Up leaves the basis undefined; pick another up
	if w.Cross(config.Up).NearZero() {
		config.Up = core.NewVec3(0, 0, 1)
		if math.Abs(w.Z) > 0.9 {
			config.Up = core.NewVec3(1, 0, 0)
		}
	}
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportHeight := 2.0 * math.Tan(config.VFov*math.Pi/360.0)
	viewportWidth := config.AspectRatio * viewportHeight

	horizontal := u.Multiply(viewportWidth * config.FocusDistance)
	vertical := v.Multiply(viewportHeight * config.FocusDistance)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// NewCameraFromMatrix builds a pinhole camera from a camera-to-world transform
// that looks down its local -Z axis with +Y up.
func NewCameraFromMatrix(cameraToWorld mgl64.Mat4, vfov, aspectRatio float64) *Camera {
	eye := cameraToWorld.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	forward := cameraToWorld.Mul4x1(mgl64.Vec4{0, 0, -1, 0})
	up := cameraToWorld.Mul4x1(mgl64.Vec4{0, 1, 0, 0})

	center := core.NewVec3(eye[0], eye[1], eye[2])
	return NewCamera(CameraConfig{
		Center:      center,
		LookAt:      center.Add(core.NewVec3(forward[0], forward[1], forward[2]).Normalize()),
		Up:          core.NewVec3(up[0], up[1], up[2]),
		VFov:        vfov,
		AspectRatio: aspectRatio,
	})
}

// GetRay returns the ray through viewport coordinates (s, t) in [0,1],
// with t = 0 at the bottom edge. A non-zero aperture jitters the origin
// across the lens so only the focus plane is sharp.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.Add(c.horizontal.Multiply(s)).Add(c.vertical.Multiply(t))
	return core.NewRay(origin, target.Subtract(origin))
}

// Config returns the effective configuration after defaults were applied
func (c *Camera) Config() CameraConfig {
	return c.config
}
