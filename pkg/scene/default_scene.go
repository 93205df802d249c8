package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(aspectRatio float64) *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        40.0,
		Aperture:    0.05,
	})

	s := New("default", camera)
	s.Background = NewGradientBackground(
		core.NewVec3(0.5, 0.7, 1.0), // blue sky
		core.NewVec3(1.0, 1.0, 1.0), // white horizon
	)

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	glass := material.NewDielectric(1.5)

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, glass),
		NewGroundQuad(core.NewVec3(0, 0, 0), 10000.0, lambertianGreen),
	)

	// Hollow glass shell with a blue core
	s.Add(
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, glass),
		geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue),
	)

	// Distant warm sun
	s.AddSphereLight(core.NewVec3(30, 30.5, 15), 10, core.NewVec3(15.0, 14.0, 13.0))

	return s
}
