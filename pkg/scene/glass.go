package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewGlassScene creates glass and textured spheres on a checkered floor
func NewGlassScene(aspectRatio float64) *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:        core.NewVec3(0, 1.5, 5),
		LookAt:        core.NewVec3(0, 0.6, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   aspectRatio,
		VFov:          35.0,
		Aperture:      0.03,
		FocusDistance: 5.0,
	})

	s := New("glass", camera)
	s.Background = NewGradientBackground(core.NewVec3(0.35, 0.45, 0.7), core.NewVec3(0.9, 0.9, 0.9))

	checker := material.NewCheckerTexture(3, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.1, 0.1, 0.12))
	floor := material.NewTexturedLambertian(checker)
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(core.NewVec3(0.9, 0.85, 0.8), 4, 7))
	glass := material.NewDielectric(1.5)
	water := material.NewDielectric(1.33)
	diamond := material.NewDielectric(2.4)

	s.Add(
		NewGroundQuad(core.NewVec3(0, 0, 0), 100, floor),
		geometry.NewSphere(core.NewVec3(-1.6, 0.6, 0), 0.6, glass),
		geometry.NewSphere(core.NewVec3(0, 0.6, 0), 0.6, marble),
		geometry.NewSphere(core.NewVec3(1.6, 0.6, 0), 0.6, water),
		geometry.NewSphere(core.NewVec3(0.8, 0.3, 1.2), 0.3, diamond),
		// Bubble: glass shell around an air pocket
		geometry.NewSphere(core.NewVec3(-0.8, 0.3, 1.2), 0.3, glass),
		geometry.NewSphere(core.NewVec3(-0.8, 0.3, 1.2), -0.27, glass),
	)

	s.AddQuadLight(core.NewVec3(-1.5, 4, -1.5), core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 3), core.NewVec3(6, 6, 6))

	return s
}
