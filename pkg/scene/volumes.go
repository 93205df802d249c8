package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// volumesSeed keeps the ground heights and sphere cluster identical between runs
const volumesSeed = 554

// NewVolumesScene creates a showcase of participating media: a glass ball
// filled with blue smoke and a thin fog over the whole world, among boxes,
// metal, glass, marble and a cluster of small spheres.
func NewVolumesScene(aspectRatio float64) *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(478, 278, -600),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        40.0,
	})

	s := New("volumes", camera)
	random := rand.New(rand.NewSource(volumesSeed))

	// Ground of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide, boxWidth = 15, 100.0
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000 + float64(i)*boxWidth
			z0 := -1000 + float64(j)*boxWidth
			y1 := 1 + 100*random.Float64()
			s.Add(geometry.NewAxisAlignedBox(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+boxWidth, y1, z0+boxWidth),
				ground,
			))
		}
	}

	s.AddQuadLight(
		core.NewVec3(123, 554, 147),
		core.NewVec3(300, 0, 0),
		core.NewVec3(0, 0, 265),
		core.NewVec3(7, 7, 7),
	)

	s.Add(
		geometry.NewSphere(core.NewVec3(400, 400, 200), 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 45, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
		geometry.NewSphere(core.NewVec3(220, 280, 200), 80, material.NewTexturedLambertian(
			material.NewNoiseTexture(core.NewVec3(1, 1, 1), 0.1, volumesSeed),
		)),
	)

	// Glass shell around blue smoke
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(shell, geometry.NewConstantMedium(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin fog over everything
	fog := geometry.NewSphere(core.Vec3{}, 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMedium(fog, 0.0001, core.NewVec3(1, 1, 1)))

	// Cluster of small white spheres in a 165 unit cube, turned 15 degrees about Y
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	sin, cos := math.Sincos(15 * math.Pi / 180)
	offset := core.NewVec3(-100, 270, 395)
	for k := 0; k < 1000; k++ {
		p := core.NewVec3(165*random.Float64(), 165*random.Float64(), 165*random.Float64())
		turned := core.NewVec3(cos*p.X+sin*p.Z, p.Y, -sin*p.X+cos*p.Z)
		s.Add(geometry.NewSphere(turned.Add(offset), 10, white))
	}

	return s
}
