package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// cornellSize is the edge length of the standard Cornell box
const cornellSize = 555.0

// NewCornellScene creates a classic Cornell box scene with quad walls and area lighting
func NewCornellScene(aspectRatio float64) *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        40.0,
	})

	s := New("cornell", camera)

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	addCornellWalls(s, white, red, green)

	// Ceiling light, just below the ceiling
	lightSize := 130.0
	lightOffset := (cornellSize - lightSize) / 2.0
	s.AddQuadLight(
		core.NewVec3(lightOffset, cornellSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		core.NewVec3(15.0, 15.0, 15.0),
	)

	// Tall and short boxes, turned toward each other
	s.Add(
		geometry.NewBox(
			core.NewVec3(185, 165, 351),
			core.NewVec3(82.5, 165, 82.5),
			core.NewVec3(0, 15*math.Pi/180, 0),
			white,
		),
		geometry.NewBox(
			core.NewVec3(370, 82.5, 169),
			core.NewVec3(82.5, 82.5, 82.5),
			core.NewVec3(0, -18*math.Pi/180, 0),
			white,
		),
	)

	return s
}

// addCornellWalls adds the floor, ceiling, back wall and the two colored side walls
func addCornellWalls(s *Scene, white, left, right material.Material) {
	s.Add(
		// Floor
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, 0, cornellSize), white),
		// Ceiling
		geometry.NewQuad(core.NewVec3(0, cornellSize, 0), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, 0, cornellSize), white),
		// Back wall
		geometry.NewQuad(core.NewVec3(0, 0, cornellSize), core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), white),
		// Left wall
		geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, cornellSize), core.NewVec3(0, cornellSize, 0), left),
		// Right wall
		geometry.NewQuad(core.NewVec3(cornellSize, 0, 0), core.NewVec3(0, cornellSize, 0), core.NewVec3(0, 0, cornellSize), right),
	)
}
