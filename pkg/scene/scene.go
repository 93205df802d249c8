package scene

import (
	"errors"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrNoCamera is returned when a scene is preprocessed without a camera
var ErrNoCamera = errors.New("scene: no camera defined")

// Scene contains all the elements needed for rendering. After Preprocess
// it is read-only and shared by every render worker.
type Scene struct {
	Name       string
	Camera     *geometry.Camera
	Shapes     []geometry.Shape // Objects in the scene
	Background Background       // Radiance for rays that escape
	BVH        *geometry.BVH    // Acceleration structure over Shapes
}

// New creates an empty scene with a black background
func New(name string, camera *geometry.Camera) *Scene {
	return &Scene{
		Name:       name,
		Camera:     camera,
		Background: NewConstantBackground(core.Vec3{}),
	}
}

// Preprocess builds the acceleration structure. It must be called once
// after all shapes are added and before rendering.
func (s *Scene) Preprocess() error {
	if s.Camera == nil {
		return ErrNoCamera
	}
	if s.Background == nil {
		s.Background = NewConstantBackground(core.Vec3{})
	}
	s.BVH = geometry.NewBVH(s.Shapes)
	return nil
}

// Hit returns the nearest intersection in [tMin, tMax]
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	if s.BVH == nil {
		return material.HitRecord{}, false
	}
	return s.BVH.Hit(ray, tMin, tMax)
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// PrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.TriangleMesh:
			count += obj.TriangleCount()
		case *geometry.Box:
			count += 6
		default:
			count++
		}
	}
	return count
}

// AddSphereLight adds an emissive sphere to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) {
	s.Add(geometry.NewSphere(center, radius, material.NewEmissive(emission)))
}

// AddQuadLight adds a rectangular emissive panel to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) {
	s.Add(geometry.NewQuad(corner, u, v, material.NewEmissive(emission)))
}

// NewGroundQuad creates a large horizontal quad centered at center with its normal along +Y
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	return geometry.NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), mat)
}
