package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewMeshScene creates a scene showcasing transformed triangle meshes
func NewMeshScene(aspectRatio float64) *Scene {
	camera := geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: aspectRatio,
		VFov:        45.0,
		Aperture:    0.02,
	})

	s := New("mesh", camera)
	s.Background = NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))

	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 50, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	s.AddQuadLight(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewVec3(8, 8, 8))

	// Smooth-shaded sphere mesh
	vertices, normals, uvs, indices := uvSphere(24, 48)
	sphereTransform := mgl64.Translate3D(-1.6, 1, 0)
	addMesh(s, vertices, indices, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.1), &geometry.TriangleMeshOptions{
		Normals:   normals,
		UVs:       uvs,
		Transform: &sphereTransform,
	})

	// Squashed, tilted ellipsoid with a checker texture
	ellipsoidTransform := mgl64.Translate3D(0, 0.7, -0.5).
		Mul4(mgl64.HomogRotate3DZ(math.Pi / 8)).
		Mul4(mgl64.Scale3D(1, 0.6, 1))
	checker := material.NewTexturedLambertian(material.NewCheckerTexture(12, core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	addMesh(s, vertices, indices, checker, &geometry.TriangleMeshOptions{
		Normals:   normals,
		UVs:       uvs,
		Transform: &ellipsoidTransform,
	})

	// Faceted glass pyramid
	pyramid, pyramidIndices := squarePyramid()
	pyramidTransform := mgl64.Translate3D(1.6, 0, 0.3).
		Mul4(mgl64.HomogRotate3DY(math.Pi / 5)).
		Mul4(mgl64.Scale3D(0.7, 0.9, 0.7))
	addMesh(s, pyramid, pyramidIndices, material.NewDielectric(1.5), &geometry.TriangleMeshOptions{
		Transform: &pyramidTransform,
	})

	return s
}

// addMesh adds a mesh built from known-good data; construction errors are programming errors
func addMesh(s *Scene, vertices []core.Vec3, indices []int, mat material.Material, options *geometry.TriangleMeshOptions) {
	mesh, err := geometry.NewTriangleMesh(vertices, indices, mat, options)
	if err != nil {
		panic(err)
	}
	s.Add(mesh)
}

// squarePyramid returns a closed pyramid over the [-1,1] square base with
// its apex at y = 1.5. Faces wind counter-clockwise seen from outside so
// geometric normals point outwards.
func squarePyramid() ([]core.Vec3, []int) {
	vertices := []core.Vec3{
		core.NewVec3(-1, 0, -1), core.NewVec3(1, 0, -1), core.NewVec3(1, 0, 1), core.NewVec3(-1, 0, 1),
		core.NewVec3(0, 1.5, 0),
	}
	indices := []int{
		0, 1, 2, 0, 2, 3, // base, facing -Y
		0, 4, 1, 1, 4, 2, 2, 4, 3, 3, 4, 0,
	}
	return vertices, indices
}

// uvSphere tessellates a unit sphere into rings x segments quads
func uvSphere(rings, segments int) ([]core.Vec3, []core.Vec3, []core.Vec2, []int) {
	var vertices, normals []core.Vec3
	var uvs []core.Vec2
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		for seg := 0; seg <= segments; seg++ {
			phi := 2 * math.Pi * float64(seg) / float64(segments)
			p := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			vertices = append(vertices, p)
			normals = append(normals, p)
			uvs = append(uvs, core.NewVec2(float64(seg)/float64(segments), 1-float64(r)/float64(rings)))
		}
	}

	var indices []int
	stride := segments + 1
	for r := 0; r < rings; r++ {
		for seg := 0; seg < segments; seg++ {
			i := r*stride + seg
			indices = append(indices, i, i+stride, i+1, i+1, i+stride, i+stride+1)
		}
	}
	return vertices, normals, uvs, indices
}
