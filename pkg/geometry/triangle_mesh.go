package geometry

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var (
	// ErrBadIndexCount is returned when the index list is not a multiple of 3
	ErrBadIndexCount = errors.New("geometry: index count must be a multiple of 3")

	// ErrIndexOutOfRange is returned when a face references a missing vertex
	ErrIndexOutOfRange = errors.New("geometry: face index out of range")

	// ErrAttributeCount is returned when per-vertex or per-face data has the wrong length
	ErrAttributeCount = errors.New("geometry: attribute count mismatch")
)

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals   []core.Vec3         // Optional per-vertex normals
	UVs       []core.Vec2         // Optional per-vertex texture coordinates
	Materials []material.Material // Optional per-triangle materials
	Transform *mgl64.Mat4         // Optional object-to-world transform shared by all vertices
}

// TriangleMesh is an ordered collection of triangles sharing one transform,
// intersected through its own BVH.
type TriangleMesh struct {
	triangles []*Triangle
	bvh       *BVH
}

// NewTriangleMesh builds a mesh from vertices and a flat list of triangle indices.
// Degenerate triangles are kept; they never report a hit.
func NewTriangleMesh(vertices []core.Vec3, indices []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, ErrBadIndexCount
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	numTriangles := len(indices) / 3

	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrAttributeCount, len(options.Normals), len(vertices))
	}
	if options.UVs != nil && len(options.UVs) != len(vertices) {
		return nil, fmt.Errorf("%w: %d uvs for %d vertices", ErrAttributeCount, len(options.UVs), len(vertices))
	}
	if options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("%w: %d materials for %d triangles", ErrAttributeCount, len(options.Materials), numTriangles)
	}

	positions, normals := vertices, options.Normals
	if options.Transform != nil {
		positions, normals = transformVertices(*options.Transform, vertices, options.Normals)
	}

	triangles := make([]*Triangle, numTriangles)
	shapes := make([]Shape, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := indices[i*3], indices[i*3+1], indices[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("%w: triangle %d references vertex %d of %d", ErrIndexOutOfRange, i, idx, len(positions))
			}
		}

		triMaterial := mat
		if options.Materials != nil {
			triMaterial = options.Materials[i]
		}

		tri := NewTriangle(positions[i0], positions[i1], positions[i2], triMaterial)
		if normals != nil {
			tri.WithNormals(normals[i0], normals[i1], normals[i2])
		}
		if options.UVs != nil {
			tri.WithUVs(options.UVs[i0], options.UVs[i1], options.UVs[i2])
		}
		triangles[i] = tri
		shapes[i] = tri
	}

	return &TriangleMesh{triangles: triangles, bvh: NewBVH(shapes)}, nil
}

// transformVertices applies m to positions and its inverse transpose to normals
func transformVertices(m mgl64.Mat4, positions, normals []core.Vec3) ([]core.Vec3, []core.Vec3) {
	outPositions := make([]core.Vec3, len(positions))
	for i, p := range positions {
		v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
		if v[3] != 0 && v[3] != 1 {
			v = v.Mul(1 / v[3])
		}
		outPositions[i] = core.NewVec3(v[0], v[1], v[2])
	}

	if normals == nil {
		return outPositions, nil
	}
	normalMatrix := m.Mat3().Inv().Transpose()
	outNormals := make([]core.Vec3, len(normals))
	for i, n := range normals {
		v := normalMatrix.Mul3x1(mgl64.Vec3{n.X, n.Y, n.Z})
		outNormals[i] = core.NewVec3(v[0], v[1], v[2]).Normalize()
	}
	return outPositions, outNormals
}

// Hit tests the ray against the mesh's BVH
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles in their original order
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}
