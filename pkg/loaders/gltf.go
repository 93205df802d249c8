package loaders

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var (
	// ErrUnsupportedPrimitive is returned for non-triangle mesh primitives
	ErrUnsupportedPrimitive = errors.New("loaders: unsupported glTF primitive")

	// ErrMissingAttribute is returned when a primitive has no POSITION data
	ErrMissingAttribute = errors.New("loaders: missing glTF attribute")

	// ErrCyclicHierarchy is returned when a node is its own ancestor
	ErrCyclicHierarchy = errors.New("loaders: cyclic glTF node hierarchy")
)

const (
	// Radius of the emissive sphere that stands in for a punctual light
	gltfLightRadius = 0.2

	// Default aspect ratio when the file's camera does not specify one
	gltfDefaultAspect = 1.0
)

// gltfBackground is the constant radiance of rays leaving a glTF scene
var gltfBackground = core.NewVec3(0.051, 0.051, 0.051)

// gltfLoader converts one glTF document into a scene
type gltfLoader struct {
	doc       *gltf.Document
	dir       string
	aspect    float64
	materials map[int]material.Material
	lights    lightspunctual.Lights
	sc        *scene.Scene
	camera    *geometry.Camera
	onPath    []bool // Nodes on the current root-to-node path
}

// LoadGLTF reads a .gltf or .glb file. Meshes become triangle meshes with
// node transforms applied, the first perspective camera becomes the scene
// camera and KHR_lights_punctual lights become small emissive spheres.
// An aspectRatio of 0 keeps the camera's own aspect ratio.
func LoadGLTF(path string, aspectRatio float64) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF file %s: %w", path, err)
	}

	l := &gltfLoader{
		doc:       doc,
		dir:       filepath.Dir(path),
		aspect:    aspectRatio,
		materials: make(map[int]material.Material),
		sc:        scene.New(filepath.Base(path), nil),
		onPath:    make([]bool, len(doc.Nodes)),
	}
	if lights, ok := doc.Extensions[lightspunctual.ExtensionName].(lightspunctual.Lights); ok {
		l.lights = lights
	}

	for _, root := range l.rootNodes() {
		if err := l.visit(root, mgl64.Ident4()); err != nil {
			return nil, fmt.Errorf("failed to load glTF file %s: %w", path, err)
		}
	}

	if l.camera == nil {
		l.camera = defaultGLTFCamera(aspectRatio)
	}
	l.sc.Camera = l.camera
	l.sc.Background = scene.NewConstantBackground(gltfBackground)
	return l.sc, nil
}

// rootNodes returns the nodes of the default scene, or every parentless node
// when that scene is missing or empty
func (l *gltfLoader) rootNodes() []int {
	if len(l.doc.Scenes) > 0 {
		idx := 0
		if l.doc.Scene != nil {
			idx = *l.doc.Scene
		}
		if idx >= 0 && idx < len(l.doc.Scenes) && len(l.doc.Scenes[idx].Nodes) > 0 {
			return l.doc.Scenes[idx].Nodes
		}
	}

	isChild := make([]bool, len(l.doc.Nodes))
	for _, n := range l.doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i := range l.doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

func (l *gltfLoader) visit(index int, parent mgl64.Mat4) error {
	if index < 0 || index >= len(l.doc.Nodes) {
		return fmt.Errorf("node index %d out of range", index)
	}
	if l.onPath[index] {
		return fmt.Errorf("%w: node %d", ErrCyclicHierarchy, index)
	}
	l.onPath[index] = true
	defer func() { l.onPath[index] = false }()

	node := l.doc.Nodes[index]
	world := parent.Mul4(localTransform(node))

	if node.Mesh != nil {
		if err := l.addMesh(*node.Mesh, world); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}
	if node.Camera != nil && l.camera == nil {
		l.camera = l.buildCamera(*node.Camera, world)
	}
	if idx, ok := node.Extensions[lightspunctual.ExtensionName].(lightspunctual.LightIndex); ok {
		l.addLight(int(idx), world)
	}

	for _, child := range node.Children {
		if err := l.visit(child, world); err != nil {
			return err
		}
	}
	return nil
}

// localTransform returns the node matrix, composing translation, rotation
// and scale when no explicit matrix is given
func localTransform(node *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(node.MatrixOrDefault())
	if m != mgl64.Ident4() {
		return m
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()
	rotation := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(rotation.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func (l *gltfLoader) addMesh(meshIndex int, world mgl64.Mat4) error {
	if meshIndex < 0 || meshIndex >= len(l.doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	mesh := l.doc.Meshes[meshIndex]

	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			return fmt.Errorf("%w: mesh %q primitive %d has mode %v", ErrUnsupportedPrimitive, mesh.Name, i, prim.Mode)
		}

		vertices, options, indices, err := l.readPrimitive(prim)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		mat, err := l.material(prim.Material)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}

		transform := world
		options.Transform = &transform
		triMesh, err := geometry.NewTriangleMesh(vertices, indices, mat, options)
		if err != nil {
			return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		l.sc.Add(triMesh)
	}
	return nil
}

func (l *gltfLoader) accessor(index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(l.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", index)
	}
	return l.doc.Accessors[index], nil
}

// readPrimitive decodes positions, indices and the optional normals and UVs
func (l *gltfLoader) readPrimitive(prim *gltf.Primitive) ([]core.Vec3, *geometry.TriangleMeshOptions, []int, error) {
	posIndex, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrMissingAttribute, gltf.POSITION)
	}
	acr, err := l.accessor(posIndex)
	if err != nil {
		return nil, nil, nil, err
	}
	positions, err := modeler.ReadPosition(l.doc, acr, nil)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read positions: %w", err)
	}
	vertices := make([]core.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var indices []int
	if prim.Indices != nil {
		acr, err := l.accessor(*prim.Indices)
		if err != nil {
			return nil, nil, nil, err
		}
		raw, err := modeler.ReadIndices(l.doc, acr, nil)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read indices: %w", err)
		}
		indices = make([]int, len(raw))
		for i, idx := range raw {
			indices[i] = int(idx)
		}
	} else {
		indices = make([]int, len(vertices))
		for i := range indices {
			indices[i] = i
		}
	}

	options := &geometry.TriangleMeshOptions{}
	if normalIndex, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := l.accessor(normalIndex)
		if err != nil {
			return nil, nil, nil, err
		}
		normals, err := modeler.ReadNormal(l.doc, acr, nil)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read normals: %w", err)
		}
		options.Normals = make([]core.Vec3, len(normals))
		for i, n := range normals {
			options.Normals[i] = core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}
	if uvIndex, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := l.accessor(uvIndex)
		if err != nil {
			return nil, nil, nil, err
		}
		uvs, err := modeler.ReadTextureCoord(l.doc, acr, nil)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read texture coordinates: %w", err)
		}
		options.UVs = make([]core.Vec2, len(uvs))
		for i, uv := range uvs {
			// glTF puts v = 0 at the top of the image
			options.UVs[i] = core.NewVec2(float64(uv[0]), 1-float64(uv[1]))
		}
	}

	return vertices, options, indices, nil
}

// material converts a glTF material, caching by index. Emissive materials
// become lights, metallic ones Metal with roughness as fuzz, and the rest
// Lambertian.
func (l *gltfLoader) material(index *int) (material.Material, error) {
	if index == nil {
		return material.NewLambertian(core.NewVec3(0.8, 0.8, 0.8)), nil
	}
	if mat, ok := l.materials[*index]; ok {
		return mat, nil
	}
	if *index < 0 || *index >= len(l.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", *index)
	}
	src := l.doc.Materials[*index]

	var mat material.Material
	emissive := src.EmissiveFactor
	switch {
	case emissive[0] > 0 || emissive[1] > 0 || emissive[2] > 0:
		mat = material.NewEmissive(core.NewVec3(emissive[0], emissive[1], emissive[2]))
	default:
		pbr := src.PBRMetallicRoughness
		if pbr == nil {
			pbr = &gltf.PBRMetallicRoughness{}
		}
		base := pbr.BaseColorFactorOrDefault()
		albedo := core.NewVec3(base[0], base[1], base[2])

		if math.Abs(pbr.MetallicFactorOrDefault()) < 1e-5 {
			if pbr.BaseColorTexture != nil {
				texture, err := l.texture(pbr.BaseColorTexture.Index)
				if err != nil {
					return nil, fmt.Errorf("material %q: %w", src.Name, err)
				}
				mat = material.NewTexturedLambertian(texture)
			} else {
				mat = material.NewLambertian(albedo)
			}
		} else {
			mat = material.NewMetal(albedo, pbr.RoughnessFactorOrDefault())
		}
	}

	l.materials[*index] = mat
	return mat, nil
}

// texture loads the image behind a glTF texture from a buffer view, a data
// URI or a file next to the glTF document
func (l *gltfLoader) texture(index int) (material.ColorSource, error) {
	if index < 0 || index >= len(l.doc.Textures) || l.doc.Textures[index].Source == nil {
		return nil, fmt.Errorf("texture %d has no image", index)
	}
	source := *l.doc.Textures[index].Source
	if source < 0 || source >= len(l.doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", source)
	}
	img := l.doc.Images[source]

	var data *ImageData
	var err error
	switch {
	case img.BufferView != nil:
		if *img.BufferView < 0 || *img.BufferView >= len(l.doc.BufferViews) {
			return nil, fmt.Errorf("buffer view %d out of range", *img.BufferView)
		}
		var raw []byte
		raw, err = modeler.ReadBufferView(l.doc, l.doc.BufferViews[*img.BufferView])
		if err == nil {
			data, err = DecodeImageBytes(raw)
		}
	case img.IsEmbeddedResource():
		var raw []byte
		raw, err = img.MarshalData()
		if err == nil {
			data, err = DecodeImageBytes(raw)
		}
	default:
		data, err = LoadImage(filepath.Join(l.dir, filepath.FromSlash(img.URI)))
	}
	if err != nil {
		return nil, fmt.Errorf("image %d: %w", source, err)
	}
	return data.Texture(), nil
}

func (l *gltfLoader) buildCamera(index int, world mgl64.Mat4) *geometry.Camera {
	if index < 0 || index >= len(l.doc.Cameras) {
		return nil
	}
	persp := l.doc.Cameras[index].Perspective
	if persp == nil {
		return nil
	}

	aspect := l.aspect
	if aspect <= 0 {
		aspect = gltfDefaultAspect
		if persp.AspectRatio != nil && *persp.AspectRatio > 0 {
			aspect = *persp.AspectRatio
		}
	}
	return geometry.NewCameraFromMatrix(world, mgl64.RadToDeg(persp.Yfov), aspect)
}

func (l *gltfLoader) addLight(index int, world mgl64.Mat4) {
	if index < 0 || index >= len(l.lights) || l.lights[index] == nil {
		return
	}
	light := l.lights[index]
	c := light.ColorOrDefault()
	emission := core.NewVec3(c[0], c[1], c[2]).Multiply(light.IntensityOrDefault())

	pos := world.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	l.sc.AddSphereLight(core.NewVec3(pos[0], pos[1], pos[2]), gltfLightRadius, emission)
}

// defaultGLTFCamera looks at the origin from +Z when the file has no camera
func defaultGLTFCamera(aspectRatio float64) *geometry.Camera {
	if aspectRatio <= 0 {
		aspectRatio = gltfDefaultAspect
	}
	return geometry.NewCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	})
}
