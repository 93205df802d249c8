package loaders

import (
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// writeGLB saves doc as a binary glTF file in a temp directory
func writeGLB(t *testing.T, dir string, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(dir, "scene.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("Failed to save glTF: %v", err)
	}
	return path
}

// newQuadDocument builds a document with a unit quad in the z = 0 plane
// spanning [-1,1]^2, shared by two meshes with different materials
func newQuadDocument() *gltf.Document {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Materials = []*gltf.Material{
		{Name: "diffuse", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.2, 0.4, 0.6, 1},
			MetallicFactor:  gltf.Float(0),
		}},
		{Name: "metal", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0.9, 0.9, 0.9, 1},
			MetallicFactor:  gltf.Float(1),
			RoughnessFactor: gltf.Float(0.3),
		}},
	}
	doc.Meshes = []*gltf.Mesh{
		{Name: "diffuse-quad", Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
			Material:   gltf.Index(0),
		}}},
		{Name: "metal-quad", Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(indices),
			Attributes: map[string]int{gltf.POSITION: positions},
			Material:   gltf.Index(1),
		}}},
	}
	return doc
}

func TestLoadGLTF_SceneContents(t *testing.T) {
	doc := newQuadDocument()
	doc.Cameras = []*gltf.Camera{{Perspective: &gltf.Perspective{
		Yfov:        math.Pi / 4,
		Znear:       0.1,
		AspectRatio: gltf.Float(1.5),
	}}}
	doc.ExtensionsUsed = []string{lightspunctual.ExtensionName}
	// Extension payloads are written in their JSON envelopes; the loader
	// sees them decoded as lightspunctual.Lights and LightIndex
	doc.Extensions = gltf.Extensions{
		lightspunctual.ExtensionName: map[string]any{
			"lights": []*lightspunctual.Light{{
				Type:      lightspunctual.TypePoint,
				Color:     &[3]float64{1, 0.5, 0.25},
				Intensity: gltf.Float(10),
			}},
		},
	}
	doc.Nodes = []*gltf.Node{
		{Name: "parent", Translation: [3]float64{0, 0, -2}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}, Children: []int{1}},
		{Name: "scaled", Mesh: gltf.Index(0), Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{2, 2, 2}},
		{Name: "metal", Mesh: gltf.Index(1), Translation: [3]float64{6, 0, 0}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}},
		{Name: "camera", Camera: gltf.Index(0), Translation: [3]float64{0, 0, 5}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}},
		{Name: "light", Translation: [3]float64{0, 3, 0}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1},
			Extensions: gltf.Extensions{lightspunctual.ExtensionName: map[string]any{"light": 0}}},
	}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0, 2, 3, 4}}}
	doc.Scene = gltf.Index(0)

	sc, err := LoadGLTF(writeGLB(t, t.TempDir(), doc), 0)
	if err != nil {
		t.Fatalf("LoadGLTF failed: %v", err)
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	if got := len(sc.Shapes); got != 3 {
		t.Errorf("Expected 2 meshes and 1 light sphere, got %d shapes", got)
	}

	cam := sc.Camera.Config()
	if cam.Center.Subtract(core.NewVec3(0, 0, 5)).Length() > 1e-9 {
		t.Errorf("Expected camera at (0,0,5), got %v", cam.Center)
	}
	if math.Abs(cam.VFov-45) > 1e-9 || math.Abs(cam.AspectRatio-1.5) > 1e-9 {
		t.Errorf("Expected 45 degree fov at 1.5 aspect, got %v and %v", cam.VFov, cam.AspectRatio)
	}

	if bg := sc.Background.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); bg != core.NewVec3(0.051, 0.051, 0.051) {
		t.Errorf("Expected constant 0.051 background, got %v", bg)
	}

	t.Run("scaled child mesh", func(t *testing.T) {
		// Only inside the quad because of the child's scale of 2
		hit, ok := sc.Hit(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(1.5, 0, -7)), 0.001, math.Inf(1))
		if !ok {
			t.Fatal("Expected hit on the scaled quad")
		}
		if math.Abs(hit.Point.Z+2) > 1e-6 || math.Abs(hit.Point.X-1.5) > 1e-6 {
			t.Errorf("Expected hit at (1.5,0,-2), got %v", hit.Point)
		}
		lambertian, ok := hit.Material.(*material.Lambertian)
		if !ok {
			t.Fatalf("Expected Lambertian, got %T", hit.Material)
		}
		if got := lambertian.Albedo.Evaluate(core.Vec2{}, core.Vec3{}); got.Subtract(core.NewVec3(0.2, 0.4, 0.6)).Length() > 1e-6 {
			t.Errorf("Expected albedo (0.2,0.4,0.6), got %v", got)
		}
	})

	t.Run("metal mesh", func(t *testing.T) {
		hit, ok := sc.Hit(core.NewRay(core.NewVec3(6, 0, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
		if !ok {
			t.Fatal("Expected hit on the metal quad")
		}
		metal, ok := hit.Material.(*material.Metal)
		if !ok {
			t.Fatalf("Expected Metal, got %T", hit.Material)
		}
		if math.Abs(metal.Fuzz-0.3) > 1e-9 {
			t.Errorf("Expected fuzz 0.3 from roughness, got %v", metal.Fuzz)
		}
	})

	t.Run("punctual light", func(t *testing.T) {
		hit, ok := sc.Hit(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)), 0.001, math.Inf(1))
		if !ok {
			t.Fatal("Expected hit on the light sphere")
		}
		if math.Abs(hit.T-6.8) > 1e-9 {
			t.Errorf("Expected hit at t=6.8 for a 0.2 radius sphere, got %v", hit.T)
		}
		want := core.NewVec3(10, 5, 2.5)
		if got := hit.Material.Emitted(&hit); got.Subtract(want).Length() > 1e-9 {
			t.Errorf("Expected emission %v, got %v", want, got)
		}
	})
}

func TestLoadGLTF_AspectOverrideAndDefaultCamera(t *testing.T) {
	doc := newQuadDocument()
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}}}

	sc, err := LoadGLTF(writeGLB(t, t.TempDir(), doc), 2.0)
	if err != nil {
		t.Fatalf("LoadGLTF failed: %v", err)
	}
	if sc.Camera == nil {
		t.Fatal("Expected a default camera")
	}
	if got := sc.Camera.Config().AspectRatio; got != 2.0 {
		t.Errorf("Expected aspect override 2.0, got %v", got)
	}
	if len(sc.Shapes) != 1 {
		t.Errorf("Expected 1 shape from a parentless node, got %d", len(sc.Shapes))
	}
}

func TestLoadGLTF_ImageTexture(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "albedo.png"))
	if err != nil {
		t.Fatalf("Failed to create texture: %v", err)
	}
	if err := png.Encode(f, newQuadrantImage()); err != nil {
		f.Close()
		t.Fatalf("Failed to encode texture: %v", err)
	}
	f.Close()

	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}})
	uvs := modeler.WriteTextureCoord(doc, [][2]float32{{0, 1}, {1, 1}, {1, 0}})
	doc.Images = []*gltf.Image{{URI: "albedo.png"}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
		MetallicFactor:   gltf.Float(0),
		BaseColorTexture: &gltf.TextureInfo{Index: 0},
	}}}
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Attributes: map[string]int{gltf.POSITION: positions, gltf.TEXCOORD_0: uvs},
		Material:   gltf.Index(0),
	}}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Translation: [3]float64{0, 0, -1}, Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}}}

	sc, err := LoadGLTF(writeGLB(t, dir, doc), 1)
	if err != nil {
		t.Fatalf("LoadGLTF failed: %v", err)
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	// Near vertex 1, whose glTF UV (1,1) is the bottom-right texel
	hit, ok := sc.Hit(core.NewRay(core.NewVec3(0.9, -0.95, 5), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit on the textured triangle")
	}
	lambertian, ok := hit.Material.(*material.Lambertian)
	if !ok {
		t.Fatalf("Expected Lambertian, got %T", hit.Material)
	}
	if _, ok := lambertian.Albedo.(*material.ImageTexture); !ok {
		t.Fatalf("Expected image texture albedo, got %T", lambertian.Albedo)
	}
	got := lambertian.Albedo.Evaluate(hit.UV, hit.Point)
	if got.Subtract(core.NewVec3(0, 0, 1)).Length() > 0.01 {
		t.Errorf("Expected blue bottom-right texel, got %v", got)
	}
}

func TestLoadGLTF_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadGLTF(filepath.Join(t.TempDir(), "missing.gltf"), 0); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("cyclic hierarchy", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cycle.gltf")
		doc := `{"asset":{"version":"2.0"},"scene":0,"scenes":[{"nodes":[0]}],` +
			`"nodes":[{"name":"a","children":[1]},{"name":"b","children":[0]}]}`
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatalf("Failed to write glTF: %v", err)
		}

		_, err := LoadGLTF(path, 0)
		if !errors.Is(err, ErrCyclicHierarchy) {
			t.Errorf("Expected ErrCyclicHierarchy, got %v", err)
		}
	})

	t.Run("line primitive", func(t *testing.T) {
		doc := newQuadDocument()
		doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines
		doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0), Rotation: [4]float64{0, 0, 0, 1}, Scale: [3]float64{1, 1, 1}}}

		_, err := LoadGLTF(writeGLB(t, t.TempDir(), doc), 0)
		if !errors.Is(err, ErrUnsupportedPrimitive) {
			t.Errorf("Expected ErrUnsupportedPrimitive, got %v", err)
		}
	})
}
