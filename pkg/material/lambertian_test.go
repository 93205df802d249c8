package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := newTestSampler(42)

	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 1, 1).Normalize(),
	}

	for _, normal := range normals {
		hit := &HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
		ray := core.NewRay(normal, normal.Negate())

		for i := 0; i < 500; i++ {
			scatter, ok := lambertian.Scatter(ray, hit, sampler)
			if !ok {
				t.Fatal("Lambertian should always scatter")
			}
			if d := scatter.Scattered.Direction.Dot(normal); d < 0 {
				t.Fatalf("Scattered direction below surface: dot=%f", d)
			}
			if scatter.Attenuation != albedo {
				t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
			}
			if scatter.Scattered.Origin != hit.Point {
				t.Fatalf("Scattered ray should start at hit point")
			}
		}
	}
}

func TestLambertian_NoEmission(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	if got := lambertian.Emitted(&HitRecord{}); got != (core.Vec3{}) {
		t.Errorf("Expected no emission, got %v", got)
	}
}

// cancellingSampler returns the sample that maps to -Z on the unit sphere
type cancellingSampler struct{}

func (cancellingSampler) Get1D() float64 { return 0 }
func (cancellingSampler) Get2D() core.Vec2 { return core.NewVec2(1, 0) }
func (cancellingSampler) Get3D() core.Vec3 { return core.Vec3{} }

func TestLambertian_DegenerateDirection(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	normal := core.NewVec3(0, 0, 1)
	hit := &HitRecord{Normal: normal}

	scatter, ok := lambertian.Scatter(core.NewRay(normal, normal.Negate()), hit, cancellingSampler{})
	if !ok {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to normal, got %v", scatter.Scattered.Direction)
	}
}

func TestLambertian_Textured(t *testing.T) {
	checker := NewCheckerTexture(1, core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0))
	lambertian := NewTexturedLambertian(checker)
	hit := &HitRecord{Point: core.NewVec3(-1, 1, 1), Normal: core.NewVec3(0, 1, 0)}

	scatter, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0)), hit, newTestSampler(1))
	if scatter.Attenuation != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected odd checker color, got %v", scatter.Attenuation)
	}
}

func TestIsotropic_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.9)
	iso := NewIsotropic(albedo)
	sampler := newTestSampler(7)
	hit := &HitRecord{Point: core.NewVec3(1, 2, 3), Normal: core.NewVec3(1, 0, 0), FrontFace: true}

	sumX := 0.0
	const n = 5000
	for i := 0; i < n; i++ {
		result, ok := iso.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), hit, sampler)
		if !ok {
			t.Fatal("Isotropic media always scatter")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Origin != hit.Point {
			t.Fatalf("Expected origin %v, got %v", hit.Point, result.Scattered.Origin)
		}
		if math.Abs(result.Scattered.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", result.Scattered.Direction)
		}
		sumX += result.Scattered.Direction.X
	}

	// Uniform over the sphere: no preference for the normal's side
	if mean := sumX / n; math.Abs(mean) > 0.05 {
		t.Errorf("Expected mean direction near zero along the normal, got %v", mean)
	}
	if got := iso.Emitted(hit); got != (core.Vec3{}) {
		t.Errorf("Expected no emission, got %v", got)
	}
}
