package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// newTestScene builds a preprocessed scene with a fixed camera and background
func newTestScene(t *testing.T, background scene.Background, shapes ...geometry.Shape) *scene.Scene {
	t.Helper()
	camera := geometry.NewCamera(geometry.CameraConfig{LookAt: core.NewVec3(0, 0, -1)})
	sc := scene.New("test", camera)
	sc.Background = background
	sc.Add(shapes...)
	if err := sc.Preprocess(); err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	return sc
}

func TestPathTracing_MissReturnsBackground(t *testing.T) {
	sky := scene.NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1, 1, 1))
	sc := newTestScene(t, sky)
	pt := NewPathTracingIntegrator(Config{MaxDepth: 5})

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0.3, 0.8, -1))
	if got, want := pt.Radiance(ray, sc, newTestSampler()), sky.Color(ray); got != want {
		t.Errorf("Expected background %v, got %v", want, got)
	}
}

func TestPathTracing_EmissiveHit(t *testing.T) {
	emission := core.NewVec3(4, 2, 1)
	light := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewEmissive(emission))
	sc := newTestScene(t, scene.NewConstantBackground(core.NewVec3(1, 1, 1)), light)
	pt := NewPathTracingIntegrator(Config{MaxDepth: 1})

	got := pt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, newTestSampler())
	if got != emission {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}
}

func TestPathTracing_DepthCap(t *testing.T) {
	// Camera inside a closed diffuse sphere never reaches the background
	enclosure := geometry.NewSphere(core.Vec3{}, 10, material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9)))
	sc := newTestScene(t, scene.NewConstantBackground(core.NewVec3(1, 1, 1)), enclosure)

	for _, depth := range []int{1, 3, 12} {
		pt := NewPathTracingIntegrator(Config{MaxDepth: depth})
		got := pt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, newTestSampler())
		if got != (core.Vec3{}) {
			t.Errorf("MaxDepth %d: expected black, got %v", depth, got)
		}
	}

	// A zero cap returns black even when looking at the sky
	pt := NewPathTracingIntegrator(Config{MaxDepth: 0})
	open := newTestScene(t, scene.NewConstantBackground(core.NewVec3(1, 1, 1)))
	if got := pt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), open, newTestSampler()); got != (core.Vec3{}) {
		t.Errorf("MaxDepth 0: expected black, got %v", got)
	}
}

func TestPathTracing_DepthLimitsMirrorChain(t *testing.T) {
	// Light bounces between two parallel mirrors and never escapes
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)
	top := geometry.NewQuad(core.NewVec3(-50, 1, -50), core.NewVec3(100, 0, 0), core.NewVec3(0, 0, 100), mirror)
	bottom := geometry.NewQuad(core.NewVec3(-50, -1, -50), core.NewVec3(100, 0, 0), core.NewVec3(0, 0, 100), mirror)
	sc := newTestScene(t, scene.NewConstantBackground(core.NewVec3(1, 1, 1)), top, bottom)

	pt := NewPathTracingIntegrator(Config{MaxDepth: 8})
	got := pt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0.01, 1, 0)), sc, newTestSampler())
	if got != (core.Vec3{}) {
		t.Errorf("Expected black after exhausting depth, got %v", got)
	}
}

func TestPathTracing_ConvexDiffuseFurnace(t *testing.T) {
	// A ray leaving a convex diffuse surface can only reach the uniform
	// background, so the result is exactly albedo * background.
	albedo := core.NewVec3(0.5, 0.25, 0.8)
	background := core.NewVec3(2, 2, 2)
	ball := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(albedo))
	sc := newTestScene(t, scene.NewConstantBackground(background), ball)
	pt := NewPathTracingIntegrator(Config{MaxDepth: 12})
	sampler := newTestSampler()

	want := albedo.MultiplyVec(background)
	for i := 0; i < 200; i++ {
		dir := core.NewVec3(sampler.Get1D()*0.4-0.2, sampler.Get1D()*0.4-0.2, -1)
		got := pt.Radiance(core.NewRay(core.Vec3{}, dir), sc, sampler)
		if got.Subtract(want).Length() > 1e-12 {
			t.Fatalf("Expected %v, got %v", want, got)
		}
	}
}

func TestPathTracing_MirrorReflectsBackground(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.8, 0.7)
	sky := scene.NewGradientBackground(core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0))
	mirror := geometry.NewQuad(core.NewVec3(-5, -1, -5), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0), material.NewMetal(albedo, 0))
	sc := newTestScene(t, sky, mirror)
	pt := NewPathTracingIntegrator(Config{MaxDepth: 4})

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, -1, -1))
	reflected := core.NewRay(core.NewVec3(0, -1, -1), core.NewVec3(0, 1, -1))
	want := albedo.MultiplyVec(sky.Color(reflected))
	if got := pt.Radiance(ray, sc, newTestSampler()); got.Subtract(want).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestPathTracing_RussianRouletteUnbiased(t *testing.T) {
	// Survival probability clamps to 0.5 for a 0.3 throughput, so half the
	// paths end and the survivors carry twice the weight.
	albedo := core.NewVec3(0.3, 0.3, 0.3)
	background := core.NewVec3(1, 1, 1)
	ball := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(albedo))
	sc := newTestScene(t, scene.NewConstantBackground(background), ball)

	pt := NewPathTracingIntegrator(Config{MaxDepth: 12, RussianRouletteMinBounces: 1})
	sampler := newTestSampler()

	const n = 40000
	sum := 0.0
	terminated := 0
	for i := 0; i < n; i++ {
		got := pt.Radiance(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, sampler)
		if got == (core.Vec3{}) {
			terminated++
		}
		sum += got.X
	}

	if terminated == 0 {
		t.Error("Expected Russian roulette to end some paths")
	}
	mean := sum / n
	if math.Abs(mean-0.3) > 0.01 {
		t.Errorf("Expected unbiased mean 0.3, got %v", mean)
	}
}

func TestPathTracing_RayInterval(t *testing.T) {
	emission := core.NewVec3(4, 2, 1)
	background := core.NewVec3(0.1, 0.2, 0.3)
	blocker := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewLambertian(core.NewVec3(0, 0, 0)))
	light := geometry.NewSphere(core.NewVec3(0, 0, -10), 1, material.NewEmissive(emission))
	sc := newTestScene(t, scene.NewConstantBackground(background), blocker, light)
	pt := NewPathTracingIntegrator(Config{MaxDepth: 1})
	dir := core.NewVec3(0, 0, -1)

	tests := []struct {
		name string
		ray  core.Ray
		want core.Vec3
	}{
		{"full interval hits the blocker", core.NewRay(core.Vec3{}, dir), core.Vec3{}},
		{"tMin past the blocker reaches the light", core.NewRayInterval(core.Vec3{}, dir, 5, math.Inf(1)), emission},
		{"tMax before every surface misses", core.NewRayInterval(core.Vec3{}, dir, 0, 1.5), background},
		{"zero direction is absorbed", core.NewRay(core.Vec3{}, core.Vec3{}), core.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pt.Radiance(tt.ray, sc, newTestSampler()); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
