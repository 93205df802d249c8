package material

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewImageTexture(2, 2, []core.Vec3{white, black, black, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"BottomLeft", core.NewVec2(0.1, 0.1), black},
		{"BottomRight", core.NewVec2(0.9, 0.1), white},
		{"TopLeft", core.NewVec2(0.1, 0.9), white},
		{"TopRight", core.NewVec2(0.9, 0.9), black},
		{"WrapsPositive", core.NewVec2(1.1, 1.9), white},
		{"WrapsNegative", core.NewVec2(-0.9, -0.1), white},
		{"UpperEdge", core.NewVec2(1.0, 1.0), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
			}
		})
	}
}

func TestImageTexture_Empty(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected missing-texture color, got %v", got)
	}
}

func TestPerlin_DeterministicAndBounded(t *testing.T) {
	a := NewPerlin(11)
	b := NewPerlin(11)

	for i := 0; i < 200; i++ {
		p := core.NewVec3(float64(i)*0.37, float64(i)*-0.11, float64(i)*0.05)
		na, nb := a.Noise(p), b.Noise(p)
		if na != nb {
			t.Fatalf("Same seed gave different noise at %v: %v vs %v", p, na, nb)
		}
		if math.Abs(na) > 1.8 {
			t.Fatalf("Noise out of range at %v: %v", p, na)
		}
	}

	// Lattice points have zero noise
	if n := a.Noise(core.NewVec3(3, -2, 5)); math.Abs(n) > 1e-12 {
		t.Errorf("Expected zero at lattice point, got %v", n)
	}
}

func TestNoiseTexture_Range(t *testing.T) {
	color := core.NewVec3(1, 0.5, 0.25)
	texture := NewNoiseTexture(color, 4, 1)

	for i := 0; i < 100; i++ {
		p := core.NewVec3(float64(i)*0.13, 0.7, float64(i)*0.29)
		got := texture.Evaluate(core.Vec2{}, p)
		if got.X < 0 || got.X > color.X+1e-12 || got.Y > color.Y+1e-12 {
			t.Fatalf("Noise color %v outside [0, %v]", got, color)
		}
	}
}

func TestCheckerTexture(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	checker := NewCheckerTexture(math.Pi, even, odd)

	tests := []struct {
		name  string
		point core.Vec3
		want  core.Vec3
	}{
		{"cell center", core.NewVec3(0.5, 0.5, 0.5), even},
		{"negative x", core.NewVec3(-0.5, 0.5, 0.5), odd},
		{"next cell", core.NewVec3(1.5, 0.5, 0.5), odd},
		{"two flips", core.NewVec3(1.5, -0.5, 0.5), even},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Evaluate(core.Vec2{}, tt.point); got != tt.want {
				t.Errorf("Expected %v at %v, got %v", tt.want, tt.point, got)
			}
		})
	}
}
