package core

import (
	"math"
	"math/rand"
)

// Sampler supplies uniform random numbers in [0, 1) to cameras, materials
// and integrators. Implementations are owned by a single goroutine.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a math/rand generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler whose stream depends only on
// (seed, stream). Rows of an image use their row index as stream, which
// keeps output independent of how rows are spread across workers.
func NewSeededSampler(seed int64, stream int) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(mixSeed(seed, uint64(stream)))))
}

// mixSeed combines two values with the splitmix64 finalizer
func mixSeed(seed int64, stream uint64) int64 {
	z := uint64(seed) + (stream+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleOnUnitSphere generates a uniform random unit vector
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// SamplePointInUnitDisk maps a square sample to the unit disk (z = 0) with the
// concentric mapping, so no samples are rejected.
func SamplePointInUnitDisk(sample Vec2) Vec3 {
	ox, oy := 2*sample.X-1, 2*sample.Y-1
	if ox == 0 && oy == 0 {
		return Vec3{}
	}

	var theta, r float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}
	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
