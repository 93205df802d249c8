package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ShadowEpsilon is the minimum hit distance for continuation rays, which
// keeps a scattered ray from re-hitting the surface it leaves.
const ShadowEpsilon = 0.001

// Config controls path termination
type Config struct {
	MaxDepth                  int // Maximum number of bounces; deeper paths contribute nothing
	RussianRouletteMinBounces int // Bounces before Russian roulette starts, 0 disables it
}

// PathTracingIntegrator implements unidirectional path tracing with
// material sampling only
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// Radiance follows one path from ray, intersecting within the ray's own
// [TMin, TMax]. Each bounce adds the emitted light at the hit weighted by
// the path throughput, then multiplies the throughput by the scatter
// attenuation. Paths end on a miss, on absorption, on a degenerate
// continuation ray, or after MaxDepth bounces.
func (pt *PathTracingIntegrator) Radiance(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		if ray.Degenerate() {
			return radiance
		}

		hit, ok := sc.Hit(ray, ray.TMin, ray.TMax)
		if !ok {
			return radiance.Add(throughput.MultiplyVec(sc.Background.Color(ray)))
		}

		radiance = radiance.Add(throughput.MultiplyVec(hit.Material.Emitted(&hit)))

		scatter, scattered := hit.Material.Scatter(ray, &hit, sampler)
		if !scattered {
			return radiance
		}
		throughput = throughput.MultiplyVec(scatter.Attenuation)

		survive, compensation := pt.russianRoulette(depth, throughput, sampler)
		if !survive {
			return radiance
		}
		throughput = throughput.Multiply(compensation)
		// Continuation rays start just off the surface they leave
		ray = core.NewRayInterval(scatter.Scattered.Origin, scatter.Scattered.Direction, ShadowEpsilon, math.Inf(1))
	}

	// Depth cap reached
	return radiance
}

// russianRoulette randomly ends low-throughput paths once the minimum
// bounce count has been reached. Survivors are scaled by 1/p to stay unbiased.
func (pt *PathTracingIntegrator) russianRoulette(depth int, throughput core.Vec3, sampler core.Sampler) (bool, float64) {
	if pt.config.RussianRouletteMinBounces <= 0 || depth+1 < pt.config.RussianRouletteMinBounces {
		return true, 1.0
	}

	// Conservative bounds keep the compensation factor within [1.05, 2]
	survivalProb := math.Min(0.95, math.Max(0.5, throughput.Luminance()))
	if sampler.Get1D() > survivalProb {
		return false, 0
	}
	return true, 1.0 / survivalProb
}
