package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

const perlinPointCount = 256

// Perlin is a gradient noise generator with a seeded permutation table
type Perlin struct {
	gradients [perlinPointCount]core.Vec3
	permX     [perlinPointCount]int
	permY     [perlinPointCount]int
	permZ     [perlinPointCount]int
}

// NewPerlin builds the gradient and permutation tables from seed
func NewPerlin(seed int64) *Perlin {
	random := rand.New(rand.NewSource(seed))
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = core.NewVec3(
			2*random.Float64()-1,
			2*random.Float64()-1,
			2*random.Float64()-1,
		).Normalize()
	}
	fillPermutation(&p.permX, random)
	fillPermutation(&p.permY, random)
	fillPermutation(&p.permZ, random)
	return p
}

func fillPermutation(perm *[perlinPointCount]int, random *rand.Rand) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := random.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
}

// Noise returns smooth noise in roughly [-1, 1] at point p
func (n *Perlin) Noise(p core.Vec3) float64 {
	fx, fy, fz := math.Floor(p.X), math.Floor(p.Y), math.Floor(p.Z)
	u, v, w := p.X-fx, p.Y-fy, p.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]core.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				idx := n.permX[(i+di)&255] ^ n.permY[(j+dj)&255] ^ n.permZ[(k+dk)&255]
				c[di][dj][dk] = n.gradients[idx]
			}
		}
	}

	// Hermite smoothing of the lattice weights
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	accum := 0.0
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				fi, fj, fk := float64(di), float64(dj), float64(dk)
				weight := core.NewVec3(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[di][dj][dk].Dot(weight)
			}
		}
	}
	return accum
}

// Turbulence sums depth octaves of absolute noise
func (n *Perlin) Turbulence(p core.Vec3, depth int) float64 {
	accum := 0.0
	weight := 1.0
	for i := 0; i < depth; i++ {
		accum += weight * n.Noise(p)
		weight *= 0.5
		p = p.Multiply(2)
	}
	return math.Abs(accum)
}

// NoiseTexture is a marble-like pattern driven by Perlin turbulence
type NoiseTexture struct {
	Color core.Vec3
	Scale float64
	noise *Perlin
}

// NewNoiseTexture creates a marble texture with the given base color and frequency
func NewNoiseTexture(color core.Vec3, scale float64, seed int64) *NoiseTexture {
	return &NoiseTexture{Color: color, Scale: scale, noise: NewPerlin(seed)}
}

// Evaluate returns the texture color at point
func (t *NoiseTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	phase := t.Scale*point.Z + 10*t.noise.Turbulence(point, 7)
	return t.Color.Multiply(0.5 * (1 + math.Sin(phase)))
}
