package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/slick/elements"
)

// metersPerDegreeLat approximates one degree of latitude in meters.
const metersPerDegreeLat = 111320.0

// Displace advances active particles by (u, v)*dt, converting the
// displacement in meters to a lon/lat delta with a per-particle
// latitude correction for the east component. Displacement
// contributions are independent, so the orchestrator calls this once
// per contribution (current, wind drag, each uncertainty draw).
func Displace(e *elements.Ensemble, idx []int, u, v []float64, dt float64) {
	for k, i := range idx {
		if !e.IsActive(i) {
			continue
		}
		cosLat := math.Cos(e.Lat[i] * math.Pi / 180)
		e.Lon[i] += u[k] * dt / (metersPerDegreeLat * cosLat)
		e.Lat[i] += v[k] * dt / metersPerDegreeLat
	}
}

// NoiseComponents draws independent Gaussian east/north velocity
// perturbations with the given standard deviation, one pair per
// particle. A std of zero or less yields zero displacements while still
// returning full-length arrays, so the displacement call stays a no-op
// rather than an error. The east components are drawn for all particles
// before the north components.
func NoiseComponents(n int, std float64, rng *rand.Rand) (u, v []float64) {
	u = make([]float64, n)
	v = make([]float64, n)
	if std <= 0 {
		return u, v
	}
	for i := range u {
		u[i] = rng.NormFloat64() * std
	}
	for i := range v {
		v[i] = rng.NormFloat64() * std
	}
	return u, v
}
