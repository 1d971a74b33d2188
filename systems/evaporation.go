package systems

import (
	"math/rand"

	"github.com/pthm-cable/slick/elements"
	"github.com/pthm-cable/slick/oiltype"
)

// FilmThicknessMM is the assumed oil film thickness. Fixed for now;
// a film-spreading process would make it per-particle.
const FilmThicknessMM = 2.0

// Evaporate advances the exposure clock of surface particles, refreshes
// fraction_evaporated from the reference curve, and decides per particle
// whether it fully evaporates this step. It returns a mask over idx
// marking the particles to retire with reason evaporated.
//
// Only particles at the surface (depth 0) accrue exposure age; submerged
// particles keep their fraction and cannot evaporate. The per-particle
// probability is the conditional chance of evaporating given the mass
// fraction that survived so far:
//
//	p = (f_new - f_old) / (1 - f_old)
//
// with p forced to 0 when f_old is already 1 (nothing left to lose).
// One uniform draw is consumed per particle regardless of p, so the
// random stream advances identically across runs with the same seed.
func Evaporate(e *elements.Ensemble, idx []int, urel []float64, oil *oiltype.Curves, dt float64, rng *rand.Rand) []bool {
	mask := make([]bool, len(idx))
	for k, i := range idx {
		atSurface := e.Depth[i] == 0
		if atSurface {
			e.AgeExposureSeconds[i] += (oil.ReferenceThickness / FilmThicknessMM) * urel[k] * dt
		}

		old := e.FractionEvaporated[i]
		f := oil.EvaporatedFraction(e.AgeExposureSeconds[i])
		e.FractionEvaporated[i] = f

		var p float64
		if atSurface && old < 1 {
			p = (f - old) / (1 - old)
		}
		if rng.Float64() < p {
			mask[k] = true
		}
	}
	return mask
}
