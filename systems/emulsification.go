package systems

import (
	"github.com/pthm-cable/slick/elements"
	"github.com/pthm-cable/slick/oiltype"
)

// Emulsify advances the emulsion clock by relative wind and refreshes
// water_content from the reference curve. The clock runs whether or not
// a particle is at the surface. Particles retired earlier in the same
// step are skipped.
func Emulsify(e *elements.Ensemble, idx []int, urel []float64, oil *oiltype.Curves, dt float64) {
	for k, i := range idx {
		if !e.IsActive(i) {
			continue
		}
		e.AgeEmulsionSeconds[i] += urel[k] * dt
		e.WaterContent[i] = oil.MaxWaterContent(e.AgeEmulsionSeconds[i])
	}
}
