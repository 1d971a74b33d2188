package systems

import (
	"math"

	"github.com/pthm-cable/slick/elements"
)

// Entrainment constants, after the NOAA PyGnome parameterisation.
const (
	entrainmentRate       = 3.9e-8 // m/s
	seaWaterDensity       = 1028.0 // kg/m^3
	fractionBreakingWaves = 0.02
	gravity               = 9.81 // m/s^2
)

// Disperse removes oil mass entrained into the water column by breaking
// waves. Where the significant wave height is exactly zero the fully
// developed wind-sea approximation 0.0246*U^2 is substituted, per
// particle. Returns the total mass removed this step.
//
// mass_oil is not floored at zero: sustained dispersion can drive it
// negative, matching the reference parameterisation.
func Disperse(e *elements.Ensemble, idx []int, waveHeight, windspeed []float64, dt float64) float64 {
	var total float64
	for k, i := range idx {
		if !e.IsActive(i) {
			continue
		}

		hs := waveHeight[k]
		if hs == 0 {
			hs = 0.0246 * windspeed[k] * windspeed[k]
		}

		dissipation := 0.0034 * seaWaterDensity * gravity * hs * hs
		cDisp := math.Pow(dissipation, 0.57) * fractionBreakingWaves

		// Roy's constant: empirical entrainment rate from viscosity.
		cRoy := 2400.0 * math.Exp(-73.682*math.Sqrt(e.Viscosity[i]/e.Density[i]))

		qDisp := cRoy * cDisp * entrainmentRate / e.Density[i]
		loss := qDisp * dt * e.Density[i]

		e.MassOil[i] -= loss
		total += loss
	}
	return total
}
