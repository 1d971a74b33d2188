// Package systems contains the per-timestep processes applied to the
// particle ensemble: the three weathering processes (evaporation,
// emulsification, dispersion) and the transport integrator. Each
// function operates on the step-start active index list idx; the
// forcing arrays it receives are aligned index-for-index with idx.
package systems

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Windspeed returns the wind magnitude per particle.
func Windspeed(xWind, yWind []float64) []float64 {
	ws := make([]float64, len(xWind))
	for i := range xWind {
		ws[i] = math.Hypot(xWind[i], yWind[i])
	}
	return ws
}

// RelativeWind normalises windspeed by the oil curve's reference wind.
// It is computed once per step and shared by evaporation and
// emulsification.
func RelativeWind(windspeed []float64, referenceWind float64) []float64 {
	urel := make([]float64, len(windspeed))
	floats.ScaleTo(urel, 1/referenceWind, windspeed)
	return urel
}
