package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/slick/elements"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartStep int     `csv:"-"`
	WindowEndStep   int     `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Ensemble state at window end
	ActiveCount    int     `csv:"active"`
	TotalMassOilKg float64 `csv:"total_mass_oil_kg"`

	// Lifecycle events during the window
	Seeded      int `csv:"seeded"`
	Evaporated  int `csv:"evaporated"`
	Stranded    int `csv:"stranded"`
	Dispersed   int `csv:"dispersed"`
	MissingData int `csv:"missing_data"`

	// Mass budget
	DispersedMassKg float64 `csv:"dispersed_mass_kg"`

	// Weathering state distribution (sampled at window end, active set)
	FractionEvapMean float64 `csv:"fraction_evap_mean"`
	FractionEvapP10  float64 `csv:"fraction_evap_p10"`
	FractionEvapP50  float64 `csv:"fraction_evap_p50"`
	FractionEvapP90  float64 `csv:"fraction_evap_p90"`

	WaterContentMean float64 `csv:"water_content_mean"`
	WaterContentP10  float64 `csv:"water_content_p10"`
	WaterContentP50  float64 `csv:"water_content_p50"`
	WaterContentP90  float64 `csv:"water_content_p90"`
}

// sampleEnsemble fills the state-distribution fields from the active set.
func (s *WindowStats) sampleEnsemble(e *elements.Ensemble) {
	idx := e.Active()
	s.ActiveCount = len(idx)

	mass := make([]float64, 0, len(idx))
	fevap := make([]float64, 0, len(idx))
	water := make([]float64, 0, len(idx))
	for _, i := range idx {
		mass = append(mass, e.MassOil[i])
		fevap = append(fevap, e.FractionEvaporated[i])
		water = append(water, e.WaterContent[i])
	}

	s.TotalMassOilKg = floats.Sum(mass)
	s.FractionEvapMean, s.FractionEvapP10, s.FractionEvapP50, s.FractionEvapP90 = Summary(fevap)
	s.WaterContentMean, s.WaterContentP10, s.WaterContentP50, s.WaterContentP90 = Summary(water)
}

// Summary computes mean and interpolated percentiles of values. Empty
// input yields all zeros.
func Summary(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	p50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	p90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("active", s.ActiveCount),
		slog.Float64("total_mass_oil_kg", s.TotalMassOilKg),
		slog.Int("seeded", s.Seeded),
		slog.Int("evaporated", s.Evaporated),
		slog.Int("stranded", s.Stranded),
		slog.Float64("dispersed_mass_kg", s.DispersedMassKg),
		slog.Float64("fraction_evap_mean", s.FractionEvapMean),
		slog.Float64("water_content_mean", s.WaterContentMean),
	)
}
