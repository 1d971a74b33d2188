package sim

import (
	"math"

	"github.com/pthm-cable/slick/elements"
)

// SeedSpill releases the configured spill: cfg.Spill.Number particles
// scattered around the release point, each carrying cfg.Spill.MassOil
// kilograms, activated immediately. Returns the new particle indices.
func (s *Sim) SeedSpill() []int {
	spill := s.cfg.Spill
	idx := s.SeedPoint(spill.Longitude, spill.Latitude, spill.Number, spill.Radius)
	for _, i := range idx {
		s.els.MassOil[i] = spill.MassOil
	}
	return idx
}

// SeedPoint releases n particles around (lon, lat), scattered with a
// Gaussian of the given std-dev radius in meters, with schema-default
// properties. Particles start at age zero and enter the active set at
// once.
func (s *Sim) SeedPoint(lon, lat float64, n int, radius float64) []int {
	const metersPerDegreeLat = 111320.0

	idx := make([]int, 0, n)
	cosLat := math.Cos(lat * math.Pi / 180)
	for j := 0; j < n; j++ {
		var dLon, dLat float64
		if radius > 0 {
			east := s.rng.NormFloat64() * radius
			north := s.rng.NormFloat64() * radius
			dLon = east / (metersPerDegreeLat * cosLat)
			dLat = north / metersPerDegreeLat
		}
		i := s.els.Add(lon+dLon, lat+dLat)
		s.els.Activate(i)
		idx = append(idx, i)
	}
	s.collector.RecordSeeded(len(idx))
	return idx
}

// Deactivate retires a single particle with the given reason, e.g. when
// a caller detects missing forcing data for it. Idempotent.
func (s *Sim) Deactivate(i int, reason elements.Status) {
	if s.els.IsActive(i) {
		s.els.Deactivate(i, reason)
		s.collector.RecordDeactivation(reason)
	}
}
