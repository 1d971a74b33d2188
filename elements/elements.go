// Package elements holds the Lagrangian particle ensemble: one slice per
// state variable (SoA layout for cache efficiency), a status flag per
// particle, and a compact list of active indices that the per-step
// systems iterate over.
package elements

// Ensemble is the structure-of-arrays particle store. Index i across all
// slices refers to the same particle. Slices only grow; retired particles
// keep their final state but drop out of the active list.
type Ensemble struct {
	ID    []int
	Lon   []float64
	Lat   []float64
	Depth []float64 // m below surface; 0 means at surface

	MassOil      []float64
	MassEmulsion []float64
	Viscosity    []float64
	Density      []float64

	AgeSeconds         []float64
	AgeExposureSeconds []float64
	AgeEmulsionSeconds []float64

	FractionEvaporated []float64
	WaterContent       []float64

	Status []Status

	active      []int // ascending particle indices with Status == StatusActive
	activeDirty bool
	nextID      int
}

// NewEnsemble returns an empty ensemble. IDs are assigned starting at 1.
func NewEnsemble() *Ensemble {
	return &Ensemble{nextID: 1}
}

// Len returns the total number of particles ever seeded, active or not.
func (e *Ensemble) Len() int {
	return len(e.ID)
}

// Add appends one particle at the given position with schema defaults and
// StatusInitial, returning its index. Callers adjust fields and then
// Activate it.
func (e *Ensemble) Add(lon, lat float64) int {
	i := len(e.ID)
	e.ID = append(e.ID, e.nextID)
	e.nextID++

	e.Lon = append(e.Lon, lon)
	e.Lat = append(e.Lat, lat)
	e.Depth = append(e.Depth, 0)

	e.MassOil = append(e.MassOil, DefaultOf("mass_oil"))
	e.MassEmulsion = append(e.MassEmulsion, DefaultOf("mass_emulsion"))
	e.Viscosity = append(e.Viscosity, DefaultOf("viscosity"))
	e.Density = append(e.Density, DefaultOf("density"))

	e.AgeSeconds = append(e.AgeSeconds, DefaultOf("age_seconds"))
	e.AgeExposureSeconds = append(e.AgeExposureSeconds, DefaultOf("age_exposure_seconds"))
	e.AgeEmulsionSeconds = append(e.AgeEmulsionSeconds, DefaultOf("age_emulsion_seconds"))

	e.FractionEvaporated = append(e.FractionEvaporated, DefaultOf("fraction_evaporated"))
	e.WaterContent = append(e.WaterContent, DefaultOf("water_content"))

	e.Status = append(e.Status, StatusInitial)
	return i
}

// Activate moves a freshly seeded particle into the active set. Particles
// already retired stay retired.
func (e *Ensemble) Activate(i int) {
	if e.Status[i] != StatusInitial {
		return
	}
	e.Status[i] = StatusActive
	e.activeDirty = true
}

// Deactivate retires particle i with the given terminal reason. It is
// idempotent: only currently active particles transition, so a particle
// keeps the first reason it was retired with.
func (e *Ensemble) Deactivate(i int, reason Status) {
	if e.Status[i] != StatusActive {
		return
	}
	e.Status[i] = reason
	e.activeDirty = true
}

// IsActive reports whether particle i participates in per-step arithmetic.
func (e *Ensemble) IsActive(i int) bool {
	return e.Status[i] == StatusActive
}

// NumActive returns the number of active particles.
func (e *Ensemble) NumActive() int {
	return len(e.Active())
}

// Active returns the ascending indices of active particles. The returned
// slice is owned by the ensemble and valid until the next lifecycle
// change; callers must not mutate it.
func (e *Ensemble) Active() []int {
	if e.activeDirty || e.active == nil {
		e.active = e.active[:0]
		for i, s := range e.Status {
			if s == StatusActive {
				e.active = append(e.active, i)
			}
		}
		e.activeDirty = false
	}
	return e.active
}

// Positions gathers lon/lat for the given particle indices into fresh
// slices, aligned index-for-index with idx.
func (e *Ensemble) Positions(idx []int) (lons, lats []float64) {
	lons = make([]float64, len(idx))
	lats = make([]float64, len(idx))
	for k, i := range idx {
		lons[k] = e.Lon[i]
		lats[k] = e.Lat[i]
	}
	return lons, lats
}

// CountByStatus tallies particles per lifecycle state.
func (e *Ensemble) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, s := range e.Status {
		counts[s]++
	}
	return counts
}
