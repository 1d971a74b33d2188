package environment

import (
	"time"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Synthetic generates a divergence-free mesoscale current field from the
// curl of a simplex-noise potential, with uniform wind and waves and a
// longitude-threshold coastline. It is deterministic for a given seed,
// which makes it useful for self-contained runs and reproducibility
// tests without gridded forcing data.
type Synthetic struct {
	noise opensimplex.Noise

	// CurrentSpeed scales the curl field to m/s.
	CurrentSpeed float64
	// NoiseScale converts degrees lon/lat to noise coordinates. Smaller
	// values give larger eddies.
	NoiseScale float64
	// Evolution converts model time to the noise's third axis, in noise
	// units per hour. Zero freezes the field.
	Evolution float64

	WindU, WindV float64
	WaveHeight   float64

	// CoastLon marks everything at or east of this longitude as land.
	CoastLon float64

	epoch time.Time
}

// NewSynthetic returns a synthetic provider with a fixed noise seed and
// moderate defaults: 0.3 m/s eddies a few tens of kilometres across and
// a coastline far outside any usual domain.
func NewSynthetic(seed int64) *Synthetic {
	return &Synthetic{
		noise:        opensimplex.New(seed),
		CurrentSpeed: 0.3,
		NoiseScale:   2.0,
		Evolution:    0.05,
		CoastLon:     360,
		epoch:        time.Unix(0, 0).UTC(),
	}
}

func (s *Synthetic) String() string { return "Synthetic" }

func (s *Synthetic) Sample(when time.Time, lons, lats []float64) (*Snapshot, error) {
	n := len(lons)
	snap := &Snapshot{
		XSeaWaterVelocity:     make([]float64, n),
		YSeaWaterVelocity:     make([]float64, n),
		WaveSignificantHeight: filled(n, s.WaveHeight),
		WaveToDirection:       make([]float64, n),
		XWind:                 filled(n, s.WindU),
		YWind:                 filled(n, s.WindV),
		LandBinaryMask:        make([]float64, n),
	}

	t := when.Sub(s.epoch).Hours() * s.Evolution
	const eps = 0.01
	for i := range lons {
		x := lons[i] * s.NoiseScale
		y := lats[i] * s.NoiseScale

		// Curl of the scalar potential: (dpsi/dy, -dpsi/dx), so the flow
		// follows noise contours and stays divergence free.
		psi0 := s.noise.Eval3(x, y, t)
		psiDx := s.noise.Eval3(x+eps, y, t)
		psiDy := s.noise.Eval3(x, y+eps, t)

		snap.XSeaWaterVelocity[i] = (psiDy - psi0) / eps * s.CurrentSpeed
		snap.YSeaWaterVelocity[i] = -(psiDx - psi0) / eps * s.CurrentSpeed

		if lons[i] >= s.CoastLon {
			snap.LandBinaryMask[i] = 1
		}
	}
	return snap, nil
}
