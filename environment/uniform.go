package environment

import "time"

// Uniform is a provider returning the same scalar values everywhere.
// The land mask comes from the Land function when set, otherwise the
// whole domain is water. Mainly used in tests and idealized runs.
type Uniform struct {
	CurrentU, CurrentV float64
	WaveHeight         float64
	WaveDirection      float64
	WindU, WindV       float64

	// Land returns 1 for land, 0 for sea at a position. Nil means all sea.
	Land func(lon, lat float64) float64
}

func (u *Uniform) String() string { return "Uniform" }

func (u *Uniform) Sample(when time.Time, lons, lats []float64) (*Snapshot, error) {
	n := len(lons)
	snap := &Snapshot{
		XSeaWaterVelocity:     filled(n, u.CurrentU),
		YSeaWaterVelocity:     filled(n, u.CurrentV),
		WaveSignificantHeight: filled(n, u.WaveHeight),
		WaveToDirection:       filled(n, u.WaveDirection),
		XWind:                 filled(n, u.WindU),
		YWind:                 filled(n, u.WindV),
		LandBinaryMask:        make([]float64, n),
	}
	if u.Land != nil {
		for i := range lons {
			snap.LandBinaryMask[i] = u.Land(lons[i], lats[i])
		}
	}
	return snap, nil
}

func filled(n int, v float64) []float64 {
	s := make([]float64, n)
	if v != 0 {
		for i := range s {
			s[i] = v
		}
	}
	return s
}
