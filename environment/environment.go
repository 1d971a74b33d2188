// Package environment defines the boundary between the particle core and
// whatever supplies forcing data: a Provider returns interpolated field
// values at arbitrary particle positions and times, as parallel arrays
// aligned index-for-index with the query positions.
package environment

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoLandMask is returned when a provider cannot supply the land
// binary mask. Unlike the met-ocean fields, the mask has no fallback:
// without it stranding cannot be evaluated, so the step must not run.
var ErrNoLandMask = errors.New("environment: land_binary_mask unavailable and has no fallback")

// Snapshot holds one timestep's forcing values. Each non-nil slice is
// aligned with the positions the provider was queried at. A nil slice
// means the provider had no data for that field; Resolve substitutes
// fallbacks where they exist.
type Snapshot struct {
	XSeaWaterVelocity []float64 // m/s, eastward
	YSeaWaterVelocity []float64 // m/s, northward

	WaveSignificantHeight []float64 // m
	WaveToDirection       []float64 // degrees

	XWind []float64 // m/s, eastward
	YWind []float64 // m/s, northward

	LandBinaryMask []float64 // 1 on land, 0 at sea; no fallback
}

// Provider supplies interpolated forcing values at particle positions.
type Provider interface {
	Sample(when time.Time, lons, lats []float64) (*Snapshot, error)
}

// Resolve fills fallback values (all zeros) for missing met-ocean fields
// and verifies that every field is aligned with the n query positions.
// A missing land mask is a fatal configuration error.
func (s *Snapshot) Resolve(n int) error {
	fallback := func(field *[]float64) error {
		if *field == nil {
			*field = make([]float64, n)
			return nil
		}
		if len(*field) != n {
			return fmt.Errorf("environment: field length %d does not match %d query positions", len(*field), n)
		}
		return nil
	}

	for _, field := range []*[]float64{
		&s.XSeaWaterVelocity, &s.YSeaWaterVelocity,
		&s.WaveSignificantHeight, &s.WaveToDirection,
		&s.XWind, &s.YWind,
	} {
		if err := fallback(field); err != nil {
			return err
		}
	}

	if s.LandBinaryMask == nil {
		return ErrNoLandMask
	}
	if len(s.LandBinaryMask) != n {
		return fmt.Errorf("environment: land mask length %d does not match %d query positions", len(s.LandBinaryMask), n)
	}
	return nil
}

// fields lists the snapshot's value slices for elementwise operators.
func (s *Snapshot) fields() []*[]float64 {
	return []*[]float64{
		&s.XSeaWaterVelocity, &s.YSeaWaterVelocity,
		&s.WaveSignificantHeight, &s.WaveToDirection,
		&s.XWind, &s.YWind,
		&s.LandBinaryMask,
	}
}
