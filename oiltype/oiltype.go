// Package oiltype holds per-oil weathering reference curves: monotone
// lookup tables mapping a synthetic weathering age to the cumulative
// evaporated mass fraction and the maximum emulsified water content,
// plus the wind and film-thickness reference constants the tables were
// measured at. Tables are loaded once at startup and injected into the
// weathering systems as immutable values.
package oiltype

import (
	"fmt"
	"sort"
)

// Curves is one oil type's weathering reference data.
type Curves struct {
	Name string

	Tref []float64 // weathering age axis in seconds, strictly increasing
	Fref []float64 // cumulative evaporated fraction at Tref, in [0,1]
	Wmax []float64 // maximum water content at Tref, in [0,1]

	ReferenceWind      float64 // m/s the curves were measured at
	ReferenceThickness float64 // film thickness in mm the curves assume
}

// Validate checks table well-formedness. A malformed table is fatal at
// construction time; the weathering systems assume a valid one.
func (c *Curves) Validate() error {
	if len(c.Tref) == 0 {
		return fmt.Errorf("oiltype %q: empty reference curve", c.Name)
	}
	if len(c.Fref) != len(c.Tref) || len(c.Wmax) != len(c.Tref) {
		return fmt.Errorf("oiltype %q: curve lengths differ: tref=%d fref=%d wmax=%d",
			c.Name, len(c.Tref), len(c.Fref), len(c.Wmax))
	}
	for i := 1; i < len(c.Tref); i++ {
		if c.Tref[i] <= c.Tref[i-1] {
			return fmt.Errorf("oiltype %q: tref not strictly increasing at index %d (%g <= %g)",
				c.Name, i, c.Tref[i], c.Tref[i-1])
		}
	}
	for i, f := range c.Fref {
		if f < 0 || f > 1 {
			return fmt.Errorf("oiltype %q: fref[%d] = %g outside [0,1]", c.Name, i, f)
		}
	}
	for i, w := range c.Wmax {
		if w < 0 || w > 1 {
			return fmt.Errorf("oiltype %q: wmax[%d] = %g outside [0,1]", c.Name, i, w)
		}
	}
	if c.ReferenceWind <= 0 {
		return fmt.Errorf("oiltype %q: reference wind must be positive, got %g", c.Name, c.ReferenceWind)
	}
	if c.ReferenceThickness <= 0 {
		return fmt.Errorf("oiltype %q: reference thickness must be positive, got %g", c.Name, c.ReferenceThickness)
	}
	return nil
}

// EvaporatedFraction looks up the cumulative evaporated fraction at the
// given exposure age, clamped to the table endpoints.
func (c *Curves) EvaporatedFraction(ageSeconds float64) float64 {
	return interpClamped(ageSeconds, c.Tref, c.Fref)
}

// MaxWaterContent looks up the maximum water content at the given
// emulsion age, clamped to the table endpoints.
func (c *Curves) MaxWaterContent(ageSeconds float64) float64 {
	return interpClamped(ageSeconds, c.Tref, c.Wmax)
}

// interpClamped is piecewise-linear interpolation over a strictly
// increasing axis, returning the endpoint values outside the covered
// range (no extrapolation).
func interpClamped(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	// Smallest i with xs[i] >= x; the bracketing segment is [i-1, i].
	i := sort.SearchFloat64s(xs, x)
	if xs[i] == x {
		return ys[i]
	}
	x1, x2 := xs[i-1], xs[i]
	y1, y2 := ys[i-1], ys[i]
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
