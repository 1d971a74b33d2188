package environment

import (
	"fmt"
	"time"
)

// Combined wraps a provider and applies an elementwise transform to
// every field value it returns. Useful for unit fixes and scaling
// experiments without touching the underlying provider.
type Combined struct {
	inner Provider
	op    func(float64) float64
	name  string
}

// Add returns a provider whose field values are n + x.
func Add(n float64, p Provider) *Combined {
	return &Combined{inner: p, op: func(x float64) float64 { return n + x }, name: fmt.Sprintf("Add(%g)", n)}
}

// Mul returns a provider whose field values are n * x.
func Mul(n float64, p Provider) *Combined {
	return &Combined{inner: p, op: func(x float64) float64 { return n * x }, name: fmt.Sprintf("Mul(%g)", n)}
}

// Sub returns a provider whose field values are x - n.
func Sub(n float64, p Provider) *Combined {
	return &Combined{inner: p, op: func(x float64) float64 { return x - n }, name: fmt.Sprintf("Sub(%g)", n)}
}

// Div returns a provider whose field values are x / n. n must be nonzero.
func Div(n float64, p Provider) *Combined {
	if n == 0 {
		panic("environment: Div combined with zero")
	}
	return &Combined{inner: p, op: func(x float64) float64 { return x / n }, name: fmt.Sprintf("Div(%g)", n)}
}

// Transform returns a provider applying an arbitrary elementwise op.
func Transform(name string, op func(float64) float64, p Provider) *Combined {
	return &Combined{inner: p, op: op, name: name}
}

func (c *Combined) String() string {
	return fmt.Sprintf("Combined(%s | %v)", c.name, c.inner)
}

// Sample queries the inner provider and applies the transform to every
// non-nil field, the land mask included.
func (c *Combined) Sample(when time.Time, lons, lats []float64) (*Snapshot, error) {
	snap, err := c.inner.Sample(when, lons, lats)
	if err != nil {
		return nil, err
	}
	for _, field := range snap.fields() {
		if *field == nil {
			continue
		}
		for i, x := range *field {
			(*field)[i] = c.op(x)
		}
	}
	return snap, nil
}
