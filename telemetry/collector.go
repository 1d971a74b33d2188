// Package telemetry aggregates per-step simulation events into windowed
// statistics, times the phases of the step loop, and optionally writes
// CSV time series.
package telemetry

import "github.com/pthm-cable/slick/elements"

// Collector accumulates lifecycle and mass-budget events within time
// windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationSteps int
	dt                  float64

	windowStartStep int

	// Event counters for the current window
	seeded        int
	evaporated    int
	stranded      int
	dispersed     int
	missingData   int
	dispersedMass float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in model seconds.
// dt: model seconds per step.
func NewCollector(windowDurationSec, dt float64) *Collector {
	stepsPerWindow := int(windowDurationSec / dt)
	if stepsPerWindow < 1 {
		stepsPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationSteps: stepsPerWindow,
		dt:                  dt,
	}
}

// RecordSeeded records n particles entering the active set.
func (c *Collector) RecordSeeded(n int) {
	c.seeded += n
}

// RecordDeactivation tallies a particle retirement under its reason.
func (c *Collector) RecordDeactivation(reason elements.Status) {
	switch reason {
	case elements.StatusEvaporated:
		c.evaporated++
	case elements.StatusStranded:
		c.stranded++
	case elements.StatusDispersed:
		c.dispersed++
	case elements.StatusMissingData:
		c.missingData++
	}
}

// RecordDispersedMass adds entrained oil mass to the window budget.
func (c *Collector) RecordDispersedMass(kg float64) {
	c.dispersedMass += kg
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentStep int) bool {
	return currentStep-c.windowStartStep >= c.windowDurationSteps
}

// Flush produces WindowStats for the closing window, sampling the
// ensemble's current state, and resets counters for the next window.
func (c *Collector) Flush(currentStep int, e *elements.Ensemble) WindowStats {
	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   currentStep,
		SimTimeSec:      float64(currentStep) * c.dt,

		Seeded:          c.seeded,
		Evaporated:      c.evaporated,
		Stranded:        c.stranded,
		Dispersed:       c.dispersed,
		MissingData:     c.missingData,
		DispersedMassKg: c.dispersedMass,
	}
	stats.sampleEnsemble(e)

	c.windowStartStep = currentStep
	c.seeded = 0
	c.evaporated = 0
	c.stranded = 0
	c.dispersed = 0
	c.missingData = 0
	c.dispersedMass = 0

	return stats
}
