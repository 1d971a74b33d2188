// Package sim wires the particle ensemble, environment provider, oil
// reference curves, and per-step systems into the model runner. One
// Step() is one model timestep: weathering first, then lifecycle, then
// transport, in a fixed order the processes depend on.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/slick/config"
	"github.com/pthm-cable/slick/elements"
	"github.com/pthm-cable/slick/environment"
	"github.com/pthm-cable/slick/oiltype"
	"github.com/pthm-cable/slick/systems"
	"github.com/pthm-cable/slick/telemetry"
)

// Sim is one simulation run: a single ensemble advanced through a
// forced environment. There is one writer per ensemble per step, so no
// locking is involved.
type Sim struct {
	cfg *config.Config
	els *elements.Ensemble
	env environment.Provider
	oil *oiltype.Curves
	rng *rand.Rand

	now  time.Time
	step int

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	out       *telemetry.OutputManager
}

// New constructs a run. The oil curves are injected, already loaded;
// a malformed table or configuration fails here, never mid-run. The
// RNG is seeded from cfg.Run.Seed so identical seeds reproduce every
// stochastic decision.
func New(cfg *config.Config, provider environment.Provider, oil *oiltype.Curves, startTime time.Time) (*Sim, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, fmt.Errorf("sim: nil environment provider")
	}
	if oil == nil {
		return nil, fmt.Errorf("sim: nil oil curves")
	}
	if err := oil.Validate(); err != nil {
		return nil, err
	}

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := out.WriteConfig(cfg); err != nil {
		return nil, err
	}

	dt := cfg.Run.DTSeconds
	s := &Sim{
		cfg:       cfg,
		els:       elements.NewEnsemble(),
		env:       provider,
		oil:       oil,
		rng:       rand.New(rand.NewSource(cfg.Run.Seed)),
		now:       startTime,
		collector: telemetry.NewCollector(cfg.Telemetry.WindowSeconds, dt),
		perf:      telemetry.NewPerfCollector(64),
		out:       out,
	}
	return s, nil
}

// Elements exposes the ensemble, e.g. for seeding callers and output
// writers. The caller must not mutate it while Step runs.
func (s *Sim) Elements() *elements.Ensemble { return s.els }

// Time returns the current model time.
func (s *Sim) Time() time.Time { return s.now }

// StepCount returns the number of completed steps.
func (s *Sim) StepCount() int { return s.step }

// Step advances the model one timestep. The phase order is fixed:
// aging, environment fetch, evaporation (with its stochastic retire
// decision), emulsification, dispersion, strand check against the
// pre-advection positions, then the displacement calls. Relative wind
// is computed once and shared by evaporation and emulsification.
func (s *Sim) Step() error {
	dt := s.cfg.Run.DTSeconds
	s.perf.StartStep()
	defer s.perf.EndStep()

	// Step-start active set; particles retired during the step stay in
	// idx but are skipped by later phases.
	idx := append([]int(nil), s.els.Active()...)

	if len(idx) > 0 {
		s.perf.StartPhase(telemetry.PhaseEnvironment)
		for _, i := range idx {
			s.els.AgeSeconds[i] += dt
		}

		lons, lats := s.els.Positions(idx)
		snap, err := s.env.Sample(s.now, lons, lats)
		if err != nil {
			return fmt.Errorf("sampling environment: %w", err)
		}
		if err := snap.Resolve(len(idx)); err != nil {
			return err
		}

		windspeed := systems.Windspeed(snap.XWind, snap.YWind)
		urel := systems.RelativeWind(windspeed, s.oil.ReferenceWind)

		if s.cfg.Processes.Evaporation {
			s.perf.StartPhase(telemetry.PhaseEvaporation)
			mask := systems.Evaporate(s.els, idx, urel, s.oil, dt, s.rng)
			s.deactivateWhere(idx, mask, elements.StatusEvaporated)
		}

		if s.cfg.Processes.Emulsification {
			s.perf.StartPhase(telemetry.PhaseEmulsification)
			systems.Emulsify(s.els, idx, urel, s.oil, dt)
		}

		if s.cfg.Processes.Dispersion {
			s.perf.StartPhase(telemetry.PhaseDispersion)
			lost := systems.Disperse(s.els, idx, snap.WaveSignificantHeight, windspeed, dt)
			s.collector.RecordDispersedMass(lost)
		}

		// Stranding is evaluated against the positions the step started
		// with; advection follows.
		s.perf.StartPhase(telemetry.PhaseStranding)
		strand := make([]bool, len(idx))
		for k := range idx {
			strand[k] = snap.LandBinaryMask[k] == 1
		}
		s.deactivateWhere(idx, strand, elements.StatusStranded)

		s.perf.StartPhase(telemetry.PhaseTransport)
		systems.Displace(s.els, idx, snap.XSeaWaterVelocity, snap.YSeaWaterVelocity, dt)

		wdf := s.cfg.Drift.WindDriftFactor
		windU := make([]float64, len(idx))
		windV := make([]float64, len(idx))
		floats.ScaleTo(windU, wdf, snap.XWind)
		floats.ScaleTo(windV, wdf, snap.YWind)
		systems.Displace(s.els, idx, windU, windV, dt)

		if s.cfg.Processes.Diffusion {
			sigU, sigV := systems.NoiseComponents(len(idx), s.cfg.Drift.CurrentUncertainty, s.rng)
			systems.Displace(s.els, idx, sigU, sigV, dt)

			windStd := 0.0
			if wdf > 0 && s.cfg.Drift.WindUncertainty > 0 {
				windStd = s.cfg.Drift.WindUncertainty * wdf
			}
			sigU, sigV = systems.NoiseComponents(len(idx), windStd, s.rng)
			systems.Displace(s.els, idx, sigU, sigV, dt)
		}
	}

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.step++
	s.now = s.now.Add(time.Duration(dt * float64(time.Second)))

	if s.collector.ShouldFlush(s.step) {
		stats := s.collector.Flush(s.step, s.els)
		slog.Info("window", "stats", stats)
		if err := s.out.WriteTelemetry(stats); err != nil {
			return err
		}
		if err := s.out.WritePerf(s.perf.Stats(), s.step); err != nil {
			return err
		}
	}
	return nil
}

// Run advances the model n steps, stopping at the first error.
func (s *Sim) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return fmt.Errorf("step %d: %w", s.step, err)
		}
	}
	return nil
}

// Close flushes telemetry output.
func (s *Sim) Close() error {
	return s.out.Close()
}
