package sim

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/slick/config"
	"github.com/pthm-cable/slick/elements"
	"github.com/pthm-cable/slick/environment"
	"github.com/pthm-cable/slick/oiltype"
)

var t0 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := config.MustLoad("")
	cfg.Spill.Longitude = 4
	cfg.Spill.Latitude = 60
	cfg.Spill.Radius = 0
	cfg.Spill.Number = 10
	cfg.Spill.MassOil = 1000
	cfg.Run.Seed = 42
	cfg.Telemetry.WindowSeconds = 0
	return cfg
}

func testCurves() *oiltype.Curves {
	return &oiltype.Curves{
		Name:               "test",
		Tref:               []float64{0, 3600, 7200},
		Fref:               []float64{0, 0.2, 0.4},
		Wmax:               []float64{0, 0.5, 0.8},
		ReferenceWind:      10,
		ReferenceThickness: 20,
	}
}

func newSim(t *testing.T, cfg *config.Config, env environment.Provider) *Sim {
	t.Helper()
	s, err := New(cfg, env, testCurves(), t0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestStepZeroForcingNoMotion(t *testing.T) {
	cfg := testConfig()
	cfg.Processes.Diffusion = false
	s := newSim(t, cfg, &environment.Uniform{})
	s.SeedSpill()

	idx := s.Elements().Active()
	lons, lats := s.Elements().Positions(idx)

	if err := s.Run(5); err != nil {
		t.Fatalf("Run: %v", err)
	}

	after, afterLat := s.Elements().Positions(idx)
	for k := range idx {
		if after[k] != lons[k] || afterLat[k] != lats[k] {
			t.Errorf("particle %d moved without forcing or diffusion", k)
		}
	}
}

func TestStepCurrentAdvection(t *testing.T) {
	cfg := testConfig()
	cfg.Processes.Diffusion = false
	s := newSim(t, cfg, &environment.Uniform{CurrentV: 0.5})
	s.SeedSpill()

	if err := s.Step(); err != nil {
		t.Fatal(err)
	}

	e := s.Elements()
	wantDLat := 0.5 * 3600 / 111320.0
	for _, i := range e.Active() {
		if math.Abs((e.Lat[i]-60)-wantDLat) > 1e-12 {
			t.Errorf("dLat = %v, want %v", e.Lat[i]-60, wantDLat)
		}
		if e.Lon[i] != 4 {
			t.Errorf("lon = %v, want unchanged 4", e.Lon[i])
		}
	}
}

func TestStepWindDriftScaledByFactor(t *testing.T) {
	cfg := testConfig()
	cfg.Processes.Diffusion = false
	cfg.Processes.Evaporation = false
	cfg.Drift.WindDriftFactor = 0.02
	s := newSim(t, cfg, &environment.Uniform{WindV: 10})
	s.SeedSpill()

	if err := s.Step(); err != nil {
		t.Fatal(err)
	}

	e := s.Elements()
	wantDLat := 0.02 * 10 * 3600 / 111320.0
	for _, i := range e.Active() {
		if math.Abs((e.Lat[i]-60)-wantDLat) > 1e-12 {
			t.Errorf("dLat = %v, want %v", e.Lat[i]-60, wantDLat)
		}
	}
}

func TestStepDispersionReducesMass(t *testing.T) {
	cfg := testConfig()
	cfg.Processes.Evaporation = false
	cfg.Processes.Diffusion = false
	s := newSim(t, cfg, &environment.Uniform{WaveHeight: 2, WindU: 5})
	s.SeedSpill()

	e := s.Elements()
	for _, i := range e.Active() {
		e.Viscosity[i] = 0.5
		e.Density[i] = 800
	}

	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	for _, i := range e.Active() {
		if e.MassOil[i] >= 1000 {
			t.Errorf("mass_oil = %v, want strictly below 1000 in breaking seas", e.MassOil[i])
		}
	}
}

func TestStepEvaporationOffLeavesStateUntouched(t *testing.T) {
	cfg := testConfig()
	cfg.Processes.Evaporation = false
	s := newSim(t, cfg, &environment.Uniform{WindU: 8})
	s.SeedSpill()

	if err := s.Run(5); err != nil {
		t.Fatal(err)
	}
	e := s.Elements()
	for _, i := range e.Active() {
		if e.AgeExposureSeconds[i] != 0 {
			t.Errorf("exposure age = %v with evaporation off", e.AgeExposureSeconds[i])
		}
		if e.FractionEvaporated[i] != 0 {
			t.Errorf("fraction = %v with evaporation off", e.FractionEvaporated[i])
		}
	}
	if n := e.CountByStatus()[elements.StatusEvaporated]; n != 0 {
		t.Errorf("%d particles evaporated with process off", n)
	}
}

func TestStepWeatheringStateEvolves(t *testing.T) {
	cfg := testConfig()
	s := newSim(t, cfg, &environment.Uniform{WindU: 6})
	s.SeedSpill()

	e := s.Elements()
	prevF := make(map[int]float64)
	for step := 0; step < 6; step++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
		for _, i := range e.Active() {
			f := e.FractionEvaporated[i]
			if f < prevF[i] {
				t.Fatalf("step %d: fraction decreased %v -> %v", step, prevF[i], f)
			}
			prevF[i] = f
			if w := e.WaterContent[i]; w < 0 || w > 0.8 {
				t.Fatalf("step %d: water content %v outside [0, 0.8]", step, w)
			}
		}
	}
}

func TestStepStrandingBeatsEverything(t *testing.T) {
	cfg := testConfig()
	allLand := &environment.Uniform{
		CurrentU: 1,
		Land:     func(lon, lat float64) float64 { return 1 },
	}
	s := newSim(t, cfg, allLand)
	s.SeedSpill()

	lons, _ := s.Elements().Positions(s.Elements().Active())
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}

	e := s.Elements()
	if n := e.NumActive(); n != 0 {
		t.Errorf("%d particles still active on land", n)
	}
	if n := e.CountByStatus()[elements.StatusStranded]; n != 10 {
		t.Errorf("stranded = %d, want 10", n)
	}
	// Stranded particles are retired before advection, so they keep the
	// positions the step started with.
	for k, i := range []int{0, 1, 2} {
		if e.Lon[i] != lons[k] {
			t.Errorf("stranded particle %d advected to lon %v", i, e.Lon[i])
		}
	}
}

func TestRunReproducibleWithSameSeed(t *testing.T) {
	run := func() ([]float64, []float64) {
		cfg := testConfig()
		cfg.Spill.Radius = 500
		s := newSim(t, cfg, &environment.Uniform{CurrentU: 0.2, WindU: 7, WaveHeight: 1})
		s.SeedSpill()
		if err := s.Run(10); err != nil {
			t.Fatal(err)
		}
		e := s.Elements()
		all := make([]int, e.Len())
		for i := range all {
			all[i] = i
		}
		lons, lats := e.Positions(all)
		return lons, lats
	}

	aLon, aLat := run()
	bLon, bLat := run()
	for i := range aLon {
		if aLon[i] != bLon[i] || aLat[i] != bLat[i] {
			t.Fatalf("particle %d diverged with identical seed", i)
		}
	}
}

func TestStepEmptyEnsembleAdvancesTime(t *testing.T) {
	s := newSim(t, testConfig(), &environment.Uniform{})
	if err := s.Run(3); err != nil {
		t.Fatalf("Run on empty ensemble: %v", err)
	}
	if s.StepCount() != 3 {
		t.Errorf("steps = %d, want 3", s.StepCount())
	}
	if got, want := s.Time(), t0.Add(3*time.Hour); !got.Equal(want) {
		t.Errorf("time = %v, want %v", got, want)
	}
}

// noMaskProvider omits the land mask, which Snapshot.Resolve treats as
// a hard error rather than assuming open water.
type noMaskProvider struct{}

func (noMaskProvider) Sample(when time.Time, lons, lats []float64) (*environment.Snapshot, error) {
	return &environment.Snapshot{}, nil
}

func TestStepRequiresLandMask(t *testing.T) {
	s := newSim(t, testConfig(), noMaskProvider{})
	s.SeedSpill()
	if err := s.Step(); err == nil {
		t.Fatal("expected error without land mask")
	}
}

func TestSeedSpill(t *testing.T) {
	cfg := testConfig()
	cfg.Spill.Radius = 1000
	s := newSim(t, cfg, &environment.Uniform{})
	idx := s.SeedSpill()

	e := s.Elements()
	if len(idx) != 10 || e.NumActive() != 10 {
		t.Fatalf("seeded %d active %d, want 10", len(idx), e.NumActive())
	}
	spread := false
	for _, i := range idx {
		if e.MassOil[i] != 1000 {
			t.Errorf("mass_oil = %v, want 1000", e.MassOil[i])
		}
		if !e.IsActive(i) {
			t.Errorf("particle %d not active after seeding", i)
		}
		// Scatter stays within a few sigma of the release point.
		if math.Abs(e.Lat[i]-60) > 10000/111320.0 {
			t.Errorf("particle %d scattered too far: lat %v", i, e.Lat[i])
		}
		if e.Lon[i] != 4 || e.Lat[i] != 60 {
			spread = true
		}
	}
	if !spread {
		t.Error("nonzero radius produced no scatter")
	}
}

func TestSeedPointZeroRadius(t *testing.T) {
	s := newSim(t, testConfig(), &environment.Uniform{})
	idx := s.SeedPoint(4, 60, 5, 0)
	e := s.Elements()
	for _, i := range idx {
		if e.Lon[i] != 4 || e.Lat[i] != 60 {
			t.Errorf("particle %d at (%v, %v), want exactly (4, 60)", i, e.Lon[i], e.Lat[i])
		}
	}
}

func TestNewRejectsBadInputs(t *testing.T) {
	cfg := testConfig()
	env := &environment.Uniform{}

	if _, err := New(nil, env, testCurves(), t0); err == nil {
		t.Error("nil config accepted")
	}
	if _, err := New(cfg, nil, testCurves(), t0); err == nil {
		t.Error("nil provider accepted")
	}
	if _, err := New(cfg, env, nil, t0); err == nil {
		t.Error("nil oil accepted")
	}

	bad := testCurves()
	bad.Tref = []float64{0}
	if _, err := New(cfg, env, bad, t0); err == nil {
		t.Error("invalid oil curves accepted")
	}

	badCfg := testConfig()
	badCfg.Run.DTSeconds = -1
	if _, err := New(badCfg, env, testCurves(), t0); err == nil {
		t.Error("invalid config accepted")
	}
}
