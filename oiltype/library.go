package oiltype

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

//go:embed oils.csv
var builtinOilsCSV []byte

//go:embed curves.csv
var builtinCurvesCSV []byte

// oilRow is one oil type's reference constants.
type oilRow struct {
	Name               string  `csv:"oil_type"`
	ReferenceWind      float64 `csv:"reference_wind"`      // m/s
	ReferenceThickness float64 `csv:"reference_thickness"` // mm
}

// curveRow is one sample point of an oil's weathering curves. Time is in
// hours and the fractions in percent, matching the lab report format;
// ParseLibrary converts to seconds and [0,1] fractions.
type curveRow struct {
	Name          string  `csv:"oil_type"`
	Hours         float64 `csv:"hours"`
	EvaporatedPct float64 `csv:"evaporated_pct"`
	MaxWaterPct   float64 `csv:"max_water_pct"`
}

// Library is a name-keyed set of validated oil reference curves.
type Library struct {
	curves  map[string]*Curves
	defName string
}

// ParseLibrary builds a library from the two CSV tables. Every oil must
// have constants and at least one curve row; all tables are validated.
// The first oil listed in oilsCSV becomes the default.
func ParseLibrary(oilsCSV, curvesCSV []byte) (*Library, error) {
	var oils []oilRow
	if err := gocsv.UnmarshalBytes(oilsCSV, &oils); err != nil {
		return nil, fmt.Errorf("parsing oil types: %w", err)
	}
	var rows []curveRow
	if err := gocsv.UnmarshalBytes(curvesCSV, &rows); err != nil {
		return nil, fmt.Errorf("parsing oil curves: %w", err)
	}
	if len(oils) == 0 {
		return nil, fmt.Errorf("oil type table is empty")
	}

	lib := &Library{curves: make(map[string]*Curves), defName: oils[0].Name}
	for _, o := range oils {
		if _, dup := lib.curves[o.Name]; dup {
			return nil, fmt.Errorf("duplicate oil type %q", o.Name)
		}
		lib.curves[o.Name] = &Curves{
			Name:               o.Name,
			ReferenceWind:      o.ReferenceWind,
			ReferenceThickness: o.ReferenceThickness,
		}
	}

	for _, r := range rows {
		c, ok := lib.curves[r.Name]
		if !ok {
			return nil, fmt.Errorf("curve row references unknown oil type %q", r.Name)
		}
		c.Tref = append(c.Tref, r.Hours*3600)
		c.Fref = append(c.Fref, r.EvaporatedPct*0.01)
		c.Wmax = append(c.Wmax, r.MaxWaterPct*0.01)
	}

	for _, c := range lib.curves {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// LoadLibrary reads a library from CSV files on disk.
func LoadLibrary(oilsPath, curvesPath string) (*Library, error) {
	oils, err := os.ReadFile(oilsPath)
	if err != nil {
		return nil, fmt.Errorf("reading oil types: %w", err)
	}
	curves, err := os.ReadFile(curvesPath)
	if err != nil {
		return nil, fmt.Errorf("reading oil curves: %w", err)
	}
	return ParseLibrary(oils, curves)
}

// Builtin returns the library embedded in the binary. The embedded
// tables are fixed at build time, so a parse failure is a programming
// error and panics.
func Builtin() *Library {
	lib, err := ParseLibrary(builtinOilsCSV, builtinCurvesCSV)
	if err != nil {
		panic(fmt.Sprintf("oiltype: embedded library invalid: %v", err))
	}
	return lib
}

// Get returns the curves for the named oil type.
func (l *Library) Get(name string) (*Curves, error) {
	c, ok := l.curves[name]
	if !ok {
		return nil, fmt.Errorf("unknown oil type %q (have %v)", name, l.Names())
	}
	return c, nil
}

// Default returns the library's default oil type.
func (l *Library) Default() *Curves {
	return l.curves[l.defName]
}

// Names lists the available oil types, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.curves))
	for name := range l.curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
