package elements

// SchemaVersion identifies the particle field layout. Bump when fields
// are added, removed, or change units.
const SchemaVersion = 1

// Field describes one per-particle state variable.
type Field struct {
	Name    string
	Units   string
	Default float64
}

// Schema is the ordered declaration of the per-particle oil state.
// NewEnsemble applies the defaults; telemetry uses the names.
var Schema = []Field{
	{Name: "mass_oil", Units: "kg", Default: 1},
	{Name: "viscosity", Units: "N s/m2 (Pa s)", Default: 0.5},
	{Name: "density", Units: "kg/m^3", Default: 800},
	{Name: "age_seconds", Units: "s", Default: 0},
	{Name: "age_exposure_seconds", Units: "s", Default: 0},
	{Name: "age_emulsion_seconds", Units: "s", Default: 0},
	{Name: "mass_emulsion", Units: "kg", Default: 0},
	{Name: "fraction_evaporated", Units: "1", Default: 0},
	{Name: "water_content", Units: "1", Default: 0},
}

// DefaultOf returns the schema default for a field name, or 0 if the
// field is unknown.
func DefaultOf(name string) float64 {
	for _, f := range Schema {
		if f.Name == name {
			return f.Default
		}
	}
	return 0
}
