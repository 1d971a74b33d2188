package elements

// Status is the lifecycle state of a particle. A particle leaves
// StatusActive exactly once; every other transition is a no-op.
type Status uint8

const (
	StatusInitial Status = iota
	StatusActive
	StatusMissingData
	StatusStranded
	StatusEvaporated
	StatusDispersed
)

var statusNames = [...]string{
	StatusInitial:     "initial",
	StatusActive:      "active",
	StatusMissingData: "missing_data",
	StatusStranded:    "stranded",
	StatusEvaporated:  "evaporated",
	StatusDispersed:   "dispersed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Terminal reports whether a particle in this state is retired from
// all further per-step arithmetic.
func (s Status) Terminal() bool {
	return s != StatusInitial && s != StatusActive
}
