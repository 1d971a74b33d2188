package sim

import "github.com/pthm-cable/slick/elements"

// deactivateWhere retires every particle in idx where the mask holds,
// tallying the reason. The ensemble makes the transition idempotent, so
// particles already retired earlier in the step keep their first
// reason; within one step evaporation is always evaluated before
// stranding. Returns the number of particles retired.
func (s *Sim) deactivateWhere(idx []int, mask []bool, reason elements.Status) int {
	var n int
	for k, i := range idx {
		if !mask[k] || !s.els.IsActive(i) {
			continue
		}
		s.els.Deactivate(i, reason)
		s.collector.RecordDeactivation(reason)
		n++
	}
	return n
}
