package broadphase

import (
	"slices"
)

// PersistentSweep is the incremental variant of Sweep: it keeps the
// x-sorted order between Detect calls and repairs it with an insertion
// sort, which is near-linear when bodies move a little per tick. The
// accepted pair set of every call is identical to what the stateless
// Sweep would report for the same registry contents; only the sorting
// cost differs. Optional — most callers are fine with Sweep
type PersistentSweep struct {
	Accept      AcceptPairFunc
	NarrowPhase NarrowPhaseFunc

	reg    *Registry
	order  []sweepEntry // persisted sorted order
	window []sweepEntry
	seen   uint64 // registry generation at last rebuild
	primed bool
}

func NewPersistentSweep(reg *Registry) *PersistentSweep {
	return &PersistentSweep{reg: reg}
}

// Invalidate drops the cached order; the next Detect rebuilds from the
// registry. Called automatically on membership churn, exposed for
// callers that mutate body identity in ways the registry cannot see
func (s *PersistentSweep) Invalidate() {
	s.primed = false
}

// Detect runs one sweep pass. Results match Sweep.Detect exactly
func (s *PersistentSweep) Detect() {
	if !s.primed || s.seen != s.reg.generation() {
		s.order = snapshot(s.order[:0], s.reg)
		slices.SortFunc(s.order, compareMinX)
		s.seen = s.reg.generation()
		s.primed = true
	} else {
		s.refresh()
	}
	s.window = runSweep(s.order, s.window[:0], s.Accept, s.NarrowPhase)
}

// refresh re-reads every body's box and flag, then restores sort order
// by insertion sort. Same comparator as the full sort, so the repaired
// order is the order a fresh sort would produce
func (s *PersistentSweep) refresh() {
	for i := range s.order {
		e := &s.order[i]
		e.box = e.body.BoundingBox()
		e.static = e.body.StaticOrInactive()
	}
	for i := 1; i < len(s.order); i++ {
		e := s.order[i]
		j := i - 1
		for j >= 0 && compareMinX(s.order[j], e) > 0 {
			s.order[j+1] = s.order[j]
			j--
		}
		s.order[j+1] = e
	}
}
