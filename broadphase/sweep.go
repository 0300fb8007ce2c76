package broadphase

import (
	"slices"

	"github.com/fixstep/physics/vmath"
)

// sweepEntry caches one body's geometry for the duration of a single
// pass. Bounds are re-read from the body at the start of every Detect,
// never carried across ticks
type sweepEntry struct {
	body   Body
	box    vmath.AABB
	static bool
	seq    uint64
}

// compareMinX is the axis comparator: ascending bounding-box min-x,
// ties broken by registration sequence. Exact integer three-way
// compare, so the order is bit-identical on every platform
func compareMinX(a, b sweepEntry) int {
	if c := vmath.Cmp(a.box.Min.X, b.box.Min.X); c != 0 {
		return c
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// Sweep is the stateless sweep-and-prune engine. Each Detect call sorts
// the registry along x and sweeps it with an active window; no sweep
// state survives between calls. Scratch slices are reused only to avoid
// reallocation, their contents are rebuilt from scratch every pass
type Sweep struct {
	// Accept is consulted once per AABB-overlapping non-static-static
	// pair; nil accepts every pair
	Accept AcceptPairFunc

	// NarrowPhase receives each accepted pair; nil is a no-op
	NarrowPhase NarrowPhaseFunc

	reg    *Registry
	sorted []sweepEntry
	window []sweepEntry
}

func NewSweep(reg *Registry) *Sweep {
	return &Sweep{reg: reg}
}

// Detect runs one sweep pass over the current registry contents and
// reports every pair whose boxes overlap on all three axes, excluding
// static-static pairs, to Accept and then NarrowPhase. Each unordered
// pair is reported at most once
func (s *Sweep) Detect() {
	s.sorted = snapshot(s.sorted[:0], s.reg)
	slices.SortFunc(s.sorted, compareMinX)
	s.window = runSweep(s.sorted, s.window[:0], s.Accept, s.NarrowPhase)
}

// snapshot reads every member's current box and static flag into dst
func snapshot(dst []sweepEntry, reg *Registry) []sweepEntry {
	for _, m := range reg.members {
		dst = append(dst, sweepEntry{
			body:   m.body,
			box:    m.body.BoundingBox(),
			static: m.body.StaticOrInactive(),
			seq:    m.seq,
		})
	}
	return dst
}

// runSweep walks entries in sorted order maintaining the active window:
// members whose max-x has fallen behind the current entry's min-x are
// evicted for the rest of the pass, survivors are pair-tested on y and
// z. x-overlap is implied by the sort. Returns the window slice so the
// caller can keep its capacity
func runSweep(sorted, window []sweepEntry, accept AcceptPairFunc, narrow NarrowPhaseFunc) []sweepEntry {
	for _, e := range sorted {
		// Evict in place; write index never passes read index
		kept := window[:0]
		for _, a := range window {
			if a.box.Max.X < e.box.Min.X {
				continue
			}
			kept = append(kept, a)
		}
		window = kept

		for _, a := range window {
			if a.static && e.static {
				continue
			}
			if !a.box.OverlapsYZ(e.box) {
				continue
			}
			if accept != nil && !accept(a.body, e.body) {
				continue
			}
			if narrow != nil {
				narrow(a.body, e.body)
			}
		}

		window = append(window, e)
	}
	return window
}
