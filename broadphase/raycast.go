package broadphase

import (
	"github.com/fixstep/physics/vmath"
)

// Ray answers closest-hit queries against the registry by brute-force
// linear scan. No spatial pruning: query cost is traded for simplicity
// and for results that cannot depend on insertion order. Queries are
// read-only and may run at any point between registry mutations
type Ray struct {
	reg *Registry

	// Layers resolves bodies to layer indices for masked queries.
	// Nil, or a false return for a body, excludes that body from any
	// mask-restricted query
	Layers LayerFunc
}

func NewRay(reg *Registry, layers LayerFunc) *Ray {
	return &Ray{reg: reg, Layers: layers}
}

// Cast finds the closest accepted hit along the segment
// [origin, origin+dir]. filter may be nil to accept every hit
func (r *Ray) Cast(origin, dir vmath.Vec3, filter RayFilterFunc) (RayHit, bool) {
	return r.cast(origin, dir, filter, 0, false)
}

// CastMasked is Cast restricted to bodies whose layer bit is present in
// mask
func (r *Ray) CastMasked(origin, dir vmath.Vec3, filter RayFilterFunc, mask uint32) (RayHit, bool) {
	return r.cast(origin, dir, filter, mask, true)
}

func (r *Ray) cast(origin, dir vmath.Vec3, filter RayFilterFunc, mask uint32, masked bool) (RayHit, bool) {
	best := RayHit{Fraction: vmath.MaxValue}
	found := false

	for _, m := range r.reg.members {
		// Compounds expand to their sub-bodies, each tested as if it
		// were registered on its own
		if c, ok := m.body.(Compound); ok {
			for _, sub := range c.SubBodies() {
				found = r.testOne(sub, origin, dir, filter, mask, masked, &best) || found
			}
			continue
		}
		found = r.testOne(m.body, origin, dir, filter, mask, masked, &best) || found
	}

	return best, found
}

// testOne runs the exact per-body intersection and folds the result
// into the running best. A candidate wins only when it is strictly
// closer than the best so far AND the filter accepts it; a rejected
// nearer hit leaves the best untouched, so it cannot shadow a farther
// accepted hit. That acceptance rule is deliberate and relied upon by
// callers — see the package tests before changing it
func (r *Ray) testOne(b Body, origin, dir vmath.Vec3, filter RayFilterFunc, mask uint32, masked bool, best *RayHit) bool {
	if masked {
		if r.Layers == nil {
			return false
		}
		layer, ok := r.Layers(b)
		if !ok || layer < 0 || layer > 31 {
			return false
		}
		if mask&(uint32(1)<<uint(layer)) == 0 {
			return false
		}
	}

	ri, ok := b.(RayIntersector)
	if !ok {
		// No exact routine: transparent to rays
		return false
	}

	normal, fraction, hit := ri.IntersectRay(origin, dir)
	if !hit {
		return false
	}
	if fraction >= best.Fraction {
		return false
	}
	if filter != nil && !filter(b, normal, fraction) {
		return false
	}

	*best = RayHit{Body: b, Normal: normal, Fraction: fraction}
	return true
}
