// Package broadphase implements the candidate-pair discovery stage of a
// deterministic rigid-body pipeline: a sweep-and-prune pass over an
// explicit body registry, plus brute-force ray queries against the same
// set. All geometry is Q32.32 fixed point so every participant of a
// lockstep simulation computes identical results.
package broadphase

import (
	"github.com/fixstep/physics/vmath"
)

// Body is the minimal capability a broadphase participant exposes.
// Bodies are owned by the outer simulation; the broadphase holds
// non-owning references and re-reads bounds on every pass, so boxes may
// change freely between ticks
type Body interface {
	// BoundingBox returns the current world-space AABB
	BoundingBox() vmath.AABB

	// StaticOrInactive reports whether the body neither moves nor
	// wakes; pairs of such bodies are skipped entirely
	StaticOrInactive() bool
}

// Compound is an optional capability for bodies that decompose into
// independently testable sub-bodies (deformable meshes, ragdoll
// clusters). Ray queries expand compounds and test each sub-body as if
// it were registered on its own
type Compound interface {
	Body

	// SubBodies returns the constituent bodies in a stable order
	SubBodies() []Body
}

// RayIntersector is the per-body exact intersection routine. The
// fraction is position along the segment [origin, origin+dir] in
// [0, Scale]. Bodies without this capability are transparent to rays
type RayIntersector interface {
	IntersectRay(origin, dir vmath.Vec3) (normal vmath.Vec3, fraction int64, ok bool)
}

// AcceptPairFunc is the broadphase-accept callback, invoked once per
// AABB-overlapping non-static-static pair. Nil means accept everything
type AcceptPairFunc func(a, b Body) bool

// NarrowPhaseFunc receives each accepted pair. The argument order is
// (earlier-sorted body, later-sorted body); treat the pair as unordered
type NarrowPhaseFunc func(a, b Body)

// RayFilterFunc decides whether a candidate ray hit is accepted.
// Rejection does not advance the closest-hit tracking, so a nearer
// rejected hit never masks a farther accepted one
type RayFilterFunc func(b Body, normal vmath.Vec3, fraction int64) bool

// LayerFunc resolves a body to its collision layer index. Returning
// false means the body has no layer bit and is excluded from any
// mask-restricted query
type LayerFunc func(b Body) (int, bool)

// RayHit is the result of an accepted ray query
type RayHit struct {
	Body     Body
	Normal   vmath.Vec3
	Fraction int64
}
