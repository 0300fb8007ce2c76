package shape

import (
	"github.com/fixstep/physics/broadphase"
	"github.com/fixstep/physics/vmath"
)

// Box is an axis-aligned box body
type Box struct {
	Center vmath.Vec3
	Half   vmath.Vec3 // half extents per axis
	Vel    vmath.Vec3
	Static bool
	Layer  int
}

func NewBox(center, halfExtent vmath.Vec3) *Box {
	return &Box{Center: center, Half: halfExtent}
}

func (b *Box) BoundingBox() vmath.AABB {
	return vmath.AABBFromCenter(b.Center, b.Half)
}

func (b *Box) StaticOrInactive() bool {
	return b.Static
}

// Advance moves the box by its velocity over dt seconds
func (b *Box) Advance(dt int64) {
	b.Center = vmath.V3Add(b.Center, vmath.V3Scale(b.Vel, dt))
}

// IntersectRay delegates to the fixed-point slab test; for an
// axis-aligned box the exact shape is its bounding box
func (b *Box) IntersectRay(origin, dir vmath.Vec3) (vmath.Vec3, int64, bool) {
	fraction, normal, ok := b.BoundingBox().SegmentIntersect(origin, dir)
	if !ok {
		return vmath.Vec3{}, 0, false
	}
	return normal, fraction, true
}

var (
	_ broadphase.Body           = (*Box)(nil)
	_ broadphase.RayIntersector = (*Box)(nil)
)
