// Package shape provides concrete fixed-point bodies for the broadphase:
// spheres, boxes, and compound clusters. The outer simulation owns them;
// the broadphase only sees the Body capability surface.
package shape

import (
	"github.com/fixstep/physics/broadphase"
	"github.com/fixstep/physics/vmath"
)

// Sphere is a ball body. Center and Radius are Q32.32
type Sphere struct {
	Center vmath.Vec3
	Radius int64
	Vel    vmath.Vec3
	Static bool
	Layer  int
}

func NewSphere(center vmath.Vec3, radius int64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

func (s *Sphere) BoundingBox() vmath.AABB {
	r := vmath.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return vmath.AABBFromCenter(s.Center, r)
}

func (s *Sphere) StaticOrInactive() bool {
	return s.Static
}

// Advance moves the sphere by its velocity over dt seconds. Demo-side
// integration only; the broadphase never moves bodies
func (s *Sphere) Advance(dt int64) {
	s.Center = vmath.V3Add(s.Center, vmath.V3Scale(s.Vel, dt))
}

// IntersectRay solves the segment-vs-sphere quadratic in Q32.32.
// Fraction is along [origin, origin+dir]; a segment starting inside
// the sphere hits at fraction 0. The quadratic is solved against the
// unit direction so intermediate squares stay in world-distance range
// instead of squared-segment-length range
func (s *Sphere) IntersectRay(origin, dir vmath.Vec3) (vmath.Vec3, int64, bool) {
	length := vmath.V3Mag(dir)
	if length == 0 {
		return vmath.Vec3{}, 0, false
	}
	unit := vmath.Vec3{
		X: vmath.Div(dir.X, length),
		Y: vmath.Div(dir.Y, length),
		Z: vmath.Div(dir.Z, length),
	}

	oc := vmath.V3Sub(origin, s.Center)
	proj := vmath.V3Dot(oc, unit)
	c := vmath.V3MagSq(oc) - vmath.Mul(s.Radius, s.Radius)

	disc := vmath.Mul(proj, proj) - c
	if disc < 0 {
		return vmath.Vec3{}, 0, false
	}
	sq := vmath.Sqrt(disc)

	// Distance along the unit ray to the entry point
	dist := -proj - sq
	if dist < 0 {
		if -proj+sq < 0 {
			// Sphere entirely behind the segment start
			return vmath.Vec3{}, 0, false
		}
		// Origin inside: report entry at the start of the segment
		dist = 0
	}
	if dist > length {
		return vmath.Vec3{}, 0, false
	}

	t := vmath.Div(dist, length)
	point := vmath.V3Add(origin, vmath.V3Scale(unit, dist))
	normal := vmath.V3Normalize(vmath.V3Sub(point, s.Center))
	return normal, t, true
}

var (
	_ broadphase.Body           = (*Sphere)(nil)
	_ broadphase.RayIntersector = (*Sphere)(nil)
)
