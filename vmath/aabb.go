package vmath

// AABB is an axis-aligned bounding box in Q32.32 fixed point.
// Well-formed boxes satisfy Min <= Max per component; callers that hand
// out inverted boxes get garbage-in-garbage-out, never a panic
type AABB struct {
	Min, Max Vec3
}

// AABBFromCenter builds a box from a center point and half extents
func AABBFromCenter(center, halfExtent Vec3) AABB {
	return AABB{
		Min: V3Sub(center, halfExtent),
		Max: V3Add(center, halfExtent),
	}
}

// Overlaps reports whether the boxes intersect on all three axes.
// Touching faces count as overlap
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// OverlapsYZ tests only the y and z axes, for callers that have already
// established x-overlap by sort order
func (a AABB) OverlapsYZ(b AABB) bool {
	return a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside the box, boundary inclusive
func (a AABB) Contains(p Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Union returns the smallest box enclosing both inputs
func (a AABB) Union(b AABB) AABB {
	return AABB{Min: V3Min(a.Min, b.Min), Max: V3Max(a.Max, b.Max)}
}

// Translate returns the box shifted by d
func (a AABB) Translate(d Vec3) AABB {
	return AABB{Min: V3Add(a.Min, d), Max: V3Add(a.Max, d)}
}

// Center returns the box midpoint
func (a AABB) Center() Vec3 {
	return Vec3{
		(a.Min.X + a.Max.X) >> 1,
		(a.Min.Y + a.Max.Y) >> 1,
		(a.Min.Z + a.Max.Z) >> 1,
	}
}

// SegmentIntersect runs the slab test against the segment
// [origin, origin+dir]. On hit it returns the entry fraction in
// [0, Scale] and the outward surface normal of the face crossed;
// a segment starting inside the box hits at fraction 0 with a zero
// normal. All arithmetic is integer Q32.32
func (a AABB) SegmentIntersect(origin, dir Vec3) (fraction int64, normal Vec3, ok bool) {
	tEnter := int64(0)
	tExit := int64(Scale)
	enterAxis := -1
	enterNeg := false

	axes := [3]struct {
		o, d, lo, hi int64
	}{
		{origin.X, dir.X, a.Min.X, a.Max.X},
		{origin.Y, dir.Y, a.Min.Y, a.Max.Y},
		{origin.Z, dir.Z, a.Min.Z, a.Max.Z},
	}

	for i, ax := range axes {
		if ax.d == 0 {
			// Parallel to the slab: inside or miss
			if ax.o < ax.lo || ax.o > ax.hi {
				return 0, Vec3{}, false
			}
			continue
		}
		t1 := Div(ax.lo-ax.o, ax.d)
		t2 := Div(ax.hi-ax.o, ax.d)
		neg := ax.d > 0 // entering through the low face when moving positive
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter = t1
			enterAxis = i
			enterNeg = neg
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 0, Vec3{}, false
		}
	}

	if enterAxis >= 0 {
		switch enterAxis {
		case 0:
			normal = Vec3{X: Scale}
		case 1:
			normal = Vec3{Y: Scale}
		default:
			normal = Vec3{Z: Scale}
		}
		if enterNeg {
			normal = V3Neg(normal)
		}
	}
	return tEnter, normal, true
}
