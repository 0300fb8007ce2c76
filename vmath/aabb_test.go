package vmath

import "testing"

func box(minX, minY, minZ, maxX, maxY, maxZ float64) AABB {
	return AABB{Min: V3(minX, minY, minZ), Max: V3(maxX, maxY, maxZ)}
}

func TestAABBOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b AABB
		want bool
	}{
		{"identical", box(0, 0, 0, 1, 1, 1), box(0, 0, 0, 1, 1, 1), true},
		{"corner overlap", box(0, 0, 0, 2, 2, 2), box(1, 1, 1, 3, 3, 3), true},
		{"touching faces", box(0, 0, 0, 1, 1, 1), box(1, 0, 0, 2, 1, 1), true},
		{"separated x", box(0, 0, 0, 1, 1, 1), box(2, 0, 0, 3, 1, 1), false},
		{"separated y only", box(0, 0, 0, 1, 1, 1), box(0, 5, 0, 1, 6, 1), false},
		{"separated z only", box(0, 0, 0, 1, 1, 1), box(0, 0, 5, 1, 1, 6), false},
		{"contained", box(0, 0, 0, 10, 10, 10), box(4, 4, 4, 5, 5, 5), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.want {
				t.Errorf("Overlaps not symmetric")
			}
		})
	}
}

func TestAABBOverlapsYZ(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	farX := box(100, 0, 0, 101, 1, 1)
	if !a.OverlapsYZ(farX) {
		t.Error("OverlapsYZ must ignore the x axis")
	}
	farY := box(0, 100, 0, 1, 101, 1)
	if a.OverlapsYZ(farY) {
		t.Error("OverlapsYZ missed y separation")
	}
}

func TestAABBUnionContains(t *testing.T) {
	u := box(0, 0, 0, 1, 1, 1).Union(box(3, -2, 0, 4, 1, 5))
	want := box(0, -2, 0, 4, 1, 5)
	if u != want {
		t.Fatalf("Union = %+v, want %+v", u, want)
	}
	if !u.Contains(V3(2, 0, 3)) {
		t.Error("Contains rejected an interior point")
	}
	if u.Contains(V3(5, 0, 0)) {
		t.Error("Contains accepted an exterior point")
	}
}

func TestSegmentIntersect(t *testing.T) {
	target := box(4, -1, -1, 6, 1, 1)

	cases := []struct {
		name         string
		origin, dir  Vec3
		wantHit      bool
		wantFraction float64
		wantNormal   Vec3
	}{
		{
			name: "head on", origin: V3(0, 0, 0), dir: V3(10, 0, 0),
			wantHit: true, wantFraction: 0.4, wantNormal: Vec3{X: -Scale},
		},
		{
			name: "from beyond", origin: V3(10, 0, 0), dir: V3(-10, 0, 0),
			wantHit: true, wantFraction: 0.4, wantNormal: Vec3{X: Scale},
		},
		{
			name: "starts inside", origin: V3(5, 0, 0), dir: V3(10, 0, 0),
			wantHit: true, wantFraction: 0, wantNormal: Vec3{},
		},
		{
			name: "falls short", origin: V3(0, 0, 0), dir: V3(3, 0, 0),
			wantHit: false,
		},
		{
			name: "behind origin", origin: V3(8, 0, 0), dir: V3(10, 0, 0),
			wantHit: false,
		},
		{
			name: "parallel miss", origin: V3(0, 5, 0), dir: V3(10, 0, 0),
			wantHit: false,
		},
		{
			name: "parallel inside slab", origin: V3(0, 0.5, 0), dir: V3(10, 0, 0),
			wantHit: true, wantFraction: 0.4, wantNormal: Vec3{X: -Scale},
		},
		{
			name: "diagonal", origin: V3(0, -5, 0), dir: V3(10, 10, 0),
			wantHit: true, wantFraction: 0.4, wantNormal: Vec3{X: -Scale},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fraction, normal, ok := target.SegmentIntersect(tc.origin, tc.dir)
			if ok != tc.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tc.wantHit)
			}
			if !ok {
				return
			}
			got := ToFloat(fraction)
			if got < tc.wantFraction-1e-6 || got > tc.wantFraction+1e-6 {
				t.Errorf("fraction = %v, want %v", got, tc.wantFraction)
			}
			if normal != tc.wantNormal {
				t.Errorf("normal = %+v, want %+v", normal, tc.wantNormal)
			}
		})
	}
}
