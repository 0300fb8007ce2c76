package broadphase_test

import (
	"fmt"
	"testing"

	"github.com/fixstep/physics/broadphase"
	"github.com/fixstep/physics/vmath"
)

// testBody is a minimal registry participant with a fixed box
type testBody struct {
	id     int
	box    vmath.AABB
	static bool
}

func (b *testBody) BoundingBox() vmath.AABB { return b.box }
func (b *testBody) StaticOrInactive() bool  { return b.static }

func bodyAt(id int, cx, cy, cz, half float64) *testBody {
	return &testBody{
		id: id,
		box: vmath.AABBFromCenter(
			vmath.V3(cx, cy, cz),
			vmath.V3(half, half, half),
		),
	}
}

// pairKey normalizes an unordered pair to a canonical key
func pairKey(a, b broadphase.Body) [2]int {
	ia := a.(*testBody).id
	ib := b.(*testBody).id
	if ia > ib {
		ia, ib = ib, ia
	}
	return [2]int{ia, ib}
}

// collectPairs runs Detect and returns the set of pairs reported to the
// accept callback
func collectPairs(t *testing.T, bodies []*testBody) map[[2]int]int {
	t.Helper()
	reg := broadphase.NewRegistry()
	for _, b := range bodies {
		if err := reg.Add(b); err != nil {
			t.Fatalf("Add body %d: %v", b.id, err)
		}
	}
	pairs := make(map[[2]int]int)
	sweep := broadphase.NewSweep(reg)
	sweep.Accept = func(a, b broadphase.Body) bool {
		pairs[pairKey(a, b)]++
		return true
	}
	sweep.Detect()
	return pairs
}

// bruteForcePairs is the O(n²) reference: every pair overlapping on all
// three axes, minus static-static pairs
func bruteForcePairs(bodies []*testBody) map[[2]int]int {
	pairs := make(map[[2]int]int)
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.static && b.static {
				continue
			}
			if a.box.Overlaps(b.box) {
				pairs[pairKey(a, b)]++
			}
		}
	}
	return pairs
}

func samePairSet(t *testing.T, got, want map[[2]int]int) {
	t.Helper()
	for k := range want {
		if got[k] == 0 {
			t.Errorf("pair %v missing from sweep output", k)
		}
	}
	for k, n := range got {
		if want[k] == 0 {
			t.Errorf("pair %v reported but boxes do not overlap", k)
		}
		if n > 1 {
			t.Errorf("pair %v reported %d times, want at most once", k, n)
		}
	}
}

func randomBodies(rng *vmath.FastRand, n int) []*testBody {
	bodies := make([]*testBody, n)
	lo, hi := vmath.FromInt(-50), vmath.FromInt(50)
	hmin, hmax := vmath.FromFloat(0.5), vmath.FromInt(6)
	for i := range bodies {
		center := vmath.Vec3{
			X: rng.Range(lo, hi),
			Y: rng.Range(lo, hi),
			Z: rng.Range(lo, hi),
		}
		half := vmath.Vec3{
			X: rng.Range(hmin, hmax),
			Y: rng.Range(hmin, hmax),
			Z: rng.Range(hmin, hmax),
		}
		bodies[i] = &testBody{
			id:     i,
			box:    vmath.AABBFromCenter(center, half),
			static: rng.Intn(4) == 0,
		}
	}
	return bodies
}

func TestDetectMatchesBruteForce(t *testing.T) {
	rng := vmath.NewFastRand(0x5eed)
	for _, n := range []int{0, 1, 2, 50} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			bodies := randomBodies(rng, n)
			samePairSet(t, collectPairs(t, bodies), bruteForcePairs(bodies))
		})
	}
}

func TestDetectDenseCluster(t *testing.T) {
	// Everything overlapping everything: worst case for the active
	// window, all pairs must still come out exactly once
	rng := vmath.NewFastRand(42)
	bodies := make([]*testBody, 12)
	for i := range bodies {
		bodies[i] = &testBody{
			id: i,
			box: vmath.AABBFromCenter(
				vmath.Vec3{X: rng.Range(-vmath.Scale, vmath.Scale)},
				vmath.V3(10, 10, 10),
			),
		}
	}
	samePairSet(t, collectPairs(t, bodies), bruteForcePairs(bodies))
}

func TestDetectStaticStaticSkipped(t *testing.T) {
	a := bodyAt(0, 0, 0, 0, 2)
	b := bodyAt(1, 1, 0, 0, 2)
	a.static = true
	b.static = true

	pairs := collectPairs(t, []*testBody{a, b})
	if len(pairs) != 0 {
		t.Fatalf("static-static pair reported: %v", pairs)
	}

	// One of them waking up makes the pair visible again
	b.static = false
	pairs = collectPairs(t, []*testBody{a, b})
	if pairs[[2]int{0, 1}] != 1 {
		t.Fatalf("static-dynamic overlapping pair not reported: %v", pairs)
	}
}

func TestDetectOrderIndependence(t *testing.T) {
	rng := vmath.NewFastRand(7)
	bodies := randomBodies(rng, 30)
	want := collectPairs(t, bodies)

	for trial := 0; trial < 5; trial++ {
		shuffled := make([]*testBody, len(bodies))
		copy(shuffled, bodies)
		for i := len(shuffled) - 1; i > 0; i-- {
			j := rng.Intn(i + 1)
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		}
		got := collectPairs(t, shuffled)
		if len(got) != len(want) {
			t.Fatalf("trial %d: pair count changed with registration order: got %d want %d",
				trial, len(got), len(want))
		}
		for k := range want {
			if got[k] == 0 {
				t.Errorf("trial %d: pair %v lost after permuting registration order", trial, k)
			}
		}
	}
}

func TestDetectRejectedPairSkipsNarrowPhase(t *testing.T) {
	a := bodyAt(0, 0, 0, 0, 2)
	b := bodyAt(1, 1, 1, 1, 2)

	reg := broadphase.NewRegistry()
	for _, body := range []*testBody{a, b} {
		if err := reg.Add(body); err != nil {
			t.Fatal(err)
		}
	}

	sweep := broadphase.NewSweep(reg)
	accepts := 0
	sweep.Accept = func(_, _ broadphase.Body) bool {
		accepts++
		return false
	}
	narrows := 0
	sweep.NarrowPhase = func(_, _ broadphase.Body) {
		narrows++
	}
	sweep.Detect()

	if accepts != 1 {
		t.Errorf("accept callback invoked %d times, want 1", accepts)
	}
	if narrows != 0 {
		t.Errorf("narrow-phase invoked %d times on rejected pair, want 0", narrows)
	}
}

func TestDetectNilCallbacks(t *testing.T) {
	// Absent callbacks are not an error; Detect must simply complete
	reg := broadphase.NewRegistry()
	if err := reg.Add(bodyAt(0, 0, 0, 0, 2)); err != nil {
		t.Fatal(err)
	}
	if err := reg.Add(bodyAt(1, 1, 0, 0, 2)); err != nil {
		t.Fatal(err)
	}
	broadphase.NewSweep(reg).Detect()
}

func TestDetectSeesMovedBodies(t *testing.T) {
	// Boxes are re-read every pass; motion between ticks changes the
	// reported set with no registry churn
	a := bodyAt(0, 0, 0, 0, 1)
	b := bodyAt(1, 10, 0, 0, 1)

	reg := broadphase.NewRegistry()
	for _, body := range []*testBody{a, b} {
		if err := reg.Add(body); err != nil {
			t.Fatal(err)
		}
	}

	pairs := 0
	sweep := broadphase.NewSweep(reg)
	sweep.Accept = func(_, _ broadphase.Body) bool {
		pairs++
		return true
	}

	sweep.Detect()
	if pairs != 0 {
		t.Fatalf("separated bodies reported as pair")
	}

	b.box = vmath.AABBFromCenter(vmath.V3(0.5, 0, 0), vmath.V3(1, 1, 1))
	sweep.Detect()
	if pairs != 1 {
		t.Fatalf("moved-into-overlap pair not reported, got %d", pairs)
	}
}

func TestDetectAfterRemove(t *testing.T) {
	a := bodyAt(0, 0, 0, 0, 2)
	b := bodyAt(1, 1, 0, 0, 2)

	reg := broadphase.NewRegistry()
	for _, body := range []*testBody{a, b} {
		if err := reg.Add(body); err != nil {
			t.Fatal(err)
		}
	}
	if !reg.Remove(b) {
		t.Fatal("Remove returned false for a member")
	}

	sweep := broadphase.NewSweep(reg)
	sweep.Accept = func(x, y broadphase.Body) bool {
		t.Errorf("removed body still reported in pair %v", pairKey(x, y))
		return false
	}
	sweep.Detect()
}

func BenchmarkDetect(b *testing.B) {
	for _, n := range []int{50, 500} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			rng := vmath.NewFastRand(99)
			reg := broadphase.NewRegistry()
			for _, body := range randomBodies(rng, n) {
				reg.Add(body)
			}
			sweep := broadphase.NewSweep(reg)
			sweep.Accept = func(_, _ broadphase.Body) bool { return false }
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sweep.Detect()
			}
		})
	}
}
