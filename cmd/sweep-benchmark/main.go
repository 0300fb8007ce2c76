// sweep-benchmark times the stateless sweep against the persistent
// variant on a jittering body field, and cross-checks that both report
// the identical pair set every tick — the property lockstep clients
// rely on.
package main

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/fixstep/physics/broadphase"
	"github.com/fixstep/physics/shape"
	"github.com/fixstep/physics/vmath"
)

const seed = 0x1234

var bodyCounts = []int{50, 200, 1000}

func buildWorld(n int) (*broadphase.Registry, []*shape.Sphere) {
	rng := vmath.NewFastRand(seed)
	reg := broadphase.NewRegistry()
	bodies := make([]*shape.Sphere, 0, n)
	span := vmath.FromInt(n) // density stays constant as n grows
	for i := 0; i < n; i++ {
		s := shape.NewSphere(vmath.Vec3{
			X: rng.Range(0, span),
			Y: rng.Range(0, vmath.FromInt(60)),
			Z: rng.Range(0, vmath.FromInt(60)),
		}, rng.Range(vmath.Scale, vmath.FromInt(3)))
		s.Vel = vmath.Vec3{
			X: rng.Range(-vmath.FromInt(4), vmath.FromInt(4)),
			Y: rng.Range(-vmath.FromInt(4), vmath.FromInt(4)),
		}
		if err := reg.Add(s); err != nil {
			panic(err)
		}
		bodies = append(bodies, s)
	}
	return reg, bodies
}

func jitter(bodies []*shape.Sphere, dt int64) {
	for _, b := range bodies {
		b.Advance(dt)
	}
}

// pairChecksum folds the accepted pair set into an order-insensitive
// hash; identical sets hash identically regardless of callback order
func pairChecksum(pairs [][2]*shape.Sphere) uint64 {
	var sum uint64
	for _, p := range pairs {
		a := uint64(p[0].Center.X) * 0x9e3779b97f4a7c15
		b := uint64(p[1].Center.X) * 0x9e3779b97f4a7c15
		sum += a ^ b
	}
	return sum
}

func collect(detect func(), accept *broadphase.AcceptPairFunc) [][2]*shape.Sphere {
	var pairs [][2]*shape.Sphere
	*accept = func(a, b broadphase.Body) bool {
		pairs = append(pairs, [2]*shape.Sphere{a.(*shape.Sphere), b.(*shape.Sphere)})
		return false
	}
	detect()
	return pairs
}

func verify(n int) error {
	dt := vmath.FromFloat(1.0 / 30)

	regA, bodiesA := buildWorld(n)
	sweep := broadphase.NewSweep(regA)
	regB, bodiesB := buildWorld(n)
	persistent := broadphase.NewPersistentSweep(regB)

	for tick := 0; tick < 60; tick++ {
		a := pairChecksum(collect(sweep.Detect, &sweep.Accept))
		b := pairChecksum(collect(persistent.Detect, &persistent.Accept))
		if a != b {
			return fmt.Errorf("n=%d tick=%d: pair sets diverged (%#x vs %#x)", n, tick, a, b)
		}
		jitter(bodiesA, dt)
		jitter(bodiesB, dt)
	}
	return nil
}

func main() {
	for _, n := range bodyCounts {
		if err := verify(n); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	fmt.Println("persistent sweep matches stateless sweep on all tick counts")
	fmt.Println()

	dt := vmath.FromFloat(1.0 / 30)
	for _, n := range bodyCounts {
		reg, bodies := buildWorld(n)
		sweep := broadphase.NewSweep(reg)
		sweep.Accept = func(_, _ broadphase.Body) bool { return false }
		stateless := testing.Benchmark(func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				jitter(bodies, dt)
				sweep.Detect()
			}
		})

		reg2, bodies2 := buildWorld(n)
		persistent := broadphase.NewPersistentSweep(reg2)
		persistent.Accept = func(_, _ broadphase.Body) bool { return false }
		persistent.Detect()
		incremental := testing.Benchmark(func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				jitter(bodies2, dt)
				persistent.Detect()
			}
		})

		fmt.Printf("n=%-5d stateless %10s/op   persistent %10s/op\n",
			n, perOp(stateless), perOp(incremental))
	}
}

func perOp(r testing.BenchmarkResult) time.Duration {
	if r.N == 0 {
		return 0
	}
	return r.T / time.Duration(r.N)
}
