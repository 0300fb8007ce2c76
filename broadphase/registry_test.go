package broadphase_test

import (
	"errors"
	"testing"

	"github.com/fixstep/physics/broadphase"
)

func TestRegistryAddRemove(t *testing.T) {
	reg := broadphase.NewRegistry()
	a := bodyAt(0, 0, 0, 0, 1)
	b := bodyAt(1, 5, 0, 0, 1)

	if err := reg.Add(a); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if err := reg.Add(b); err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}
	if !reg.Contains(a) || !reg.Contains(b) {
		t.Fatal("registered bodies not reported as members")
	}

	if !reg.Remove(a) {
		t.Fatal("Remove returned false for a member")
	}
	if reg.Remove(a) {
		t.Fatal("Remove returned true for a former member")
	}
	if reg.Len() != 1 || reg.Contains(a) {
		t.Fatal("registry state inconsistent after Remove")
	}
}

func TestRegistryDuplicateAdd(t *testing.T) {
	reg := broadphase.NewRegistry()
	a := bodyAt(0, 0, 0, 0, 1)

	if err := reg.Add(a); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := reg.Add(a)
	if err == nil {
		t.Fatal("duplicate Add succeeded")
	}
	if !errors.Is(err, broadphase.ErrDuplicateBody) {
		t.Fatalf("duplicate Add error = %v, want ErrDuplicateBody", err)
	}
	// Failed Add must leave the registry exactly as it was
	if reg.Len() != 1 {
		t.Fatalf("Len = %d after rejected duplicate, want 1", reg.Len())
	}
	seen := 0
	reg.Each(func(broadphase.Body) { seen++ })
	if seen != 1 {
		t.Fatalf("Each visited %d bodies after rejected duplicate, want 1", seen)
	}
}

func TestRegistryRemoveUnknown(t *testing.T) {
	reg := broadphase.NewRegistry()
	if reg.Remove(bodyAt(0, 0, 0, 0, 1)) {
		t.Fatal("Remove returned true on an empty registry")
	}
}
