package broadphase

import (
	"errors"
	"fmt"
)

// ErrDuplicateBody is returned by Registry.Add when the body is already
// registered. The registry is left unchanged
var ErrDuplicateBody = errors.New("body already registered")

type member struct {
	body Body
	seq  uint64 // registration sequence, breaks min-x ties in the sweep sort
}

// Registry is the unordered set of bodies participating in broadphase.
// It imposes no ordering itself; the sweep sorts per pass. Mutation is
// not internally locked: the owning step loop must serialize Add and
// Remove against in-flight Detect and Cast calls
type Registry struct {
	members []member
	index   map[Body]int // position in members
	nextSeq uint64
	gen     uint64
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[Body]int),
	}
}

// Add registers a body. Registering the same body twice fails with
// ErrDuplicateBody and leaves the registry exactly as it was
func (r *Registry) Add(b Body) error {
	if _, exists := r.index[b]; exists {
		return fmt.Errorf("broadphase: %w: %T", ErrDuplicateBody, b)
	}
	r.index[b] = len(r.members)
	r.members = append(r.members, member{body: b, seq: r.nextSeq})
	r.nextSeq++
	r.gen++
	return nil
}

// Remove unregisters a body, reporting whether it was a member.
// Swap-remove keeps the slice dense; sweep state is rebuilt per pass so
// the order change is invisible
func (r *Registry) Remove(b Body) bool {
	i, exists := r.index[b]
	if !exists {
		return false
	}
	last := len(r.members) - 1
	if i != last {
		r.members[i] = r.members[last]
		r.index[r.members[i].body] = i
	}
	r.members = r.members[:last]
	delete(r.index, b)
	r.gen++
	return true
}

// Contains reports membership without mutating
func (r *Registry) Contains(b Body) bool {
	_, exists := r.index[b]
	return exists
}

// Len returns the number of registered bodies
func (r *Registry) Len() int {
	return len(r.members)
}

// Each visits every registered body in unspecified order
func (r *Registry) Each(visit func(Body)) {
	for _, m := range r.members {
		visit(m.body)
	}
}

// generation increments on every Add/Remove; the persistent sweep uses
// it to detect membership churn
func (r *Registry) generation() uint64 {
	return r.gen
}
