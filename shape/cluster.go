package shape

import (
	"github.com/fixstep/physics/broadphase"
	"github.com/fixstep/physics/vmath"
)

// Cluster is a compound body: an ordered collection of sub-bodies that
// sweeps as one box but is ray-tested piecewise. Models deformable
// meshes whose per-vertex bodies should each stop a ray on their own.
// The cluster itself carries no exact ray routine; only its parts do
type Cluster struct {
	Parts  []broadphase.Body
	Static bool
}

func NewCluster(parts ...broadphase.Body) *Cluster {
	return &Cluster{Parts: parts}
}

// BoundingBox is the union of all part boxes; an empty cluster has a
// degenerate zero box
func (c *Cluster) BoundingBox() vmath.AABB {
	if len(c.Parts) == 0 {
		return vmath.AABB{}
	}
	box := c.Parts[0].BoundingBox()
	for _, p := range c.Parts[1:] {
		box = box.Union(p.BoundingBox())
	}
	return box
}

func (c *Cluster) StaticOrInactive() bool {
	return c.Static
}

// SubBodies returns the parts in their stored order
func (c *Cluster) SubBodies() []broadphase.Body {
	return c.Parts
}

var _ broadphase.Compound = (*Cluster)(nil)
