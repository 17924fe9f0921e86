// Package composite implements the recursive scene-graph container:
// bodies, constraints, and sub-composites grouped together, with
// cached, depth-first flattenings invalidated by a propagated
// isModified flag.
//
// Grounded on akmonengine-feather's world.go (World.AddBody/RemoveBody
// flat-slice bookkeeping), generalized here into a recursive tree, since
// spec.md's Composite nests sub-composites and the teacher's World has
// no equivalent concept to adapt from directly.
package composite

import (
	"math"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/constraintd"
	"github.com/cilliemalan/matter-go/vector"
)

// Composite is a recursive container of bodies, constraints, and
// sub-composites.
type Composite struct {
	ID          uint64
	Label       string
	Bodies      []*body.Body
	Constraints []*constraintd.Constraint
	Composites  []*Composite
	Parent      *Composite

	cache struct {
		allBodies      []*body.Body
		allConstraints []*constraintd.Constraint
		allComposites  []*Composite
		valid          bool
	}
	isModified bool
}

// New returns an empty, modified composite (so the first AllBodies call
// builds its cache rather than trusting a zero-value cache as valid).
func New(label string) *Composite {
	c := &Composite{Label: label}
	c.setModified()
	return c
}

// AddBody appends b and invalidates caches up the tree.
func (c *Composite) AddBody(b *body.Body) {
	c.Bodies = append(c.Bodies, b)
	c.setModified()
}

// RemoveBody removes b if present and invalidates caches up the tree.
func (c *Composite) RemoveBody(b *body.Body) {
	for i, existing := range c.Bodies {
		if existing == b {
			c.Bodies = append(c.Bodies[:i], c.Bodies[i+1:]...)
			c.setModified()
			return
		}
	}
}

// AddConstraint appends k and invalidates caches up the tree.
func (c *Composite) AddConstraint(k *constraintd.Constraint) {
	c.Constraints = append(c.Constraints, k)
	c.setModified()
}

// RemoveConstraint removes k if present and invalidates caches up the tree.
func (c *Composite) RemoveConstraint(k *constraintd.Constraint) {
	for i, existing := range c.Constraints {
		if existing == k {
			c.Constraints = append(c.Constraints[:i], c.Constraints[i+1:]...)
			c.setModified()
			return
		}
	}
}

// AddComposite appends child as a sub-composite, sets its Parent, and
// invalidates caches up the tree.
func (c *Composite) AddComposite(child *Composite) {
	child.Parent = c
	c.Composites = append(c.Composites, child)
	c.setModified()
}

// RemoveComposite removes child if present and invalidates caches up the
// tree.
func (c *Composite) RemoveComposite(child *Composite) {
	for i, existing := range c.Composites {
		if existing == child {
			c.Composites = append(c.Composites[:i], c.Composites[i+1:]...)
			child.Parent = nil
			c.setModified()
			return
		}
	}
}

// setModified invalidates this composite's cache and propagates the
// flag up to the root, per §4.3's isModified propagation.
func (c *Composite) setModified() {
	c.isModified = true
	c.cache.valid = false
	if c.Parent != nil {
		c.Parent.setModified()
	}
}

// IsModified reports whether this composite or any descendant has
// mutated since the cache was last rebuilt.
func (c *Composite) IsModified() bool {
	return c.isModified
}

// ClearModified resets the modified flag after the engine has
// resynchronised against it (§4.10 step 2).
func (c *Composite) ClearModified() {
	c.isModified = false
}

// AllBodies returns every body in this composite and its descendants,
// depth-first, rebuilding the cache only if invalidated.
func (c *Composite) AllBodies() []*body.Body {
	c.rebuildCacheIfNeeded()
	return c.cache.allBodies
}

// AllConstraints returns every constraint in this composite and its
// descendants, depth-first.
func (c *Composite) AllConstraints() []*constraintd.Constraint {
	c.rebuildCacheIfNeeded()
	return c.cache.allConstraints
}

// AllComposites returns every sub-composite, depth-first, excluding c
// itself.
func (c *Composite) AllComposites() []*Composite {
	c.rebuildCacheIfNeeded()
	return c.cache.allComposites
}

func (c *Composite) rebuildCacheIfNeeded() {
	if c.cache.valid {
		return
	}

	var bodies []*body.Body
	var constraints []*constraintd.Constraint
	var composites []*Composite

	bodies = append(bodies, c.Bodies...)
	constraints = append(constraints, c.Constraints...)
	for _, sub := range c.Composites {
		composites = append(composites, sub)
		bodies = append(bodies, sub.AllBodies()...)
		constraints = append(constraints, sub.AllConstraints()...)
		composites = append(composites, sub.AllComposites()...)
	}

	c.cache.allBodies = bodies
	c.cache.allConstraints = constraints
	c.cache.allComposites = composites
	c.cache.valid = true
}

// Translate moves every body in c by delta; recursive applies the
// transform to sub-composites too (the default per §4.3).
func (c *Composite) Translate(delta vector.Vector, recursive bool) {
	for _, b := range c.Bodies {
		b.Translate(delta)
	}
	if recursive {
		for _, sub := range c.Composites {
			sub.Translate(delta, true)
		}
	}
}

// Rotate rotates every body in c by angle about point; recursive applies
// the transform to sub-composites too (the default per §4.3).
func (c *Composite) Rotate(angle float64, point vector.Vector, recursive bool) {
	for _, b := range c.Bodies {
		b.Rotate(angle, point)
	}
	if recursive {
		for _, sub := range c.Composites {
			sub.Rotate(angle, point, true)
		}
	}
}

// Scale scales every body in c about its own position by (sx, sy); recursive
// applies the transform to sub-composites too (the default per §4.3).
func (c *Composite) Scale(sx, sy float64, recursive bool) {
	for _, b := range c.Bodies {
		b.Scale(sx, sy)
	}
	if recursive {
		for _, sub := range c.Composites {
			sub.Scale(sx, sy, true)
		}
	}
}

// Clear empties c's own bodies, constraints, and sub-composites.
// keepStatic preserves static bodies in place. deep also clears every
// sub-composite before dropping it, rather than merely detaching it.
func (c *Composite) Clear(keepStatic bool, deep bool) {
	if deep {
		for _, sub := range c.Composites {
			sub.Clear(keepStatic, true)
		}
	}

	if keepStatic {
		kept := c.Bodies[:0:0]
		for _, b := range c.Bodies {
			if b.IsStatic {
				kept = append(kept, b)
			}
		}
		c.Bodies = kept
	} else {
		c.Bodies = nil
	}

	c.Constraints = nil
	c.Composites = nil
	c.setModified()
}

// Move removes bodies, constraints, and sub-composites from c and adds
// them to target, re-parenting moved composites.
func (c *Composite) Move(bodies []*body.Body, constraints []*constraintd.Constraint, composites []*Composite, target *Composite) {
	for _, b := range bodies {
		c.RemoveBody(b)
		target.AddBody(b)
	}
	for _, k := range constraints {
		c.RemoveConstraint(k)
		target.AddConstraint(k)
	}
	for _, sub := range composites {
		c.RemoveComposite(sub)
		target.AddComposite(sub)
	}
}

// Rebase reassigns fresh ids (drawn from ids) to c and every body,
// constraint, and sub-composite beneath it, recursively. Use this before
// moving a composite into a different engine's world so its ids cannot
// collide with that engine's own ids (§9 EngineContext).
func (c *Composite) Rebase(ids *common.Counters) {
	c.ID = ids.NextID()
	for _, b := range c.Bodies {
		b.ID = ids.NextID()
	}
	for _, k := range c.Constraints {
		k.ID = ids.NextID()
	}
	for _, sub := range c.Composites {
		sub.Rebase(ids)
	}
}

// Bounds returns the union of every body's bounds in c and its
// descendants. Returns the zero Bounds if c contains no bodies.
func (c *Composite) Bounds() vector.Bounds {
	bodies := c.AllBodies()
	if len(bodies) == 0 {
		return vector.Bounds{}
	}

	bounds := bodies[0].Bounds
	for _, b := range bodies[1:] {
		bounds.Min = vector.New(math.Min(bounds.Min.X(), b.Bounds.Min.X()), math.Min(bounds.Min.Y(), b.Bounds.Min.Y()))
		bounds.Max = vector.New(math.Max(bounds.Max.X(), b.Bounds.Max.X()), math.Max(bounds.Max.Y(), b.Bounds.Max.Y()))
	}
	return bounds
}

// Kind tags the object a Get lookup should search for.
type Kind string

const (
	KindBody       Kind = "body"
	KindConstraint Kind = "constraint"
	KindComposite  Kind = "composite"
)

// Get searches c and its descendants, depth-first, for the object of the
// given kind with a matching id. Returns nil if nothing matches.
func (c *Composite) Get(id uint64, kind Kind) any {
	switch kind {
	case KindBody:
		for _, b := range c.AllBodies() {
			if b.ID == id {
				return b
			}
		}
	case KindConstraint:
		for _, k := range c.AllConstraints() {
			if k.ID == id {
				return k
			}
		}
	case KindComposite:
		if c.ID == id {
			return c
		}
		for _, sub := range c.AllComposites() {
			if sub.ID == id {
				return sub
			}
		}
	}
	return nil
}
