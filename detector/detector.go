// Package detector implements the broad phase: a sort-and-sweep over
// body bounding boxes that narrows the O(n^2) candidate set down before
// handing surviving pairs to SAT.
//
// Grounded on akmonengine-feather's spatialgrid.go (SpatialGrid/
// FindPairs, a cell-hash broad phase over a caller-owned body slice,
// skipping static-static pairs and gating on a collision filter before
// the narrow phase runs) — the cell hash is replaced with the spec's
// sort-and-sweep, since spec.md's detector keeps a body list that
// changes slowly frame to frame, for which insertion-sort-friendly
// sorted-sweep is the simpler and cheaper broad phase (§4.5).
package detector

import (
	"sort"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/collision"
)

// Detector holds the list of bodies participating in broad-phase
// sweeps, sorted in place by bounds.min.x between calls to Collisions so
// a slowly-moving scene costs close to nothing to re-sort.
type Detector struct {
	Bodies []*body.Body
}

// New returns a detector over bodies. The slice is sorted and mutated in
// place by Collisions; callers that need their own ordering preserved
// should pass a copy.
func New(bodies []*body.Body) *Detector {
	return &Detector{Bodies: bodies}
}

// SetBodies replaces the tracked body list (called when the world's
// isModified flag requires a resync per §4.10 step 2).
func (d *Detector) SetBodies(bodies []*body.Body) {
	d.Bodies = bodies
}

// Collisions runs one broad+narrow phase sweep and returns every
// resulting narrow-phase Collision, in unspecified order (§4.5).
func (d *Detector) Collisions() []*collision.Collision {
	sort.Slice(d.Bodies, func(i, j int) bool {
		return d.Bodies[i].Bounds.Min.X() < d.Bodies[j].Bounds.Min.X()
	})

	var out []*collision.Collision
	n := len(d.Bodies)
	for i := 0; i < n; i++ {
		a := d.Bodies[i]
		for j := i + 1; j < n; j++ {
			b := d.Bodies[j]
			if b.Bounds.Min.X() > a.Bounds.Max.X() {
				break
			}
			if b.Bounds.Min.Y() > a.Bounds.Max.Y() || b.Bounds.Max.Y() < a.Bounds.Min.Y() {
				continue
			}
			if a.IsStatic && b.IsStatic {
				continue
			}
			if (a.IsStatic || a.IsSleeping) && (b.IsStatic || b.IsSleeping) {
				continue
			}
			if !canCollide(a.Filter, b.Filter) {
				continue
			}

			out = append(out, collidePartAware(a, b)...)
		}
	}
	return out
}

// canCollide implements §4.2/§4.5's filter rule: equal non-zero groups
// collide only if the group is positive; otherwise category/mask must
// intersect both ways.
func canCollide(a, b body.Filter) bool {
	if a.Group == b.Group && a.Group != 0 {
		return a.Group > 0
	}
	return a.Mask&b.Category != 0 && b.Mask&a.Category != 0
}

// collidePartAware runs SAT directly on single-part bodies, or the
// cartesian product of non-root parts (each gated by an AABB overlap
// check) for compounds, per §4.5 step 5.
func collidePartAware(a, b *body.Body) []*collision.Collision {
	if len(a.Parts) == 1 && len(b.Parts) == 1 {
		if c := collision.Collides(a, b, nil); c != nil {
			return []*collision.Collision{c}
		}
		return nil
	}

	var out []*collision.Collision
	for _, pa := range a.Parts[1:] {
		for _, pb := range b.Parts[1:] {
			if !pa.Bounds.Overlaps(pb.Bounds) {
				continue
			}
			if c := collision.Collides(pa, pb, nil); c != nil {
				out = append(out, c)
			}
		}
	}
	return out
}
