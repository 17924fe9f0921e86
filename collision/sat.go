// Package collision implements the narrow-phase Separating Axis Theorem
// test between two convex polygon bodies: projection overlap, contact
// normal/tangent, and the one- or two-point support manifold the
// resolver needs.
//
// Grounded on akmonengine-feather's collision.go dispatcher (the
// cheap-reject-then-manifold two-stage shape) and gjk/gjk.go's support-
// function narrow phase — the control flow survives, the numerics do
// not: 2D polygon-vs-polygon with a closed vertex ring never needs
// GJK/EPA's simplex expansion, so this package replaces that machinery
// outright with classic SAT projection and Matter.js-style support-point
// search.
package collision

import (
	"math"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/geom"
	"github.com/cilliemalan/matter-go/vector"
)

// Collision is the narrow-phase result for one candidate body pair.
type Collision struct {
	BodyA, BodyB     *body.Body
	ParentA, ParentB *body.Body
	Depth            float64
	Normal           vector.Vector // unit, facing away from A
	Tangent          vector.Vector
	Penetration      float64
	Supports         [2]vector.Vector
	SupportCount     int
	Collided         bool
}

// Collides runs the full SAT pipeline between two bodies, reusing prior
// when it is non-nil (a pair's cached Collision, per §4.4 step 3) rather
// than allocating a fresh record every step.
func Collides(a, b *body.Body, prior *Collision) *Collision {
	overlapAB, axisAB, ok := overlapAxes(a.Vertices, a.Axes, b.Vertices)
	if !ok {
		return nil
	}
	overlapBA, axisBA, ok := overlapAxes(b.Vertices, b.Axes, a.Vertices)
	if !ok {
		return nil
	}

	c := prior
	if c == nil {
		c = &Collision{}
	}

	bodyA, bodyB := a, b
	if b.ID < a.ID {
		bodyA, bodyB = b, a
	}
	c.BodyA, c.BodyB = bodyA, bodyB
	c.ParentA, c.ParentB = rootOf(bodyA), rootOf(bodyB)

	var minOverlap float64
	var minAxis vector.Vector
	if overlapAB < overlapBA {
		minOverlap, minAxis = overlapAB, axisAB
	} else {
		minOverlap, minAxis = overlapBA, axisBA
	}
	c.Depth = minOverlap

	normal := minAxis
	if normal.Dot(bodyB.Position.Sub(bodyA.Position)) > 0 {
		normal = normal.Neg()
	}
	c.Normal = normal
	c.Tangent = normal.Perp(false)
	// penetration = normal . depth, where depth is the push-out vector
	// normal*minOverlap; since normal is unit this reduces to minOverlap.
	c.Penetration = normal.Dot(normal.Mult(minOverlap))

	supports, count := findSupports(bodyA, bodyB, normal)
	c.Supports = supports
	c.SupportCount = count
	c.Collided = true

	return c
}

func rootOf(b *body.Body) *body.Body {
	if b.Parent != nil {
		return b.Parent
	}
	return b
}

// overlapAxes is the classic SAT projection loop: for each axis, project
// both vertex rings and record the smaller of the two push-out depths,
// short-circuiting the first time an axis separates them.
func overlapAxes(vertsA []geom.Vertex, axes []vector.Vector, vertsB []geom.Vertex) (float64, vector.Vector, bool) {
	best := math.Inf(1)
	var bestAxis vector.Vector

	for _, axis := range axes {
		minA, maxA := projectVertices(vertsA, axis)
		minB, maxB := projectVertices(vertsB, axis)

		overlap := math.Min(maxA-minB, maxB-minA)
		if overlap <= 0 {
			return 0, vector.Zero, false
		}
		if overlap < best {
			best = overlap
			bestAxis = axis
		}
	}

	return best, bestAxis, true
}

func projectVertices(verts []geom.Vertex, axis vector.Vector) (min, max float64) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range verts {
		p := v.Point.Dot(axis)
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return
}

// findSupports locates the deepest vertex (or vertex pair) of the contact
// manifold per §4.4 step 6: search B's ring for the vertex deepest along
// normal (toward A), keep the ones contained in A; if that yields fewer
// than two, add A's vertices deepest along -normal (toward B) that are
// contained in B, up to two supports in all.
func findSupports(a, b *body.Body, normal vector.Vector) ([2]vector.Vector, int) {
	bSupports := hillClimb(b.Vertices, normal)
	var kept [2]vector.Vector
	n := 0
	for _, p := range bSupports {
		if containsPoint(a.Vertices, p) {
			kept[n] = p
			n++
		}
	}
	if n < 2 {
		aSupports := hillClimb(a.Vertices, normal.Neg())
		for _, p := range aSupports {
			if n < 2 && containsPoint(b.Vertices, p) {
				kept[n] = p
				n++
			}
		}
	}
	if n >= 1 {
		return kept, n
	}

	return [2]vector.Vector{bSupports[0]}, 1
}

// hillClimb finds the deepest vertex along dir by scanning every vertex of
// the ring, then returns that vertex plus whichever of its two ring
// neighbours projects further along dir as the second candidate.
func hillClimb(verts []geom.Vertex, dir vector.Vector) [2]vector.Vector {
	n := len(verts)
	best := 0
	bestProj := verts[0].Point.Dot(dir)
	for i := 1; i < n; i++ {
		p := verts[i].Point.Dot(dir)
		if p > bestProj {
			bestProj = p
			best = i
		}
	}

	prev := (best - 1 + n) % n
	next := (best + 1) % n
	second := prev
	if verts[next].Point.Dot(dir) > verts[prev].Point.Dot(dir) {
		second = next
	}

	return [2]vector.Vector{verts[best].Point, verts[second].Point}
}

func containsPoint(verts []geom.Vertex, p vector.Vector) bool {
	n := len(verts)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := verts[j].Point.Sub(verts[i].Point)
		toPoint := p.Sub(verts[i].Point)
		if edge.Cross(toPoint) < 0 {
			return false
		}
	}
	return true
}
