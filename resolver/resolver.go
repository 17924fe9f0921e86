// Package resolver runs the two-phase constraint solver that turns
// narrow-phase contacts into corrected positions and velocities: a
// position pass that removes interpenetration without adding energy,
// and an Erin Catto-style sequential-impulse velocity pass with
// clamped accumulators and warm-starting.
//
// Grounded on akmonengine-feather's constraint/contact.go, whose
// SolvePosition/SolveVelocity split gives this package its pre/solve/post
// shape; the numerics inside are replaced end to end since the teacher
// solves a 3D XPBD compliance constraint and this solves the spec's
// Verlet-based sequential-impulse contact model.
package resolver

import (
	"math"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/pairs"
	"github.com/cilliemalan/matter-go/vector"
)

// PositionIterations and VelocityIterations are the default sweep counts
// the engine's step loop uses (§4.7: 6 and 4 are enough for visually
// stable stacks once warm-starting is in place).
const (
	PositionIterations = 6
	VelocityIterations = 4
)

// PreSolvePosition adds each active pair's contact count to its bodies'
// totalContacts so a body touched by many contacts divides its
// correction budget across them.
func PreSolvePosition(active []*pairs.Pair) {
	for _, p := range active {
		if !p.IsActive || p.IsSensor {
			continue
		}
		rootA, rootB := p.Collision.ParentA, p.Collision.ParentB
		rootA.TotalContacts += p.ContactCount
		rootB.TotalContacts += p.ContactCount
	}
}

// SolvePosition runs one position-correction sweep over active pairs.
func SolvePosition(active []*pairs.Pair, delta, damping float64) {
	positionDampen := 0.9 * damping
	slopDampen := clamp01(delta / body.BaseDelta)

	for _, p := range active {
		if !p.IsActive || p.IsSensor || p.ContactCount == 0 {
			continue
		}
		a, b := p.Collision.ParentA, p.Collision.ParentB
		normal := p.Collision.Normal
		p.Separation = p.Collision.Depth + normal.Dot(b.PositionImpulse.Sub(a.PositionImpulse))
	}

	for _, p := range active {
		if !p.IsActive || p.IsSensor || p.ContactCount == 0 {
			continue
		}
		a, b := p.Collision.ParentA, p.Collision.ParentB
		normal := p.Collision.Normal

		impulse := (p.Separation - p.Slop*slopDampen)
		if a.IsStatic != b.IsStatic {
			impulse *= 2
		}

		if !a.IsStatic && a.TotalContacts > 0 {
			share := positionDampen / float64(a.TotalContacts)
			a.PositionImpulse = a.PositionImpulse.Add(normal.Mult(impulse * share))
		}
		if !b.IsStatic && b.TotalContacts > 0 {
			share := positionDampen / float64(b.TotalContacts)
			b.PositionImpulse = b.PositionImpulse.Sub(normal.Mult(impulse * share))
		}
	}
}

// PostSolvePosition applies accumulated position impulses to every body,
// decides whether to keep or discard each body's warm-start impulse for
// the next step, and resets the per-body contact-sharing counter.
func PostSolvePosition(bodies []*body.Body) {
	for _, b := range bodies {
		impulse := b.PositionImpulse
		if impulse == vector.Zero {
			b.TotalContacts = 0
			continue
		}

		b.Translate(impulse)

		if impulse.Dot(b.Velocity) < 0 {
			b.PositionImpulse = vector.Zero
		} else {
			b.PositionImpulse = impulse.Mult(0.8)
		}
		b.TotalContacts = 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PreSolveVelocity applies any cached, non-zero impulse from each
// contact immediately, warm-starting the velocity pass from the
// previous step's solution.
func PreSolveVelocity(active []*pairs.Pair) {
	for _, p := range active {
		if !p.IsActive || p.IsSensor {
			continue
		}
		a, b := p.Collision.ParentA, p.Collision.ParentB
		normal := p.Collision.Normal
		tangent := p.Collision.Tangent

		for i := 0; i < p.ContactCount; i++ {
			c := p.Contacts[i]
			if c.NormalImpulse == 0 && c.TangentImpulse == 0 {
				continue
			}
			impulse := normal.Mult(c.NormalImpulse).Add(tangent.Mult(c.TangentImpulse))
			applyImpulseAtVertex(a, impulse.Neg(), c.Vertex)
			applyImpulseAtVertex(b, impulse, c.Vertex)
		}
	}
}

func applyImpulseAtVertex(b *body.Body, impulse vector.Vector, vertex vector.Vector) {
	if b.IsStatic || b.IsSleeping {
		return
	}
	b.PositionPrev = b.PositionPrev.Sub(impulse.Mult(b.InverseMass))
	offset := vertex.Sub(b.Position)
	angularImpulse := offset.Cross(impulse) * b.InverseInertia
	b.AnglePrev -= angularImpulse
}

// SolveVelocity runs one velocity-correction sweep with resting-contact
// accumulation, Coulomb friction, and warm-started clamped accumulators,
// per §4.7.
func SolveVelocity(active []*pairs.Pair, delta float64) {
	ts := delta / body.BaseDelta
	ts2 := ts * ts
	ts3 := ts2 * ts
	restingThresh := -2 * ts
	const restingThreshTangent = 2.449489742783178 // sqrt(6)
	muN := 5 * ts

	for _, p := range active {
		if !p.IsActive || p.IsSensor || p.ContactCount == 0 {
			continue
		}
		a, b := p.Collision.ParentA, p.Collision.ParentB
		normal := p.Collision.Normal
		tangent := p.Collision.Tangent

		for i := 0; i < p.ContactCount; i++ {
			contact := &p.Contacts[i]
			vertex := contact.Vertex

			offsetA := vertex.Sub(a.Position)
			offsetB := vertex.Sub(b.Position)

			velA := relativeVelocity(a, offsetA)
			velB := relativeVelocity(b, offsetB)
			relVel := velA.Sub(velB)

			normalVel := relVel.Dot(normal)
			tangentVel := relVel.Dot(tangent)

			frictionLimit := math.Max(0, math.Min(p.Separation+normalVel, 1)) * (p.Friction * p.FrictionStatic * muN)

			var tangentImpulse float64
			if math.Abs(tangentVel) > frictionLimit {
				sign := 1.0
				if tangentVel < 0 {
					sign = -1
				}
				tangentImpulse = p.Friction * sign * ts3
				if math.Abs(tangentImpulse) > math.Abs(tangentVel) {
					tangentImpulse = tangentVel
				}
			} else {
				tangentImpulse = tangentVel
			}

			crossA := offsetA.Cross(normal)
			crossB := offsetB.Cross(normal)
			share := (1 / float64(p.ContactCount)) / (p.InverseMass + a.InverseInertia*crossA*crossA + b.InverseInertia*crossB*crossB)

			normalImpulse := (1 + p.Restitution) * normalVel * share
			tangentImpulse *= share

			if normalVel < restingThresh {
				contact.NormalImpulse = 0
			} else {
				prevAccum := contact.NormalImpulse
				contact.NormalImpulse += normalImpulse
				if contact.NormalImpulse > 0 {
					contact.NormalImpulse = 0
				}
				normalImpulse = contact.NormalImpulse - prevAccum
			}

			maxFriction := math.Abs(tangentImpulse)
			if math.Abs(tangentVel) < restingThreshTangent {
				prevAccum := contact.TangentImpulse
				contact.TangentImpulse += tangentImpulse
				if contact.TangentImpulse > maxFriction {
					contact.TangentImpulse = maxFriction
				} else if contact.TangentImpulse < -maxFriction {
					contact.TangentImpulse = -maxFriction
				}
				tangentImpulse = contact.TangentImpulse - prevAccum
			} else {
				contact.TangentImpulse = tangentImpulse
			}

			impulse := normal.Mult(normalImpulse).Add(tangent.Mult(tangentImpulse))
			applyImpulseAtVertex(a, impulse.Neg(), vertex)
			applyImpulseAtVertex(b, impulse, vertex)
		}
	}
}

// relativeVelocity computes a body's velocity at a world point using the
// Verlet-style (position - positionPrev) derivative plus the angular
// contribution from the offset.
func relativeVelocity(b *body.Body, offset vector.Vector) vector.Vector {
	linear := b.Position.Sub(b.PositionPrev)
	angular := offset.Perp(false).Mult(b.Angle - b.AnglePrev)
	return linear.Add(angular)
}
