// Package constraintd implements the distance/spring constraint: a
// rest-length link between two body-local anchors (or a world point),
// solved with a stiffness/damping model and warm-started the same way
// contacts are.
//
// Grounded on akmonengine-feather's Constraint interface
// (constraint/constraint.go) and its contact.go warm-start-then-damp
// cached-impulse pattern, adapted from a 3D XPBD compliance constraint
// to the spec's 2D spring formula (§4.8).
package constraintd

import (
	"math"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/geom"
	"github.com/cilliemalan/matter-go/vector"
)

// Constraint links BodyA's local PointA (or a world point, if BodyA is
// nil) to BodyB's local PointB (or a world point, if BodyB is nil).
type Constraint struct {
	ID             uint64
	BodyA, BodyB   *body.Body
	PointA, PointB vector.Vector
	Length         float64
	Stiffness      float64
	Damping        float64
	AngularStiffness float64

	anglePrevA, anglePrevB float64
}

// Options configures a new Constraint. Length defaults to the current
// world-space anchor distance when zero;
// Stiffness defaults to 1 if Length > 0, else 0.7 (a soft pin).
type Options struct {
	BodyA, BodyB     *body.Body
	PointA, PointB   vector.Vector
	Length           float64
	Stiffness        float64
	Damping          float64
	AngularStiffness float64
}

// New derives rest length and default stiffness per §4.8.
func New(o Options) *Constraint {
	c := &Constraint{
		BodyA: o.BodyA, BodyB: o.BodyB,
		PointA: o.PointA, PointB: o.PointB,
		Damping:          o.Damping,
		AngularStiffness: o.AngularStiffness,
	}

	if o.Length != 0 {
		c.Length = o.Length
	} else {
		c.Length = c.worldPointA().Sub(c.worldPointB()).Magnitude()
	}

	if o.Stiffness != 0 {
		c.Stiffness = o.Stiffness
	} else if c.Length > 0 {
		c.Stiffness = 1
	} else {
		c.Stiffness = 0.7
	}

	if c.BodyA != nil {
		c.anglePrevA = c.BodyA.Angle
	}
	if c.BodyB != nil {
		c.anglePrevB = c.BodyB.Angle
	}

	return c
}

func (c *Constraint) worldPointA() vector.Vector {
	if c.BodyA == nil {
		return c.PointA
	}
	return c.BodyA.Position.Add(c.PointA)
}

func (c *Constraint) worldPointB() vector.Vector {
	if c.BodyB == nil {
		return c.PointB
	}
	return c.BodyB.Position.Add(c.PointB)
}

// PreSolveAll warm-starts every non-static constrained body from its
// cached constraint impulse.
func PreSolveAll(constraints []*Constraint) {
	for _, c := range constraints {
		if c.BodyA != nil && !c.BodyA.IsStatic {
			applyCached(c.BodyA)
		}
		if c.BodyB != nil && !c.BodyB.IsStatic {
			applyCached(c.BodyB)
		}
	}
}

// applyCached warm-starts a body from the constraint impulse left over
// (and damped) from the previous step, keeping position, angle, and the
// vertex ring in sync rather than letting them drift apart mid-step, then
// clears the impulse so it is applied once and the following solves
// accumulate afresh.
func applyCached(b *body.Body) {
	impulse := b.ConstraintImpulse
	if impulse.X == 0 && impulse.Y == 0 && impulse.Angle == 0 {
		return
	}
	b.Position = b.Position.Add(vector.New(impulse.X, impulse.Y))
	b.Vertices = geom.Translate(b.Vertices, vector.New(impulse.X, impulse.Y))
	if impulse.Angle != 0 {
		b.Angle += impulse.Angle
		b.Vertices = geom.Rotate(b.Vertices, impulse.Angle, b.Position)
		b.Axes = geom.RotateAxes(b.Axes, impulse.Angle)
	}
	resetConstraintImpulse(b)
}

// SolveAll solves every constraint once, static/fixed-endpoint
// constraints first, per §4.8's stability ordering.
func SolveAll(constraints []*Constraint, delta float64) {
	ts := clamp01(delta / body.BaseDelta)

	var pinned, free []*Constraint
	for _, c := range constraints {
		if isPinned(c) {
			pinned = append(pinned, c)
		} else {
			free = append(free, c)
		}
	}
	for _, c := range pinned {
		solveOne(c, ts)
	}
	for _, c := range free {
		solveOne(c, ts)
	}
}

func resetConstraintImpulse(b *body.Body) {
	if b == nil {
		return
	}
	b.ConstraintImpulse.X = 0
	b.ConstraintImpulse.Y = 0
	b.ConstraintImpulse.Angle = 0
}

func isPinned(c *Constraint) bool {
	return c.BodyA == nil || c.BodyA.IsStatic || c.BodyB == nil || c.BodyB.IsStatic
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

func solveOne(c *Constraint, ts float64) {
	pointALocal := rotateSinceLastSeen(c.PointA, c.BodyA, &c.anglePrevA)
	pointBLocal := rotateSinceLastSeen(c.PointB, c.BodyB, &c.anglePrevB)

	pointAW := addIfBody(c.BodyA, pointALocal)
	pointBW := addIfBody(c.BodyB, pointBLocal)

	delta := pointAW.Sub(pointBW)
	currentLength := math.Max(delta.Magnitude(), 1e-6)

	difference := (currentLength - c.Length) / currentLength
	isRigid := c.Stiffness >= 1 || c.Length == 0

	var effectiveK float64
	if isRigid {
		effectiveK = c.Stiffness * ts
	} else {
		effectiveK = c.Stiffness * ts * ts
	}
	force := delta.Mult(difference * effectiveK)

	var invMassA, invMassB, invInertiaA, invInertiaB float64
	if c.BodyA != nil {
		invMassA, invInertiaA = c.BodyA.InverseMass, c.BodyA.InverseInertia
	}
	if c.BodyB != nil {
		invMassB, invInertiaB = c.BodyB.InverseMass, c.BodyB.InverseInertia
	}
	massTotal := invMassA + invMassB
	inertiaTotal := invInertiaA + invInertiaB
	resistance := massTotal + inertiaTotal
	if resistance == 0 {
		return
	}

	if c.Damping > 0 && massTotal > 0 {
		normal := delta.Normalise()
		velA := verletVelocity(c.BodyA)
		velB := verletVelocity(c.BodyB)
		normalVel := velB.Sub(velA).Dot(normal)
		if c.BodyB != nil && !c.BodyB.IsStatic {
			shareB := invMassB / massTotal
			damp := normal.Mult(c.Damping * normalVel * shareB)
			c.BodyB.PositionPrev = c.BodyB.PositionPrev.Add(damp)
		}
		if c.BodyA != nil && !c.BodyA.IsStatic {
			shareA := invMassA / massTotal
			damp := normal.Mult(c.Damping * normalVel * shareA)
			c.BodyA.PositionPrev = c.BodyA.PositionPrev.Sub(damp)
		}
	}

	if massTotal == 0 {
		return
	}

	if c.BodyA != nil && !c.BodyA.IsStatic {
		share := invMassA / massTotal
		delta := force.Mult(share)
		c.BodyA.Position = c.BodyA.Position.Sub(delta)
		c.BodyA.ConstraintImpulse.X -= delta.X()
		c.BodyA.ConstraintImpulse.Y -= delta.Y()

		torque := pointALocal.Cross(force.Neg()) / resistance * invInertiaA * (1 - c.AngularStiffness)
		c.BodyA.Angle += torque
		c.BodyA.ConstraintImpulse.Angle += torque
	}
	if c.BodyB != nil && !c.BodyB.IsStatic {
		share := invMassB / massTotal
		delta := force.Mult(share)
		c.BodyB.Position = c.BodyB.Position.Add(delta)
		c.BodyB.ConstraintImpulse.X += delta.X()
		c.BodyB.ConstraintImpulse.Y += delta.Y()

		torque := pointBLocal.Cross(force) / resistance * invInertiaB * (1 - c.AngularStiffness)
		c.BodyB.Angle += torque
		c.BodyB.ConstraintImpulse.Angle += torque
	}
}

func rotateSinceLastSeen(local vector.Vector, b *body.Body, anglePrev *float64) vector.Vector {
	if b == nil {
		return local
	}
	delta := b.Angle - *anglePrev
	*anglePrev = b.Angle
	return local.Rotate(delta)
}

func addIfBody(b *body.Body, local vector.Vector) vector.Vector {
	if b == nil {
		return local
	}
	return b.Position.Add(local)
}

func verletVelocity(b *body.Body) vector.Vector {
	if b == nil {
		return vector.Zero
	}
	return b.Position.Sub(b.PositionPrev)
}

// PostSolveAll wakes any body with a non-zero accumulated constraint
// impulse, applies the final position/angle delta to its vertex ring and
// bounds, and damps the cached impulse by 0.4 for next-step warm start.
func PostSolveAll(bodies []*body.Body) {
	for _, b := range bodies {
		impulse := b.ConstraintImpulse
		if impulse.X == 0 && impulse.Y == 0 && impulse.Angle == 0 {
			continue
		}
		if b.IsStatic {
			continue
		}
		b.IsSleeping = false

		delta := vector.New(impulse.X, impulse.Y)
		b.Vertices = geom.Translate(b.Vertices, delta)
		if impulse.Angle != 0 {
			b.Vertices = geom.Rotate(b.Vertices, impulse.Angle, b.Position)
			b.Axes = geom.RotateAxes(b.Axes, impulse.Angle)
		}
		b.Bounds = vector.Bounds{}.Update(geom.Points(b.Vertices), b.Velocity)

		b.ConstraintImpulse.X *= 0.4
		b.ConstraintImpulse.Y *= 0.4
		b.ConstraintImpulse.Angle *= 0.4
	}
}
