// Package body implements the rigid body: its pose, kinematics, derived
// mass/inertia, and the Verlet-with-time-correction integrator spec.md
// §4.2 requires.
//
// Grounded on akmonengine-feather's actor/rigidbody.go (RigidBody,
// NewRigidBody, Integrate, Update, TrySleep/Sleep/Awake, AddForce/
// AddTorque, ClearForces) — same method names and lifecycle shape, the
// integrator itself replaced end to end (semi-implicit-Euler-with-
// quaternions becomes Verlet-with-time-correction) and the shape union
// (Box/Sphere/Plane) replaced with a single convex-polygon-plus-optional-
// circle-radius representation, since spec.md's Body is a general
// polygon rather than a closed set of primitive shapes.
package body

import (
	"math"

	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/geom"
	"github.com/cilliemalan/matter-go/vector"
)

// BaseDelta is the reference timestep (1000/60 ms) every integration and
// solver formula in this engine is normalized against.
const BaseDelta = 1000.0 / 60.0

// Filter controls which bodies are allowed to collide with each other
// (§4.5's canCollide).
type Filter struct {
	Category uint32
	Mask     uint32
	Group    int
}

// DefaultFilter collides with everything and belongs to group 0.
func DefaultFilter() Filter {
	return Filter{Category: 1, Mask: 0xFFFFFFFF, Group: 0}
}

// snapshot captures the physical attributes a body had before it was
// turned static, so SetStatic(false) can restore them (§3).
type snapshot struct {
	valid               bool
	mass, inverseMass   float64
	inertia, invInertia float64
	density             float64
	restitution         float64
}

// Body is the primary simulation entity: a convex, clockwise, duplicate-
// free polygon (or circle) with pose, kinematics, accumulators, and
// filtering. A single-part body stores itself as Parts[0]; a compound
// body's Parts[1:] are sub-parts whose Parent points back to the root.
type Body struct {
	ID    uint64
	Label string

	Vertices []geom.Vertex
	Axes     []vector.Vector
	Bounds   vector.Bounds
	// CircleRadius is non-zero only for bodies created as circles; the
	// polygon approximation still backs collision and mass.
	CircleRadius float64

	Position     vector.Vector
	Angle        float64
	PositionPrev vector.Vector
	AnglePrev    float64

	Velocity        vector.Vector
	AngularVelocity float64
	Speed           float64
	AngularSpeed    float64

	Force  vector.Vector
	Torque float64

	PositionImpulse vector.Vector
	ConstraintImpulse struct {
		X, Y, Angle float64
	}
	// TotalContacts is the number of active contacts sharing this body's
	// position-correction budget this step; reset after each position pass.
	TotalContacts int

	Mass           float64
	InverseMass    float64
	Inertia        float64
	InverseInertia float64
	Density        float64
	Area           float64
	Restitution    float64
	Friction       float64
	FrictionStatic float64
	FrictionAir    float64
	Slop           float64
	TimeScale      float64
	DeltaTime      float64

	IsStatic       bool
	IsSensor       bool
	IsSleeping     bool
	SleepCounter   float64
	SleepThreshold float64
	Motion         float64

	Filter Filter

	Parts  []*Body
	Parent *Body

	original snapshot
}

// Options configures a new Body; zero values fall back to the defaults
// below (Density 0.001, Friction 0.1, FrictionStatic 0.5, FrictionAir
// 0.01, Restitution 0, Slop 0.05, TimeScale 1, SleepThreshold 60). A zero
// Position places the body at the centroid of its vertex path.
type Options struct {
	Position       vector.Vector
	Angle          float64
	Density        float64
	Friction       float64
	FrictionStatic float64
	FrictionAir    float64
	Restitution    float64
	Slop           float64
	TimeScale      float64
	SleepThreshold float64
	IsStatic       bool
	IsSensor       bool
	CircleRadius   float64
	Filter         Filter
}

func withDefaults(o Options) Options {
	if o.Density == 0 {
		o.Density = 0.001
	}
	if o.Friction == 0 {
		o.Friction = 0.1
	}
	if o.FrictionStatic == 0 {
		o.FrictionStatic = 0.5
	}
	if o.FrictionAir == 0 {
		o.FrictionAir = 0.01
	}
	if o.Slop == 0 {
		o.Slop = 0.05
	}
	if o.TimeScale == 0 {
		o.TimeScale = 1
	}
	if o.SleepThreshold == 0 {
		o.SleepThreshold = 60
	}
	if o.Filter == (Filter{}) {
		o.Filter = DefaultFilter()
	}
	return o
}

// New constructs a Body from a convex, clockwise vertex path. ids issues
// the body's id; pass nil to get id 0 (used in tests that don't care
// about identity). When opts.Position is zero the body sits where the
// path's centroid is; otherwise the path is re-centred on opts.Position.
func New(ids *common.Counters, points []vector.Vector, opts Options) *Body {
	opts = withDefaults(opts)

	b := &Body{
		Label:          "Body",
		Friction:       opts.Friction,
		FrictionStatic: opts.FrictionStatic,
		FrictionAir:    opts.FrictionAir,
		Restitution:    opts.Restitution,
		Slop:           opts.Slop,
		TimeScale:      opts.TimeScale,
		SleepThreshold: opts.SleepThreshold,
		IsStatic:       opts.IsStatic,
		IsSensor:       opts.IsSensor,
		CircleRadius:   opts.CircleRadius,
		Filter:         opts.Filter,
		Position:       opts.Position,
		PositionPrev:   opts.Position,
		Angle:          opts.Angle,
		AnglePrev:      opts.Angle,
		DeltaTime:      BaseDelta,
	}
	if ids != nil {
		b.ID = ids.NextID()
		b.Label = common.NextLabel("Body")
	}

	b.Parts = []*Body{b}
	path := geom.ClockwiseSort(geom.FromPath(points))
	if opts.Position == vector.Zero {
		b.Position = geom.Centre(path)
		b.PositionPrev = b.Position
	}
	b.SetVertices(path)
	b.SetDensity(opts.Density)

	return b
}

// SetVertices installs a new convex, clockwise vertex ring, recentred so
// its centroid lands on the body's current position, and recomputes
// axes/bounds/area/mass. Vertices are always stored in world space.
func (b *Body) SetVertices(verts []geom.Vertex) {
	centre := geom.Centre(verts)
	recentred := geom.Translate(verts, b.Position.Sub(centre))

	b.Vertices = recentred
	b.Axes = geom.FromVertices(recentred)
	b.Area = geom.Area(recentred, false)
	b.recomputeBounds()

	if b.Density != 0 {
		b.SetMass(b.Area * b.Density)
	}
}

func (b *Body) recomputeBounds() {
	pts := geom.Points(b.Vertices)
	b.Bounds = vector.Bounds{}.Update(pts, b.Velocity)
}

// SetDensity sets density and recomputes mass (mass = area*density),
// which in turn recomputes inertia.
func (b *Body) SetDensity(density float64) {
	b.Density = density
	b.SetMass(b.Area * density)
}

// SetMass recomputes mass, inverse mass, and inertia; static bodies keep
// zero inverse mass/inertia and infinite mass/inertia (§3 invariant).
func (b *Body) SetMass(mass float64) {
	b.Mass = mass
	if mass > 0 {
		b.Density = mass / b.Area
	}
	b.SetInertia(geom.Inertia(b.Vertices, mass))
	b.applyStaticInvariant()
}

// SetInertia recomputes inverse inertia from a caller-supplied inertia.
func (b *Body) SetInertia(inertia float64) {
	b.Inertia = inertia
	b.applyStaticInvariant()
}

func (b *Body) applyStaticInvariant() {
	if b.IsStatic {
		b.InverseMass = 0
		b.InverseInertia = 0
		b.Mass = math.Inf(1)
		b.Inertia = math.Inf(1)
		return
	}
	if b.Mass > 0 {
		b.InverseMass = 1 / b.Mass
	}
	if b.Inertia > 0 {
		b.InverseInertia = 1 / b.Inertia
	}
}

// SetStatic toggles the static flag, snapshotting or restoring the
// physical attributes the body had beforehand (§3 "original-on-static").
func (b *Body) SetStatic(static bool) {
	if static && !b.IsStatic {
		b.original = snapshot{
			valid:       true,
			mass:        b.Mass,
			inverseMass: b.InverseMass,
			inertia:     b.Inertia,
			invInertia:  b.InverseInertia,
			density:     b.Density,
			restitution: b.Restitution,
		}
		b.IsStatic = true
		b.Velocity = vector.Zero
		b.AngularVelocity = 0
		b.applyStaticInvariant()
		return
	}
	if !static && b.IsStatic {
		b.IsStatic = false
		if b.original.valid {
			b.Mass = b.original.mass
			b.InverseMass = b.original.inverseMass
			b.Inertia = b.original.inertia
			b.InverseInertia = b.original.invInertia
			b.Density = b.original.density
			b.Restitution = b.original.restitution
			b.original = snapshot{}
		}
	}
}

// SetPosition moves the body to p, carrying vertices/bounds along; the
// previous position is not preserved, matching the teacher's direct
// position-assignment setters (§8's SetPosition idempotence invariant:
// calling it twice in a row equals calling it once with the final value).
func (b *Body) SetPosition(p vector.Vector) {
	delta := p.Sub(b.Position)
	b.Position = p
	b.PositionPrev = b.PositionPrev.Add(delta)
	b.Vertices = geom.Translate(b.Vertices, delta)
	b.recomputeBounds()
	for _, part := range b.Parts[1:] {
		part.SetPosition(part.Position.Add(delta))
	}
}

// SetAngle rotates the body to angle, carrying vertices/axes along.
func (b *Body) SetAngle(angle float64) {
	delta := angle - b.Angle
	b.Angle = angle
	b.AnglePrev += delta
	b.Vertices = geom.Rotate(b.Vertices, delta, b.Position)
	b.Axes = geom.RotateAxes(b.Axes, delta)
	b.recomputeBounds()
	for _, part := range b.Parts[1:] {
		part.SetAngle(part.Angle + delta)
	}
}

// Translate shifts the body by delta.
func (b *Body) Translate(delta vector.Vector) {
	b.SetPosition(b.Position.Add(delta))
}

// Rotate rotates the body by delta radians about point (defaults to its
// own position if point equals its current position).
func (b *Body) Rotate(delta float64, point vector.Vector) {
	if point != b.Position {
		b.SetPosition(b.Position.RotateAbout(delta, point))
	}
	b.SetAngle(b.Angle + delta)
}

// SetVelocity sets linear velocity and derives PositionPrev so the next
// integration step reproduces it (Verlet stores velocity implicitly).
func (b *Body) SetVelocity(v vector.Vector) {
	b.PositionPrev = b.Position.Sub(v)
	b.Velocity = v
	b.Speed = v.Magnitude()
}

// SetAngularVelocity sets angular velocity and derives AnglePrev.
func (b *Body) SetAngularVelocity(av float64) {
	b.AnglePrev = b.Angle - av
	b.AngularVelocity = av
	b.AngularSpeed = math.Abs(av)
}

// SetSpeed rescales velocity to the given magnitude, preserving direction.
func (b *Body) SetSpeed(speed float64) {
	dir := b.Velocity.Normalise()
	b.SetVelocity(dir.Mult(speed))
}

// SetAngularSpeed rescales angular velocity to the given magnitude,
// preserving sign.
func (b *Body) SetAngularSpeed(speed float64) {
	sign := 1.0
	if b.AngularVelocity < 0 {
		sign = -1
	}
	b.SetAngularVelocity(speed * sign)
}

// SetParts installs the compound part list. parts[0] must be this body
// (or is inserted as such); when autoHull is true the root's vertices
// become the convex hull of every part, re-centred on it, and the root's
// mass/area/inertia/position absorb a mass-weighted combination of the
// non-root parts.
func (b *Body) SetParts(parts []*Body, autoHull bool) {
	filtered := parts[:0:0]
	hasSelf := false
	for _, p := range parts {
		if p == b {
			hasSelf = true
		}
		filtered = append(filtered, p)
	}
	if !hasSelf {
		filtered = append([]*Body{b}, filtered...)
	}
	b.Parts = filtered
	for _, p := range filtered[1:] {
		p.Parent = b
	}

	if len(filtered) == 1 {
		return
	}

	if autoHull {
		var allPoints []vector.Vector
		for _, p := range filtered[1:] {
			allPoints = append(allPoints, geom.Points(p.Vertices)...)
		}
		hull := geom.Hull(geom.FromPath(allPoints))
		b.SetVertices(hull)
	}

	var totalMass, totalArea, totalInertia float64
	var weightedCentre vector.Vector
	for _, p := range filtered[1:] {
		totalMass += p.Mass
		totalArea += p.Area
		totalInertia += p.Inertia
		weightedCentre = weightedCentre.Add(p.Position.Mult(p.Mass))
	}
	if totalMass > 0 {
		weightedCentre = weightedCentre.Div(totalMass)
		b.SetPosition(weightedCentre)
	}
	b.Area = totalArea
	b.SetMass(totalMass)
	b.SetInertia(totalInertia)
}

// SetCentre sets Position and PositionPrev to c without moving the
// vertices (i.e. it re-homes the origin rather than translating the
// shape); the vertex-ring centroid stays where it was.
func (b *Body) SetCentre(c vector.Vector) {
	b.Position = c
	b.PositionPrev = c
	b.recomputeBounds()
}

// Scale scales the body's vertices about its own position by (sx, sy)
// and recomputes area/mass/inertia/axes.
func (b *Body) Scale(sx, sy float64) {
	scaled := geom.Scale(b.Vertices, sx, sy, b.Position)
	b.Vertices = scaled
	b.Axes = geom.FromVertices(scaled)
	b.Area = geom.Area(scaled, false)
	b.recomputeBounds()
	if b.Density != 0 {
		b.SetMass(b.Area * b.Density)
	}
}

// ApplyForce adds force applied at worldPoint to the force accumulator,
// and the resulting moment to the torque accumulator.
func (b *Body) ApplyForce(worldPoint vector.Vector, force vector.Vector) {
	b.Force = b.Force.Add(force)
	offset := worldPoint.Sub(b.Position)
	b.Torque += offset.Cross(force)
}

// Update integrates one timestep using Verlet with time correction
// (§4.2). delta is the raw step; it is scaled by TimeScale internally.
func (b *Body) Update(delta float64) {
	d := delta * b.TimeScale
	correction := d / b.DeltaTime
	frictionFactor := 1 - b.FrictionAir*d/BaseDelta

	velocityPrev := b.Position.Sub(b.PositionPrev).Mult(correction)
	accel := b.Force.Mult(1 / b.Mass).Mult(d * d)
	b.Velocity = velocityPrev.Mult(frictionFactor).Add(accel)

	b.PositionPrev = b.Position
	b.Position = b.Position.Add(b.Velocity)

	angularVelocityPrev := (b.Angle - b.AnglePrev) * correction
	angularAccel := (b.Torque / b.Inertia) * d * d
	b.AngularVelocity = angularVelocityPrev*frictionFactor + angularAccel

	b.AnglePrev = b.Angle
	b.Angle += b.AngularVelocity

	b.DeltaTime = d

	for _, part := range b.Parts {
		if part != b {
			part.PositionPrev = part.Position
			part.Position = part.Position.Add(b.Velocity)
			part.Position = part.Position.RotateAbout(b.AngularVelocity, b.Position)
			part.AnglePrev = part.Angle
			part.Angle += b.AngularVelocity
		}

		part.Vertices = geom.Translate(part.Vertices, b.Velocity)
		part.Vertices = geom.Rotate(part.Vertices, b.AngularVelocity, b.Position)
		part.Axes = geom.RotateAxes(part.Axes, b.AngularVelocity)
		part.recomputeBounds()
	}
}

// UpdateVelocities recomputes Velocity/AngularVelocity (and Speed/
// AngularSpeed) from position deltas, normalized to BaseDelta/DeltaTime,
// after the solver has mutated PositionPrev via impulses (§4.2).
func (b *Body) UpdateVelocities() {
	timeScale := BaseDelta / b.DeltaTime
	b.Velocity = b.Position.Sub(b.PositionPrev).Mult(timeScale)
	b.Speed = b.Velocity.Magnitude()
	b.AngularVelocity = (b.Angle - b.AnglePrev) * timeScale
	b.AngularSpeed = math.Abs(b.AngularVelocity)
}

// ClearForces zeroes the force and torque accumulators.
func (b *Body) ClearForces() {
	b.Force = vector.Zero
	b.Torque = 0
}
