// Package engine ties every subsystem together into the one fixed-
// timestep Update the rest of this module exists to drive: gravity,
// integration, constraints, broad+narrow phase, sleeping, the position
// pass, constraints again, the velocity pass, derived-velocity
// recomputation, and event emission, in the exact order §4.10 specifies.
//
// Grounded on akmonengine-feather's world.go (World.Step: integrate ->
// detect -> record -> solvePosition -> update -> solveVelocity ->
// trySleep) — the same single phase-ordered function, its inner bodies
// replaced with each rewritten subsystem's entry points.
package engine

import (
	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/composite"
	"github.com/cilliemalan/matter-go/constraintd"
	"github.com/cilliemalan/matter-go/detector"
	"github.com/cilliemalan/matter-go/events"
	"github.com/cilliemalan/matter-go/pairs"
	"github.com/cilliemalan/matter-go/resolver"
	"github.com/cilliemalan/matter-go/sleeping"
	"github.com/cilliemalan/matter-go/vector"
)

// Timing tracks the running clock an engine advances.
type Timing struct {
	Timestamp   uint64
	LastDelta   float64
	LastElapsed float64
}

// Gravity is the uniform acceleration field applied to every non-static,
// non-sleeping body each step.
type Gravity struct {
	Vector vector.Vector
	Scale  float64
}

// DefaultGravity matches Matter.js-style downward gravity scaled for a
// pixel-based world.
func DefaultGravity() Gravity {
	return Gravity{Vector: vector.New(0, 1), Scale: 0.001}
}

// Options configures a new Engine.
type Options struct {
	Gravity            Gravity
	TimeScale          float64
	EnableSleeping     bool
	PositionIterations int
	VelocityIterations int
	ConstraintIterations int
}

func withDefaults(o Options) Options {
	if o.TimeScale == 0 {
		o.TimeScale = 1
	}
	if o.PositionIterations == 0 {
		o.PositionIterations = resolver.PositionIterations
	}
	if o.VelocityIterations == 0 {
		o.VelocityIterations = resolver.VelocityIterations
	}
	if o.ConstraintIterations == 0 {
		o.ConstraintIterations = 2
	}
	if o.Gravity == (Gravity{}) {
		o.Gravity = DefaultGravity()
	}
	return o
}

// Engine owns the world, the pair registry, the broad-phase detector,
// the event bus, and the id/category/group counters for one isolated
// simulation (spec.md §9's EngineContext).
type Engine struct {
	World    *composite.Composite
	Pairs    *pairs.Registry
	Detector *detector.Detector
	Events   *events.Bus
	Counters *common.Counters
	Timing   Timing

	Gravity              Gravity
	TimeScale            float64
	EnableSleeping       bool
	PositionIterations   int
	VelocityIterations   int
	ConstraintIterations int

	worldModified bool
	allBodies     []*body.Body
	allConstraints []*constraintd.Constraint
}

// New constructs an engine over a fresh root composite.
func New(opts Options) *Engine {
	opts = withDefaults(opts)
	return &Engine{
		World:                composite.New("root"),
		Pairs:                pairs.NewRegistry(),
		Detector:             detector.New(nil),
		Events:               events.New(),
		Counters:             common.NewCounters(),
		Gravity:              opts.Gravity,
		TimeScale:            opts.TimeScale,
		EnableSleeping:       opts.EnableSleeping,
		PositionIterations:   opts.PositionIterations,
		VelocityIterations:   opts.VelocityIterations,
		ConstraintIterations: opts.ConstraintIterations,
		worldModified:        true,
	}
}

// MarkWorldModified flags the world as changed so the next Update call
// resynchronises the cached body/constraint lists and the detector.
func (e *Engine) MarkWorldModified() {
	e.worldModified = true
}

// Update advances the simulation by one step, in the fixed order of
// §4.10. delta defaults to body.BaseDelta when zero.
func (e *Engine) Update(delta float64) {
	if delta == 0 {
		delta = body.BaseDelta
	}
	delta *= e.TimeScale

	e.Timing.Timestamp++
	e.Timing.LastDelta = delta

	e.Events.Emit(events.BeforeUpdate, nil)

	if e.worldModified || e.World.IsModified() {
		e.allBodies = e.World.AllBodies()
		e.allConstraints = e.World.AllConstraints()
		e.Detector.SetBodies(e.allBodies)
		e.World.ClearModified()
		e.worldModified = false
	}

	if e.EnableSleeping {
		sleeping.Update(e.allBodies, delta)
	}

	for _, b := range e.allBodies {
		if b.IsStatic || b.IsSleeping {
			continue
		}
		b.Force = b.Force.Add(e.Gravity.Vector.Mult(b.Mass * e.Gravity.Scale))
	}

	for _, b := range e.allBodies {
		if b.IsStatic || b.IsSleeping {
			continue
		}
		b.Update(delta)
	}

	e.Events.Emit(events.BeforeSolve, nil)

	constraintd.PreSolveAll(e.allConstraints)
	for i := 0; i < e.ConstraintIterations; i++ {
		constraintd.SolveAll(e.allConstraints, delta)
	}
	constraintd.PostSolveAll(e.allBodies)

	collisions := e.Detector.Collisions()
	e.Pairs.Update(collisions, e.Timing.Timestamp)

	if e.EnableSleeping {
		sleeping.AfterCollisions(e.Pairs.List)
	}

	if len(e.Pairs.CollisionStart) > 0 {
		e.Events.Emit(events.CollisionStart, e.Pairs.CollisionStart)
	}

	resolver.PreSolvePosition(e.Pairs.List)
	positionDamping := clamp01(20 / float64(e.PositionIterations))
	for i := 0; i < e.PositionIterations; i++ {
		resolver.SolvePosition(e.Pairs.List, delta, positionDamping)
	}
	resolver.PostSolvePosition(e.allBodies)

	constraintd.PreSolveAll(e.allConstraints)
	for i := 0; i < e.ConstraintIterations; i++ {
		constraintd.SolveAll(e.allConstraints, delta)
	}
	constraintd.PostSolveAll(e.allBodies)

	resolver.PreSolveVelocity(e.Pairs.List)
	for i := 0; i < e.VelocityIterations; i++ {
		resolver.SolveVelocity(e.Pairs.List, delta)
	}

	for _, b := range e.allBodies {
		if b.IsStatic || b.IsSleeping {
			continue
		}
		b.UpdateVelocities()
	}

	if len(e.Pairs.CollisionActive) > 0 {
		e.Events.Emit(events.CollisionActive, e.Pairs.CollisionActive)
	}
	if len(e.Pairs.CollisionEnd) > 0 {
		e.Events.Emit(events.CollisionEnd, e.Pairs.CollisionEnd)
	}

	for _, b := range e.allBodies {
		b.ClearForces()
	}

	e.Timing.LastElapsed = delta
	e.Events.Emit(events.AfterUpdate, nil)
}

// Merge rebases src's world under dst's id counters and grafts it into
// dst's world as a sub-composite, so src's bodies/constraints become
// part of dst's next Update without id collisions. src should not be
// updated independently afterwards.
func Merge(dst, src *Engine) {
	src.World.Rebase(dst.Counters)
	dst.World.AddComposite(src.World)
	dst.worldModified = true
}

// Clear empties the engine's world, pair registry, and broad-phase
// detector, leaving timing and configuration untouched.
func (e *Engine) Clear() {
	e.World.Clear(false, true)
	e.Pairs = pairs.NewRegistry()
	e.Detector = detector.New(nil)
	e.worldModified = true
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
