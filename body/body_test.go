package body

import (
	"math"
	"testing"

	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/geom"
	"github.com/cilliemalan/matter-go/vector"
)

func square(opts Options) *Body {
	ids := common.NewCounters()
	return New(ids, []vector.Vector{
		vector.New(-1, -1), vector.New(1, -1), vector.New(1, 1), vector.New(-1, 1),
	}, opts)
}

func TestNewComputesAreaAndMass(t *testing.T) {
	b := square(Options{Density: 1})
	if math.Abs(b.Area-4) > 1e-9 {
		t.Errorf("Area = %v, want 4", b.Area)
	}
	if math.Abs(b.Mass-4) > 1e-9 {
		t.Errorf("Mass = %v, want 4", b.Mass)
	}
	if b.InverseMass == 0 {
		t.Error("expected non-zero inverse mass for dynamic body")
	}
}

func TestStaticBodyHasZeroInverseMass(t *testing.T) {
	b := square(Options{Density: 1, IsStatic: true})
	if b.InverseMass != 0 || b.InverseInertia != 0 {
		t.Errorf("static body should have zero inverse mass/inertia, got %v %v", b.InverseMass, b.InverseInertia)
	}
	if !math.IsInf(b.Mass, 1) {
		t.Errorf("static body mass should be +Inf, got %v", b.Mass)
	}
}

func TestSetStaticRestoresOriginal(t *testing.T) {
	b := square(Options{Density: 1})
	mass := b.Mass
	inertia := b.Inertia

	b.SetStatic(true)
	if b.InverseMass != 0 {
		t.Fatal("expected zero inverse mass while static")
	}

	b.SetStatic(false)
	if math.Abs(b.Mass-mass) > 1e-9 {
		t.Errorf("Mass after unfreezing = %v, want %v", b.Mass, mass)
	}
	if math.Abs(b.Inertia-inertia) > 1e-9 {
		t.Errorf("Inertia after unfreezing = %v, want %v", b.Inertia, inertia)
	}
}

func TestSetPositionMovesVerticesOnce(t *testing.T) {
	b := square(Options{Density: 1})
	before := make([]vector.Vector, len(b.Vertices))
	for i, v := range b.Vertices {
		before[i] = v.Point
	}

	b.SetPosition(vector.New(10, 0))

	for i, v := range b.Vertices {
		want := before[i].Add(vector.New(10, 0))
		if math.Abs(v.Point.X()-want.X()) > 1e-9 || math.Abs(v.Point.Y()-want.Y()) > 1e-9 {
			t.Fatalf("vertex %d = %v, want %v (double-translation bug)", i, v.Point, want)
		}
	}
}

func TestSetPositionTwiceEqualsOnce(t *testing.T) {
	a := square(Options{Density: 1})
	b := square(Options{Density: 1})

	a.SetPosition(vector.New(3, 4))
	a.SetPosition(vector.New(5, -2))

	b.SetPosition(vector.New(5, -2))

	for i := range a.Vertices {
		if a.Vertices[i].Point != b.Vertices[i].Point {
			t.Errorf("vertex %d diverges: %v vs %v", i, a.Vertices[i].Point, b.Vertices[i].Point)
		}
	}
}

func TestSetVelocityThenUpdateReproducesIt(t *testing.T) {
	b := square(Options{Density: 1})
	b.SetVelocity(vector.New(1, 0))
	b.ClearForces()
	b.Update(BaseDelta)

	// Update applies air friction, scaling the velocity by 1 - FrictionAir
	// over one BaseDelta step.
	want := 1 - b.FrictionAir
	if math.Abs(b.Velocity.X()-want) > 1e-6 {
		t.Errorf("Velocity.X = %v, want ~%v", b.Velocity.X(), want)
	}
}

func TestApplyForceAccumulates(t *testing.T) {
	b := square(Options{Density: 1})
	b.ApplyForce(b.Position.Add(vector.New(1, 0)), vector.New(0, 1))
	if b.Force.Y() != 1 {
		t.Errorf("Force.Y = %v, want 1", b.Force.Y())
	}
	if b.Torque == 0 {
		t.Error("expected non-zero torque from off-centre force")
	}
	b.ClearForces()
	if b.Force != vector.Zero || b.Torque != 0 {
		t.Error("ClearForces should zero accumulators")
	}
}

func TestSetPartsAggregatesMass(t *testing.T) {
	root := square(Options{Density: 1})
	part := square(Options{Density: 1})
	part.SetPosition(vector.New(2, 0))

	root.SetParts([]*Body{root, part}, false)

	// The root's mass is the sum over the non-root parts only.
	if math.Abs(root.Mass-4) > 1e-9 {
		t.Errorf("aggregated mass = %v, want 4", root.Mass)
	}
	if len(root.Parts) != 2 {
		t.Fatalf("len(Parts) = %d, want 2", len(root.Parts))
	}
	if part.Parent != root {
		t.Error("expected part.Parent to point at root")
	}
}

func TestUpdatePropagatesSubPartPosition(t *testing.T) {
	root := square(Options{Density: 1})
	part := square(Options{Density: 1})
	part.SetPosition(vector.New(2, 0))
	root.SetParts([]*Body{root, part}, false)

	for i := 0; i < 5; i++ {
		root.ApplyForce(root.Position.Add(vector.New(0, 1)), vector.New(5, 0))
		root.Update(BaseDelta)
	}

	centroid := geom.Mean(part.Vertices)
	if math.Abs(part.Position.X()-centroid.X()) > 1e-9 || math.Abs(part.Position.Y()-centroid.Y()) > 1e-9 {
		t.Errorf("part.Position = %v, want to track its vertex centroid %v", part.Position, centroid)
	}
}

func TestUpdateVelocitiesMatchesPositionDelta(t *testing.T) {
	b := square(Options{Density: 1})
	b.PositionPrev = b.Position
	b.Position = b.Position.Add(vector.New(2, 0))
	b.DeltaTime = BaseDelta

	b.UpdateVelocities()

	if math.Abs(b.Velocity.X()-2) > 1e-9 {
		t.Errorf("Velocity.X = %v, want 2", b.Velocity.X())
	}
}
