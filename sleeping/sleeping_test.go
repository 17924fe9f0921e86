package sleeping

import (
	"testing"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/collision"
	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/pairs"
	"github.com/cilliemalan/matter-go/vector"
)

func box(ids *common.Counters, cx, cy, half float64) *body.Body {
	return body.New(ids, []vector.Vector{
		vector.New(cx-half, cy-half), vector.New(cx+half, cy-half),
		vector.New(cx+half, cy+half), vector.New(cx-half, cy+half),
	}, body.Options{Density: 1, SleepThreshold: 2})
}

func TestBodyFallsAsleepWhenStill(t *testing.T) {
	ids := common.NewCounters()
	b := box(ids, 0, 0, 1)
	b.ClearForces()

	for i := 0; i < 50; i++ {
		Update([]*body.Body{b}, body.BaseDelta)
		if b.IsSleeping {
			return
		}
	}
	t.Error("expected a motionless body to fall asleep within 50 steps")
}

func TestForceWakesSleepingBody(t *testing.T) {
	ids := common.NewCounters()
	b := box(ids, 0, 0, 1)
	b.IsSleeping = true
	b.SleepCounter = 10

	b.ApplyForce(b.Position, vector.New(1, 0))
	Update([]*body.Body{b}, body.BaseDelta)

	if b.IsSleeping {
		t.Error("expected an applied force to wake the body")
	}
	if b.SleepCounter != 0 {
		t.Errorf("SleepCounter = %v, want 0 after waking", b.SleepCounter)
	}
}

func TestStaticBodiesAreIgnored(t *testing.T) {
	ids := common.NewCounters()
	b := box(ids, 0, 0, 1)
	b.SetStatic(true)

	Update([]*body.Body{b}, body.BaseDelta)
	if b.IsSleeping {
		t.Error("static bodies should never be put to sleep")
	}
}

func TestAfterCollisionsWakesSleeperNextToActiveBody(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)
	b.IsSleeping = true
	a.Motion = 1

	c := collision.Collides(a, b, nil)
	reg := pairs.NewRegistry()
	reg.Update([]*collision.Collision{c}, 1)

	AfterCollisions(reg.List)
	if b.IsSleeping {
		t.Error("expected sleeping body to wake next to an active neighbour")
	}
}
