package pairs

import (
	"testing"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/collision"
	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/vector"
)

func box(ids *common.Counters, cx, cy, half float64) *body.Body {
	return body.New(ids, []vector.Vector{
		vector.New(cx-half, cy-half), vector.New(cx+half, cy-half),
		vector.New(cx+half, cy+half), vector.New(cx-half, cy+half),
	}, body.Options{Density: 1})
}

func TestKeyIsOrderIndependent(t *testing.T) {
	if Key(3, 9) != Key(9, 3) {
		t.Error("Key should not depend on argument order")
	}
	if Key(3, 9) == Key(3, 10) {
		t.Error("different pairs should not collide on key")
	}
}

func TestRegistryUpdateCreatesAndEndsPairs(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)

	r := NewRegistry()
	c := collision.Collides(a, b, nil)
	if c == nil {
		t.Fatal("expected a collision to seed the test")
	}

	r.Update([]*collision.Collision{c}, 1)
	if len(r.List) != 1 {
		t.Fatalf("len(List) = %d, want 1", len(r.List))
	}
	if len(r.CollisionStart) != 1 {
		t.Errorf("expected 1 collisionStart event, got %d", len(r.CollisionStart))
	}
	p := r.List[0]
	if !p.IsActive {
		t.Error("new pair should be active")
	}

	r.Update([]*collision.Collision{c}, 2)
	if len(r.CollisionActive) != 1 {
		t.Errorf("expected 1 collisionActive event on repeat update, got %d", len(r.CollisionActive))
	}

	r.Update(nil, 3)
	if len(r.List) != 0 {
		t.Errorf("pair should be evicted once untouched and both bodies awake, got %d remaining", len(r.List))
	}
	if len(r.CollisionEnd) != 1 {
		t.Errorf("expected 1 collisionEnd event, got %d", len(r.CollisionEnd))
	}
}

func TestRegistryKeepsSleepingPairs(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)
	a.IsSleeping = true
	b.IsSleeping = true

	r := NewRegistry()
	c := collision.Collides(a, b, nil)
	r.Update([]*collision.Collision{c}, 1)
	r.Update(nil, 2)

	if len(r.List) != 1 {
		t.Errorf("sleeping pair should be retained, len(List) = %d", len(r.List))
	}
	if r.List[0].IsActive {
		t.Error("untouched pair should be marked inactive even when retained")
	}
}

func TestBlendMaterialTakesMinMaxAppropriately(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)
	a.Friction, b.Friction = 0.2, 0.8
	a.FrictionStatic, b.FrictionStatic = 0.3, 0.6
	a.Restitution, b.Restitution = 0.1, 0.9

	r := NewRegistry()
	c := collision.Collides(a, b, nil)
	r.Update([]*collision.Collision{c}, 1)
	p := r.List[0]

	if p.Friction != 0.2 {
		t.Errorf("Friction = %v, want min(0.2,0.8)=0.2", p.Friction)
	}
	if p.FrictionStatic != 0.6 {
		t.Errorf("FrictionStatic = %v, want max(0.3,0.6)=0.6", p.FrictionStatic)
	}
	if p.Restitution != 0.9 {
		t.Errorf("Restitution = %v, want max(0.1,0.9)=0.9", p.Restitution)
	}
}
