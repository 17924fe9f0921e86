package detector

import (
	"testing"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/vector"
)

func box(ids *common.Counters, cx, cy, half float64, opts body.Options) *body.Body {
	opts.Density = 1
	return body.New(ids, []vector.Vector{
		vector.New(cx-half, cy-half), vector.New(cx+half, cy-half),
		vector.New(cx+half, cy+half), vector.New(cx-half, cy+half),
	}, opts)
}

func TestCollisionsFindsOverlappingPair(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1, body.Options{})
	b := box(ids, 1.5, 0, 1, body.Options{})

	d := New([]*body.Body{a, b})
	cs := d.Collisions()
	if len(cs) != 1 {
		t.Fatalf("len(Collisions) = %d, want 1", len(cs))
	}
}

func TestCollisionsSkipsSeparatedPair(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1, body.Options{})
	b := box(ids, 20, 0, 1, body.Options{})

	d := New([]*body.Body{a, b})
	if cs := d.Collisions(); len(cs) != 0 {
		t.Errorf("expected no collisions, got %d", len(cs))
	}
}

func TestCollisionsSkipsBothStatic(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1, body.Options{IsStatic: true})
	b := box(ids, 1.5, 0, 1, body.Options{IsStatic: true})

	d := New([]*body.Body{a, b})
	if cs := d.Collisions(); len(cs) != 0 {
		t.Errorf("expected static-static pairs to be skipped, got %d", len(cs))
	}
}

func TestCanCollideGroupRules(t *testing.T) {
	a := body.Filter{Category: 1, Mask: 0, Group: 5}
	b := body.Filter{Category: 1, Mask: 0, Group: 5}
	if !canCollide(a, b) {
		t.Error("equal positive groups should always collide")
	}

	a.Group, b.Group = -3, -3
	if canCollide(a, b) {
		t.Error("equal negative groups should never collide")
	}
}

func TestCanCollideCategoryMaskRules(t *testing.T) {
	a := body.Filter{Category: 0b0001, Mask: 0b0010}
	b := body.Filter{Category: 0b0010, Mask: 0b0001}
	if !canCollide(a, b) {
		t.Error("expected matching category/mask to collide")
	}

	b.Category = 0b0100
	if canCollide(a, b) {
		t.Error("expected non-matching category/mask to not collide")
	}
}

func TestCollisionsGatesFilteredBodies(t *testing.T) {
	ids := common.NewCounters()
	filterA := body.Filter{Category: 0b0001, Mask: 0b0010, Group: 0}
	filterB := body.Filter{Category: 0b0100, Mask: 0b0100, Group: 0}
	a := box(ids, 0, 0, 1, body.Options{Filter: filterA})
	b := box(ids, 1.5, 0, 1, body.Options{Filter: filterB})

	d := New([]*body.Body{a, b})
	if cs := d.Collisions(); len(cs) != 0 {
		t.Errorf("expected non-matching filters to skip collision, got %d", len(cs))
	}
}
