package collision

import (
	"testing"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/common"
	"github.com/cilliemalan/matter-go/vector"
)

func box(ids *common.Counters, cx, cy, half float64) *body.Body {
	return body.New(ids, []vector.Vector{
		vector.New(cx-half, cy-half), vector.New(cx+half, cy-half),
		vector.New(cx+half, cy+half), vector.New(cx-half, cy+half),
	}, body.Options{Density: 1})
}

func TestCollidesOverlappingBoxes(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)

	c := Collides(a, b, nil)
	if c == nil {
		t.Fatal("expected a collision")
	}
	if !c.Collided {
		t.Error("Collided should be true")
	}
	if c.Depth <= 0 {
		t.Errorf("Depth = %v, want > 0", c.Depth)
	}
	if c.SupportCount < 1 || c.SupportCount > 2 {
		t.Errorf("SupportCount = %v, want 1 or 2", c.SupportCount)
	}
}

func TestCollidesSeparatedBoxesReturnsNil(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 10, 0, 1)

	if c := Collides(a, b, nil); c != nil {
		t.Errorf("expected nil for separated boxes, got %+v", c)
	}
}

func TestCollidesOrdersBodiesByID(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1) // lower id
	b := box(ids, 1.5, 0, 1)

	c := Collides(b, a, nil) // pass reversed
	if c == nil {
		t.Fatal("expected a collision")
	}
	if c.BodyA.ID != a.ID || c.BodyB.ID != b.ID {
		t.Errorf("BodyA/BodyB not ordered by ascending id: got %d, %d", c.BodyA.ID, c.BodyB.ID)
	}
}

func TestCollidesNormalFacesAwayFromA(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)

	c := Collides(a, b, nil)
	toB := b.Position.Sub(a.Position)
	if c.Normal.Dot(toB) >= 0 {
		t.Errorf("Normal %v should point away from A (toward B at %v)", c.Normal, toB)
	}
}

func TestCollidesReusesPriorRecord(t *testing.T) {
	ids := common.NewCounters()
	a := box(ids, 0, 0, 1)
	b := box(ids, 1.5, 0, 1)

	prior := &Collision{}
	c := Collides(a, b, prior)
	if c != prior {
		t.Error("expected Collides to reuse and return the prior record")
	}
}
