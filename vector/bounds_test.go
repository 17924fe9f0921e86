package vector

import "testing"

func TestBoundsFromPoints(t *testing.T) {
	b := FromPoints([]Vector{New(0, 0), New(2, -1), New(1, 3)})
	if b.Min != New(0, -1) || b.Max != New(2, 3) {
		t.Errorf("got min=%v max=%v", b.Min, b.Max)
	}
}

func TestBoundsUpdateExtendsAlongVelocity(t *testing.T) {
	points := []Vector{New(0, 0), New(1, 1)}
	b := Bounds{}.Update(points, New(5, -5))
	if b.Max.X() != 6 {
		t.Errorf("Max.X = %v, want 6", b.Max.X())
	}
	if b.Min.Y() != -5 {
		t.Errorf("Min.Y = %v, want -5", b.Min.Y())
	}
}

func TestBoundsOverlaps(t *testing.T) {
	a := Bounds{Min: New(0, 0), Max: New(2, 2)}
	b := Bounds{Min: New(1, 1), Max: New(3, 3)}
	c := Bounds{Min: New(5, 5), Max: New(6, 6)}

	if !a.Overlaps(b) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("expected a and c to not overlap")
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: New(0, 0), Max: New(2, 2)}
	if !b.Contains(New(1, 1)) {
		t.Error("expected (1,1) to be contained")
	}
	if b.Contains(New(3, 3)) {
		t.Error("expected (3,3) to not be contained")
	}
}
