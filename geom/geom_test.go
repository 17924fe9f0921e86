package geom

import (
	"math"
	"testing"

	"github.com/cilliemalan/matter-go/vector"
)

func square() []Vertex {
	return FromPath([]vector.Vector{
		vector.New(0, 0),
		vector.New(1, 0),
		vector.New(1, 1),
		vector.New(0, 1),
	})
}

func TestAreaUnitSquare(t *testing.T) {
	if got := Area(square(), false); math.Abs(got-1) > 1e-9 {
		t.Errorf("Area = %v, want 1", got)
	}
}

func TestCentreUnitSquare(t *testing.T) {
	c := Centre(square())
	if math.Abs(c.X()-0.5) > 1e-9 || math.Abs(c.Y()-0.5) > 1e-9 {
		t.Errorf("Centre = %v, want (0.5,0.5)", c)
	}
}

func TestMeanUnitSquare(t *testing.T) {
	m := Mean(square())
	if math.Abs(m.X()-0.5) > 1e-9 || math.Abs(m.Y()-0.5) > 1e-9 {
		t.Errorf("Mean = %v, want (0.5,0.5)", m)
	}
}

func TestContains(t *testing.T) {
	sq := square()
	if !Contains(sq, vector.New(0.5, 0.5)) {
		t.Error("expected centre point to be contained")
	}
	if Contains(sq, vector.New(5, 5)) {
		t.Error("expected far point to not be contained")
	}
}

func TestChamferZeroIsIdentity(t *testing.T) {
	sq := square()
	got := Chamfer(sq, 0, -1, 2, 14)
	if len(got) != len(sq) {
		t.Fatalf("len = %d, want %d", len(got), len(sq))
	}
	for i := range sq {
		if got[i].Point != sq[i].Point {
			t.Errorf("vertex %d changed under zero-radius chamfer", i)
		}
	}
}

func TestHullOfSquareIsFourPoints(t *testing.T) {
	pts := []vector.Vector{
		vector.New(0, 0), vector.New(1, 0), vector.New(1, 1), vector.New(0, 1),
		vector.New(0.5, 0.5), // interior point, must be dropped
	}
	hull := Hull(FromPath(pts))
	if len(hull) != 4 {
		t.Errorf("len(hull) = %d, want 4", len(hull))
	}
}

func TestHullSortedAscendingXY(t *testing.T) {
	pts := []vector.Vector{vector.New(2, 0), vector.New(0, 0), vector.New(1, 2)}
	hull := Hull(FromPath(pts))
	if hull[0].Point.X() != 0 {
		t.Errorf("first hull point x = %v, want 0 (ascending sort)", hull[0].Point.X())
	}
}

func TestFromVerticesDedupesParallelEdges(t *testing.T) {
	// A rectangle has 2 unique edge directions, 4 edges.
	rect := FromPath([]vector.Vector{
		vector.New(0, 0), vector.New(2, 0), vector.New(2, 1), vector.New(0, 1),
	})
	axes := FromVertices(rect)
	if len(axes) != 2 {
		t.Errorf("len(axes) = %d, want 2", len(axes))
	}
}

func TestInertiaPositive(t *testing.T) {
	i := Inertia(square(), 1)
	if i <= 0 {
		t.Errorf("Inertia = %v, want > 0", i)
	}
}

func TestClockwiseSortReindexes(t *testing.T) {
	sq := ClockwiseSort(square())
	for i, v := range sq {
		if v.Index != i {
			t.Errorf("vertex %d has Index %d", i, v.Index)
		}
	}
}

// ClockwiseSort's output must stay consistent with Contains' edge-cross
// convention and with FromVertices' outward-normal formula: an interior
// point must test as contained, and every computed axis must point away
// from the centre of the shape it came from.
func TestClockwiseSortOutputMatchesContainsAndFromVertices(t *testing.T) {
	pts := []vector.Vector{
		vector.New(-1, -1), vector.New(1, -1), vector.New(1, 1), vector.New(-1, 1),
	}
	sorted := ClockwiseSort(FromPath(pts))

	if !Contains(sorted, vector.New(0.2, 0.2)) {
		t.Error("expected interior point (0.2, 0.2) to be contained after ClockwiseSort")
	}
	if Contains(sorted, vector.New(5, 5)) {
		t.Error("expected far point to not be contained after ClockwiseSort")
	}

	centre := Mean(sorted)
	axes := FromVertices(sorted)
	n := len(sorted)
	for _, axis := range axes {
		outwardForSomeEdge := false
		for i, edgeStart := range sorted {
			edgeEnd := sorted[(i+1)%n].Point
			mid := edgeStart.Point.Add(edgeEnd).Mult(0.5)
			outward := mid.Sub(centre)
			if axis.Dot(edgeEnd.Sub(edgeStart.Point)) == 0 && axis.Dot(outward) > 0 {
				outwardForSomeEdge = true
			}
		}
		if !outwardForSomeEdge {
			t.Errorf("axis %v is not the outward normal of any edge", axis)
		}
	}
}
