// Package geom holds the polygon-level geometry a Body is built from:
// the vertex ring and the deduplicated set of outward edge normals used
// as SAT projection axes.
//
// Grounded on akmonengine-feather's actor/shape.go, which enumerates a
// shape's geometry as a fixed local-space point array the body carries
// around (Box's 8 corners, Sphere's support function). This package
// generalizes that shape-owns-its-geometry structuring to an arbitrary
// convex polygon, since spec.md's Body is a general vertex ring rather
// than a closed union of box/sphere/plane.
package geom

import (
	"math"
	"sort"

	"github.com/cilliemalan/matter-go/vector"
)

// Vertex is a point plus its index into the owning body's vertex ring and
// whether it sits on an edge shared with a neighbouring compound part.
type Vertex struct {
	Point      vector.Vector
	Index      int
	IsInternal bool
}

// FromPath builds a vertex ring from bare points, in order, index 0..n-1.
func FromPath(points []vector.Vector) []Vertex {
	verts := make([]Vertex, len(points))
	for i, p := range points {
		verts[i] = Vertex{Point: p, Index: i}
	}
	return verts
}

// Points extracts the bare coordinates back out of a vertex ring.
func Points(v []Vertex) []vector.Vector {
	out := make([]vector.Vector, len(v))
	for i, vert := range v {
		out[i] = vert.Point
	}
	return out
}

// Translate returns v shifted by delta.
func Translate(v []Vertex, delta vector.Vector) []Vertex {
	out := make([]Vertex, len(v))
	for i, vert := range v {
		out[i] = Vertex{Point: vert.Point.Add(delta), Index: vert.Index, IsInternal: vert.IsInternal}
	}
	return out
}

// Rotate returns v rotated by angle about point.
func Rotate(v []Vertex, angle float64, point vector.Vector) []Vertex {
	out := make([]Vertex, len(v))
	for i, vert := range v {
		out[i] = Vertex{Point: vert.Point.RotateAbout(angle, point), Index: vert.Index, IsInternal: vert.IsInternal}
	}
	return out
}

// Scale returns v scaled about point by (sx, sy).
func Scale(v []Vertex, sx, sy float64, point vector.Vector) []Vertex {
	out := make([]Vertex, len(v))
	for i, vert := range v {
		d := vert.Point.Sub(point)
		out[i] = Vertex{
			Point:      point.Add(vector.New(d.X()*sx, d.Y()*sy)),
			Index:      vert.Index,
			IsInternal: vert.IsInternal,
		}
	}
	return out
}

// Area computes the trapezoid-formula polygon area, signed by winding
// order unless signed is false (the default, which returns abs(area)).
func Area(v []Vertex, signed bool) float64 {
	var sum float64
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += (v[j].Point.X() - v[i].Point.X()) * (v[j].Point.Y() + v[i].Point.Y())
	}
	sum *= 0.5
	if signed {
		return sum
	}
	return math.Abs(sum)
}

// Centre computes the signed-area-weighted polygon centroid.
func Centre(v []Vertex) vector.Vector {
	area := Area(v, true)
	if area == 0 {
		return Mean(v)
	}

	var cx, cy float64
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := v[i].Point.Cross(v[j].Point)
		cx += (v[i].Point.X() + v[j].Point.X()) * cross
		cy += (v[i].Point.Y() + v[j].Point.Y()) * cross
	}
	// Area's signed value is the negative of ½Σ(xi·yj − xj·yi), the sum
	// the cross terms above are weighted by, hence the sign flip.
	k := -1 / (6 * area)
	return vector.New(cx*k, cy*k)
}

// Mean is the plain arithmetic mean of the vertices.
func Mean(v []Vertex) vector.Vector {
	var sx, sy float64
	for _, vert := range v {
		sx += vert.Point.X()
		sy += vert.Point.Y()
	}
	n := float64(len(v))
	return vector.New(sx/n, sy/n)
}

// Inertia computes the second moment of area scaled by mass/6 using the
// triangle-fan formula about the polygon centroid.
func Inertia(v []Vertex, mass float64) float64 {
	centre := Centre(v)
	var numerator, denominator float64
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a, b := v[i].Point.Sub(centre), v[j].Point.Sub(centre)
		cross := math.Abs(b.Cross(a))
		numerator += cross * (b.Dot(b) + b.Dot(a) + a.Dot(a))
		denominator += cross
	}
	if denominator == 0 {
		return 0
	}
	return (mass / 6) * (numerator / denominator)
}

// Contains uses the half-plane test in clockwise order: the point must
// lie on the left of every directed edge.
func Contains(v []Vertex, p vector.Vector) bool {
	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := v[j].Point.Sub(v[i].Point)
		toPoint := p.Sub(v[i].Point)
		if edge.Cross(toPoint) < 0 {
			return false
		}
	}
	return true
}

// ClockwiseSort orders vertices by angle around their arithmetic mean.
func ClockwiseSort(v []Vertex) []Vertex {
	mean := Mean(v)
	out := make([]Vertex, len(v))
	copy(out, v)
	sort.Slice(out, func(i, j int) bool {
		return math.Atan2(out[i].Point.Y()-mean.Y(), out[i].Point.X()-mean.X()) <
			math.Atan2(out[j].Point.Y()-mean.Y(), out[j].Point.X()-mean.X())
	})
	for i := range out {
		out[i].Index = i
	}
	return out
}

// Hull computes the convex hull via the monotone-chain algorithm. Input
// need not be sorted or convex; the points are sorted ascending on (x, y)
// and the output is the hull ring starting at the smallest of them, in the
// same rotational order ClockwiseSort produces.
func Hull(v []Vertex) []Vertex {
	pts := make([]vector.Vector, len(v))
	for i, vert := range v {
		pts[i] = vert.Point
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X() != pts[j].X() {
			return pts[i].X() < pts[j].X()
		}
		return pts[i].Y() < pts[j].Y()
	})

	n := len(pts)
	if n < 3 {
		return FromPath(pts)
	}

	build := func(order []vector.Vector) []vector.Vector {
		var hull []vector.Vector
		for _, p := range order {
			for len(hull) >= 2 && vector.Cross3(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		return hull
	}

	lower := build(pts)

	upper := make([]vector.Vector, n)
	for i := range pts {
		upper[i] = pts[n-1-i]
	}
	upper = build(upper)

	hull := append(lower[:len(lower)-1], upper[:len(upper)-1]...)
	return FromPath(hull)
}

// Chamfer replaces each vertex with an arc of the given radius, at a
// precision clamped to [qualityMin, qualityMax] and rounded up to even. A
// zero radius is passed through unchanged (§4.1, §8 idempotence).
func Chamfer(v []Vertex, radius float64, quality float64, qualityMin, qualityMax int) []Vertex {
	if radius == 0 {
		return v
	}

	precision := quality
	if quality == -1 {
		precision = math.Pow(radius, 0.32) * 1.75
	}
	clamped := math.Max(float64(qualityMin), math.Min(float64(qualityMax), precision))
	steps := int(math.Ceil(clamped))
	if steps%2 != 0 {
		steps++
	}

	n := len(v)
	var out []vector.Vector
	for i := 0; i < n; i++ {
		prev := v[(i-1+n)%n].Point
		cur := v[i].Point
		next := v[(i+1)%n].Point

		toPrev := prev.Sub(cur).Normalise()
		toNext := next.Sub(cur).Normalise()

		start := cur.Add(toPrev.Mult(radius))
		end := cur.Add(toNext.Mult(radius))

		startAngle := math.Atan2(toPrev.Y(), toPrev.X())
		endAngle := math.Atan2(toNext.Y(), toNext.X())

		delta := endAngle - startAngle
		for delta <= -math.Pi {
			delta += 2 * math.Pi
		}
		for delta > math.Pi {
			delta -= 2 * math.Pi
		}

		out = append(out, start)
		for s := 1; s < steps; s++ {
			t := float64(s) / float64(steps)
			angle := startAngle + delta*t
			out = append(out, cur.Add(vector.New(math.Cos(angle), math.Sin(angle)).Mult(radius)))
		}
		out = append(out, end)
	}

	return FromPath(out)
}
