// Package query implements ad hoc spatial queries against a body set:
// collision testing, ray casting, region filtering, and point
// containment, independent of any registered world or detector.
//
// Grounded on akmonengine-feather's spatialgrid.go (AABB-gate-then-test
// pattern) and collision.go's dispatcher, applied here to a caller-
// supplied body slice rather than the registered scene (§4.11).
package query

import (
	"math"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/collision"
	"github.com/cilliemalan/matter-go/geom"
	"github.com/cilliemalan/matter-go/vector"
)

// Collides bounds-gates b against every candidate and runs SAT on the
// survivors, returning every resulting Collision.
func Collides(b *body.Body, candidates []*body.Body) []*collision.Collision {
	var out []*collision.Collision
	for _, c := range candidates {
		if c == b {
			continue
		}
		if !b.Bounds.Overlaps(c.Bounds) {
			continue
		}
		if col := collision.Collides(b, c, nil); col != nil {
			out = append(out, col)
		}
	}
	return out
}

// RayHit pairs a Collision with the body it was cast against.
type RayHit struct {
	Body      *body.Body
	Collision *collision.Collision
}

// Ray casts a thin rectangle between a and b (default width 1e-100,
// angled along the segment) against bodies and returns every body it
// crosses, per §4.11.
func Ray(bodies []*body.Body, a, b vector.Vector, width float64) []RayHit {
	if width == 0 {
		width = 1e-100
	}

	length := b.Sub(a).Magnitude()
	if length == 0 {
		return nil
	}
	angle := math.Atan2(b.Y()-a.Y(), b.X()-a.X())
	mid := a.Add(b).Mult(0.5)

	half := width / 2
	local := []vector.Vector{
		vector.New(-length/2, -half), vector.New(length/2, -half),
		vector.New(length/2, half), vector.New(-length/2, half),
	}
	rotated := make([]vector.Vector, len(local))
	for i, p := range local {
		rotated[i] = p.Rotate(angle).Add(mid)
	}

	ray := body.New(nil, rotated, body.Options{IsSensor: true})

	var hits []RayHit
	for _, target := range bodies {
		if !ray.Bounds.Overlaps(target.Bounds) {
			continue
		}
		if c := collision.Collides(ray, target, nil); c != nil {
			hits = append(hits, RayHit{Body: target, Collision: c})
		}
	}
	return hits
}

// Region returns the bodies whose bounds overlap bounds (or, if outside
// is true, those that do NOT overlap it).
func Region(bodies []*body.Body, bounds vector.Bounds, outside bool) []*body.Body {
	var out []*body.Body
	for _, b := range bodies {
		overlaps := b.Bounds.Overlaps(bounds)
		if overlaps != outside {
			out = append(out, b)
		}
	}
	return out
}

// Point returns the bodies whose bounds contain p and whose polygon
// (checked part by part, for compounds) also contains p.
func Point(bodies []*body.Body, p vector.Vector) []*body.Body {
	var out []*body.Body
	for _, b := range bodies {
		if !b.Bounds.Contains(p) {
			continue
		}
		for _, part := range b.Parts {
			if !part.Bounds.Contains(p) {
				continue
			}
			if geom.Contains(part.Vertices, p) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}
