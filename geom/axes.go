package geom

import (
	"fmt"
	"math"

	"github.com/cilliemalan/matter-go/vector"
)

// FromVertices computes the outward normal of each directed edge and
// deduplicates by the gradient normal.x/normal.y truncated to three
// decimals, so parallel edges (opposite sides included) share one axis;
// zero-length edges contribute no axis. That
// truncated-precision key is a deliberate tuning knob carried over
// unchanged from the distilled spec (§9): it trades a few extra axes for
// the rare false merge, and a redesign that wants exact edge-direction
// dedupe would need a separate, scene-configurable tolerance.
func FromVertices(v []Vertex) []vector.Vector {
	seen := make(map[string]bool)
	var axes []vector.Vector

	n := len(v)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := v[j].Point.Sub(v[i].Point)
		normal := vector.New(edge.Y(), -edge.X()).Normalise()
		if normal == vector.Zero {
			continue
		}

		gradient := math.Inf(1)
		if normal.Y() != 0 {
			gradient = math.Trunc(normal.X()/normal.Y()*1000) / 1000
			if gradient == 0 {
				gradient = 0 // fold -0 into 0 so opposite normals share a key
			}
		}
		key := fmt.Sprintf("%.3f", gradient)
		if seen[key] {
			continue
		}
		seen[key] = true
		axes = append(axes, normal)
	}
	return axes
}

// RotateAxes returns every axis rotated by angle about the origin.
func RotateAxes(axes []vector.Vector, angle float64) []vector.Vector {
	out := make([]vector.Vector, len(axes))
	for i, a := range axes {
		out[i] = a.Rotate(angle)
	}
	return out
}
