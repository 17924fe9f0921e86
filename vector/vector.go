// Package vector implements the 2D math primitives the rest of the engine
// is built on: a pure-value Vector and the Bounds (AABB) derived from it.
//
// Ported from akmonengine/feather's actor.Transform, which wraps a single
// github.com/go-gl/mathgl vector and layers body-specific operations on
// top. Vector does the same for 2D: mgl64.Vec2 is the storage, and the
// operations spec-required of a 2D physics core (perp, the 2D cross
// product, rotate-about-a-point, polygon angle) are added here since
// mathgl has no 2D-specific equivalents.
package vector

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vector is an immutable 2D float64 pair. Every operation returns a new
// value; nothing is mutated in place.
type Vector struct {
	raw mgl64.Vec2
}

// Zero is the additive identity.
var Zero = Vector{}

// New builds a Vector from components.
func New(x, y float64) Vector {
	return Vector{mgl64.Vec2{x, y}}
}

func (v Vector) X() float64 { return v.raw.X() }
func (v Vector) Y() float64 { return v.raw.Y() }

func (v Vector) Add(o Vector) Vector {
	return Vector{v.raw.Add(o.raw)}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.raw.Sub(o.raw)}
}

func (v Vector) Mult(s float64) Vector {
	return Vector{v.raw.Mul(s)}
}

func (v Vector) Div(s float64) Vector {
	return Vector{v.raw.Mul(1 / s)}
}

func (v Vector) Neg() Vector {
	return Vector{v.raw.Mul(-1)}
}

func (v Vector) Dot(o Vector) float64 {
	return v.raw.Dot(o.raw)
}

// Cross is the 2D (scalar) cross product: v.x*o.y - v.y*o.x.
func (v Vector) Cross(o Vector) float64 {
	return v.X()*o.Y() - v.Y()*o.X()
}

// Cross3 computes (b-a) x (c-a), the scalar orientation test used for
// hull construction and clockwise checks.
func Cross3(a, b, c Vector) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

func (v Vector) MagnitudeSquared() float64 {
	return v.raw.Dot(v.raw)
}

func (v Vector) Magnitude() float64 {
	return v.raw.Len()
}

// Normalise returns the zero vector when magnitude is zero instead of
// dividing by it (§7 numerical guard).
func (v Vector) Normalise() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Zero
	}
	return v.Mult(1 / m)
}

// Perp returns a vector perpendicular to v, rotated +90deg (in Rotate's
// angle convention) by default or -90deg when negate is true.
func (v Vector) Perp(negate bool) Vector {
	if negate {
		return New(v.Y(), -v.X())
	}
	return New(-v.Y(), v.X())
}

// Rotate rotates v about the origin by angle radians.
func (v Vector) Rotate(angle float64) Vector {
	s, c := math.Sincos(angle)
	return New(v.X()*c-v.Y()*s, v.X()*s+v.Y()*c)
}

// RotateAbout rotates v about an arbitrary point by angle radians.
func (v Vector) RotateAbout(angle float64, point Vector) Vector {
	s, c := math.Sincos(angle)
	dx, dy := v.X()-point.X(), v.Y()-point.Y()
	return New(
		point.X()+(dx*c-dy*s),
		point.Y()+(dx*s+dy*c),
	)
}

// Angle returns the angle of the vector from v to o.
func Angle(v, o Vector) float64 {
	return math.Atan2(o.Y()-v.Y(), o.X()-v.X())
}
