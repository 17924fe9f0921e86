package vector

// Bounds is an axis-aligned bounding box. The invariant Min <= Max
// (componentwise) must hold after any update; callers that build one by
// hand should go through FromPoints or Update to preserve it.
type Bounds struct {
	Min Vector
	Max Vector
}

// FromPoints returns the tight AABB of a set of points.
func FromPoints(points []Vector) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		if p.X() < min.X() {
			min = New(p.X(), min.Y())
		}
		if p.Y() < min.Y() {
			min = New(min.X(), p.Y())
		}
		if p.X() > max.X() {
			max = New(p.X(), max.Y())
		}
		if p.Y() > max.Y() {
			max = New(max.X(), p.Y())
		}
	}
	return Bounds{Min: min, Max: max}
}

// Update recomputes b from points and extends it one step along the
// signed components of velocity, so a broad phase can sweep a body's AABB
// across the step it is about to take (§4.1).
func (b Bounds) Update(points []Vector, velocity Vector) Bounds {
	nb := FromPoints(points)

	if velocity.X() > 0 {
		nb.Max = New(nb.Max.X()+velocity.X(), nb.Max.Y())
	} else {
		nb.Min = New(nb.Min.X()+velocity.X(), nb.Min.Y())
	}
	if velocity.Y() > 0 {
		nb.Max = New(nb.Max.X(), nb.Max.Y()+velocity.Y())
	} else {
		nb.Min = New(nb.Min.X(), nb.Min.Y()+velocity.Y())
	}
	return nb
}

// Contains reports whether p lies within b, inclusive.
func (b Bounds) Contains(p Vector) bool {
	return p.X() >= b.Min.X() && p.X() <= b.Max.X() &&
		p.Y() >= b.Min.Y() && p.Y() <= b.Max.Y()
}

// Overlaps reports whether two bounds intersect on both axes.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.Min.X() <= o.Max.X() && b.Max.X() >= o.Min.X() &&
		b.Min.Y() <= o.Max.Y() && b.Max.Y() >= o.Min.Y()
}

// Translate shifts both corners by v.
func (b Bounds) Translate(v Vector) Bounds {
	return Bounds{Min: b.Min.Add(v), Max: b.Max.Add(v)}
}

// ContainsBounds reports whether o lies entirely within b.
func (b Bounds) ContainsBounds(o Bounds) bool {
	return b.Min.X() <= o.Min.X() && b.Max.X() >= o.Max.X() &&
		b.Min.Y() <= o.Min.Y() && b.Max.Y() >= o.Max.Y()
}
