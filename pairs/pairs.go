// Package pairs maintains the per-body-pair contact manifold that
// survives across engine steps: the Contact slots the resolver
// warm-starts from, and the enter/active/end lifecycle that drives
// collision events.
//
// Grounded on akmonengine-feather's trigger.go, whose pairKey/
// previousActivePairs/currentActivePairs enter-stay-exit bookkeeping
// gives this package its normalized-key, swap-free map shape, combined
// with constraint/constraint.go's ComputeRestitution/
// ComputeStaticFriction/ComputeDynamicFriction material-blend helpers —
// generalized from a same-frame diff into the spec's persistent Pair
// record that accumulates cached impulses across steps.
package pairs

import (
	"fmt"
	"math"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/collision"
	"github.com/cilliemalan/matter-go/vector"
)

// Contact is one support point of a Pair's manifold, carrying the cached
// impulses the velocity pass warm-starts from.
type Contact struct {
	Vertex         vector.Vector
	NormalImpulse  float64
	TangentImpulse float64
}

// Pair is the persistent record for one candidate body pair: the latest
// Collision, up to two Contact slots, and the blended material
// coefficients the resolver reads.
type Pair struct {
	ID          string
	BodyA       *body.Body
	BodyB       *body.Body
	Collision   *collision.Collision
	Contacts    [2]Contact
	ContactCount int

	Friction       float64
	FrictionStatic float64
	Restitution    float64
	Slop           float64
	InverseMass    float64
	Separation     float64

	IsActive    bool
	IsSensor    bool
	TimeCreated uint64
	TimeUpdated uint64
}

// Key returns the pair registry key for two ids: min(id):max(id), base36
// per spec.md's radix-36 pair identity.
func Key(idA, idB uint64) string {
	lo, hi := idA, idB
	if hi < lo {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%s:%s", base36(lo), base36(hi))
}

func base36(n uint64) string {
	if n == 0 {
		return "0"
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%36]}, buf...)
		n /= 36
	}
	return string(buf)
}

// Registry holds every currently tracked Pair plus insertion-ordered
// lists of the ones that started or ended collision this timestamp.
type Registry struct {
	Table          map[string]*Pair
	List           []*Pair
	CollisionStart []*Pair
	CollisionEnd   []*Pair
	CollisionActive []*Pair
}

// NewRegistry returns an empty pair registry.
func NewRegistry() *Registry {
	return &Registry{Table: make(map[string]*Pair)}
}

// Update folds this step's narrow-phase collisions into the registry per
// §4.6: refresh or create a Pair per incoming collision, then deactivate
// and (unless both bodies may still be sleeping) evict anything not
// touched this timestamp.
func (r *Registry) Update(collisions []*collision.Collision, timestamp uint64) {
	r.CollisionStart = r.CollisionStart[:0]
	r.CollisionActive = r.CollisionActive[:0]
	r.CollisionEnd = r.CollisionEnd[:0]

	touched := make(map[string]bool, len(collisions))

	for _, c := range collisions {
		key := Key(c.BodyA.ID, c.BodyB.ID)
		touched[key] = true

		p, exists := r.Table[key]
		if exists {
			refreshContacts(p, c)
			p.Collision = c
			if !p.IsActive {
				r.CollisionStart = append(r.CollisionStart, p)
			} else {
				r.CollisionActive = append(r.CollisionActive, p)
			}
			p.IsActive = true
		} else {
			p = &Pair{
				ID:          key,
				BodyA:       c.BodyA,
				BodyB:       c.BodyB,
				Collision:   c,
				IsActive:    true,
				TimeCreated: timestamp,
			}
			refreshContacts(p, c)
			r.Table[key] = p
			r.List = append(r.List, p)
			r.CollisionStart = append(r.CollisionStart, p)
		}
		p.TimeUpdated = timestamp
		p.IsSensor = c.BodyA.IsSensor || c.BodyB.IsSensor
		blendMaterial(p)
	}

	kept := r.List[:0]
	for _, p := range r.List {
		if touched[p.ID] {
			kept = append(kept, p)
			continue
		}
		p.IsActive = false
		if mayStillSleep(p) {
			kept = append(kept, p)
			continue
		}
		r.CollisionEnd = append(r.CollisionEnd, p)
		delete(r.Table, p.ID)
	}
	r.List = kept
}

func mayStillSleep(p *Pair) bool {
	return (p.BodyA.IsSleeping || p.BodyA.IsStatic) && (p.BodyB.IsSleeping || p.BodyB.IsStatic)
}

// refreshContacts matches supports by vertex identity so a slot keeps
// tracking the same physical contact point across steps (needed for
// warm-starting to converge instead of thrashing); when the remaining
// vertex lines up with the other slot it swaps so identity is preserved.
func refreshContacts(p *Pair, c *collision.Collision) {
	p.ContactCount = c.SupportCount
	newVerts := c.Supports

	if p.ContactCount == 0 {
		return
	}

	matched := [2]bool{}
	assigned := [2]Contact{p.Contacts[0], p.Contacts[1]}

	for i := 0; i < p.ContactCount; i++ {
		v := newVerts[i]
		bestSlot := -1
		bestDist := math.Inf(1)
		for slot := 0; slot < 2; slot++ {
			if matched[slot] {
				continue
			}
			d := v.Sub(p.Contacts[slot].Vertex).MagnitudeSquared()
			if d < bestDist {
				bestDist = d
				bestSlot = slot
			}
		}
		if bestSlot >= 0 && bestDist < 1e-6 {
			matched[bestSlot] = true
			assigned[i] = Contact{Vertex: v, NormalImpulse: p.Contacts[bestSlot].NormalImpulse, TangentImpulse: p.Contacts[bestSlot].TangentImpulse}
		} else {
			assigned[i] = Contact{Vertex: v}
		}
	}

	p.Contacts = assigned
}

func blendMaterial(p *Pair) {
	a, b := p.BodyA, p.BodyB
	p.Friction = math.Min(a.Friction, b.Friction)
	p.FrictionStatic = math.Max(a.FrictionStatic, b.FrictionStatic)
	p.Restitution = math.Max(a.Restitution, b.Restitution)
	p.Slop = math.Max(a.Slop, b.Slop)
	p.InverseMass = a.InverseMass + b.InverseMass
}
