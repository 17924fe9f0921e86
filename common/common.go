// Package common owns the process-scoped mutable state the rest of the
// engine must not duplicate: monotonic ids, the category/group bitfield
// allocators, and a seeded PRNG for reproducible randomness.
//
// Grounded on akmonengine/feather's process-global id pattern (a caller
// stamps RigidBody.Id, see its event_test.go), generalized per spec.md §9
// into an explicit counter struct an engine owns rather than a global.
package common

import "github.com/google/uuid"

// Counters issues body/constraint ids and category/group bitfield values.
// An EngineContext (spec.md §9) embeds one Counters per isolated engine;
// never share a single Counters across concurrently-stepping engines.
type Counters struct {
	nextID       uint64
	nextCategory uint32
	nextGroup    int
}

// NewCounters returns a fresh counter set: ids start at 1, categories at
// bit 0 and groups at 1.
func NewCounters() *Counters {
	return &Counters{nextCategory: 1, nextGroup: 1}
}

// NextID returns a fresh monotonically increasing id, starting at 1.
func (c *Counters) NextID() uint64 {
	c.nextID++
	return c.nextID
}

// NextLabel returns a human-readable fallback label for a body that was
// not given one explicitly, built from a fresh random uuid rather than
// the numeric id so two bodies never collide on label even across runs.
func NextLabel(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// NextCategory returns the next single-bit value in a 32-bit collision
// category bitfield. After bit 31 has been issued the sequence wraps back
// to bit 0 (category bitfields are 32 bits wide by convention, matching
// the filter's category/mask fields).
func (c *Counters) NextCategory() uint32 {
	if c.nextCategory == 0 {
		c.nextCategory = 1
	}
	v := c.nextCategory
	c.nextCategory <<= 1
	return v
}

// NextGroup returns a fresh signed collision group id. Positive groups
// collide only with themselves; negative groups never collide (§4.2).
func (c *Counters) NextGroup(nonColliding bool) int {
	g := c.nextGroup
	c.nextGroup++
	if nonColliding {
		return -g
	}
	return g
}

// PRNG is the seeded linear-congruential generator spec.md requires in
// place of math/rand, so that any Math.random()-shaped call in the
// original is reproducible (§5, §9): state = state*9301+49297 mod 233280.
type PRNG struct {
	state uint64
}

// NewPRNG seeds a PRNG. A zero seed is valid; the LCG still cycles.
func NewPRNG(seed uint64) *PRNG {
	return &PRNG{state: seed}
}

// Next advances the generator and returns a float64 in [0, 1).
func (p *PRNG) Next() float64 {
	p.state = (p.state*9301 + 49297) % 233280
	return float64(p.state) / 233280
}

// Range returns a float64 in [min, max).
func (p *PRNG) Range(min, max float64) float64 {
	return min + p.Next()*(max-min)
}
