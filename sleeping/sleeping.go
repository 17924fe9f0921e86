// Package sleeping implements the motion-EMA sleep/wake policy: bodies
// that settle below a motion threshold for long enough are put to sleep
// so the solver can skip them, and are woken by an applied force or by
// an active, still-moving neighbour.
//
// Grounded on akmonengine-feather's actor/rigidbody.go (TrySleep/Sleep/
// Awake), whose threshold-counter shape this package keeps; the motion
// metric itself is replaced with spec.md's exponential moving average
// over squared linear/angular speed.
package sleeping

import (
	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/pairs"
	"github.com/cilliemalan/matter-go/vector"
)

// MotionThreshold is the EMA value below which a body is considered
// settled enough to start accumulating toward sleep.
const MotionThreshold = 0.08

// Update runs the sleep/wake policy over every body for one step (§4.9).
func Update(bodies []*body.Body, delta float64) {
	ts := delta / body.BaseDelta

	for _, b := range bodies {
		if b.IsStatic {
			continue
		}

		newMotion := b.Speed*b.Speed + b.AngularSpeed*b.AngularSpeed
		b.Motion = 0.9*min(b.Motion, newMotion) + 0.1*max(b.Motion, newMotion)

		if b.Force != vector.Zero {
			wake(b)
			continue
		}

		if b.Motion < MotionThreshold {
			b.SleepCounter++
			if ts > 0 && b.SleepCounter >= b.SleepThreshold/ts {
				sleep(b)
			}
		} else {
			if b.SleepCounter > 0 {
				b.SleepCounter--
			}
			if b.IsSleeping {
				wake(b)
			}
		}
	}
}

func sleep(b *body.Body) {
	b.IsSleeping = true
	b.PositionImpulse = vector.Zero
	b.PositionPrev = b.Position
	b.AnglePrev = b.Angle
	b.Velocity = vector.Zero
	b.AngularVelocity = 0
	b.Speed = 0
	b.AngularSpeed = 0
}

func wake(b *body.Body) {
	b.IsSleeping = false
	b.SleepCounter = 0
}

// AfterCollisions wakes any sleeping body whose active, non-static
// collision partner is still in motion, per §4.9.
func AfterCollisions(active []*pairs.Pair) {
	for _, p := range active {
		if !p.IsActive {
			continue
		}
		a, b := p.Collision.ParentA, p.Collision.ParentB
		if a.IsStatic || b.IsStatic {
			continue
		}
		if a.IsSleeping && !b.IsSleeping && b.Motion > MotionThreshold {
			wake(a)
		}
		if b.IsSleeping && !a.IsSleeping && a.Motion > MotionThreshold {
			wake(b)
		}
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
