// Command matterdemo drives a short headless simulation — a box falling
// onto a static floor — and prints the settled position, demonstrating
// the engine facade without any renderer or input dependency.
//
// Replaces akmonengine-feather's example/simpleScene/main.go, which
// wired a GLFW window and a render loop around the 3D engine; this
// demo exercises the same facade shape (construct, add bodies, step in
// a loop, read back state) headlessly, since rendering is explicitly
// out of scope (§1 Non-goals).
package main

import (
	"fmt"

	"github.com/cilliemalan/matter-go/body"
	"github.com/cilliemalan/matter-go/engine"
	"github.com/cilliemalan/matter-go/vector"
)

func main() {
	e := engine.New(engine.Options{EnableSleeping: true})

	floor := body.New(e.Counters, []vector.Vector{
		vector.New(-200, 580), vector.New(200, 580),
		vector.New(200, 620), vector.New(-200, 620),
	}, body.Options{Density: 1, IsStatic: true})
	e.World.AddBody(floor)

	box := body.New(e.Counters, []vector.Vector{
		vector.New(-20, -20), vector.New(20, -20),
		vector.New(20, 20), vector.New(-20, 20),
	}, body.Options{Density: 0.001, Position: vector.New(0, 0)})
	e.World.AddBody(box)

	const steps = 180
	for i := 0; i < steps; i++ {
		e.Update(16.666)
	}

	fmt.Printf("after %d steps: position=(%.2f, %.2f) sleeping=%v\n",
		steps, box.Position.X(), box.Position.Y(), box.IsSleeping)
}
