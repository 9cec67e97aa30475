// Package frame holds the per-tick context threaded through the simulation.
package frame

import "github.com/Faultbox/oni-patrol/pkg/math"

// Input is the player's control snapshot for one tick.
type Input struct {
	Move   math.Vec2 // Desired run direction on the XZ plane; zero means stand still
	Jump   bool      // Jump pressed this tick
	Attack bool      // Attack pressed this tick
}

// Context is passed to every update in a tick.
type Context struct {
	DeltaTime float32
	Input     Input
	Number    uint64 // Tick counter, starting at 1
}

// New returns the context for tick n.
func New(n uint64, dt float32, in Input) Context {
	return Context{DeltaTime: dt, Input: in, Number: n}
}
