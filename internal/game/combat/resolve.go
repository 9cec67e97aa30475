// Package combat resolves body contacts and melee hits between actors.
package combat

import (
	stdmath "math"

	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// separationSlop is added to every push-out so resting contacts settle
// just outside the other body.
const separationSlop = 0.01

// landingCos is cos(60 deg): push-out normals at least this close to up
// count as standing on the other body.
var landingCos = float32(stdmath.Cos(stdmath.Pi / 3))

// Separate pushes a out of b after a contact. pa is a's core point and pb
// the closest point on b, as reported by the narrow phase. When the two
// coincide a's last step is rolled back instead. Either way b becomes a's
// boarding actor.
func Separate(ctx frame.Context, a, b *actor.Actor, pa, pb math.Vec3) {
	v := pa.Sub(pb)
	if v.LengthSq() > math.Epsilon {
		dist := v.Length()
		n := v.Scale(1 / dist)
		radiusSum := a.World.Radius() + b.World.Radius()
		a.Translate(n.Scale(radiusSum - dist + separationSlop))

		if a.Velocity.Y < 0 && n.Y >= landingCos {
			a.Velocity.Y = 0
			a.InAir = false
		}
	} else {
		a.Translate(a.Velocity.Scale(-ctx.DeltaTime))
	}
	a.Boarding = b.ID
}
