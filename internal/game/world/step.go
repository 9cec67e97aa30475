package world

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/combat"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
)

// Boarding and airborne thresholds.
const (
	boardingMargin = 0.1
	floatMargin    = 0.1
)

// Optional behavior capabilities the world drives.
type (
	halter interface {
		Halt(self *actor.Actor, arena *actor.Arena, wait float32)
	}
	replayer interface {
		Replay()
	}
)

// Step runs one tick:
//
//  1. integrate motion and advance animation
//  2. clamp movers into the arena
//  3. ground, boarding and gravity
//  4. behaviors think
//  5. body contacts, then melee hits
//  6. reap finished clips and settle encounters
func (w *World) Step(ctx frame.Context) Outcome {
	w.tick++
	dt := ctx.DeltaTime

	movers := w.arena.Filter(isMover)
	for _, a := range movers {
		a.Integrate(dt)
		a.AdvanceAnimation(dt)
	}
	for _, a := range movers {
		w.clamp(a)
		w.ground(a, dt)
	}

	for _, a := range w.arena.All() {
		if a.Behavior == nil || w.arena.Get(a.ID) == nil {
			continue
		}
		a.Behavior.Think(ctx, a, w.arena)
	}

	w.contacts(ctx)
	w.hits()
	w.reap()
	w.settleEncounter()

	return w.Outcome()
}

func isMover(a *actor.Actor) bool {
	return a.IsPlayer() || a.IsEnemy()
}

// clamp keeps a inside the arena rectangle. An enemy pushed back abandons
// its task and waits.
func (w *World) clamp(a *actor.Actor) {
	p := a.Position.XZ()
	clamped := w.bounds.ClampVect(&cp.Vector{X: float64(p.X), Y: float64(p.Y)})
	if float32(clamped.X) == p.X && float32(clamped.Y) == p.Y {
		return
	}
	a.Position.X = float32(clamped.X)
	a.Position.Z = float32(clamped.Y)
	a.RefreshCollider()

	if a.IsEnemy() {
		if h, ok := a.Behavior.(halter); ok {
			h.Halt(a, w.arena, w.cfg.AI.WaitTime)
		}
	}
}

// ground snaps a onto the terrain, drops a boarding relation that no longer
// touches and applies gravity while airborne. Actors without gravity follow
// the terrain down instead of floating.
func (w *World) ground(a *actor.Actor, dt float32) {
	h := w.terrain.Height(a.Position)
	if a.Position.Y <= h {
		a.Position.Y = h
		a.Velocity.Y = 0
		a.InAir = false
		a.RefreshCollider()
		return
	}

	if a.Boarding != actor.None {
		b := w.arena.Get(a.Boarding)
		if b == nil {
			a.Boarding = actor.None
		} else if hit, _, _ := collision.TestShapeShape(a.World.Inflate(boardingMargin), b.World); !hit {
			a.Boarding = actor.None
		}
	}

	floating := a.Position.Y > h+floatMargin
	if floating && a.Boarding == actor.None {
		if a.Gravity == 0 {
			a.Position.Y = h
			a.Velocity.Y = 0
			a.RefreshCollider()
			return
		}
		a.InAir = true
	}
	if a.InAir {
		a.Velocity.Y -= a.Gravity * dt
	}
}

// contacts pushes the player out of enemies, obstacles and shrines, and
// enemies out of obstacles. Touching a shrine may start its encounter.
func (w *World) contacts(ctx frame.Context) {
	p := w.Player()
	for _, b := range w.arena.All() {
		switch b.Kind.(type) {
		case actor.Enemy:
			if p != nil {
				w.separate(ctx, p, b)
			}
		case actor.Obstacle:
			if p != nil {
				w.separate(ctx, p, b)
			}
			for _, e := range w.arena.Enemies() {
				w.separate(ctx, e, b)
			}
		case *actor.Shrine:
			if p != nil && w.separate(ctx, p, b) {
				w.touchShrine(b)
			}
		case actor.Player, actor.Hitbox:
		default:
			panic("world: unhandled actor kind " + actor.KindName(b.Kind))
		}
	}
}

func (w *World) separate(ctx frame.Context, a, b *actor.Actor) bool {
	if a.World.IsNone() || b.World.IsNone() {
		return false
	}
	hit, pa, pb := collision.TestShapeShape(a.World, b.World)
	if hit {
		combat.Separate(ctx, a, b, pa, pb)
	}
	return hit
}

// hits lands every live hitbox. A player hitbox strikes every enemy it
// overlaps; an enemy hitbox strikes the player. A hitbox that landed is
// spent.
func (w *World) hits() {
	p := w.Player()
	for _, hb := range w.arena.Filter(isHitbox) {
		if hb.Health <= 0 {
			continue
		}
		owner := w.arena.Get(hb.Kind.(actor.Hitbox).Owner)
		if owner == nil {
			continue
		}

		var victims []*actor.Actor
		switch {
		case owner.IsPlayer():
			victims = w.arena.Enemies()
		case owner.IsEnemy() && p != nil:
			victims = []*actor.Actor{p}
		}

		landed := false
		for _, v := range victims {
			if v.World.IsNone() {
				continue
			}
			if hit, _, _ := collision.TestShapeShape(hb.World, v.World); !hit {
				continue
			}
			if combat.Strike(v, hb.Health) {
				landed = true
				w.log.Debug("hit",
					zap.String("attacker", owner.Name),
					zap.String("victim", v.Name),
					zap.Int("health", v.Health))
			}
		}
		if landed {
			hb.Health = 0
		}
	}
}

// reap removes actors whose Down clip finished and returns the others to
// their resting clip once a one-shot clip ends.
func (w *World) reap() {
	for _, a := range w.arena.Filter(isMover) {
		if !a.AnimationFinished() {
			continue
		}
		if a.Animation() == anim.ClipDown {
			a.Health = 0
			w.log.Info("actor down", zap.String("name", a.Name), zap.Uint32("id", uint32(a.ID)))
			w.remove(a)
			continue
		}

		rest := anim.ClipWait
		if a.IsPlayer() {
			rest = anim.ClipIdle
		}
		a.Play(rest, true)
		if r, ok := a.Behavior.(replayer); ok {
			r.Replay()
		}
	}
}
