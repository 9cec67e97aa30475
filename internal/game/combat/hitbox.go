package combat

import (
	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Melee hitbox geometry, relative to the attacker's position and facing.
const (
	HitboxRadius = 1.0
	HitboxReach  = 1.5
	HitboxLift   = 1.0
)

// InWindow reports whether t lies strictly inside (start, end).
func InWindow(t, start, end float32) bool {
	return t > start && t < end
}

// Hitbox tracks one attacker's transient melee volume. The volume lives in
// the arena as a Hitbox actor whose Health is the damage it deals; after
// landing a hit it stays in place with zero damage until released.
type Hitbox struct {
	id actor.ID
}

// ID returns the live hitbox actor, or actor.None.
func (h *Hitbox) ID() actor.ID { return h.id }

// Active reports whether a hitbox is in the arena.
func (h *Hitbox) Active() bool { return h.id != actor.None }

// Update keeps the hitbox alive while t is inside the window and releases
// it otherwise.
func (h *Hitbox) Update(arena *actor.Arena, owner *actor.Actor, damage int, t, start, end float32) {
	if InWindow(t, start, end) {
		h.Place(arena, owner, damage)
	} else {
		h.Release(arena)
	}
}

// Place spawns the hitbox in front of owner, or moves the live one along
// with it. Damage is only assigned on spawn.
func (h *Hitbox) Place(arena *actor.Arena, owner *actor.Actor, damage int) {
	pos := Reach(owner.Position, owner.Yaw)
	if hb := arena.Get(h.id); hb != nil {
		hb.Position = pos
		hb.Yaw = owner.Yaw
		hb.RefreshCollider()
		return
	}
	hb := actor.New(owner.Name+".Attack", actor.Hitbox{Owner: owner.ID}, damage, pos, owner.Yaw)
	hb.Collider = collision.NewSphere(math.Vec3{}, HitboxRadius)
	hb.RefreshCollider()
	h.id = arena.Add(hb)
}

// Release removes the hitbox from the arena.
func (h *Hitbox) Release(arena *actor.Arena) {
	if h.id != actor.None {
		arena.Remove(h.id)
		h.id = actor.None
	}
}

// Reach returns the hitbox centre for an attacker at pos facing yaw.
func Reach(pos math.Vec3, yaw float32) math.Vec3 {
	return pos.
		Add(math.Forward(yaw).Scale(HitboxReach)).
		Add(math.Vec3{Y: HitboxLift})
}

// Strike subtracts damage from victim's health. A fatal strike leaves
// health at 1, clears the collider and plays Down; anything else plays Hit.
// It reports whether the strike landed.
func Strike(victim *actor.Actor, damage int) bool {
	if damage <= 0 || victim.Health <= 0 || IsDowned(victim) {
		return false
	}
	victim.Health -= damage
	if victim.Health <= 0 {
		victim.Health = 1
		victim.Collider = collision.Shape{}
		victim.RefreshCollider()
		victim.Stop()
		victim.Play(anim.ClipDown, false)
	} else {
		victim.Play(anim.ClipHit, false)
	}
	return true
}

// ApplyHit strikes victim with hitbox's damage and spends the hitbox.
func ApplyHit(victim, hitbox *actor.Actor) bool {
	if !Strike(victim, hitbox.Health) {
		return false
	}
	hitbox.Health = 0
	return true
}

// IsDowned reports whether victim is playing its death clip.
func IsDowned(victim *actor.Actor) bool {
	return victim.Animation() == anim.ClipDown
}
