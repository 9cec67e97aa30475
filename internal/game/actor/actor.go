// Package actor implements simulation actors (player, enemies, obstacles,
// hitboxes and shrines) and the arena that owns them.
package actor

import (
	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// ID identifies an actor for its whole life. IDs are never reused; the
// zero ID refers to no actor.
type ID uint32

// None is the empty ID.
const None ID = 0

// Behavior is the optional decision-making component of an actor. It sets
// intent (velocity, yaw, animation) and never integrates motion itself.
type Behavior interface {
	Think(ctx frame.Context, self *Actor, arena *Arena)
}

// Actor is a simulated body. Components are composed: every actor has the
// kinematic fields, Anim and Behavior are optional.
type Actor struct {
	ID   ID
	Name string
	Kind Kind

	// Kinematics
	Position math.Vec3
	Velocity math.Vec3
	Yaw      float32 // rotation around Y; 0 faces +Z

	Health int

	// Collider is in local space; World is refreshed from it by Integrate.
	Collider collision.Shape
	World    collision.Shape

	// Boarding is the actor currently supporting this one. It is a relation
	// only: a removed platform resolves to nil through the arena.
	Boarding ID
	InAir    bool
	Gravity  float32

	Anim     anim.Player
	Behavior Behavior
}

// New creates an actor of the given kind.
func New(name string, kind Kind, health int, pos math.Vec3, yaw float32) *Actor {
	mustKnow(kind)
	a := &Actor{
		Name:     name,
		Kind:     kind,
		Health:   health,
		Position: pos,
		Yaw:      yaw,
	}
	a.RefreshCollider()
	return a
}

// IsAlive reports whether the actor still has health.
func (a *Actor) IsAlive() bool {
	return a.Health > 0
}

// Integrate advances position by velocity over dt.
func (a *Actor) Integrate(dt float32) {
	a.Position = a.Position.Add(a.Velocity.Scale(dt))
	a.RefreshCollider()
}

// AdvanceAnimation moves an attached timeline forward.
func (a *Actor) AdvanceAnimation(dt float32) {
	if tl, ok := a.Anim.(interface{ Update(float32) }); ok {
		tl.Update(dt)
	}
}

// RefreshCollider recomputes the world collider from the local one.
func (a *Actor) RefreshCollider() {
	a.World = a.Collider.Transform(a.Position, a.Yaw)
}

// Translate moves the actor and its world collider by d.
func (a *Actor) Translate(d math.Vec3) {
	a.Position = a.Position.Add(d)
	a.RefreshCollider()
}

// Stop zeroes velocity.
func (a *Actor) Stop() {
	a.Velocity = math.Vec3{}
}

// Play requests a clip on the attached animator, if any.
func (a *Actor) Play(name string, loop bool) {
	if a.Anim != nil {
		a.Anim.Play(name, loop)
	}
}

// Animation returns the active clip name, or "" without an animator.
func (a *Actor) Animation() string {
	if a.Anim == nil {
		return ""
	}
	return a.Anim.Animation()
}

// AnimationFinished reports whether a one-shot clip has ended.
func (a *Actor) AnimationFinished() bool {
	return a.Anim != nil && a.Anim.IsFinished()
}

// IsEnemy reports whether the actor has the Enemy kind.
func (a *Actor) IsEnemy() bool {
	_, ok := a.Kind.(Enemy)
	return ok
}

// IsPlayer reports whether the actor has the Player kind.
func (a *Actor) IsPlayer() bool {
	_, ok := a.Kind.(Player)
	return ok
}

// IsObstacle reports whether the actor has the Obstacle kind.
func (a *Actor) IsObstacle() bool {
	_, ok := a.Kind.(Obstacle)
	return ok
}
