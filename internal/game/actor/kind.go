package actor

import "fmt"

// Kind is the per-kind payload of an actor. The set of kinds is closed:
// Player, Enemy, Obstacle, Hitbox and Shrine. Switch over it with a type
// switch and a default that panics on an unknown kind.
type Kind interface {
	kindName() string
}

// Player marks the controllable character.
type Player struct{}

// Enemy marks an AI-driven actor.
type Enemy struct {
	// Encounter is the shrine index whose encounter spawned the enemy, or -1.
	Encounter int
}

// Obstacle is a static blocker. Its collider footprint is excluded from
// path searches.
type Obstacle struct{}

// Hitbox is a transient melee volume. The owning actor's Health field
// carries the damage it deals.
type Hitbox struct {
	Owner ID
}

// Shrine triggers an encounter when the player touches it.
type Shrine struct {
	Index    int
	Achieved bool
}

func (Player) kindName() string   { return "player" }
func (Enemy) kindName() string    { return "enemy" }
func (Obstacle) kindName() string { return "obstacle" }
func (Hitbox) kindName() string   { return "hitbox" }
func (*Shrine) kindName() string  { return "shrine" }

// KindName returns the lowercase kind name.
func KindName(k Kind) string {
	if k == nil {
		return "none"
	}
	return k.kindName()
}

// mustKnow panics on kinds added without updating the switches below.
func mustKnow(k Kind) {
	switch k.(type) {
	case Player, Enemy, Obstacle, Hitbox, *Shrine:
	default:
		panic(fmt.Sprintf("actor: unknown kind %T", k))
	}
}
