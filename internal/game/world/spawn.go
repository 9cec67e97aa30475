package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/ai"
	"github.com/Faultbox/oni-patrol/internal/game/player"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Body colliders, in actor-local space.
var (
	bodyCollider      = collision.NewSphere(math.Vec3{Y: 0.7}, 0.7)
	encounterCollider = collision.NewCapsule(math.Vec3{Y: 0.5}, math.Vec3{Y: 1}, 0.5)
	shrineCollider    = collision.NewSphere(math.Vec3{Y: 1}, 1)
)

// SpawnPlayer places the player on the ground at pos. A world holds one
// player; spawning again replaces it.
func (w *World) SpawnPlayer(pos math.Vec3, yaw float32) *actor.Actor {
	if old := w.Player(); old != nil {
		w.remove(old)
	}
	pos.Y = w.terrain.Height(pos)

	cfg := w.cfg.Player
	p := actor.New("Player", actor.Player{}, cfg.Health, pos, yaw)
	p.Collider = bodyCollider
	p.Gravity = cfg.Gravity
	p.Anim = anim.NewTimeline(nil, anim.ClipIdle)
	p.Behavior = player.NewController(cfg, w.terrain)
	p.RefreshCollider()
	w.player = w.arena.Add(p)

	for _, e := range w.arena.Enemies() {
		w.wire(e)
	}
	w.log.Debug("player spawned", zap.Any("position", pos))
	return p
}

// EnemySpec describes an enemy to spawn.
type EnemySpec struct {
	Name     string
	Position math.Vec3
	Yaw      float32
	State    ai.State
	Round    []math.Vec3 // Round waypoints; empty keeps the default loop
	Capsule  bool        // Use the encounter capsule instead of the body sphere

	// Encounter is the shrine index the enemy belongs to, or -1.
	Encounter int
}

// SpawnEnemy places an enemy on the ground.
func (w *World) SpawnEnemy(spec EnemySpec) *actor.Actor {
	pos := spec.Position
	pos.Y = w.terrain.Height(pos)
	name := spec.Name
	if name == "" {
		name = "Oni"
	}

	e := actor.New(name, actor.Enemy{Encounter: spec.Encounter}, 13, pos, spec.Yaw)
	e.Collider = bodyCollider
	if spec.Capsule {
		e.Collider = encounterCollider
	}
	e.Anim = anim.NewTimeline(nil, anim.ClipWait)

	brain := ai.NewEnemy(w.cfg.AI, w.bounds, spec.State)
	brain.SetRound(spec.Round)
	e.Behavior = brain
	e.RefreshCollider()
	w.arena.Add(e)
	w.wire(e)
	return e
}

// ObstacleSpec describes a static box.
type ObstacleSpec struct {
	Name        string
	Center      math.Vec3 // Y is an offset above the terrain
	HalfExtents math.Vec3
	Yaw         float32
}

// AddObstacle places a static box. The first obstacle is the one enemies
// exclude from path searches as their primary footprint; every obstacle is
// avoided.
func (w *World) AddObstacle(spec ObstacleSpec) *actor.Actor {
	pos := spec.Center
	pos.Y += w.terrain.Height(pos)
	name := spec.Name
	if name == "" {
		name = "StoneWall"
	}

	o := actor.New(name, actor.Obstacle{}, 100, pos, spec.Yaw)
	o.Collider = collision.NewOBB(math.Vec3{},
		math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: -1}, spec.HalfExtents)
	o.RefreshCollider()
	w.obstacles = append(w.obstacles, w.arena.Add(o))

	for _, e := range w.arena.Enemies() {
		w.wire(e)
	}
	return o
}

// AddShrine places a shrine on the ground. Shrines are indexed in the order
// they are added; a shrine already achieved in the store starts achieved.
func (w *World) AddShrine(pos math.Vec3, yaw float32) *actor.Actor {
	pos.Y = w.terrain.Height(pos)
	index := len(w.shrines)
	kind := &actor.Shrine{Index: index}
	if w.store != nil {
		kind.Achieved = w.store.Achieved(index)
	}

	s := actor.New("Jizo", kind, 100, pos, yaw)
	s.Collider = shrineCollider
	s.RefreshCollider()
	w.shrines = append(w.shrines, w.arena.Add(s))
	return s
}

// wire points an enemy's behavior at the player and the obstacles.
func (w *World) wire(e *actor.Actor) {
	brain, ok := e.Behavior.(*ai.Enemy)
	if !ok {
		return
	}
	brain.SetTarget(w.player)
	brain.SetObstacles(w.obstacles)
	if len(w.obstacles) > 0 {
		brain.SetObstacleFootprint(w.obstacles[0])
	}
}

// remove drops a from the arena along with the hitboxes it owns.
func (w *World) remove(a *actor.Actor) {
	for _, hb := range w.arena.Filter(isHitbox) {
		if k := hb.Kind.(actor.Hitbox); k.Owner == a.ID {
			w.arena.Remove(hb.ID)
		}
	}
	w.arena.Remove(a.ID)
	if a.ID == w.player {
		w.player = actor.None
	}
}

func isHitbox(a *actor.Actor) bool {
	_, ok := a.Kind.(actor.Hitbox)
	return ok
}
