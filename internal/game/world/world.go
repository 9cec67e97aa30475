// Package world owns a running scene: the actor arena, the terrain, the
// arena rectangle and the order in which a tick updates them.
package world

import (
	"fmt"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/engine/terrain"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/nav"
	"github.com/Faultbox/oni-patrol/internal/logger"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Achievements persists which shrines have been cleared.
type Achievements interface {
	Achieved(shrine int) bool
	SetAchieved(shrine int) error
}

// Outcome is the result of a tick from the scene's point of view.
type Outcome uint8

const (
	Playing Outcome = iota
	GameOver
	Cleared
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	case Cleared:
		return "cleared"
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(o))
	}
}

// World is a scene in progress.
type World struct {
	cfg     *config.Config
	arena   *actor.Arena
	terrain *terrain.Heightmap
	bounds  cp.BB

	player    actor.ID
	obstacles []actor.ID
	shrines   []actor.ID

	// encounter is the shrine whose enemies are being fought, or -1.
	encounter int

	store Achievements
	rng   *rand.Rand
	tick  uint64

	log *zap.Logger
}

// New creates an empty world. hm may be nil for flat ground at y=0 and
// store may be nil to keep achievements in memory only.
func New(cfg *config.Config, hm *terrain.Heightmap, store Achievements) *World {
	if hm == nil {
		hm = terrain.Flat(0)
	}
	seed := cfg.Simulation.Seed
	return &World{
		cfg:       cfg,
		arena:     actor.NewArena(),
		terrain:   hm,
		bounds:    nav.Bounds(cfg.Arena.Left, cfg.Arena.Back, cfg.Arena.Right, cfg.Arena.Forward),
		encounter: -1,
		store:     store,
		rng:       rand.New(rand.NewPCG(seed, seed)),
		log:       logger.Named("world"),
	}
}

// Arena returns the actors of the world.
func (w *World) Arena() *actor.Arena { return w.arena }

// Terrain returns the height map.
func (w *World) Terrain() *terrain.Heightmap { return w.terrain }

// Bounds returns the arena rectangle, X mapped to X and Z mapped to Y.
func (w *World) Bounds() cp.BB { return w.bounds }

// Player returns the player actor, or nil once it has been reaped.
func (w *World) Player() *actor.Actor { return w.arena.Get(w.player) }

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 { return w.tick }

// Encounter returns the shrine index being fought, or -1.
func (w *World) Encounter() int { return w.encounter }

// Shrines returns the shrine actors in index order.
func (w *World) Shrines() []*actor.Actor {
	out := make([]*actor.Actor, 0, len(w.shrines))
	for _, id := range w.shrines {
		if a := w.arena.Get(id); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// Status is a one-line readout of an actor.
type Status struct {
	ID       actor.ID
	Name     string
	Kind     string
	State    string
	Position math.Vec3
	Health   int
}

type describer interface {
	Describe() string
}

// Status returns a readout of every player and enemy in arena order.
func (w *World) Status() []Status {
	var out []Status
	for _, a := range w.arena.All() {
		if !a.IsPlayer() && !a.IsEnemy() {
			continue
		}
		st := Status{
			ID:       a.ID,
			Name:     a.Name,
			Kind:     actor.KindName(a.Kind),
			Position: a.Position,
			Health:   a.Health,
		}
		if d, ok := a.Behavior.(describer); ok {
			st.State = d.Describe()
		}
		out = append(out, st)
	}
	return out
}

// Outcome reports whether the scene is still being played.
func (w *World) Outcome() Outcome {
	if w.player == actor.None || w.Player() == nil {
		return GameOver
	}
	if len(w.shrines) == 0 {
		return Playing
	}
	for _, s := range w.Shrines() {
		if shrine, ok := s.Kind.(*actor.Shrine); ok && !shrine.Achieved {
			return Playing
		}
	}
	return Cleared
}
