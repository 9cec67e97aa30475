package world

import (
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/ai"
)

// Shrine encounter parameters.
const (
	encounterSize   = 8
	encounterSpread = 15.0
)

// touchShrine starts the shrine's encounter unless one is already running
// or the shrine has been achieved.
func (w *World) touchShrine(s *actor.Actor) bool {
	shrine, ok := s.Kind.(*actor.Shrine)
	if !ok || shrine.Achieved || w.encounter >= 0 {
		return false
	}
	w.encounter = shrine.Index
	for i := 0; i < encounterSize; i++ {
		pos := s.Position
		pos.X += w.uniform(-encounterSpread, encounterSpread)
		pos.Z += w.uniform(-encounterSpread, encounterSpread)
		w.SpawnEnemy(EnemySpec{
			Position:  pos,
			Yaw:       w.uniform(0, 2*stdmath.Pi),
			State:     ai.StatePatrol,
			Capsule:   true,
			Encounter: shrine.Index,
		})
	}
	w.log.Info("encounter started",
		zap.Int("shrine", shrine.Index),
		zap.Int("enemies", encounterSize))
	return true
}

// settleEncounter marks the running encounter achieved once all of its
// enemies have been reaped.
func (w *World) settleEncounter() {
	if w.encounter < 0 {
		return
	}
	index := w.encounter
	if len(w.EncounterEnemies(index)) > 0 {
		return
	}

	w.encounter = -1
	for _, s := range w.Shrines() {
		if shrine := s.Kind.(*actor.Shrine); shrine.Index == index {
			shrine.Achieved = true
		}
	}
	w.log.Info("shrine achieved", zap.Int("shrine", index))
	if w.store != nil {
		if err := w.store.SetAchieved(index); err != nil {
			w.log.Warn("failed to save achievement", zap.Int("shrine", index), zap.Error(err))
		}
	}
}

// TouchShrine starts the encounter of the shrine at index as if the player
// touched it. It reports whether an encounter started.
func (w *World) TouchShrine(index int) bool {
	for _, s := range w.Shrines() {
		if shrine := s.Kind.(*actor.Shrine); shrine.Index == index {
			return w.touchShrine(s)
		}
	}
	return false
}

func (w *World) uniform(lo, hi float32) float32 {
	return lo + (hi-lo)*w.rng.Float32()
}

// EncounterEnemies returns the enemies spawned for shrine index.
func (w *World) EncounterEnemies(index int) []*actor.Actor {
	return w.arena.Filter(func(a *actor.Actor) bool {
		e, ok := a.Kind.(actor.Enemy)
		return ok && e.Encounter == index
	})
}
