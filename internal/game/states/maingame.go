package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/world"
	"github.com/Faultbox/oni-patrol/internal/logger"
)

// MainGameState runs the world until the player is reaped or every shrine
// is achieved.
type MainGameState struct {
	world   *world.World
	manager *Manager
	log     *zap.Logger

	// Status is the last state readout, refreshed every tick.
	Status []world.Status
}

// NewMainGameState creates the main scene state for w.
func NewMainGameState(w *world.World, manager *Manager) *MainGameState {
	return &MainGameState{
		world:   w,
		manager: manager,
		log:     logger.Named("states"),
	}
}

// Name implements State.
func (s *MainGameState) Name() string { return "MainGame" }

// World returns the running world.
func (s *MainGameState) World() *world.World { return s.world }

// Replace swaps in a rebuilt world, as after a scene reload.
func (s *MainGameState) Replace(w *world.World) {
	s.log.Info("scene replaced",
		zap.Uint64("oldTick", s.world.Tick()),
		zap.Int("actors", w.Arena().Count()))
	s.world = w
	s.Status = w.Status()
}

// Enter is called when entering this state.
func (s *MainGameState) Enter() error {
	s.log.Info("entering MainGameState",
		zap.Int("actors", s.world.Arena().Count()),
		zap.Int("shrines", len(s.world.Shrines())))
	s.Status = s.world.Status()
	return nil
}

// Exit is called when leaving this state.
func (s *MainGameState) Exit() error {
	s.log.Info("leaving MainGameState", zap.Uint64("tick", s.world.Tick()))
	return nil
}

// Update steps the world and hands over once the scene ends.
func (s *MainGameState) Update(ctx frame.Context) error {
	out := s.world.Step(ctx)
	s.Status = s.world.Status()
	for _, st := range s.Status {
		if st.Kind == "enemy" {
			s.log.Debug("enemy",
				zap.Uint32("id", uint32(st.ID)),
				zap.String("state", st.State),
				zap.Int("health", st.Health))
		}
	}

	switch out {
	case world.GameOver:
		s.manager.Change(NewGameOverState(s.world.Tick()))
	case world.Cleared:
		s.manager.Change(NewClearState(s.world.Tick()))
	}
	return nil
}
