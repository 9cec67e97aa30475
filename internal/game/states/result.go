package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/world"
	"github.com/Faultbox/oni-patrol/internal/logger"
)

// ResultState ends a run. It holds the outcome and the tick it was reached.
type ResultState struct {
	outcome world.Outcome
	tick    uint64
}

// NewGameOverState is entered when the player has been reaped.
func NewGameOverState(tick uint64) *ResultState {
	return &ResultState{outcome: world.GameOver, tick: tick}
}

// NewClearState is entered when every shrine has been achieved.
func NewClearState(tick uint64) *ResultState {
	return &ResultState{outcome: world.Cleared, tick: tick}
}

func (s *ResultState) Name() string {
	if s.outcome == world.Cleared {
		return "Clear"
	}
	return "GameOver"
}

func (s *ResultState) Result() world.Outcome { return s.outcome }

// Tick returns the tick on which the scene ended.
func (s *ResultState) Tick() uint64 { return s.tick }

func (s *ResultState) Enter() error {
	logger.Info("scene ended",
		zap.Stringer("outcome", s.outcome),
		zap.Uint64("tick", s.tick))
	return nil
}

func (s *ResultState) Exit() error { return nil }

func (s *ResultState) Update(frame.Context) error { return nil }
