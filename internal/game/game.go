// Package game implements the fixed-step simulation loop.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/states"
	"github.com/Faultbox/oni-patrol/internal/game/world"
	"github.com/Faultbox/oni-patrol/internal/logger"
)

// InputSource produces the player input for a tick.
type InputSource interface {
	Next(tick uint64) (frame.Input, error)
}

// Hook runs after every tick on the loop goroutine.
type Hook func(tick uint64) error

// Game drives a state manager at a fixed step.
type Game struct {
	cfg    config.SimulationConfig
	states *states.Manager
	input  InputSource
	hooks  []Hook

	tick uint64
	log  *zap.Logger
}

// New creates a loop. input may be nil for an idle player.
func New(cfg config.SimulationConfig, manager *states.Manager, input InputSource) *Game {
	if cfg.DeltaTime <= 0 {
		cfg.DeltaTime = config.Default().Simulation.DeltaTime
	}
	return &Game{
		cfg:    cfg,
		states: manager,
		input:  input,
		log:    logger.Named("game"),
	}
}

// OnTick registers a hook run after each tick.
func (g *Game) OnTick(h Hook) {
	g.hooks = append(g.hooks, h)
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() uint64 { return g.tick }

// Step runs one tick. It reports false once the run is over: a terminal
// state is current or the tick limit is reached.
func (g *Game) Step() (bool, error) {
	if g.done() {
		return false, nil
	}
	n := g.tick + 1

	var in frame.Input
	if g.input != nil {
		var err error
		if in, err = g.input.Next(n); err != nil {
			return false, fmt.Errorf("input for tick %d: %w", n, err)
		}
	}

	if err := g.states.Update(frame.New(n, g.cfg.DeltaTime, in)); err != nil {
		return false, fmt.Errorf("tick %d: %w", n, err)
	}
	g.tick = n

	for _, h := range g.hooks {
		if err := h(n); err != nil {
			return false, err
		}
	}
	return !g.done(), nil
}

func (g *Game) done() bool {
	if _, finished := g.states.Finished(); finished {
		return true
	}
	return g.cfg.Ticks > 0 && g.tick >= uint64(g.cfg.Ticks)
}

// Run steps until the run is over or ctx is cancelled. In realtime mode
// ticks are paced by the wall clock.
func (g *Game) Run(ctx context.Context) (world.Outcome, error) {
	g.log.Info("starting simulation loop",
		zap.Float32("dt", g.cfg.DeltaTime),
		zap.Int("ticks", g.cfg.Ticks),
		zap.Bool("realtime", g.cfg.Realtime))

	var pace <-chan time.Time
	if g.cfg.Realtime {
		ticker := time.NewTicker(time.Duration(float64(g.cfg.DeltaTime) * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	start := time.Now()
	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return g.outcome(), ctx.Err()
			case <-pace:
			}
		} else if err := ctx.Err(); err != nil {
			return g.outcome(), err
		}

		more, err := g.Step()
		if err != nil {
			return g.outcome(), err
		}
		if !more {
			break
		}
	}

	out := g.outcome()
	g.log.Info("simulation finished",
		zap.Uint64("ticks", g.tick),
		zap.Stringer("outcome", out),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (g *Game) outcome() world.Outcome {
	out, _ := g.states.Finished()
	return out
}
