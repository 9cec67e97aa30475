// Package main is the entry point for the headless patrol simulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/debugview"
	"github.com/Faultbox/oni-patrol/internal/game"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/states"
	"github.com/Faultbox/oni-patrol/internal/game/world"
	"github.com/Faultbox/oni-patrol/internal/logger"
	"github.com/Faultbox/oni-patrol/internal/save"
	"github.com/Faultbox/oni-patrol/internal/scene"
	"github.com/Faultbox/oni-patrol/internal/script"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Oni Patrol Simulator ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

// initLogger keeps the console quiet while the view owns the terminal.
func initLogger(cfg *config.Config) error {
	return logger.Init(logger.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.LogFile,
		Console: !cfg.View.Enabled,
	})
}

func openStore(cfg *config.Config) *save.Store {
	if cfg.Save.Enabled {
		s, err := save.Open(cfg.Save.AppName)
		if err == nil {
			return s
		}
		logger.Warn("achievements will not be saved", zap.Error(err))
	}
	s, _ := save.NewStore(nil)
	return s
}

func run(cfg *config.Config) error {
	store := openStore(cfg)

	w, err := scene.LoadWorld(cfg, cfg.Simulation.Scene, store)
	if err != nil {
		return err
	}

	manager := states.NewManager()
	mainGame := states.NewMainGameState(w, manager)
	manager.Change(mainGame)

	input := &scriptInput{}
	if cfg.Simulation.Script != "" {
		if err := input.load(cfg.Simulation.Script, mainGame); err != nil {
			return err
		}
	}

	loop := game.New(cfg.Simulation, manager, input)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.View.Enabled {
		view, err := debugview.Open()
		if err != nil {
			return fmt.Errorf("open debug view: %w", err)
		}
		defer view.Close()
		view.Listen(stop)

		every := uint64(max(cfg.View.RefreshRate, 1))
		loop.OnTick(func(tick uint64) error {
			if tick%every == 0 {
				view.Draw(mainGame.World(), manager.Current().Name())
			}
			return nil
		})
	}

	if cfg.Simulation.Watch {
		reload, err := watch(ctx, cfg, store, mainGame, input)
		if err != nil {
			return err
		}
		loop.OnTick(reload)
	}

	out, err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("interrupted", zap.Uint64("tick", loop.Tick()))
		err = nil
	}
	logger.Info("result",
		zap.Stringer("outcome", out),
		zap.Uint64("ticks", loop.Tick()),
		zap.Ints("achieved", store.List()))
	return err
}

// watch rebuilds the scene or recompiles the script when their files
// change. Rebuilds happen in the returned hook, on the loop goroutine.
func watch(ctx context.Context, cfg *config.Config, store *save.Store, mainGame *states.MainGameState, input *scriptInput) (game.Hook, error) {
	sim := cfg.Simulation
	if sim.Scene == "" && sim.Script == "" {
		logger.Warn("nothing to watch: the built-in scene is in use and no script is set")
		return func(uint64) error { return nil }, nil
	}

	watcher, err := scene.NewWatcher(sim.Scene, sim.Script)
	if err != nil {
		return nil, fmt.Errorf("watch scene files: %w", err)
	}
	go func() {
		<-ctx.Done()
		_ = watcher.Close()
	}()

	abs := func(p string) string {
		if p == "" {
			return ""
		}
		a, _ := filepath.Abs(p)
		return a
	}
	scenePath, scriptPath := abs(sim.Scene), abs(sim.Script)
	log := logger.Named("reload")

	return func(uint64) error {
		for {
			select {
			case err := <-watcher.Errors:
				log.Warn("watcher error", zap.Error(err))
			case path, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				switch path {
				case scenePath:
					w, err := scene.LoadWorld(cfg, sim.Scene, store)
					if err != nil {
						log.Warn("scene reload failed, keeping the running scene", zap.Error(err))
						continue
					}
					mainGame.Replace(w)
				case scriptPath:
					if err := input.load(sim.Script, mainGame); err != nil {
						log.Warn("script reload failed, keeping the running script", zap.Error(err))
					}
				}
			default:
				return nil
			}
		}
	}, nil
}

// scriptInput forwards to the current script, which a reload may replace.
// Without a script the player stands still.
type scriptInput struct {
	current *script.Input
}

func (s *scriptInput) load(path string, mainGame *states.MainGameState) error {
	in, err := script.Load(path)
	if err != nil {
		return err
	}
	in.SetObserver(func() map[string]interface{} {
		return observe(mainGame.World())
	})
	s.current = in
	return nil
}

func (s *scriptInput) Next(tick uint64) (frame.Input, error) {
	if s.current == nil {
		return frame.Input{}, nil
	}
	return s.current.Next(tick)
}

func observe(w *world.World) map[string]interface{} {
	p := w.Player()
	if p == nil {
		return nil
	}
	return map[string]interface{}{
		"x":      float64(p.Position.X),
		"y":      float64(p.Position.Y),
		"z":      float64(p.Position.Z),
		"yaw":    float64(p.Yaw),
		"health": p.Health,
		"in_air": p.InAir,
	}
}
