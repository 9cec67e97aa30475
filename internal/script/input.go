// Package script drives the player from a tengo script for headless runs.
//
// A script defines
//
//	input := func(tick, state, player) { ... }
//
// and returns a map with any of move_x, move_z (run direction on the XZ
// plane), jump and attack. state is a map kept between ticks; player holds
// the player's x, y, z, yaw, health and in_air, or is empty once the
// player is gone.
package script

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

const dispatch = `
__out := input(__tick, __state, __player)
`

// Observer reports the player for the script's player argument.
type Observer func() map[string]interface{}

// Input is an input source backed by a compiled script.
type Input struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	observe  Observer
}

// Load compiles the script at path.
func Load(path string) (*Input, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return New(path, src)
}

// New compiles src. name is used in errors.
func New(name string, src []byte) (*Input, error) {
	s := tengo.NewScript(append(append([]byte{}, src...), dispatch...))
	_ = s.Add("__tick", 0)
	_ = s.Add("__state", map[string]interface{}{})
	_ = s.Add("__player", map[string]interface{}{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Input{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// SetObserver sets the source of the player argument.
func (in *Input) SetObserver(o Observer) { in.observe = o }

// Next runs the script for tick.
func (in *Input) Next(tick uint64) (frame.Input, error) {
	player := map[string]interface{}{}
	if in.observe != nil {
		if p := in.observe(); p != nil {
			player = p
		}
	}

	if err := in.compiled.Set("__tick", int64(tick)); err != nil {
		return frame.Input{}, err
	}
	if err := in.compiled.Set("__state", in.state); err != nil {
		return frame.Input{}, err
	}
	if err := in.compiled.Set("__player", player); err != nil {
		return frame.Input{}, err
	}
	if err := in.compiled.Run(); err != nil {
		return frame.Input{}, fmt.Errorf("script %s: tick %d: %w", in.name, tick, err)
	}
	return decode(in.compiled.Get("__out").Map()), nil
}

func decode(out map[string]interface{}) frame.Input {
	in := frame.Input{
		Move:   math.Vec2{X: number(out["move_x"]), Y: number(out["move_z"])},
		Jump:   truthy(out["jump"]),
		Attack: truthy(out["attack"]),
	}
	if in.Move.Length() > 1 {
		in.Move = in.Move.Normalize()
	}
	return in
}

func number(v interface{}) float32 {
	switch n := v.(type) {
	case float64:
		return float32(n)
	case int64:
		return float32(n)
	}
	return 0
}

func truthy(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
