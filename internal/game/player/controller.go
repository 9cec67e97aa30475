// Package player drives the controllable actor from a per-tick input
// snapshot.
package player

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/combat"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Attack hitbox window, seconds into the swing.
const (
	attackWindowStart = 0.05
	attackWindowEnd   = 0.6
)

// Slope probing: the height is sampled this far ahead along the run
// direction, and steeper gradients are clamped to maxGradient.
const (
	probeDistance = 0.05
	probeBias     = 0.01
)

var maxGradient = math.Radians(60)

// State is the player's animation state.
type State uint8

const (
	StateIdle State = iota
	StateRun
	StateJump
	StateAttack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRun:
		return "Run"
	case StateJump:
		return "Jump"
	case StateAttack:
		return "Attack"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Terrain is the height query the controller follows slopes with.
type Terrain interface {
	Height(pos math.Vec3) float32
}

// Controller is the player's behavior component.
type Controller struct {
	cfg     config.PlayerConfig
	terrain Terrain

	state       State
	attackTimer float32
	hitbox      combat.Hitbox
}

// NewController creates a controller. terrain may be nil for flat ground
// at y=0.
func NewController(cfg config.PlayerConfig, terrain Terrain) *Controller {
	return &Controller{cfg: cfg, terrain: terrain}
}

// State returns the animation state.
func (c *Controller) State() State { return c.state }

// Hitbox returns the live attack hitbox, or actor.None.
func (c *Controller) Hitbox() actor.ID { return c.hitbox.ID() }

// Describe returns a short state readout for debug output.
func (c *Controller) Describe() string { return c.state.String() }

// Think applies the tick's input and advances the animation state.
func (c *Controller) Think(ctx frame.Context, self *actor.Actor, arena *actor.Arena) {
	if self.Health <= 0 || combat.IsDowned(self) {
		self.Stop()
		c.hitbox.Release(arena)
		return
	}

	c.run(ctx.Input, self)
	if ctx.Input.Jump && !self.InAir {
		c.jump(self)
	}
	if ctx.Input.Attack && !self.InAir {
		self.Play(c.cfg.AttackClip, false)
		c.attackTimer = 0
		c.state = StateAttack
	}

	c.animate(ctx.DeltaTime, self, arena)
}

// Replay returns the animation state to Idle after an interrupting clip.
func (c *Controller) Replay() {
	if c.state != StateJump {
		c.state = StateIdle
	}
}

// run sets the horizontal velocity from the input direction. Airborne
// players keep their velocity.
func (c *Controller) run(in frame.Input, self *actor.Actor) {
	if self.InAir {
		return
	}
	move := in.Move.X0Z(0)
	if move.LengthSq() == 0 {
		self.Velocity = math.Vec3{}
		return
	}
	move = move.Normalize()
	self.Yaw = math.YawToward(move)

	if self.Boarding == actor.None {
		move = c.followSlope(self.Position, move)
	}
	self.Velocity = move.Scale(c.cfg.MoveSpeed)
}

// followSlope tilts move to match the terrain gradient ahead of pos.
func (c *Controller) followSlope(pos, move math.Vec3) math.Vec3 {
	ahead := c.height(pos.Add(move.Scale(probeDistance))) - pos.Y - probeBias
	gradient := float32(stdmath.Atan2(float64(ahead), probeDistance))
	if gradient > maxGradient {
		gradient = maxGradient
	} else if gradient < -maxGradient {
		gradient = -maxGradient
	}
	axis := move.Cross(math.Vec3{Y: 1}).Normalize()
	return math.RotateAxis(axis, gradient).TransformDirection(move)
}

func (c *Controller) height(pos math.Vec3) float32 {
	if c.terrain == nil {
		return 0
	}
	return c.terrain.Height(pos)
}

func (c *Controller) jump(self *actor.Actor) {
	self.Velocity.Y = c.cfg.JumpSpeed
	self.Boarding = actor.None
	self.InAir = true
}

func (c *Controller) animate(dt float32, self *actor.Actor, arena *actor.Arena) {
	moving := self.Velocity.X*self.Velocity.X+self.Velocity.Z*self.Velocity.Z != 0

	switch c.state {
	case StateIdle:
		if self.InAir {
			self.Play(anim.ClipJump, true)
			c.state = StateJump
		} else if moving {
			self.Play(anim.ClipRun, true)
			c.state = StateRun
		}
	case StateRun:
		if self.InAir {
			self.Play(anim.ClipJump, true)
			c.state = StateJump
		} else if !moving {
			self.Play(anim.ClipIdle, true)
			c.state = StateIdle
		}
	case StateJump:
		if !self.InAir {
			self.Play(anim.ClipIdle, true)
			c.state = StateIdle
		}
	case StateAttack:
		c.attackTimer += dt
		c.hitbox.Update(arena, self, c.cfg.AttackPower, c.attackTimer, attackWindowStart, attackWindowEnd)
		if self.AnimationFinished() {
			c.hitbox.Release(arena)
			self.Play(anim.ClipIdle, true)
			c.state = StateIdle
		}
	}
}
