package ai

import (
	stdmath "math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/combat"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/nav"
	"github.com/Faultbox/oni-patrol/internal/logger"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Vigilance turns the enemy around at this rate (radians per second).
const sweepRate = stdmath.Pi / 2

// Enemy is the behavior component of an AI-driven actor.
type Enemy struct {
	cfg config.AIConfig

	state State
	task  Task

	waitTimer   float32
	attackTimer float32
	stateTimer  float32 // Overlook and Vigilance countdown

	// animLatch is set once the current state requested its clip.
	animLatch bool

	target    actor.ID
	obstacles []actor.ID
	footprint actor.ID

	percept Perception

	finder *nav.PathFinder
	path   Route
	round  Route
	goal   math.Vec3

	alertPos math.Vec3
	hitbox   combat.Hitbox

	log *zap.Logger
}

// NewEnemy creates a behavior that starts in initial. Path searches are
// confined to bounds.
func NewEnemy(cfg config.AIConfig, bounds cp.BB, initial State) *Enemy {
	e := &Enemy{
		cfg:    cfg,
		state:  initial,
		task:   TaskReserve,
		finder: nav.NewPathFinder(bounds, cfg.MaxIterations),
		log:    logger.Named("ai"),
	}
	e.round.Set(DefaultRound)
	return e
}

// SetTarget sets the actor the enemy watches and chases.
func (e *Enemy) SetTarget(id actor.ID) { e.target = id }

// SetObstacles sets the actors whose footprints path searches avoid.
func (e *Enemy) SetObstacles(ids []actor.ID) { e.obstacles = append(e.obstacles[:0], ids...) }

// SetObstacleFootprint sets the primary obstacle excluded from searches.
func (e *Enemy) SetObstacleFootprint(id actor.ID) { e.footprint = id }

// SetRound replaces the Round waypoints.
func (e *Enemy) SetRound(points []math.Vec3) {
	if len(points) > 0 {
		e.round.Set(points)
	}
}

// SetWaitTimer arms the generic countdown.
func (e *Enemy) SetWaitTimer(t float32) { e.waitTimer = t }

// State returns the current behavior state.
func (e *Enemy) State() State { return e.state }

// Task returns the phase of the current state.
func (e *Enemy) Task() Task { return e.task }

// WaitTimer returns the generic countdown.
func (e *Enemy) WaitTimer() float32 { return e.waitTimer }

// AttackTimer returns the time spent in the current attack.
func (e *Enemy) AttackTimer() float32 { return e.attackTimer }

// Hitbox returns the live melee hitbox, or actor.None.
func (e *Enemy) Hitbox() actor.ID { return e.hitbox.ID() }

// Perception returns the view of the target from the last tick.
func (e *Enemy) Perception() Perception { return e.percept }

// Path returns the current Patrol route.
func (e *Enemy) Path() *Route { return &e.path }

// Describe returns a short state readout for debug output.
func (e *Enemy) Describe() string { return e.state.String() }

// Think runs one tick of the state machine. Motion has already been
// integrated; Think only sets velocity, yaw and animation intent.
func (e *Enemy) Think(ctx frame.Context, self *actor.Actor, arena *actor.Arena) {
	target := arena.Get(e.target)
	if target != nil {
		e.percept = Perceive(self.Position, target.Position, self.Yaw, e.cfg.FacingRelative)
	} else {
		e.percept = Perception{Distance: float32(stdmath.Inf(1))}
	}

	if self.Health <= 0 {
		return
	}
	if combat.IsDowned(self) {
		self.Stop()
		e.releaseHitbox(arena)
		return
	}

	prev := e.state
	switch e.state {
	case StateWait:
		if e.wait(ctx.DeltaTime, self, target) && e.task == TaskEnd {
			// Both outcomes lead to Patrol whether or not the target is in view.
			if e.sees() {
				e.enter(StatePatrol)
			} else {
				e.enter(StatePatrol)
			}
		}
	case StateRound:
		if e.roundTick(self, target) {
			e.enter(StateWait)
		}
	case StatePatrol:
		if e.patrol(self, target, arena) {
			e.enter(StateWait)
		}
	case StateApproach:
		if e.approach(self, target) {
			e.enter(StateAttack)
		}
	case StateAttack:
		e.attackTimer += ctx.DeltaTime
		if e.attack(self, arena) {
			e.enter(StateWait)
		}
	case StateAlert:
		if e.alert(self, target) {
			e.enter(StateVigilance)
		}
	case StateVigilance:
		if e.vigilance(ctx.DeltaTime, self, target) {
			e.enter(StateWait)
		}
	case StateOverlook:
		if e.overlook(ctx.DeltaTime, self, target) {
			e.enter(StateWait)
		}
	}

	if e.state == StateApproach && target != nil && (prev == StateWait || prev == StateRound || prev == StatePatrol) {
		e.broadcast(self, target.Position, arena)
	}
}

// Halt abandons the current task and idles in Wait for wait seconds.
func (e *Enemy) Halt(self *actor.Actor, arena *actor.Arena, wait float32) {
	self.Stop()
	e.releaseHitbox(arena)
	e.transition(StateWait)
	e.waitTimer = wait
	e.task = TaskEnd
	e.animLatch = false
	e.path.Clear()
}

// Replay makes the current state request its clip again.
func (e *Enemy) Replay() {
	e.animLatch = false
}

// Alert sends a calm enemy to investigate pos.
func (e *Enemy) Alert(pos math.Vec3) bool {
	switch e.state {
	case StateWait, StateRound, StatePatrol, StateVigilance, StateOverlook:
		e.alertPos = pos
		e.enter(StateAlert)
		return true
	default:
		return false
	}
}

// enter switches state and rewinds the task.
func (e *Enemy) enter(s State) {
	e.transition(s)
	e.task = TaskReserve
	e.animLatch = false
}

func (e *Enemy) transition(s State) {
	if s != e.state {
		e.log.Debug("state change", zap.Stringer("from", e.state), zap.Stringer("to", s))
	}
	e.state = s
}

func (e *Enemy) sees() bool {
	return seesWithin(e.percept.Distance, e.percept.Angle, e.cfg.SightRadius, e.cfg.SightAngle)
}

func (e *Enemy) playOnce(self *actor.Actor, clip string) {
	if !e.animLatch {
		self.Play(clip, true)
		e.animLatch = true
	}
}

// steer heads self toward goal on the ground plane at move speed.
func (e *Enemy) steer(self *actor.Actor, goal math.Vec3) {
	move := goal.Sub(self.Position).WithY(0)
	if move.LengthSq() > 0 {
		move = move.Normalize()
		self.Yaw = math.YawToward(move)
	}
	self.Velocity = move.Scale(e.cfg.MoveSpeed)
}

// footprints collects the obstacle cells path searches must avoid.
func (e *Enemy) footprints(arena *actor.Arena) []nav.Footprint {
	var fps []nav.Footprint
	add := func(id actor.ID) {
		if a := arena.Get(id); a != nil && !a.World.IsNone() {
			fps = append(fps, footprintOf(a.World))
		}
	}
	add(e.footprint)
	for _, id := range e.obstacles {
		if id != e.footprint {
			add(id)
		}
	}
	return fps
}

func footprintOf(s collision.Shape) nav.Footprint {
	return nav.NewFootprint(s.Centroid(), s.FootprintXZ())
}

// broadcast alerts calm peers within the alert radius.
func (e *Enemy) broadcast(self *actor.Actor, pos math.Vec3, arena *actor.Arena) {
	if e.cfg.AlertRadius <= 0 {
		return
	}
	for _, peer := range arena.Enemies() {
		if peer == self || peer.Health <= 0 {
			continue
		}
		brain, ok := peer.Behavior.(*Enemy)
		if !ok || peer.Position.Distance(self.Position) > e.cfg.AlertRadius {
			continue
		}
		if brain.Alert(pos) {
			e.log.Debug("alerted peer", zap.Uint32("peer", uint32(peer.ID)))
		}
	}
}

func (e *Enemy) releaseHitbox(arena *actor.Arena) {
	e.hitbox.Release(arena)
}
