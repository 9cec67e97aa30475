package ai

import (
	"go.uber.org/zap"

	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

// Each state method runs one tick and returns true when the state
// completed. Sighting the target switches to Approach directly and
// returns false.

func (e *Enemy) wait(dt float32, self, target *actor.Actor) bool {
	if e.waitTimer <= 0 && e.task != TaskStart {
		e.waitTimer = e.cfg.WaitTime
	}
	if e.waitTimer > 0 {
		e.task = TaskStart
		e.playWait(self)
		e.waitTimer -= dt
	}
	if target != nil && e.sees() {
		e.enter(StateApproach)
		return false
	}
	if e.waitTimer <= 0 && e.task == TaskStart {
		e.task = TaskEnd
		e.animLatch = false
		return true
	}
	return false
}

// playWait requests the Wait clip for the idle states.
func (e *Enemy) playWait(self *actor.Actor) {
	e.playOnce(self, anim.ClipWait)
}

func (e *Enemy) roundTick(self, target *actor.Actor) bool {
	if e.task == TaskReserve {
		e.round.Rewind()
		e.goal.Y = self.Position.Y
		e.task = TaskStart
	}
	e.playOnce(self, anim.ClipRun)

	if target != nil && e.sees() {
		e.enter(StateApproach)
		return false
	}

	wp, ok := e.round.Current()
	if !ok {
		e.round.Rewind()
		wp, _ = e.round.Current()
	}
	e.goal = wp.WithY(self.Position.Y)

	near := NearlyEqual(self.Position, e.goal, e.cfg.WaypointTolerance)
	switch {
	case near && e.round.IsLast():
		e.waitTimer = e.cfg.WaitTime
		self.Stop()
		e.task = TaskEnd
		return true
	case near:
		e.round.Advance()
	default:
		e.steer(self, e.goal)
	}
	return false
}

func (e *Enemy) patrol(self, target *actor.Actor, arena *actor.Arena) bool {
	if target != nil && e.sees() {
		e.path.Clear()
		e.enter(StateApproach)
		return false
	}

	if e.task == TaskReserve {
		var route []math.Vec3
		var err error
		if target != nil {
			route, err = e.finder.FindRoute(self.Position, target.Position, e.footprints(arena)...)
		}
		if err != nil || len(route) == 0 {
			e.log.Debug("patrol without route",
				zap.Uint32("actor", uint32(self.ID)),
				zap.Int("iterations", e.finder.Iterations),
				zap.Error(err))
			return e.finishPatrol(self)
		}
		e.path.Set(route)
		e.task = TaskStart
	}
	e.playOnce(self, anim.ClipRun)

	step, ok := e.path.Current()
	if !ok {
		return e.finishPatrol(self)
	}
	step = step.WithY(self.Position.Y)
	if NearlyEqual(self.Position, step, e.cfg.WaypointTolerance) {
		e.path.Advance()
		if e.path.Done() {
			return e.finishPatrol(self)
		}
		return false
	}
	e.steer(self, step)
	return false
}

func (e *Enemy) finishPatrol(self *actor.Actor) bool {
	self.Stop()
	e.waitTimer = e.cfg.CooldownTime
	e.task = TaskEnd
	e.path.Clear()
	return true
}

func (e *Enemy) approach(self, target *actor.Actor) bool {
	if target == nil {
		self.Stop()
		e.enter(StateWait)
		return false
	}
	e.playOnce(self, anim.ClipRun)
	if e.task == TaskReserve {
		e.goal = target.Position
		e.task = TaskStart
	}

	if e.cfg.LoseSightDistance > 0 && e.percept.Distance > e.cfg.LoseSightDistance {
		self.Stop()
		e.enter(StateOverlook)
		return false
	}
	if NearlyEqual(self.Position, e.goal, e.cfg.AttackRange) {
		self.Stop()
		e.task = TaskEnd
		return true
	}
	e.goal = target.Position
	e.steer(self, e.goal)
	return false
}

func (e *Enemy) attack(self *actor.Actor, arena *actor.Arena) bool {
	if e.task == TaskReserve {
		e.attackTimer = 0
		e.task = TaskStart
	}
	self.Stop()
	if !e.animLatch {
		self.Play(anim.ClipAttack, true)
		e.animLatch = true
	}

	e.hitbox.Update(arena, self, e.cfg.AttackDamage, e.attackTimer, e.cfg.AttackWindowStart, e.cfg.AttackWindowEnd)

	if e.attackTimer >= e.cfg.AttackDuration {
		e.attackTimer = 0
		e.waitTimer = e.cfg.CooldownTime
		e.task = TaskEnd
		e.releaseHitbox(arena)
		return true
	}
	return false
}

func (e *Enemy) alert(self, target *actor.Actor) bool {
	if e.task == TaskReserve {
		e.goal = e.alertPos.WithY(self.Position.Y)
		e.task = TaskStart
	}
	e.playOnce(self, anim.ClipRun)

	if target != nil && e.sees() {
		e.enter(StateApproach)
		return false
	}
	if NearlyEqual(self.Position, e.goal, e.cfg.WaypointTolerance) {
		self.Stop()
		e.task = TaskEnd
		return true
	}
	e.steer(self, e.goal)
	return false
}

func (e *Enemy) vigilance(dt float32, self, target *actor.Actor) bool {
	if e.task == TaskReserve {
		e.stateTimer = e.cfg.VigilanceTime
		self.Stop()
		e.task = TaskStart
	}
	e.playWait(self)

	if target != nil && e.sees() {
		e.enter(StateApproach)
		return false
	}
	self.Yaw = wrapAngle(self.Yaw + sweepRate*dt)
	e.stateTimer -= dt
	if e.stateTimer <= 0 {
		e.task = TaskEnd
		return true
	}
	return false
}

func (e *Enemy) overlook(dt float32, self, target *actor.Actor) bool {
	if e.task == TaskReserve {
		e.stateTimer = e.cfg.OverlookTime
		self.Stop()
		e.task = TaskStart
	}
	e.playWait(self)

	if target != nil && e.sees() {
		e.enter(StateApproach)
		return false
	}
	e.stateTimer -= dt
	if e.stateTimer <= 0 {
		e.task = TaskEnd
		return true
	}
	return false
}
