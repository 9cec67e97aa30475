package ai

import (
	"testing"

	"github.com/Faultbox/oni-patrol/internal/config"
	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/internal/game/actor"
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/nav"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

type fixture struct {
	arena  *actor.Arena
	self   *actor.Actor
	player *actor.Actor
	brain  *Enemy
}

func newFixture(t *testing.T, cfg config.AIConfig, enemyAt, playerAt math.Vec3, initial State) *fixture {
	t.Helper()
	arena := actor.NewArena()

	player := actor.New("Player", actor.Player{}, 13, playerAt, 0)
	player.Collider = collision.NewSphere(math.Vec3{Y: 0.7}, 0.7)
	player.RefreshCollider()
	arena.Add(player)

	self, brain := spawnEnemy(arena, cfg, enemyAt, initial)
	brain.SetTarget(player.ID)
	return &fixture{arena: arena, self: self, player: player, brain: brain}
}

func spawnEnemy(arena *actor.Arena, cfg config.AIConfig, at math.Vec3, initial State) (*actor.Actor, *Enemy) {
	self := actor.New("Enemy", actor.Enemy{Encounter: -1}, 13, at, 0)
	self.Collider = collision.NewSphere(math.Vec3{Y: 0.7}, 0.7)
	self.RefreshCollider()
	self.Anim = anim.NewTimeline(nil, anim.ClipWait)
	brain := NewEnemy(cfg, nav.Bounds(85, 70, 115, 100), initial)
	self.Behavior = brain
	arena.Add(self)
	return self, brain
}

// tick runs one Think and, when move is set, integrates the result.
func (f *fixture) tick(n uint64, dt float32, move bool) {
	f.brain.Think(frame.New(n, dt, frame.Input{}), f.self, f.arena)
	if move {
		f.self.Integrate(dt)
	}
	f.self.AdvanceAnimation(dt)
}

func defaultAI() config.AIConfig {
	return config.Default().AI
}

func TestSees(t *testing.T) {
	tests := []struct {
		name     string
		distance float32
		angle    float32
		want     bool
	}{
		{"origin", 0, 0, true},
		{"radius edge", 5, 0, true},
		{"angle edge", 3, 1, true},
		{"negative angle edge", 3, -1, true},
		{"both edges", 5, 1, true},
		{"too far", 5.001, 0, false},
		{"too wide", 3, 1.001, false},
		{"too wide negative", 3, -1.001, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sees(tt.distance, tt.angle); got != tt.want {
				t.Errorf("Sees(%v, %v) = %v, want %v", tt.distance, tt.angle, got, tt.want)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	a := math.Vec3{X: 100, Z: 100}
	if !NearlyEqual(a, math.Vec3{X: 100.5, Z: 100}, 0.5) {
		t.Error("distance equal to tolerance should count as near")
	}
	if NearlyEqual(a, math.Vec3{X: 100.6, Z: 100}, 0.5) {
		t.Error("distance beyond tolerance should not count as near")
	}
}

func TestPerceive(t *testing.T) {
	self := math.Vec3{X: 100, Z: 100}

	p := Perceive(self, math.Vec3{X: 100, Z: 103}, 0, false)
	if !approx(p.Distance, 3) || !approx(p.Angle, 0) || !approx(p.Dot, 1) {
		t.Errorf("ahead: %+v", p)
	}

	behind := Perceive(self, math.Vec3{X: 100, Z: 97}, 0, false)
	if behind.Angle < 3.1 && behind.Angle > -3.1 {
		t.Errorf("behind angle = %v, want about pi", behind.Angle)
	}

	// Facing -Z: the target behind in world terms is straight ahead.
	turned := Perceive(self, math.Vec3{X: 100, Z: 97}, 3.14159265, true)
	if !approx(turned.Angle, 0) {
		t.Errorf("facing-relative angle = %v, want 0", turned.Angle)
	}
	if !approx(turned.Dot, 1) {
		t.Errorf("facing-relative dot = %v, want 1", turned.Dot)
	}
}

func TestWaitCompletesOnCountdown(t *testing.T) {
	const dt = float32(0.1)
	f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 110}, StateWait)
	f.brain.SetWaitTimer(2)

	// Count the ticks with the same float32 arithmetic.
	timer := float32(2)
	ticks := 0
	for timer > 0 {
		timer -= dt
		ticks++
	}

	for i := 1; i < ticks; i++ {
		f.tick(uint64(i), dt, false)
		if f.brain.State() != StateWait {
			t.Fatalf("left Wait early on tick %d", i)
		}
		if f.brain.Task() != TaskStart {
			t.Fatalf("task = %v on tick %d, want Start", f.brain.Task(), i)
		}
	}
	f.tick(uint64(ticks), dt, false)
	if f.brain.State() != StatePatrol {
		t.Errorf("state after %d ticks = %v, want Patrol", ticks, f.brain.State())
	}
	if f.self.Animation() != anim.ClipWait {
		t.Errorf("clip = %q, want Wait", f.self.Animation())
	}
}

func TestWaitArmsDefaultTimer(t *testing.T) {
	f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 110}, StateWait)
	f.tick(1, 0.1, false)
	if f.brain.State() != StateWait || f.brain.WaitTimer() <= 1.8 {
		t.Errorf("state %v timer %v; want Wait with the default timer running", f.brain.State(), f.brain.WaitTimer())
	}
}

func TestSightingStartsApproach(t *testing.T) {
	for _, initial := range []State{StateWait, StatePatrol, StateRound} {
		t.Run(initial.String(), func(t *testing.T) {
			f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 103}, initial)
			f.tick(1, 1.0/60, false)
			if f.brain.State() != StateApproach {
				t.Errorf("state = %v, want Approach", f.brain.State())
			}
			if f.brain.Task() != TaskReserve {
				t.Errorf("task = %v, want Reserve", f.brain.Task())
			}
		})
	}
}

func TestTargetOutsideConeIsIgnored(t *testing.T) {
	// Straight behind in the world frame.
	f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 97}, StateWait)
	f.tick(1, 0.1, false)
	if f.brain.State() != StateWait {
		t.Errorf("state = %v, want Wait", f.brain.State())
	}
}

func TestAttackHitboxWindow(t *testing.T) {
	const dt = float32(0.01)
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 101}, StateApproach)

	f.tick(1, dt, false)
	if f.brain.State() != StateAttack {
		t.Fatalf("state = %v, want Attack", f.brain.State())
	}

	live := 0
	for i := uint64(2); i < 500; i++ {
		f.tick(i, dt, false)
		if f.brain.State() != StateAttack {
			break
		}
		at := f.brain.AttackTimer()
		inWindow := at > cfg.AttackWindowStart && at < cfg.AttackWindowEnd
		hb := f.arena.Get(f.brain.Hitbox())
		if inWindow != (hb != nil) {
			t.Fatalf("t=%v: hitbox live=%v, want %v", at, hb != nil, inWindow)
		}
		if hb == nil {
			continue
		}
		live++
		if hb.Health != cfg.AttackDamage {
			t.Errorf("hitbox damage = %d, want %d", hb.Health, cfg.AttackDamage)
		}
		owner, ok := hb.Kind.(actor.Hitbox)
		if !ok || owner.Owner != f.self.ID {
			t.Errorf("hitbox kind = %#v", hb.Kind)
		}
		want := math.Vec3{X: 100, Y: 1, Z: 101.5}
		if !math.NearlyEqual(hb.World.Center, want, 1e-4) {
			t.Errorf("hitbox at %v, want %v", hb.World.Center, want)
		}
	}

	if live == 0 {
		t.Error("hitbox never spawned")
	}
	if f.brain.State() != StateWait {
		t.Fatalf("state after attack = %v, want Wait", f.brain.State())
	}
	if f.brain.WaitTimer() != cfg.CooldownTime {
		t.Errorf("wait timer = %v, want %v", f.brain.WaitTimer(), cfg.CooldownTime)
	}
	if f.brain.Hitbox() != actor.None || f.arena.Count() != 2 {
		t.Errorf("hitbox left behind: id %d, %d actors", f.brain.Hitbox(), f.arena.Count())
	}
	if f.self.Animation() != anim.ClipAttack {
		t.Errorf("clip = %q, want Attack", f.self.Animation())
	}
}

func TestAttackSurvivesClipReplay(t *testing.T) {
	const dt = float32(0.01)
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 101}, StateApproach)

	f.tick(1, dt, false)
	for i := uint64(2); i <= 31; i++ {
		f.tick(i, dt, false)
	}
	before := f.brain.AttackTimer()
	if f.brain.State() != StateAttack || before < 0.25 {
		t.Fatalf("state = %v, timer = %v", f.brain.State(), before)
	}

	// A finished hit reaction puts the actor back on Wait and asks the
	// behavior to request its clip again.
	f.self.Play(anim.ClipWait, true)
	f.brain.Replay()
	f.tick(32, dt, false)

	if got := f.brain.AttackTimer(); got <= before {
		t.Errorf("attack timer = %v after replay, want above %v", got, before)
	}
	if f.self.Animation() != anim.ClipAttack {
		t.Errorf("clip = %q, want Attack", f.self.Animation())
	}

	last := uint64(32)
	for f.brain.State() == StateAttack && last < 500 {
		last++
		f.tick(last, dt, false)
	}
	// The attack started on tick 2 and lasts AttackDuration.
	if limit := 2 + uint64(cfg.AttackDuration/dt) + 2; last > limit {
		t.Errorf("attack ended on tick %d, want by tick %d", last, limit)
	}
}

func TestRoundFollowsWaypoints(t *testing.T) {
	const dt = float32(0.05)
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 90}, StateRound)
	f.brain.SetRound([]math.Vec3{{X: 102, Z: 100}, {X: 104, Z: 100}})

	var i uint64
	for i = 1; i < 200 && f.brain.State() == StateRound; i++ {
		f.tick(i, dt, true)
	}
	if f.brain.State() != StateWait {
		t.Fatalf("state = %v after %d ticks, want Wait", f.brain.State(), i)
	}
	if !NearlyEqual(f.self.Position, math.Vec3{X: 104, Z: 100}, cfg.WaypointTolerance) {
		t.Errorf("stopped at %v, want near the last waypoint", f.self.Position)
	}
	if f.brain.WaitTimer() != cfg.WaitTime {
		t.Errorf("wait timer = %v, want %v", f.brain.WaitTimer(), cfg.WaitTime)
	}
	if !f.self.Velocity.IsZero() {
		t.Errorf("velocity = %v, want zero", f.self.Velocity)
	}
}

func TestPatrolFollowsPath(t *testing.T) {
	const dt = float32(0.05)
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 92}, StatePatrol)

	f.tick(1, dt, true)
	if f.brain.Path().Len() == 0 {
		t.Fatal("no route after the first Patrol tick")
	}
	last := f.brain.Path().Points()[f.brain.Path().Len()-1]
	if nav.CellOf(last) != nav.CellOf(f.player.Position) {
		t.Errorf("route ends at %v, want the target's cell", last)
	}

	var i uint64
	for i = 2; i < 400 && f.brain.State() == StatePatrol; i++ {
		f.tick(i, dt, true)
	}
	if f.brain.State() != StateWait {
		t.Fatalf("state = %v after %d ticks, want Wait", f.brain.State(), i)
	}
	if !NearlyEqual(f.self.Position, math.Vec3{X: 100, Z: 92}, cfg.WaypointTolerance) {
		t.Errorf("stopped at %v", f.self.Position)
	}
	if f.brain.WaitTimer() != cfg.CooldownTime {
		t.Errorf("wait timer = %v, want %v", f.brain.WaitTimer(), cfg.CooldownTime)
	}
	if f.brain.Path().Len() != 0 {
		t.Error("route not cleared")
	}
}

func TestPatrolWithoutRoute(t *testing.T) {
	cfg := defaultAI()
	tests := []struct {
		name   string
		target math.Vec3
		noID   bool
	}{
		{"target outside grid", math.Vec3{X: 50, Z: 50}, false},
		{"no target", math.Vec3{X: 100, Z: 92}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, tt.target, StatePatrol)
			if tt.noID {
				f.brain.SetTarget(actor.None)
			}
			f.tick(1, 0.1, false)
			if f.brain.State() != StateWait {
				t.Errorf("state = %v, want Wait", f.brain.State())
			}
			if f.brain.WaitTimer() != cfg.CooldownTime {
				t.Errorf("wait timer = %v, want %v", f.brain.WaitTimer(), cfg.CooldownTime)
			}
		})
	}
}

func TestPatrolAvoidsObstacle(t *testing.T) {
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 92}, StatePatrol)

	wall := actor.New("Wall", actor.Obstacle{}, 1, math.Vec3{X: 100, Z: 96}, 0)
	wall.Collider = collision.NewOBB(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1}, math.Vec3{X: 2, Y: 2, Z: 0.5})
	wall.RefreshCollider()
	f.arena.Add(wall)
	f.brain.SetObstacleFootprint(wall.ID)

	f.tick(1, 0.05, false)
	fp := nav.NewFootprint(wall.World.Centroid(), wall.World.FootprintXZ())
	for _, p := range f.brain.Path().Points() {
		if fp.Blocks(nav.CellOf(p)) {
			t.Errorf("route enters obstacle cell %v", nav.CellOf(p))
		}
	}
	if f.brain.Path().Len() == 0 {
		t.Error("expected a route around the wall")
	}
}

func TestApproachLosesSight(t *testing.T) {
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 80}, math.Vec3{X: 100, Z: 95}, StateApproach)

	f.tick(1, 0.1, false)
	if f.brain.State() != StateOverlook {
		t.Fatalf("state = %v, want Overlook", f.brain.State())
	}
	for i := uint64(2); i < 100 && f.brain.State() == StateOverlook; i++ {
		f.tick(i, 0.1, false)
	}
	if f.brain.State() != StateWait {
		t.Errorf("state = %v, want Wait after overlooking", f.brain.State())
	}
}

func TestApproachSteersTowardTarget(t *testing.T) {
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 104, Z: 100}, StateApproach)
	f.tick(1, 0.1, false)
	if f.brain.State() != StateApproach {
		t.Fatalf("state = %v", f.brain.State())
	}
	want := math.Vec3{X: cfg.MoveSpeed}
	if !math.NearlyEqual(f.self.Velocity, want, 1e-4) {
		t.Errorf("velocity = %v, want %v", f.self.Velocity, want)
	}
	if f.self.Animation() != anim.ClipRun {
		t.Errorf("clip = %q, want Run", f.self.Animation())
	}
}

func TestHalt(t *testing.T) {
	f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 101}, StateApproach)
	for i := uint64(1); i <= 10; i++ {
		f.tick(i, 0.02, false)
	}
	if f.brain.Hitbox() == actor.None {
		t.Fatal("expected a live hitbox before halting")
	}
	hitbox := f.brain.Hitbox()

	f.self.Velocity = math.Vec3{X: 3}
	f.brain.Halt(f.self, f.arena, 2)

	if f.brain.State() != StateWait || f.brain.Task() != TaskEnd {
		t.Errorf("state %v task %v, want Wait/End", f.brain.State(), f.brain.Task())
	}
	if f.brain.WaitTimer() != 2 {
		t.Errorf("wait timer = %v", f.brain.WaitTimer())
	}
	if !f.self.Velocity.IsZero() {
		t.Errorf("velocity = %v", f.self.Velocity)
	}
	if f.arena.Get(hitbox) != nil || f.brain.Hitbox() != actor.None {
		t.Error("hitbox survived Halt")
	}
}

func TestAlertBroadcast(t *testing.T) {
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 103}, StateWait)
	near, nearBrain := spawnEnemy(f.arena, cfg, math.Vec3{X: 107, Z: 100}, StateWait)
	_, farBrain := spawnEnemy(f.arena, cfg, math.Vec3{X: 100, Z: 88}, StateRound)
	_, busyBrain := spawnEnemy(f.arena, cfg, math.Vec3{X: 95, Z: 100}, StateAttack)
	nearBrain.SetTarget(f.player.ID)

	f.tick(1, 0.1, false)

	if f.brain.State() != StateApproach {
		t.Fatalf("spotter state = %v, want Approach", f.brain.State())
	}
	if nearBrain.State() != StateAlert {
		t.Errorf("near peer state = %v, want Alert", nearBrain.State())
	}
	if farBrain.State() != StateRound {
		t.Errorf("far peer state = %v, want Round", farBrain.State())
	}
	if busyBrain.State() != StateAttack {
		t.Errorf("busy peer state = %v, want Attack", busyBrain.State())
	}

	// The alerted peer walks to the sighting position.
	nearBrain.Think(frame.New(2, 0.1, frame.Input{}), near, f.arena)
	if near.Velocity.X >= 0 {
		t.Errorf("alerted peer velocity = %v, want heading -X", near.Velocity)
	}
}

func TestAlertDisabled(t *testing.T) {
	cfg := defaultAI()
	cfg.AlertRadius = 0
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 103}, StateWait)
	_, peer := spawnEnemy(f.arena, cfg, math.Vec3{X: 107, Z: 100}, StateWait)
	f.tick(1, 0.1, false)
	if peer.State() != StateWait {
		t.Errorf("peer state = %v, want Wait", peer.State())
	}
}

func TestAlertThenVigilance(t *testing.T) {
	cfg := defaultAI()
	f := newFixture(t, cfg, math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 90}, StateWait)
	f.brain.SetTarget(actor.None)

	if !f.brain.Alert(math.Vec3{X: 100, Z: 100.2}) {
		t.Fatal("calm enemy refused the alert")
	}
	f.tick(1, 0.1, false)
	if f.brain.State() != StateVigilance {
		t.Fatalf("state = %v, want Vigilance", f.brain.State())
	}

	yaw := f.self.Yaw
	f.tick(2, 0.1, false)
	if f.self.Yaw == yaw {
		t.Error("vigilance did not sweep the facing")
	}
	for i := uint64(3); i < 100 && f.brain.State() == StateVigilance; i++ {
		f.tick(i, 0.1, false)
	}
	if f.brain.State() != StateWait {
		t.Errorf("state = %v, want Wait after vigilance", f.brain.State())
	}
}

func TestDownFreezesBehavior(t *testing.T) {
	f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 103}, StateWait)
	f.self.Play(anim.ClipDown, false)
	f.self.Velocity = math.Vec3{X: 1}
	f.tick(1, 0.1, false)
	if f.brain.State() != StateWait {
		t.Errorf("state = %v, want Wait while going down", f.brain.State())
	}
	if !f.self.Velocity.IsZero() {
		t.Errorf("velocity = %v, want zero", f.self.Velocity)
	}
}

func TestReplayRequestsClipAgain(t *testing.T) {
	f := newFixture(t, defaultAI(), math.Vec3{X: 100, Z: 100}, math.Vec3{X: 100, Z: 110}, StateWait)
	tl := f.self.Anim.(*anim.Timeline)

	f.tick(1, 0.1, false)
	plays := tl.Plays()
	f.tick(2, 0.1, false)
	if tl.Plays() != plays {
		t.Fatalf("clip restarted without Replay")
	}
	f.brain.Replay()
	f.tick(3, 0.1, false)
	if tl.Plays() != plays+1 {
		t.Errorf("plays = %d, want %d", tl.Plays(), plays+1)
	}
}

func TestStateNames(t *testing.T) {
	for s := StateWait; s <= StateVigilance; s++ {
		got, err := ParseState(s.String())
		if err != nil || got != s {
			t.Errorf("ParseState(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseState("Sleep"); err == nil {
		t.Error("expected error for unknown state")
	}
	if State(42).String() != "State(42)" {
		t.Errorf("unknown state string = %q", State(42).String())
	}
	if TaskEnd.String() != "End" {
		t.Errorf("TaskEnd = %q", TaskEnd.String())
	}
}

func TestRoute(t *testing.T) {
	var r Route
	if _, ok := r.Current(); ok || !r.Done() || r.IsLast() {
		t.Fatal("empty route should be done")
	}
	r.Set(DefaultRound)
	if r.Len() != 4 {
		t.Fatalf("Len = %d", r.Len())
	}
	for i := 0; i < 3; i++ {
		r.Advance()
	}
	if !r.IsLast() {
		t.Error("expected last waypoint")
	}
	r.Advance()
	r.Advance()
	if !r.Done() || r.Index() != 4 {
		t.Errorf("index = %d, want 4", r.Index())
	}
	r.Rewind()
	if p, _ := r.Current(); p != DefaultRound[0] {
		t.Errorf("Current after Rewind = %v", p)
	}
	r.Clear()
	if r.Len() != 0 {
		t.Error("Clear left waypoints")
	}
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}
