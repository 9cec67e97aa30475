package actor

import (
	"testing"

	"github.com/Faultbox/oni-patrol/internal/engine/anim"
	"github.com/Faultbox/oni-patrol/internal/engine/collision"
	"github.com/Faultbox/oni-patrol/pkg/math"
)

func TestArenaAddGetRemove(t *testing.T) {
	arena := NewArena()
	p := New("Player", Player{}, 13, math.Vec3{X: 100, Z: 100}, 0)
	e := New("Enemy", Enemy{Encounter: -1}, 13, math.Vec3{X: 100, Z: 90}, 0)

	pid := arena.Add(p)
	eid := arena.Add(e)
	if pid == None || eid == None || pid == eid {
		t.Fatalf("bad ids %d %d", pid, eid)
	}
	if arena.Get(pid) != p || arena.Get(eid) != e {
		t.Error("Get returned the wrong actor")
	}
	if arena.Get(None) != nil {
		t.Error("Get(None) should be nil")
	}

	arena.Remove(eid)
	if arena.Get(eid) != nil {
		t.Error("removed actor still resolvable")
	}
	if arena.Count() != 1 {
		t.Errorf("Count = %d, want 1", arena.Count())
	}

	// IDs are never reused.
	again := arena.Add(New("Enemy2", Enemy{Encounter: -1}, 13, math.Vec3{}, 0))
	if again == eid {
		t.Error("ID reused after removal")
	}
	arena.Remove(12345) // unknown IDs are ignored
}

func TestArenaOrderAndFilters(t *testing.T) {
	arena := NewArena()
	names := []string{"a", "b", "c", "d"}
	kinds := []Kind{Enemy{Encounter: -1}, Obstacle{}, Enemy{Encounter: 0}, Player{}}
	for i, n := range names {
		arena.Add(New(n, kinds[i], 1, math.Vec3{}, 0))
	}

	all := arena.All()
	for i, a := range all {
		if a.Name != names[i] {
			t.Errorf("All()[%d] = %s, want %s", i, a.Name, names[i])
		}
	}

	enemies := arena.Enemies()
	if len(enemies) != 2 || enemies[0].Name != "a" || enemies[1].Name != "c" {
		t.Errorf("Enemies = %v", enemies)
	}
	if obs := arena.Obstacles(); len(obs) != 1 || obs[0].Name != "b" {
		t.Errorf("Obstacles = %v", obs)
	}
	if n := arena.CountWhere((*Actor).IsPlayer); n != 1 {
		t.Errorf("players = %d", n)
	}

	arena.Remove(all[1].ID)
	if got := arena.All(); len(got) != 3 || got[1].Name != "c" {
		t.Errorf("order after removal = %v", got)
	}

	arena.Clear()
	if arena.Count() != 0 || len(arena.All()) != 0 {
		t.Error("Clear left actors behind")
	}
}

func TestIntegrate(t *testing.T) {
	a := New("Enemy", Enemy{Encounter: -1}, 13, math.Vec3{X: 100, Z: 100}, 0)
	a.Collider = collision.NewSphere(math.Vec3{Y: 0.7}, 0.7)
	a.Velocity = math.Vec3{X: 5}

	a.Integrate(0.1)

	if !math.NearlyEqual(a.Position, math.Vec3{X: 100.5, Z: 100}, 1e-4) {
		t.Errorf("Position = %v", a.Position)
	}
	if !math.NearlyEqual(a.World.Center, math.Vec3{X: 100.5, Y: 0.7, Z: 100}, 1e-4) {
		t.Errorf("World collider = %v", a.World.Center)
	}
}

func TestTranslateAndStop(t *testing.T) {
	a := New("Player", Player{}, 13, math.Vec3{}, 0)
	a.Collider = collision.NewSphere(math.Vec3{}, 1)
	a.Velocity = math.Vec3{X: 1, Y: 2, Z: 3}
	a.Translate(math.Vec3{Z: 2})
	a.Stop()
	if a.Position != (math.Vec3{Z: 2}) || a.World.Center != (math.Vec3{Z: 2}) {
		t.Errorf("Translate: pos %v world %v", a.Position, a.World.Center)
	}
	if !a.Velocity.IsZero() {
		t.Errorf("Stop left velocity %v", a.Velocity)
	}
}

func TestAnimationHelpers(t *testing.T) {
	a := New("Enemy", Enemy{Encounter: -1}, 13, math.Vec3{}, 0)
	a.Play(anim.ClipHit, false) // no animator: no-op
	if a.Animation() != "" || a.AnimationFinished() {
		t.Error("actor without animator should report no clip")
	}

	tl := anim.NewTimeline(anim.Library{anim.ClipHit: 0.2}, anim.ClipWait)
	a.Anim = tl
	a.Play(anim.ClipHit, false)
	a.AdvanceAnimation(0.3)
	if a.Animation() != anim.ClipHit || !a.AnimationFinished() {
		t.Errorf("clip %q finished=%v", a.Animation(), a.AnimationFinished())
	}
}

func TestKindName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Player{}, "player"},
		{Enemy{}, "enemy"},
		{Obstacle{}, "obstacle"},
		{Hitbox{}, "hitbox"},
		{&Shrine{}, "shrine"},
		{nil, "none"},
	}
	for _, tt := range tests {
		if got := KindName(tt.kind); got != tt.want {
			t.Errorf("KindName(%T) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

type bogusKind struct{}

func (bogusKind) kindName() string { return "bogus" }

func TestNewRejectsUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown kind")
		}
	}()
	New("x", bogusKind{}, 1, math.Vec3{}, 0)
}
