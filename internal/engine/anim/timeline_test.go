package anim

import "testing"

func TestTimelineOneShot(t *testing.T) {
	tl := NewTimeline(Library{ClipHit: 0.5}, ClipWait)
	if tl.Animation() != ClipWait {
		t.Fatalf("Animation = %q, want %q", tl.Animation(), ClipWait)
	}
	if tl.Plays() != 0 {
		t.Errorf("initial clip should not count as a play, got %d", tl.Plays())
	}

	tl.Play(ClipHit, false)
	for i := 0; i < 4; i++ {
		tl.Update(0.1)
		if tl.IsFinished() {
			t.Fatalf("finished early after %d updates", i+1)
		}
	}
	tl.Update(0.1)
	tl.Update(0.1)
	if !tl.IsFinished() {
		t.Error("one-shot clip should finish after its duration")
	}
	if tl.Progress() != 1 {
		t.Errorf("Progress = %v, want 1", tl.Progress())
	}
}

func TestTimelineLoopNeverFinishes(t *testing.T) {
	tl := NewTimeline(nil, "")
	tl.Play(ClipRun, true)
	for i := 0; i < 100; i++ {
		tl.Update(0.05)
		if tl.IsFinished() {
			t.Fatal("looping clip reported finished")
		}
	}
	if p := tl.Progress(); p < 0 || p >= 1 {
		t.Errorf("Progress = %v, want [0,1)", p)
	}
}

func TestTimelineReplayRestarts(t *testing.T) {
	tl := NewTimeline(nil, "")
	tl.Play(ClipDown, false)
	tl.Update(10)
	if !tl.IsFinished() {
		t.Fatal("Down should be finished")
	}
	tl.Play(ClipDown, false)
	if tl.IsFinished() {
		t.Error("replaying should restart the clip")
	}
	if tl.Plays() != 2 {
		t.Errorf("Plays = %d, want 2", tl.Plays())
	}
}

func TestEmptyTimeline(t *testing.T) {
	tl := NewTimeline(nil, "")
	tl.Update(1)
	if tl.IsFinished() {
		t.Error("timeline without a clip should not be finished")
	}
	if tl.Animation() != "" {
		t.Errorf("Animation = %q", tl.Animation())
	}
}

func TestLibraryDuration(t *testing.T) {
	lib := Library{"Custom": 2.5, "Broken": -1}
	tests := []struct {
		name string
		want float32
	}{
		{"Custom", 2.5},
		{"Broken", DefaultClipDuration},
		{"Missing", DefaultClipDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lib.Duration(tt.name); got != tt.want {
				t.Errorf("Duration(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
