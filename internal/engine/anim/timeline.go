package anim

// Timeline is a Player that advances the active clip by elapsed time.
type Timeline struct {
	lib      Library
	name     string
	loop     bool
	duration float32
	elapsed  float32
	plays    int
}

// NewTimeline creates a timeline playing initial on a loop.
func NewTimeline(lib Library, initial string) *Timeline {
	if lib == nil {
		lib = DefaultLibrary()
	}
	t := &Timeline{lib: lib}
	if initial != "" {
		t.Play(initial, true)
		t.plays = 0
	}
	return t
}

// Play starts clip name from its first frame.
func (t *Timeline) Play(name string, loop bool) {
	t.name = name
	t.loop = loop
	t.duration = t.lib.Duration(name)
	t.elapsed = 0
	t.plays++
}

// Update accumulates dt seconds. Looping clips wrap around.
func (t *Timeline) Update(dt float32) {
	if t.name == "" {
		return
	}
	t.elapsed += dt
	if t.loop {
		for t.elapsed >= t.duration {
			t.elapsed -= t.duration
		}
		return
	}
	if t.elapsed > t.duration {
		t.elapsed = t.duration
	}
}

// IsFinished reports whether a one-shot clip has run to its end.
func (t *Timeline) IsFinished() bool {
	return !t.loop && t.name != "" && t.elapsed >= t.duration
}

// Animation returns the active clip name.
func (t *Timeline) Animation() string {
	return t.name
}

// Progress returns the position inside the active clip in [0, 1].
func (t *Timeline) Progress() float32 {
	if t.duration <= 0 {
		return 0
	}
	return t.elapsed / t.duration
}

// Plays returns how many times Play has been called since construction.
func (t *Timeline) Plays() int {
	return t.plays
}
