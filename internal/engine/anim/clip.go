// Package anim drives named animation clips on a timeline. It keeps only
// the timing side of playback: which clip is active and whether a one-shot
// clip has finished.
package anim

// Player is the clip driver actors talk to.
type Player interface {
	// Play starts clip name from its first frame.
	Play(name string, loop bool)
	// IsFinished reports whether a one-shot clip has run to its end.
	// Looping clips never finish.
	IsFinished() bool
	// Animation returns the active clip name.
	Animation() string
}

// Clip names shared by the simulation.
const (
	ClipIdle        = "Idle"
	ClipWait        = "Wait"
	ClipRun         = "Run"
	ClipJump        = "Jump"
	ClipAttack      = "Attack"
	ClipAttackLight = "Attack.Light"
	ClipHit         = "Hit"
	ClipDown        = "Down"
)

// DefaultClipDuration is used for clips missing from a Library.
const DefaultClipDuration = 1.0

// Library maps clip names to their nominal length in seconds.
type Library map[string]float32

// DefaultLibrary returns the clip lengths of the stock character rigs.
func DefaultLibrary() Library {
	return Library{
		ClipIdle:        1.0,
		ClipWait:        1.6,
		ClipRun:         0.8,
		ClipJump:        0.8,
		ClipAttack:      1.0,
		ClipAttackLight: 0.6,
		ClipHit:         0.4,
		ClipDown:        1.2,
	}
}

// Duration returns the clip length, falling back to DefaultClipDuration.
func (l Library) Duration(name string) float32 {
	if d, ok := l[name]; ok && d > 0 {
		return d
	}
	return DefaultClipDuration
}
