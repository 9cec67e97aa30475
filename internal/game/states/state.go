// Package states implements scene state management.
package states

import (
	"github.com/Faultbox/oni-patrol/internal/game/frame"
	"github.com/Faultbox/oni-patrol/internal/game/world"
)

// State represents a scene state (main game, game over, clear).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every tick.
	Update(ctx frame.Context) error

	// Name identifies the state in logs and the debug view.
	Name() string
}

// Terminal is implemented by states that end a run.
type Terminal interface {
	Result() world.Outcome
}

// Manager manages scene state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change. It takes effect on the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(ctx frame.Context) error {
	if err := m.switchState(); err != nil {
		return err
	}
	if m.current != nil {
		if err := m.current.Update(ctx); err != nil {
			return err
		}
	}
	return m.switchState()
}

func (m *Manager) switchState() error {
	if m.next == nil {
		return nil
	}
	if m.current != nil {
		if err := m.current.Exit(); err != nil {
			return err
		}
	}
	m.current = m.next
	m.next = nil
	return m.current.Enter()
}

// Finished reports the outcome once a terminal state is current.
func (m *Manager) Finished() (world.Outcome, bool) {
	if t, ok := m.current.(Terminal); ok {
		return t.Result(), true
	}
	return world.Playing, false
}
