// Package states implements game state management.
package states

import (
	"github.com/Faultbox/dungeoncaster/internal/engine/gfx"
	"github.com/Faultbox/dungeoncaster/internal/engine/input"
)

// State is one screen of the game: loading, exploring.
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame with that frame's input.
	Update(in input.Frame, dt float64) error

	// Render draws the state onto s.
	Render(s gfx.Surface) error
}

// Manager manages game state transitions.
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

// Change schedules a state change for the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates the current state.
func (m *Manager) Update(in input.Frame, dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	if m.current != nil {
		return m.current.Update(in, dt)
	}
	return nil
}

// Render renders the current state.
func (m *Manager) Render(s gfx.Surface) error {
	if m.current != nil {
		return m.current.Render(s)
	}
	return nil
}
