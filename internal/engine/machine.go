package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// Machine holds the current state and at most one pending transition.
type Machine struct {
	current     State
	pending     State
	transitions int
	logger      *log.Logger
}

// NewMachine creates an empty machine.
func NewMachine(logger *log.Logger) *Machine {
	return &Machine{logger: logger}
}

// Current returns the active state, nil before the first transition.
func (m *Machine) Current() State {
	return m.current
}

// Set schedules next to become current between frames. Only the first
// request of a frame is kept; it returns false when a transition was
// already pending.
func (m *Machine) Set(next State) bool {
	if next == nil {
		return false
	}
	if m.pending != nil {
		m.logger.Debug("transition dropped", "pending", m.pending.Phase(), "requested", next.Phase())
		return false
	}
	m.pending = next
	return true
}

// Pending reports whether a transition is waiting.
func (m *Machine) Pending() bool {
	return m.pending != nil
}

// Transitions returns how many transitions were applied.
func (m *Machine) Transitions() int {
	return m.transitions
}

// Apply runs the pending transition, if any. When Setup of the next state
// fails the current state stays active and the error is returned.
func (m *Machine) Apply(ctx context.Context) (bool, error) {
	next := m.pending
	if next == nil {
		return false, nil
	}
	m.pending = nil

	if err := next.Setup(ctx); err != nil {
		return false, fmt.Errorf("engine: setup %s state: %w", next.Phase(), err)
	}

	from := "none"
	if m.current != nil {
		from = m.current.Phase().String()
	}
	m.current = next
	m.transitions++
	m.logger.Debug("state changed", "from", from, "to", next.Phase())
	return true, nil
}
