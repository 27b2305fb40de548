// Package core provides the compile and dispatch tiers of the state machine engine.
// Compile turns a primitives.Tree into an immutable TransitionMap; MachineContext
// executes one transition per event against it.
// Stdlib-only implementation.
package core

import (
	"errors"
	"log/slog"

	"github.com/comalice/hfsm/internal/primitives"
)

// ErrReentrantDispatch is the panic value raised when a hook dispatches on the
// machine that is currently running it.
var ErrReentrantDispatch = errors.New("dispatch called from within a transition hook")

// MachineContext holds the current state and the compiled table.
// The current state is its only mutable field.
//
// Not safe for concurrent use. Dispatch is non-reentrant: hooks must not call
// Dispatch on the same context.
type MachineContext[S, K comparable] struct {
	current     S
	table       TransitionMap[S, K]
	logger      *slog.Logger
	dispatching bool
}

// NewMachineContext creates a context positioned at initial. It does not run
// any entry hooks.
func NewMachineContext[S, K comparable](initial S, table TransitionMap[S, K], logger *slog.Logger) *MachineContext[S, K] {
	if logger == nil {
		logger = slog.Default()
	}
	return &MachineContext[S, K]{
		current: initial,
		table:   table,
		logger:  logger,
	}
}

// Current returns the current state.
func (m *MachineContext[S, K]) Current() S {
	return m.current
}

// Dispatch runs at most one transition for evt and returns the resulting state
// together with the transition taken, or nil when the event was ignored.
func (m *MachineContext[S, K]) Dispatch(evt primitives.Event[K]) (S, *Transition[S, K]) {
	if m.dispatching {
		panic(ErrReentrantDispatch)
	}
	m.dispatching = true
	defer func() { m.dispatching = false }()

	t := m.pickTransition(evt, true)
	if t == nil {
		return m.current, nil
	}

	m.logger.Debug("executing transition", "event", evt.Kind(), "from", t.Source, "to", t.Target)
	t.Fire()
	m.current = t.Target
	return m.current, t
}

// Select returns the transition Dispatch would take for evt without firing it.
func (m *MachineContext[S, K]) Select(evt primitives.Event[K]) *Transition[S, K] {
	return m.pickTransition(evt, false)
}

// pickTransition grabs the first transition, in declaration order, whose kind
// matches and whose guard accepts.
func (m *MachineContext[S, K]) pickTransition(evt primitives.Event[K], log bool) *Transition[S, K] {
	candidates := m.table[m.current]
	if len(candidates) == 0 {
		if log {
			m.logger.Debug("no transitions for state", "state", m.current, "event", evt.Kind())
		}
		return nil
	}
	kind := evt.Kind()
	for _, t := range candidates {
		if t.Event != kind {
			continue
		}
		if t.Accepts(evt) {
			return t
		}
		if log {
			m.logger.Debug("guard rejected transition", "event", kind, "from", t.Source, "to", t.Target)
		}
	}
	if log {
		m.logger.Debug("event ignored", "state", m.current, "event", kind)
	}
	return nil
}
