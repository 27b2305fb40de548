package hfsm

import (
	"github.com/comalice/hfsm/internal/core"
	"github.com/comalice/hfsm/internal/primitives"
)

// Event is any value carrying a comparable kind tag.
type Event[K comparable] = primitives.Event[K]

// Signal is a payload-less event.
type Signal[K comparable] = primitives.Signal[K]

// Hook is an entry, exit or edge procedure.
type Hook = primitives.Hook

// Guard decides whether an edge may fire for an event of the edge's kind.
type Guard[K comparable] = primitives.Guard[K]

// Tag returns a payload-less event of kind k.
func Tag[K comparable](k K) Signal[K] {
	return primitives.Tag(k)
}

// GuardOn builds a Guard from a predicate over one event variant. Events of
// another dynamic type are rejected.
func GuardOn[V Event[K], K comparable](fn func(V) bool) Guard[K] {
	return primitives.GuardOn[V, K](fn)
}

var (
	ErrDuplicateState = primitives.ErrDuplicateState
	ErrUnknownTarget  = primitives.ErrUnknownTarget
	ErrUnknownState   = primitives.ErrUnknownState

	// ErrReentrantDispatch is the panic value raised when a hook calls Dispatch
	// on the machine that is running it.
	ErrReentrantDispatch = core.ErrReentrantDispatch
)

type (
	DuplicateStateError = primitives.DuplicateStateError
	UnknownTargetError  = primitives.UnknownTargetError
	UnknownStateError   = primitives.UnknownStateError
)
