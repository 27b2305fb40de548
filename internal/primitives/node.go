package primitives

// Hook is an entry, exit or transition procedure. A nil Hook is a no-op.
type Hook func()

// Guard decides whether an edge may fire for the given event. It is only
// invoked for events whose kind already matched the edge.
type Guard[K comparable] func(Event[K]) bool

// GuardOn adapts a predicate over one concrete event variant into a Guard.
// Events of any other dynamic type are rejected.
func GuardOn[V Event[K], K comparable](fn func(V) bool) Guard[K] {
	return func(e Event[K]) bool {
		v, ok := e.(V)
		if !ok {
			return false
		}
		return fn(v)
	}
}

// Handle addresses a Node inside a Tree.
type Handle int

// RootHandle is the synthetic root every top-level state hangs from.
const RootHandle Handle = 0

// Edge is a declared candidate transition out of a state.
type Edge[S, K comparable] struct {
	Event  K
	Guard  Guard[K] // nil: always accepts
	Target S
	Action Hook // nil: no-op
}

// Guarded reports whether the edge carries a guard.
func (e Edge[S, K]) Guarded() bool {
	return e.Guard != nil
}

// Node is one declared state.
type Node[S, K comparable] struct {
	Key      S
	Parent   Handle
	Children []Handle
	Entry    Hook
	Exit     Hook
	Edges    []Edge[S, K]
}
