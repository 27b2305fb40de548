package hfsm

import (
	"fmt"

	"github.com/comalice/hfsm/internal/primitives"
)

// Builder declares the top-level states of a machine.
type Builder[S, K comparable] struct {
	tree *primitives.Tree[S, K]
}

// StateBuilder is a handle to a declared state. Child states and edges declared
// through it attach to that state.
type StateBuilder[S, K comparable] struct {
	b *Builder[S, K]
	h primitives.Handle
}

func newBuilder[S, K comparable]() *Builder[S, K] {
	return &Builder[S, K]{tree: primitives.NewTree[S, K]()}
}

// State declares a top-level state.
func (b *Builder[S, K]) State(key S, opts ...StateOption) *StateBuilder[S, K] {
	return b.declare(primitives.RootHandle, key, opts)
}

func (b *Builder[S, K]) declare(parent primitives.Handle, key S, opts []StateOption) *StateBuilder[S, K] {
	var o stateOptions
	for _, opt := range opts {
		opt(&o)
	}
	sb := &StateBuilder[S, K]{b: b, h: b.tree.AddState(parent, key, o.entry, o.exit)}
	for _, n := range o.nested {
		fn, ok := n.(func(*StateBuilder[S, K]))
		if !ok {
			panic(fmt.Sprintf("hfsm: Nested builder %T does not match state %v", n, key))
		}
		fn(sb)
	}
	return sb
}

// Key returns the key of the state.
func (sb *StateBuilder[S, K]) Key() S {
	return sb.b.tree.Node(sb.h).Key
}

// State declares a child state.
func (sb *StateBuilder[S, K]) State(key S, opts ...StateOption) *StateBuilder[S, K] {
	return sb.b.declare(sb.h, key, opts)
}

// Edge appends an edge to target for events of the given kind. Edges sharing a
// kind are tried in declaration order.
func (sb *StateBuilder[S, K]) Edge(kind K, target S, opts ...EdgeOption) *StateBuilder[S, K] {
	var o edgeOptions
	for _, opt := range opts {
		opt(&o)
	}
	e := primitives.Edge[S, K]{Event: kind, Target: target, Action: o.action}
	if o.guard != nil {
		g, ok := o.guard.(Guard[K])
		if !ok {
			panic(fmt.Sprintf("hfsm: guard %T does not match event kind %T", o.guard, kind))
		}
		e.Guard = g
	}
	sb.b.tree.AddEdge(sb.h, e)
	return sb
}

// Within runs fn against the state, so children can be declared in a nested block.
func (sb *StateBuilder[S, K]) Within(fn func(*StateBuilder[S, K])) *StateBuilder[S, K] {
	fn(sb)
	return sb
}

// StateOption configures a state declaration.
type StateOption func(*stateOptions)

type stateOptions struct {
	entry  Hook
	exit   Hook
	nested []any
}

// OnEntry sets the hook run whenever the state is entered.
func OnEntry(h Hook) StateOption {
	return func(o *stateOptions) {
		o.entry = h
	}
}

// OnExit sets the hook run whenever the state is left.
func OnExit(h Hook) StateOption {
	return func(o *stateOptions) {
		o.exit = h
	}
}

// Nested runs fn against the new state once it is declared. The type
// parameters must match the Builder's.
func Nested[S, K comparable](fn func(*StateBuilder[S, K])) StateOption {
	return func(o *stateOptions) {
		o.nested = append(o.nested, fn)
	}
}

// EdgeOption configures an edge declaration.
type EdgeOption func(*edgeOptions)

type edgeOptions struct {
	guard  any
	action Hook
}

// When guards the edge. The guard's kind type must match the Builder's.
func When[K comparable](g Guard[K]) EdgeOption {
	return func(o *edgeOptions) {
		if g != nil {
			o.guard = g
		}
	}
}

// Do sets the edge action. It runs before any exit or entry hook.
func Do(h Hook) EdgeOption {
	return func(o *edgeOptions) {
		o.action = h
	}
}
