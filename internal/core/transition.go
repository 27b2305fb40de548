package core

import "github.com/comalice/hfsm/internal/primitives"

// Transition is a compiled edge: the guard plus the full ordered action
// sequence [edge action] ++ exit hooks ++ entry hooks.
type Transition[S, K comparable] struct {
	Source  S
	Event   K
	Guard   primitives.Guard[K]
	Target  S
	Actions []primitives.Hook

	// Exits lists the states left, innermost first.
	Exits []S
	// Entries lists the states entered, outermost first.
	Entries []S
}

// Accepts reports whether the transition may fire for evt. The caller has
// already matched evt's kind.
func (t *Transition[S, K]) Accepts(evt primitives.Event[K]) bool {
	return t.Guard == nil || t.Guard(evt)
}

// Fire runs the compiled action sequence in order.
func (t *Transition[S, K]) Fire() {
	for _, a := range t.Actions {
		a()
	}
}

// TransitionMap holds every state's compiled transitions in declaration order.
type TransitionMap[S, K comparable] map[S][]*Transition[S, K]
