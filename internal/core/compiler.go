package core

import (
	"github.com/comalice/hfsm/internal/primitives"
)

// Program is the immutable output of Compile.
type Program[S, K comparable] struct {
	Transitions TransitionMap[S, K]
	Initial     S
	// InitialEntry holds the entry hooks from below the root down to Initial,
	// outermost first.
	InitialEntry []primitives.Hook
	// InitialPath holds the keys InitialEntry belongs to.
	InitialPath []S

	tree      *primitives.Tree[S, K]
	handles   map[S]primitives.Handle
	ancestors map[S][]S
}

// Compile flattens tree into a transition table. It fails on duplicate state
// keys, on edges targeting undeclared states and on an undeclared initial state.
func Compile[S, K comparable](tree *primitives.Tree[S, K], initial S) (*Program[S, K], error) {
	handles, order, err := flatten(tree)
	if err != nil {
		return nil, err
	}

	// Leaf-to-root chains, computed once per node.
	chains := make(map[primitives.Handle][]primitives.Handle, len(order))
	ancestors := make(map[S][]S, len(order))
	for _, h := range order {
		chain := tree.Ancestors(h)
		chains[h] = chain
		ancestors[tree.Node(h).Key] = keysOf(tree, chain)
	}

	table := make(TransitionMap[S, K], len(order))
	for _, h := range order {
		n := tree.Node(h)
		list := make([]*Transition[S, K], 0, len(n.Edges))
		for _, e := range n.Edges {
			th, ok := handles[e.Target]
			if !ok {
				return nil, &primitives.UnknownTargetError{Source: n.Key, Event: e.Event, Target: e.Target}
			}
			list = append(list, compileEdge(tree, n.Key, e, chains[h], reversed(chains[th])))
		}
		table[n.Key] = list
	}

	ih, ok := handles[initial]
	if !ok {
		return nil, &primitives.UnknownStateError{Key: initial}
	}
	p := &Program[S, K]{
		Transitions: table,
		Initial:     initial,
		tree:        tree,
		handles:     handles,
		ancestors:   ancestors,
	}
	for _, h := range reversed(chains[ih]) {
		n := tree.Node(h)
		p.InitialEntry = appendHook(p.InitialEntry, n.Entry)
		p.InitialPath = append(p.InitialPath, n.Key)
	}
	return p, nil
}

// flatten indexes every declared state by key and rejects duplicates.
func flatten[S, K comparable](tree *primitives.Tree[S, K]) (map[S]primitives.Handle, []primitives.Handle, error) {
	handles := make(map[S]primitives.Handle, tree.Len())
	order := make([]primitives.Handle, 0, tree.Len())
	var err error
	tree.Walk(func(h primitives.Handle, n *primitives.Node[S, K]) {
		if err != nil {
			return
		}
		if _, exists := handles[n.Key]; exists {
			err = &primitives.DuplicateStateError{Key: n.Key}
			return
		}
		handles[n.Key] = h
		order = append(order, h)
	})
	if err != nil {
		return nil, nil, err
	}
	return handles, order, nil
}

// compileEdge builds the action sequence for one edge. The edge action always
// runs first, then exits innermost-out, then entries outermost-in.
func compileEdge[S, K comparable](tree *primitives.Tree[S, K], source S, e primitives.Edge[S, K], src, dst []primitives.Handle) *Transition[S, K] {
	c := commonDepth(src, dst)
	t := &Transition[S, K]{
		Source:  source,
		Event:   e.Event,
		Guard:   e.Guard,
		Target:  e.Target,
		Actions: appendHook(nil, e.Action),
	}
	for _, h := range getExitStates(src, c) {
		n := tree.Node(h)
		t.Actions = appendHook(t.Actions, n.Exit)
		t.Exits = append(t.Exits, n.Key)
	}
	for _, h := range getEntryStates(dst, c) {
		n := tree.Node(h)
		t.Actions = appendHook(t.Actions, n.Entry)
		t.Entries = append(t.Entries, n.Key)
	}
	return t
}

func appendHook(hooks []primitives.Hook, h primitives.Hook) []primitives.Hook {
	if h == nil {
		return hooks
	}
	return append(hooks, h)
}

func keysOf[S, K comparable](tree *primitives.Tree[S, K], chain []primitives.Handle) []S {
	keys := make([]S, len(chain))
	for i, h := range chain {
		keys[i] = tree.Node(h).Key
	}
	return keys
}

// Tree returns the source tree. Callers must not modify it.
func (p *Program[S, K]) Tree() *primitives.Tree[S, K] {
	return p.tree
}

// Has reports whether key is a declared state.
func (p *Program[S, K]) Has(key S) bool {
	_, ok := p.handles[key]
	return ok
}

// Ancestors returns key and its ancestors, leaf-to-root.
func (p *Program[S, K]) Ancestors(key S) []S {
	return p.ancestors[key]
}
