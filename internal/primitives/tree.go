package primitives

import "fmt"

// Tree is the arena holding every declared state under a synthetic root.
type Tree[S, K comparable] struct {
	nodes []Node[S, K]
}

// NewTree creates a Tree containing only the synthetic root.
func NewTree[S, K comparable]() *Tree[S, K] {
	return &Tree[S, K]{
		nodes: []Node[S, K]{{Parent: -1}},
	}
}

// AddState appends a child state under parent and returns its handle.
// Duplicate keys are accepted here and rejected by the compiler.
func (t *Tree[S, K]) AddState(parent Handle, key S, entry, exit Hook) Handle {
	t.mustHave(parent)
	h := Handle(len(t.nodes))
	t.nodes = append(t.nodes, Node[S, K]{
		Key:    key,
		Parent: parent,
		Entry:  entry,
		Exit:   exit,
	})
	t.nodes[parent].Children = append(t.nodes[parent].Children, h)
	return h
}

// AddEdge appends an outgoing edge to the state at h.
func (t *Tree[S, K]) AddEdge(h Handle, e Edge[S, K]) {
	t.mustHave(h)
	if h == RootHandle {
		panic("primitives: edges cannot be declared on the root")
	}
	t.nodes[h].Edges = append(t.nodes[h].Edges, e)
}

// Node returns the node at h.
func (t *Tree[S, K]) Node(h Handle) *Node[S, K] {
	t.mustHave(h)
	return &t.nodes[h]
}

// Len returns the number of declared states, excluding the root.
func (t *Tree[S, K]) Len() int {
	return len(t.nodes) - 1
}

// Walk visits every declared state depth-first in declaration order,
// parents before children. The root is not visited.
func (t *Tree[S, K]) Walk(fn func(h Handle, n *Node[S, K])) {
	var visit func(h Handle)
	visit = func(h Handle) {
		for _, c := range t.nodes[h].Children {
			fn(c, &t.nodes[c])
			visit(c)
		}
	}
	visit(RootHandle)
}

// Ancestors returns h and its ancestors leaf-to-root, excluding the root.
func (t *Tree[S, K]) Ancestors(h Handle) []Handle {
	t.mustHave(h)
	var chain []Handle
	for cur := h; cur != RootHandle; cur = t.nodes[cur].Parent {
		chain = append(chain, cur)
	}
	return chain
}

func (t *Tree[S, K]) mustHave(h Handle) {
	if h < 0 || int(h) >= len(t.nodes) {
		panic(fmt.Sprintf("primitives: handle %d out of range", h))
	}
}
