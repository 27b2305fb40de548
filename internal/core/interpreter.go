package core

import (
	"github.com/comalice/hfsm/internal/primitives"
)

// commonDepth returns how many states the two chains share. src is leaf-to-root,
// dst is root-to-leaf; both start below the same synthetic root, so their
// intersection is exactly the ancestor chain of the lowest common ancestor.
func commonDepth(src, dst []primitives.Handle) int {
	seen := make(map[primitives.Handle]struct{}, len(src))
	for _, h := range src {
		seen[h] = struct{}{}
	}
	n := 0
	for _, h := range dst {
		if _, ok := seen[h]; ok {
			n++
		}
	}
	return n
}

// getExitStates drops the last c entries of the leaf-to-root source chain,
// leaving the states strictly below the LCA, innermost first.
func getExitStates(src []primitives.Handle, c int) []primitives.Handle {
	return src[:len(src)-c]
}

// getEntryStates drops the first c entries of the root-to-leaf target chain,
// leaving the states strictly below the LCA, outermost first.
func getEntryStates(dst []primitives.Handle, c int) []primitives.Handle {
	return dst[c:]
}

// reversed returns a reversed copy of chain.
func reversed(chain []primitives.Handle) []primitives.Handle {
	out := make([]primitives.Handle, len(chain))
	for i, h := range chain {
		out[len(chain)-1-i] = h
	}
	return out
}
