// Package primitives provides the foundational, zero-dependency data structures
// for the state machine engine.
//
// This package uses ONLY the Go standard library.
//
// Core invariants:
//   - The state tree is an arena: nodes are addressed by Handle, children are
//     owned by their parent's Children slice, Parent is a plain index.
//   - Handle 0 is the synthetic root. It has no key and is never exposed.
//   - Children and edges keep declaration order.
//   - Nothing is removed from a Tree once added.
package primitives
