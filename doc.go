// Package hfsm implements hierarchical finite state machines.
//
// A machine is declared once as a tree of states, each with optional entry and
// exit hooks and guarded edges. New compiles the tree into a flat transition
// table: for every edge the ordered sequence of exit and entry hooks is fixed at
// build time from the lowest common ancestor of source and target. Dispatch then
// only selects the first matching edge of the current state and replays its
// sequence.
//
// Basic usage:
//
//	m, err := hfsm.New(NotLoaned, func(b *hfsm.Builder[Locker, Button]) {
//		b.State(NotLoaned).Edge(ButtonRental, Locked)
//		b.State(OnLoan, hfsm.OnEntry(beep)).Within(func(s *hfsm.StateBuilder[Locker, Button]) {
//			s.State(Locked).Edge(ButtonUnlock, Unlocked)
//			s.State(Unlocked).
//				Edge(ButtonLock, NotLoaned, hfsm.When(hfsm.GuardOn[PressLock, Button](func(e PressLock) bool {
//					return e.WithReturn
//				}))).
//				Edge(ButtonLock, Locked)
//		})
//	})
//	if err != nil {
//		return err
//	}
//	m.Dispatch(PressRental{}) // Locked
//
// Edges match on the event kind only. An event nobody handles in the current
// state is ignored. Edges are looked up on the current state alone; parents do
// not handle events on behalf of their children.
//
// A Machine is not safe for concurrent use. Wrap it with Synchronize or drive it
// from an actor.Actor when several goroutines dispatch.
package hfsm
