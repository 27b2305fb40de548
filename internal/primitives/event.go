// Event provides the tagged event primitive for state machine transitions.
//
// Every event value reports its own kind. The dispatcher matches edges on
// Kind() alone; payload inspection is left to guards, which only run after
// the kind matched.
//
// Example:
//
//	type PressLock struct{ WithReturn bool }
//
//	func (PressLock) Kind() Button { return ButtonLock }
package primitives

// Event is any value carrying a comparable kind tag.
type Event[K comparable] interface {
	Kind() K
}

// Signal is a payload-less event.
type Signal[K comparable] struct {
	Key K
}

// Kind implements Event.
func (s Signal[K]) Kind() K {
	return s.Key
}

// Tag returns a payload-less event of kind k.
func Tag[K comparable](k K) Signal[K] {
	return Signal[K]{Key: k}
}
