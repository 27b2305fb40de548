package primitives

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateState is wrapped by DuplicateStateError.
	ErrDuplicateState = errors.New("duplicate state")
	// ErrUnknownTarget is wrapped by UnknownTargetError.
	ErrUnknownTarget = errors.New("unknown transition target")
	// ErrUnknownState is wrapped by UnknownStateError.
	ErrUnknownState = errors.New("unknown state")
)

// DuplicateStateError reports a state key declared more than once.
type DuplicateStateError struct {
	Key any
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("duplicate state(%v) found", e.Key)
}

func (e *DuplicateStateError) Unwrap() error {
	return ErrDuplicateState
}

// UnknownTargetError reports an edge whose target was never declared.
type UnknownTargetError struct {
	Source any
	Event  any
	Target any
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("state '%v' has transition on '%v' to undeclared state '%v'", e.Source, e.Event, e.Target)
}

func (e *UnknownTargetError) Unwrap() error {
	return ErrUnknownTarget
}

// UnknownStateError reports a reference to a state key that was never declared.
type UnknownStateError struct {
	Key any
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("state '%v' is not declared", e.Key)
}

func (e *UnknownStateError) Unwrap() error {
	return ErrUnknownState
}
