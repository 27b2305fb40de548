package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/comalice/hfsm"
)

type Locker int

const (
	NotLoaned Locker = iota
	OnLoan
	Locked
	Unlocked
)

var lockerNames = [...]string{"NotLoaned", "OnLoan", "Locked", "Unlocked"}

func (l Locker) String() string {
	if int(l) < len(lockerNames) {
		return lockerNames[l]
	}
	return fmt.Sprintf("Locker(%d)", int(l))
}

type Button int

const (
	ButtonRental Button = iota
	ButtonReturn
	ButtonLock
	ButtonUnlock
)

var buttonNames = [...]string{"PressRental", "PressReturn", "PressLock", "PressUnlock"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// PressLock carries whether the key was returned along with locking.
type PressLock struct {
	WithReturn bool
}

func (PressLock) Kind() Button { return ButtonLock }

// parseEvent maps a script line to an event. "PressLock:return" locks with
// the key returned; other lines are button names.
func parseEvent(line string) (hfsm.Event[Button], error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), ":")
	switch name {
	case "PressLock":
		switch arg {
		case "":
			return PressLock{}, nil
		case "return":
			return PressLock{WithReturn: true}, nil
		}
		return nil, fmt.Errorf("event %q: unknown argument %q", line, arg)
	case "PressRental":
		return hfsm.Tag(ButtonRental), nil
	case "PressReturn":
		return hfsm.Tag(ButtonReturn), nil
	case "PressUnlock":
		return hfsm.Tag(ButtonUnlock), nil
	}
	return nil, fmt.Errorf("unknown event %q", line)
}

// declareLocker builds the rental locker. Hooks report to logger, which the
// actuator side would replace with motor and LED control.
func declareLocker(logger *slog.Logger) func(*hfsm.Builder[Locker, Button]) {
	hook := func(what string, s Locker) hfsm.Hook {
		return func() { logger.Info(what, "state", s) }
	}
	state := func(s Locker) []hfsm.StateOption {
		return []hfsm.StateOption{hfsm.OnEntry(hook("enter", s)), hfsm.OnExit(hook("exit", s))}
	}
	withReturn := hfsm.GuardOn[PressLock, Button](func(e PressLock) bool { return e.WithReturn })

	return func(b *hfsm.Builder[Locker, Button]) {
		b.State(NotLoaned, state(NotLoaned)...).
			Edge(ButtonRental, Locked, hfsm.Do(func() { logger.Info("locker rented") }))

		b.State(OnLoan, state(OnLoan)...).Within(func(s *hfsm.StateBuilder[Locker, Button]) {
			s.State(Locked, state(Locked)...).
				Edge(ButtonUnlock, Unlocked)
			s.State(Unlocked, state(Unlocked)...).
				Edge(ButtonLock, NotLoaned, hfsm.When(withReturn), hfsm.Do(func() { logger.Info("key returned") })).
				Edge(ButtonLock, Locked)
		})
	}
}
