package hfsm_test

import (
	"fmt"

	"github.com/comalice/hfsm"
	"github.com/comalice/hfsm/testutil"
)

func Example() {
	enter := func(name string) hfsm.StateOption {
		return hfsm.OnEntry(func() { fmt.Println("enter", name) })
	}
	exit := func(name string) hfsm.StateOption {
		return hfsm.OnExit(func() { fmt.Println("exit", name) })
	}

	m, err := hfsm.New(NotLoaned, func(b *hfsm.Builder[Locker, Button]) {
		b.State(NotLoaned, enter("NotLoaned"), exit("NotLoaned")).
			Edge(ButtonRental, Locked)
		b.State(OnLoan, enter("OnLoan"), exit("OnLoan")).Within(func(s *hfsm.StateBuilder[Locker, Button]) {
			s.State(Locked, enter("Locked"), exit("Locked")).
				Edge(ButtonUnlock, Unlocked)
			s.State(Unlocked, enter("Unlocked"), exit("Unlocked")).
				Edge(ButtonLock, NotLoaned,
					hfsm.When(hfsm.GuardOn[PressLock, Button](func(e PressLock) bool { return e.WithReturn })),
					hfsm.Do(func() { fmt.Println("returned") })).
				Edge(ButtonLock, Locked)
		})
	}, hfsm.WithLogger(quietLogger()))
	if err != nil {
		panic(err)
	}

	fmt.Println(m.Dispatch(PressRental{}))
	fmt.Println(m.Dispatch(PressUnlock{}))
	fmt.Println(m.Dispatch(PressLock{WithReturn: true}))
	// Output:
	// enter NotLoaned
	// exit NotLoaned
	// enter OnLoan
	// enter Locked
	// Locked
	// exit Locked
	// enter Unlocked
	// Unlocked
	// returned
	// exit Unlocked
	// exit OnLoan
	// enter NotLoaned
	// NotLoaned
}

func ExampleMachine_String() {
	m, err := hfsm.New(NotLoaned, lockerMachine(new(testutil.Recorder)), hfsm.WithLogger(quietLogger()))
	if err != nil {
		panic(err)
	}
	fmt.Print(m)
	// Output:
	// StateMachine
	//   NotLoaned
	//     --> Locked : PressRental
	//   OnLoan
	//     Locked
	//       --> Unlocked : PressUnlock
	//     Unlocked
	//       --> NotLoaned : PressLock
	//       --> Locked : PressLock
}
