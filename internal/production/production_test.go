package production

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comalice/hfsm/internal/core"
	"github.com/comalice/hfsm/internal/primitives"
)

type button string

// lockerProgram compiles the rental locker:
//
//	NotLoaned
//	OnLoan
//	├── Locked
//	└── Unlocked
func lockerProgram(t *testing.T) *core.Program[string, button] {
	t.Helper()
	tr := primitives.NewTree[string, button]()
	notLoaned := tr.AddState(primitives.RootHandle, "NotLoaned", nil, nil)
	onLoan := tr.AddState(primitives.RootHandle, "OnLoan", nil, nil)
	locked := tr.AddState(onLoan, "Locked", nil, nil)
	unlocked := tr.AddState(onLoan, "Unlocked", nil, nil)

	tr.AddEdge(notLoaned, primitives.Edge[string, button]{Event: "PressRental", Target: "Locked"})
	tr.AddEdge(locked, primitives.Edge[string, button]{Event: "PressUnlock", Target: "Unlocked"})
	tr.AddEdge(unlocked, primitives.Edge[string, button]{
		Event:  "PressLock",
		Guard:  func(primitives.Event[button]) bool { return true },
		Target: "NotLoaned",
	})
	tr.AddEdge(unlocked, primitives.Edge[string, button]{Event: "PressLock", Target: "Locked"})

	p, err := core.Compile(tr, "NotLoaned")
	require.NoError(t, err)
	return p
}
