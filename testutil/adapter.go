package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Runtime is the surface shared by every way of driving a machine, so the same
// scenario can run against the bare machine, the locked wrapper and the actor.
type Runtime[S comparable, E any] interface {
	Dispatch(evt E) S
	Current() S
}

// Step is one scripted dispatch and its expected outcome.
type Step[S comparable, E any] struct {
	Name  string
	Event E
	Want  S
	// Hooks lists the labels expected from the Recorder, in order.
	// A nil Hooks expects no calls.
	Hooks []string
}

// Replay dispatches every step in order and checks the resulting state and
// the hooks recorded by rec.
func Replay[S comparable, E any](t *testing.T, rt Runtime[S, E], rec *Recorder, steps []Step[S, E]) {
	t.Helper()
	for i, st := range steps {
		got := rt.Dispatch(st.Event)
		require.Equal(t, st.Want, got, "step %d (%s): returned state", i, st.Name)
		require.Equal(t, st.Want, rt.Current(), "step %d (%s): current state", i, st.Name)
		calls := rec.Take()
		if st.Hooks == nil {
			require.Empty(t, calls, "step %d (%s): hooks", i, st.Name)
			continue
		}
		require.Equal(t, st.Hooks, calls, "step %d (%s): hooks", i, st.Name)
	}
}
