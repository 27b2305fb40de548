package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/hfsm/internal/primitives"
	"github.com/comalice/hfsm/testutil"
)

type kind string

const (
	evGo   kind = "go"
	evBack kind = "back"
	evSelf kind = "self"
)

// buildNested declares
//
//	a
//	├── a1
//	│   └── a1x
//	└── a2
//	b
func buildNested(rec *testutil.Recorder) *primitives.Tree[string, kind] {
	tr := primitives.NewTree[string, kind]()
	add := func(parent primitives.Handle, key string) primitives.Handle {
		return tr.AddState(parent, key, rec.Hook("enter "+key), rec.Hook("exit "+key))
	}
	a := add(primitives.RootHandle, "a")
	a1 := add(a, "a1")
	a1x := add(a1, "a1x")
	a2 := add(a, "a2")
	b := add(primitives.RootHandle, "b")

	tr.AddEdge(a1x, primitives.Edge[string, kind]{Event: evGo, Target: "a2", Action: rec.Hook("action a1x->a2")})
	tr.AddEdge(a1x, primitives.Edge[string, kind]{Event: evBack, Target: "b", Action: rec.Hook("action a1x->b")})
	tr.AddEdge(a1x, primitives.Edge[string, kind]{Event: evSelf, Target: "a1x", Action: rec.Hook("action self")})
	tr.AddEdge(a2, primitives.Edge[string, kind]{Event: evGo, Target: "a1x"})
	tr.AddEdge(b, primitives.Edge[string, kind]{Event: evGo, Target: "a"})
	tr.AddEdge(a, primitives.Edge[string, kind]{Event: evGo, Target: "a1"})
	return tr
}

func TestCompileEveryStateHasEntry(t *testing.T) {
	var rec testutil.Recorder
	p, err := Compile(buildNested(&rec), "b")
	require.NoError(t, err)

	for _, key := range []string{"a", "a1", "a1x", "a2", "b"} {
		_, ok := p.Transitions[key]
		assert.True(t, ok, "missing table entry for %s", key)
	}
	assert.Empty(t, p.Transitions["a1"])
	assert.Empty(t, rec.Calls(), "compiling must not run hooks")
}

func TestCompileHookOrdering(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		index   int
		exits   []string
		entries []string
		hooks   []string
	}{
		{
			name:    "sibling subtree",
			source:  "a1x",
			index:   0,
			exits:   []string{"a1x", "a1"},
			entries: []string{"a2"},
			hooks:   []string{"action a1x->a2", "exit a1x", "exit a1", "enter a2"},
		},
		{
			name:    "leave top-level state",
			source:  "a1x",
			index:   1,
			exits:   []string{"a1x", "a1", "a"},
			entries: []string{"b"},
			hooks:   []string{"action a1x->b", "exit a1x", "exit a1", "exit a", "enter b"},
		},
		{
			name:   "self transition",
			source: "a1x",
			index:  2,
			hooks:  []string{"action self"},
		},
		{
			name:    "into nested leaf",
			source:  "a2",
			index:   0,
			exits:   []string{"a2"},
			entries: []string{"a1", "a1x"},
			hooks:   []string{"exit a2", "enter a1", "enter a1x"},
		},
		{
			name:    "to composite from outside",
			source:  "b",
			index:   0,
			exits:   []string{"b"},
			entries: []string{"a"},
			hooks:   []string{"exit b", "enter a"},
		},
		{
			name:    "parent to own child",
			source:  "a",
			index:   0,
			entries: []string{"a1"},
			hooks:   []string{"enter a1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec testutil.Recorder
			p, err := Compile(buildNested(&rec), "b")
			require.NoError(t, err)

			tr := p.Transitions[tt.source][tt.index]
			assert.Equal(t, tt.exits, tr.Exits)
			assert.Equal(t, tt.entries, tr.Entries)

			tr.Fire()
			assert.Equal(t, tt.hooks, rec.Calls())
		})
	}
}

func TestCompileInitialEntry(t *testing.T) {
	var rec testutil.Recorder
	p, err := Compile(buildNested(&rec), "a1x")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a1", "a1x"}, p.InitialPath)
	for _, h := range p.InitialEntry {
		h()
	}
	assert.Equal(t, []string{"enter a", "enter a1", "enter a1x"}, rec.Calls())
}

func TestCompileErrors(t *testing.T) {
	t.Run("duplicate key", func(t *testing.T) {
		var rec testutil.Recorder
		tr := primitives.NewTree[string, kind]()
		a := tr.AddState(primitives.RootHandle, "a", rec.Hook("enter a"), nil)
		tr.AddState(a, "a", rec.Hook("enter a again"), nil)

		_, err := Compile(tr, "a")
		var dup *primitives.DuplicateStateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.Key)
		assert.Empty(t, rec.Calls())
	})

	t.Run("undeclared target", func(t *testing.T) {
		tr := primitives.NewTree[string, kind]()
		a := tr.AddState(primitives.RootHandle, "a", nil, nil)
		tr.AddEdge(a, primitives.Edge[string, kind]{Event: evGo, Target: "nowhere"})

		_, err := Compile(tr, "a")
		var unknown *primitives.UnknownTargetError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "nowhere", unknown.Target)
		assert.ErrorIs(t, err, primitives.ErrUnknownTarget)
	})

	t.Run("undeclared initial", func(t *testing.T) {
		tr := primitives.NewTree[string, kind]()
		tr.AddState(primitives.RootHandle, "a", nil, nil)

		_, err := Compile(tr, "z")
		assert.ErrorIs(t, err, primitives.ErrUnknownState)
	})
}

func TestCompileAncestors(t *testing.T) {
	var rec testutil.Recorder
	p, err := Compile(buildNested(&rec), "b")
	require.NoError(t, err)

	assert.Equal(t, []string{"a1x", "a1", "a"}, p.Ancestors("a1x"))
	assert.Equal(t, []string{"b"}, p.Ancestors("b"))
	assert.True(t, p.Has("a2"))
	assert.False(t, p.Has("zz"))
}

func TestCommonDepth(t *testing.T) {
	tests := []struct {
		src, dst []primitives.Handle
		want     int
	}{
		{[]primitives.Handle{3, 2, 1}, []primitives.Handle{1, 2, 4}, 2},
		{[]primitives.Handle{2, 1}, []primitives.Handle{5}, 0},
		{[]primitives.Handle{3, 2, 1}, []primitives.Handle{1, 2, 3}, 3},
	}
	for _, tt := range tests {
		if got := commonDepth(tt.src, tt.dst); got != tt.want {
			t.Errorf("commonDepth(%v, %v) = %d, want %d", tt.src, tt.dst, got, tt.want)
		}
	}
}
